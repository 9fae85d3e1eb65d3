package domain

import "github.com/shopspring/decimal"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

const (
	TxTypeDeposit    = "deposit"
	TxTypeWithdrawal = "withdrawal"
	TxTypeReferral   = "referral"
)

const (
	TxStatusPending   = "pending"
	TxStatusApproved  = "approved"  // deposits
	TxStatusCompleted = "completed" // withdrawals and referral credits
	TxStatusRejected  = "rejected"
)

const (
	InvestmentActive    = "active"
	InvestmentMatured   = "matured"
	InvestmentCancelled = "cancelled"
)

const (
	TicketOpen     = "open"
	TicketResolved = "resolved"
)

const (
	SettingDepositAddress    = "deposit_address"
	SettingAutomationEnabled = "automation_enabled"
)

// MaxReferralDepth bounds the upline walk. Bonuses never reach past the third
// referrer no matter how long the chain is.
const MaxReferralDepth = 3

// ReferralRates maps upline level (1-based) to the share of a daily profit
// event paid out as bonus: 20% direct, 15% second, 10% third.
var ReferralRates = []decimal.Decimal{
	decimal.NewFromFloat(0.20),
	decimal.NewFromFloat(0.15),
	decimal.NewFromFloat(0.10),
}

// User levels are derived from confirmed referral counts: a referral counts as
// confirmed once the referred user's first deposit is approved.
const (
	LevelElite    = 1 // 30+ confirmed referrals
	LevelAdvanced = 2 // 15-29
	LevelStarter  = 3 // 0-14
)

func LevelForReferrals(confirmed int) int {
	switch {
	case confirmed >= 30:
		return LevelElite
	case confirmed >= 15:
		return LevelAdvanced
	default:
		return LevelStarter
	}
}

// MoneyScale is the fractional precision kept in the ledger. Display rounding
// to 2 places happens client-side; persistence uses round-half-even at this
// scale so repeated accruals do not drift.
const MoneyScale = 8
