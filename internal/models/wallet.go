package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Wallet is the per-user ledger head. Every mutation of Balance is attributable
// to exactly one ledger event: a resolved deposit/withdrawal Transaction, an
// investment debit, a RoiAccrual credit, a ReferralBonus credit, or a maturity
// principal return.
type Wallet struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	// Balance never goes negative: debits are guarded single-statement updates.
	Balance       decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0" json:"wallet_balance"`
	TotalInvested decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0" json:"total_invested"`
	// TotalProfitEarned accumulates daily ROI only; referral income is tracked
	// in TotalBonusEarned and never counts as profit.
	TotalProfitEarned decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0" json:"total_profit_earned"`
	TotalBonusEarned  decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0" json:"total_bonus_earned"`
	// WithdrawalEligible is cleared when a withdrawal request is submitted and
	// restored by the weekly eligibility reset job.
	WithdrawalEligible bool           `gorm:"not null;default:true" json:"withdrawal_eligible"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Wallet) TableName() string { return "wallets" }
