package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReferralBonus is the audit row for one upline credit derived from one daily
// profit accrual. The (accrual_id, level) pair is unique: re-running the
// distributor can never pay the same level twice for the same profit event.
type ReferralBonus struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	AccrualID          uint            `gorm:"not null;uniqueIndex:idx_bonus_level" json:"accrual_id"`
	SourceInvestmentID uint            `gorm:"not null;index" json:"source_investment_id"`
	SourceUserID       uint            `gorm:"not null;index" json:"source_user_id"`
	BeneficiaryUserID  uint            `gorm:"not null;index" json:"beneficiary_user_id"`
	Level              int             `gorm:"not null;uniqueIndex:idx_bonus_level" json:"level"` // 1..3
	Amount             decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"amount"`
	AccrualDate        string          `gorm:"size:10;not null;index" json:"accrual_date"`
	CreatedAt          time.Time       `json:"created_at"`
}

func (ReferralBonus) TableName() string { return "referral_bonuses" }
