package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Investment holds a plan snapshot taken at creation time so later plan edits
// never change accrual of running investments. Principal and DailyProfit are
// fixed for the lifetime of the investment.
type Investment struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	UserID             uint            `gorm:"not null;index" json:"user_id"`
	PlanID             uint            `gorm:"not null;index" json:"plan_id"`
	PlanName           string          `gorm:"size:50;not null" json:"plan_name"`
	DailyROIPercentage decimal.Decimal `gorm:"type:decimal(8,4);not null" json:"daily_roi_percentage"`
	Principal          decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"principal"`
	DailyProfit        decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"daily_profit"`
	TotalProfitEarned  decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0" json:"total_profit_earned"`
	StartDate          time.Time       `gorm:"not null" json:"start_date"`
	MaturityDate       time.Time       `gorm:"not null;index" json:"maturity_date"`
	Status             string          `gorm:"size:16;not null;index;default:'active'" json:"status"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	DeletedAt          gorm.DeletedAt  `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Plan Plan `gorm:"foreignKey:PlanID" json:"-"`
}

func (Investment) TableName() string { return "investments" }

// RoiAccrual is the per-day profit audit row and the idempotency key for the
// daily ROI job: the unique (investment_id, accrual_date) index makes a second
// run on the same calendar day a no-op. Distributed flips once the referral
// distributor has consumed the row.
type RoiAccrual struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	InvestmentID uint            `gorm:"not null;uniqueIndex:idx_accrual_day" json:"investment_id"`
	UserID       uint            `gorm:"not null;index" json:"user_id"`
	AccrualDate  string          `gorm:"size:10;not null;uniqueIndex:idx_accrual_day" json:"accrual_date"` // YYYY-MM-DD (UTC)
	Amount       decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"amount"`
	Distributed  bool            `gorm:"not null;default:false;index" json:"distributed"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (RoiAccrual) TableName() string { return "roi_accruals" }
