package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan is a fixed-term yield product. Plans referenced by investments are
// treated as immutable: investments snapshot the fields they depend on.
type Plan struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	Name               string          `gorm:"size:50;uniqueIndex;not null" json:"name"`
	DailyROIPercentage decimal.Decimal `gorm:"type:decimal(8,4);not null" json:"daily_roi_percentage"`
	DurationMonths     int             `gorm:"not null" json:"duration_months"`
	MinInvestment      decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"min_investment"`
	IsActive           bool            `gorm:"default:true" json:"is_active"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

func (Plan) TableName() string { return "plans" }
