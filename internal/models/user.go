package models

import (
	"time"

	"credon/internal/domain"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	FullName     string         `gorm:"size:120;not null" json:"full_name"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	Role         string         `gorm:"size:20;not null;index;default:'USER'" json:"role"`
	// ReferralCode is generated at registration and never changes afterwards.
	ReferralCode string `gorm:"uniqueIndex;size:20;not null" json:"referral_code"`
	// ReferredBy points at the referrer. It is set once at registration (the
	// referrer must already exist), which rules out cycles by construction.
	ReferredBy         *uint          `gorm:"index" json:"referred_by"`
	Level              int            `gorm:"not null;default:3" json:"level"`
	ConfirmedReferrals int            `gorm:"not null;default:0" json:"confirmed_referrals"`
	IsActive           bool           `gorm:"default:true" json:"is_active"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	Wallet   *Wallet `gorm:"foreignKey:UserID" json:"wallet,omitempty"`
	Referrer *User   `gorm:"foreignKey:ReferredBy" json:"-"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool { return u.Role == domain.RoleAdmin }
