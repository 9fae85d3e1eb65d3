package models

import (
	"time"

	"gorm.io/gorm"
)

// Notice is an announcement shown to users; popup notices are surfaced once
// per session on the dashboard.
type Notice struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"size:200;not null" json:"title"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	IsActive  bool           `gorm:"default:true;index" json:"is_active"`
	IsPopup   bool           `gorm:"default:false" json:"is_popup"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Notice) TableName() string { return "notices" }

type SupportTicket struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	Subject    string         `gorm:"size:200;not null" json:"subject"`
	Message    string         `gorm:"type:text;not null" json:"message"`
	Status     string         `gorm:"size:16;not null;index;default:'open'" json:"status"`
	AdminReply string         `gorm:"type:text" json:"admin_reply,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (SupportTicket) TableName() string { return "support_tickets" }

// Page is static site content (about, terms, privacy) editable by admins.
type Page struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PageType  string    `gorm:"size:32;uniqueIndex;not null" json:"page_type"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Documents []PageDocument `gorm:"foreignKey:PageID" json:"documents,omitempty"`
}

func (Page) TableName() string { return "pages" }

// PageDocument is an uploaded attachment (hosted on Cloudinary) linked to a page.
type PageDocument struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PageID    uint      `gorm:"not null;index" json:"page_id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	URL       string    `gorm:"size:512;not null" json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

func (PageDocument) TableName() string { return "page_documents" }

// PlatformSetting is a key/value row; deposit_address and automation_enabled
// live here so they survive restarts.
type PlatformSetting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:64;not null" json:"key"`
	Value     string    `gorm:"size:500" json:"value"`
	UpdatedBy string    `gorm:"size:120" json:"updated_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PlatformSetting) TableName() string { return "platform_settings" }
