package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the append-only money trail: deposits, withdrawals and
// referral credits. Status moves one way (pending -> terminal) and resolution
// is a compare-and-set, so a record gets at most one terminal state.
type Transaction struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	Type   string `gorm:"size:16;not null;index" json:"type"`
	// Reference is a uuid handed to the user for support lookups.
	Reference string          `gorm:"size:64;uniqueIndex;not null" json:"reference"`
	Amount    decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"amount"`
	Status    string          `gorm:"size:16;not null;index;default:'pending'" json:"status"`
	// TxHash: user-supplied proof on deposits, admin-supplied proof on
	// withdrawal approval. Free text, verified by admin review only.
	TxHash        string     `gorm:"size:128" json:"tx_hash,omitempty"`
	WalletAddress string     `gorm:"size:128" json:"wallet_address,omitempty"` // withdrawals only, BEP-20
	AdminNotes    string     `gorm:"size:500" json:"admin_notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Transaction) TableName() string { return "transactions" }
