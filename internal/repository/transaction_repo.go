package repository

import (
	"time"

	"credon/internal/domain"
	"credon/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) WithTx(tx *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: tx}
}

func (r *TransactionRepository) Create(t *models.Transaction) error {
	return r.db.Create(t).Error
}

func (r *TransactionRepository) GetByID(id uint) (*models.Transaction, error) {
	var t models.Transaction
	if err := r.db.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// History returns a user's transactions, optionally filtered by type.
func (r *TransactionRepository) History(userID uint, txType string) ([]models.Transaction, error) {
	q := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if txType != "" {
		q = q.Where("type = ?", txType)
	}
	var list []models.Transaction
	err := q.Find(&list).Error
	return list, err
}

func (r *TransactionRepository) ListPending(txType string) ([]models.Transaction, error) {
	var list []models.Transaction
	err := r.db.Where("type = ? AND status = ?", txType, domain.TxStatusPending).
		Order("created_at ASC").Find(&list).Error
	return list, err
}

// Resolve is the one-way terminal transition. The WHERE status='pending'
// clause makes it a compare-and-set: of two concurrent resolutions exactly one
// sees RowsAffected == 1, the other gets ErrAlreadyResolved.
func (r *TransactionRepository) Resolve(id uint, status, txHash, notes string, at time.Time) error {
	updates := map[string]interface{}{
		"status":      status,
		"admin_notes": notes,
		"resolved_at": at,
	}
	if txHash != "" {
		updates["tx_hash"] = txHash
	}
	res := r.db.Model(&models.Transaction{}).
		Where("id = ? AND status = ?", id, domain.TxStatusPending).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAlreadyResolved
	}
	return nil
}

// CountResolvedDeposits counts a user's approved deposits; used to detect the
// first approved deposit that confirms a referral.
func (r *TransactionRepository) CountResolvedDeposits(userID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ? AND status = ?", userID, domain.TxTypeDeposit, domain.TxStatusApproved).
		Count(&n).Error
	return n, err
}

// SumWithdrawn totals a user's pending plus completed withdrawal amounts,
// used for the profit-only withdrawal ceiling.
func (r *TransactionRepository) SumWithdrawn(userID uint) (decimal.Decimal, error) {
	return r.sumAmount(r.db.Model(&models.Transaction{}).
		Select("SUM(amount)").
		Where("user_id = ? AND type = ? AND status IN ?", userID, domain.TxTypeWithdrawal,
			[]string{domain.TxStatusPending, domain.TxStatusCompleted}))
}

// SumByTypeStatus totals platform-wide amounts for the admin dashboard.
func (r *TransactionRepository) SumByTypeStatus(txType, status string) (decimal.Decimal, int64, error) {
	var n int64
	if err := r.db.Model(&models.Transaction{}).
		Where("type = ? AND status = ?", txType, status).
		Count(&n).Error; err != nil {
		return decimal.Zero, 0, err
	}
	sum, err := r.sumAmount(r.db.Model(&models.Transaction{}).
		Select("SUM(amount)").
		Where("type = ? AND status = ?", txType, status))
	return sum, n, err
}

func (r *TransactionRepository) sumAmount(q *gorm.DB) (decimal.Decimal, error) {
	var s *string
	if err := q.Scan(&s).Error; err != nil {
		return decimal.Zero, err
	}
	if s == nil {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(*s)
}
