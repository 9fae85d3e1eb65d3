package repository

import (
	"credon/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReferralRepository struct {
	db *gorm.DB
}

func NewReferralRepository(db *gorm.DB) *ReferralRepository {
	return &ReferralRepository{db: db}
}

func (r *ReferralRepository) WithTx(tx *gorm.DB) *ReferralRepository {
	return &ReferralRepository{db: tx}
}

func (r *ReferralRepository) CreateBonus(b *models.ReferralBonus) error {
	return r.db.Create(b).Error
}

// HasBonus reports whether a given accrual already paid the given level.
func (r *ReferralRepository) HasBonus(accrualID uint, level int) (bool, error) {
	var n int64
	err := r.db.Model(&models.ReferralBonus{}).
		Where("accrual_id = ? AND level = ?", accrualID, level).
		Count(&n).Error
	return n > 0, err
}

func (r *ReferralRepository) SumEarned(beneficiaryID uint) (decimal.Decimal, error) {
	var s *string
	err := r.db.Model(&models.ReferralBonus{}).
		Select("SUM(amount)").
		Where("beneficiary_user_id = ?", beneficiaryID).
		Scan(&s).Error
	if err != nil || s == nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(*s)
}

func (r *ReferralRepository) ListByBeneficiary(beneficiaryID uint, limit int) ([]models.ReferralBonus, error) {
	var list []models.ReferralBonus
	q := r.db.Where("beneficiary_user_id = ?", beneficiaryID).Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&list).Error
	return list, err
}
