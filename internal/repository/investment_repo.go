package repository

import (
	"time"

	"credon/internal/domain"
	"credon/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InvestmentRepository struct {
	db *gorm.DB
}

func NewInvestmentRepository(db *gorm.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

func (r *InvestmentRepository) WithTx(tx *gorm.DB) *InvestmentRepository {
	return &InvestmentRepository{db: tx}
}

func (r *InvestmentRepository) Create(inv *models.Investment) error {
	return r.db.Create(inv).Error
}

func (r *InvestmentRepository) GetByID(id uint) (*models.Investment, error) {
	var inv models.Investment
	if err := r.db.First(&inv, id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvestmentRepository) ListByUser(userID uint) ([]models.Investment, error) {
	var list []models.Investment
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *InvestmentRepository) ListAll() ([]models.Investment, error) {
	var list []models.Investment
	err := r.db.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *InvestmentRepository) ListActive() ([]models.Investment, error) {
	var list []models.Investment
	err := r.db.Where("status = ?", domain.InvestmentActive).Order("id ASC").Find(&list).Error
	return list, err
}

// ListMaturedCandidates returns active investments whose maturity date has
// passed as of now.
func (r *InvestmentRepository) ListMaturedCandidates(now time.Time) ([]models.Investment, error) {
	var list []models.Investment
	err := r.db.Where("status = ? AND maturity_date <= ?", domain.InvestmentActive, now).
		Order("id ASC").Find(&list).Error
	return list, err
}

// AddProfit accumulates a daily accrual onto the investment row.
func (r *InvestmentRepository) AddProfit(id uint, amount decimal.Decimal) error {
	return r.db.Model(&models.Investment{}).Where("id = ?", id).
		Update("total_profit_earned", gorm.Expr("total_profit_earned + ?", amount)).Error
}

// MarkMatured transitions active -> matured; a compare-and-set so two
// overlapping maturity runs cannot both return the principal.
func (r *InvestmentRepository) MarkMatured(id uint) (bool, error) {
	res := r.db.Model(&models.Investment{}).
		Where("id = ? AND status = ?", id, domain.InvestmentActive).
		Update("status", domain.InvestmentMatured)
	return res.RowsAffected > 0, res.Error
}

// HasAccrual reports whether the investment already accrued on the given day.
func (r *InvestmentRepository) HasAccrual(investmentID uint, date string) (bool, error) {
	var n int64
	err := r.db.Model(&models.RoiAccrual{}).
		Where("investment_id = ? AND accrual_date = ?", investmentID, date).
		Count(&n).Error
	return n > 0, err
}

func (r *InvestmentRepository) CreateAccrual(a *models.RoiAccrual) error {
	return r.db.Create(a).Error
}

// ListUndistributed returns accrual rows the referral distributor has not
// consumed yet, oldest first.
func (r *InvestmentRepository) ListUndistributed() ([]models.RoiAccrual, error) {
	var list []models.RoiAccrual
	err := r.db.Where("distributed = ?", false).Order("id ASC").Find(&list).Error
	return list, err
}

func (r *InvestmentRepository) MarkDistributed(accrualID uint) error {
	return r.db.Model(&models.RoiAccrual{}).Where("id = ?", accrualID).
		Update("distributed", true).Error
}

func (r *InvestmentRepository) SumInvested() (decimal.Decimal, error) {
	return r.sumColumn("principal", nil)
}

func (r *InvestmentRepository) CountByStatus(status string) (int64, error) {
	var n int64
	err := r.db.Model(&models.Investment{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

func (r *InvestmentRepository) sumColumn(col string, cond map[string]interface{}) (decimal.Decimal, error) {
	var s *string
	q := r.db.Model(&models.Investment{}).Select("SUM(" + col + ")")
	if cond != nil {
		q = q.Where(cond)
	}
	if err := q.Scan(&s).Error; err != nil {
		return decimal.Zero, err
	}
	if s == nil {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(*s)
}
