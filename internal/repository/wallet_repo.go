package repository

import (
	"credon/internal/domain"
	"credon/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WalletRepository applies every balance mutation as a single guarded UPDATE
// statement, so concurrent approvals, accruals and withdrawals on the same
// wallet cannot produce lost updates or a negative balance.
type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) WithTx(tx *gorm.DB) *WalletRepository {
	return &WalletRepository{db: tx}
}

func (r *WalletRepository) GetByUserID(userID uint) (*models.Wallet, error) {
	var w models.Wallet
	if err := r.db.Where("user_id = ?", userID).First(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WalletRepository) GetOrCreate(userID uint) (*models.Wallet, error) {
	w, err := r.GetByUserID(userID)
	if err == nil {
		return w, nil
	}
	w = &models.Wallet{UserID: userID}
	if err := r.db.Create(w).Error; err != nil {
		return nil, err
	}
	return w, nil
}

// Credit adds amount to the wallet balance.
func (r *WalletRepository) Credit(userID uint, amount decimal.Decimal) error {
	return r.applyCredit(userID, map[string]interface{}{
		"balance": gorm.Expr("balance + ?", round(amount)),
	})
}

// CreditProfit credits a daily ROI amount: balance and total_profit_earned.
func (r *WalletRepository) CreditProfit(userID uint, amount decimal.Decimal) error {
	a := round(amount)
	return r.applyCredit(userID, map[string]interface{}{
		"balance":             gorm.Expr("balance + ?", a),
		"total_profit_earned": gorm.Expr("total_profit_earned + ?", a),
	})
}

// CreditBonus credits referral income: balance and total_bonus_earned.
// Referral income is deliberately kept out of total_profit_earned.
func (r *WalletRepository) CreditBonus(userID uint, amount decimal.Decimal) error {
	a := round(amount)
	return r.applyCredit(userID, map[string]interface{}{
		"balance":            gorm.Expr("balance + ?", a),
		"total_bonus_earned": gorm.Expr("total_bonus_earned + ?", a),
	})
}

// Debit subtracts amount, failing with ErrInsufficientBalance if the wallet
// does not hold it. The balance guard is part of the UPDATE's WHERE clause.
func (r *WalletRepository) Debit(userID uint, amount decimal.Decimal) error {
	a := round(amount)
	res := r.db.Model(&models.Wallet{}).
		Where("user_id = ? AND balance >= ?", userID, a).
		Update("balance", gorm.Expr("balance - ?", a))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrInsufficientBalance
	}
	return nil
}

// DebitForInvestment moves amount from balance into total_invested.
func (r *WalletRepository) DebitForInvestment(userID uint, amount decimal.Decimal) error {
	a := round(amount)
	res := r.db.Model(&models.Wallet{}).
		Where("user_id = ? AND balance >= ?", userID, a).
		Updates(map[string]interface{}{
			"balance":        gorm.Expr("balance - ?", a),
			"total_invested": gorm.Expr("total_invested + ?", a),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrInsufficientBalance
	}
	return nil
}

// CreditPrincipalReturn puts matured principal back into the balance.
// total_invested is kept as a historical high-water mark.
func (r *WalletRepository) CreditPrincipalReturn(userID uint, amount decimal.Decimal) error {
	return r.Credit(userID, amount)
}

func (r *WalletRepository) SetWithdrawalEligible(userID uint, eligible bool) error {
	return r.db.Model(&models.Wallet{}).
		Where("user_id = ?", userID).
		Update("withdrawal_eligible", eligible).Error
}

// ResetAllWithdrawalEligibility re-enables the weekly withdrawal window for
// every wallet. Returns the number of wallets flipped.
func (r *WalletRepository) ResetAllWithdrawalEligibility() (int64, error) {
	res := r.db.Model(&models.Wallet{}).
		Where("withdrawal_eligible = ?", false).
		Update("withdrawal_eligible", true)
	return res.RowsAffected, res.Error
}

// AdjustBalance applies a signed manual admin adjustment; the guard keeps the
// result non-negative.
func (r *WalletRepository) AdjustBalance(userID uint, delta decimal.Decimal) error {
	d := round(delta)
	res := r.db.Model(&models.Wallet{}).
		Where("user_id = ? AND balance + ? >= 0", userID, d).
		Update("balance", gorm.Expr("balance + ?", d))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrInsufficientBalance
	}
	return nil
}

// SetBalance overwrites the balance outright (admin "set" operation).
func (r *WalletRepository) SetBalance(userID uint, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return domain.ErrInsufficientBalance
	}
	res := r.db.Model(&models.Wallet{}).
		Where("user_id = ?", userID).
		Update("balance", round(amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *WalletRepository) applyCredit(userID uint, updates map[string]interface{}) error {
	res := r.db.Model(&models.Wallet{}).Where("user_id = ?", userID).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// round applies the ledger's persistence rounding: half-even at MoneyScale.
func round(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(domain.MoneyScale)
}
