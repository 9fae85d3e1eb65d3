package repository

import (
	"testing"

	"credon/internal/domain"
	"credon/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupWalletDB(t *testing.T) (*gorm.DB, *WalletRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Wallet{}))
	return db, NewWalletRepository(db)
}

func seedWallet(t *testing.T, db *gorm.DB, userID uint, balance string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Wallet{
		UserID:  userID,
		Balance: decimal.RequireFromString(balance),
	}).Error)
}

func mustDec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDebitGuard(t *testing.T) {
	db, repo := setupWalletDB(t)
	seedWallet(t, db, 1, "100")

	require.NoError(t, repo.Debit(1, mustDec("60")))
	assert.ErrorIs(t, repo.Debit(1, mustDec("60")), domain.ErrInsufficientBalance)

	w, err := repo.GetByUserID(1)
	require.NoError(t, err)
	assert.True(t, w.Balance.Equal(mustDec("40")), "got %s", w.Balance)
}

func TestDebitForInvestmentMovesToInvested(t *testing.T) {
	db, repo := setupWalletDB(t)
	seedWallet(t, db, 1, "1500")

	require.NoError(t, repo.DebitForInvestment(1, mustDec("1000")))
	w, err := repo.GetByUserID(1)
	require.NoError(t, err)
	assert.True(t, w.Balance.Equal(mustDec("500")))
	assert.True(t, w.TotalInvested.Equal(mustDec("1000")))

	assert.ErrorIs(t, repo.DebitForInvestment(1, mustDec("501")), domain.ErrInsufficientBalance)
}

func TestCreditProfitAndBonusTrackSeparately(t *testing.T) {
	db, repo := setupWalletDB(t)
	seedWallet(t, db, 1, "0")

	require.NoError(t, repo.CreditProfit(1, mustDec("8")))
	require.NoError(t, repo.CreditBonus(1, mustDec("1.6")))

	w, err := repo.GetByUserID(1)
	require.NoError(t, err)
	assert.True(t, w.Balance.Equal(mustDec("9.6")), "got %s", w.Balance)
	assert.True(t, w.TotalProfitEarned.Equal(mustDec("8")))
	assert.True(t, w.TotalBonusEarned.Equal(mustDec("1.6")))
}

func TestCreditMissingWallet(t *testing.T) {
	_, repo := setupWalletDB(t)
	assert.ErrorIs(t, repo.Credit(99, mustDec("10")), gorm.ErrRecordNotFound)
}

func TestAdjustBalance(t *testing.T) {
	db, repo := setupWalletDB(t)
	seedWallet(t, db, 1, "100")

	require.NoError(t, repo.AdjustBalance(1, mustDec("-30")))
	assert.ErrorIs(t, repo.AdjustBalance(1, mustDec("-100")), domain.ErrInsufficientBalance)
	require.NoError(t, repo.AdjustBalance(1, mustDec("50")))

	w, err := repo.GetByUserID(1)
	require.NoError(t, err)
	assert.True(t, w.Balance.Equal(mustDec("120")), "got %s", w.Balance)
}

func TestSetBalance(t *testing.T) {
	db, repo := setupWalletDB(t)
	seedWallet(t, db, 1, "100")

	assert.Error(t, repo.SetBalance(1, mustDec("-1")))
	require.NoError(t, repo.SetBalance(1, mustDec("250")))

	w, err := repo.GetByUserID(1)
	require.NoError(t, err)
	assert.True(t, w.Balance.Equal(mustDec("250")))
}

func TestResetAllWithdrawalEligibility(t *testing.T) {
	db, repo := setupWalletDB(t)
	seedWallet(t, db, 1, "0")
	seedWallet(t, db, 2, "0")
	require.NoError(t, repo.SetWithdrawalEligible(1, false))

	n, err := repo.ResetAllWithdrawalEligibility()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
