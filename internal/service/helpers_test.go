package service

import (
	"fmt"
	"testing"

	"credon/internal/domain"
	"credon/internal/models"
	"credon/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Wallet{},
		&models.Plan{},
		&models.Investment{},
		&models.RoiAccrual{},
		&models.Transaction{},
		&models.ReferralBonus{},
		&models.PlatformSetting{},
	))
	return db
}

var userSeq int

func createUser(t *testing.T, db *gorm.DB, balance string, referredBy *uint) *models.User {
	t.Helper()
	userSeq++
	u := &models.User{
		FullName:     fmt.Sprintf("User %d", userSeq),
		Email:        fmt.Sprintf("user%d@example.com", userSeq),
		PasswordHash: "x",
		Role:         domain.RoleUser,
		ReferralCode: fmt.Sprintf("CODE%04d", userSeq),
		ReferredBy:   referredBy,
		Level:        domain.LevelStarter,
	}
	require.NoError(t, db.Create(u).Error)
	w := &models.Wallet{UserID: u.ID, Balance: decimal.RequireFromString(balance), WithdrawalEligible: true}
	require.NoError(t, db.Create(w).Error)
	return u
}

func createPlan(t *testing.T, db *gorm.DB, name, roi string, months int, min string) *models.Plan {
	t.Helper()
	p := &models.Plan{
		Name:               name,
		DailyROIPercentage: decimal.RequireFromString(roi),
		DurationMonths:     months,
		MinInvestment:      decimal.RequireFromString(min),
		IsActive:           true,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func getWallet(t *testing.T, db *gorm.DB, userID uint) *models.Wallet {
	t.Helper()
	w, err := repository.NewWalletRepository(db).GetByUserID(userID)
	require.NoError(t, err)
	return w
}

func setWallet(t *testing.T, db *gorm.DB, userID uint, fields map[string]interface{}) {
	t.Helper()
	require.NoError(t, db.Model(&models.Wallet{}).Where("user_id = ?", userID).Updates(fields).Error)
}

func newInvestmentService(db *gorm.DB) *InvestmentService {
	return NewInvestmentService(db,
		repository.NewWalletRepository(db),
		repository.NewInvestmentRepository(db),
		repository.NewPlanRepository(db))
}

func newReferralService(db *gorm.DB) *ReferralService {
	return NewReferralService(db,
		repository.NewUserRepository(db),
		repository.NewWalletRepository(db),
		repository.NewInvestmentRepository(db),
		repository.NewReferralRepository(db),
		repository.NewTransactionRepository(db))
}

func newApprovalService(db *gorm.DB) *ApprovalService {
	return NewApprovalService(db,
		repository.NewUserRepository(db),
		repository.NewWalletRepository(db),
		repository.NewTransactionRepository(db),
		decimal.RequireFromString("50"),
		decimal.RequireFromString("10"))
}

func newAutomationService(db *gorm.DB) *AutomationService {
	return NewAutomationService(
		repository.NewSettingRepository(db),
		repository.NewWalletRepository(db),
		newInvestmentService(db),
		newReferralService(db))
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
