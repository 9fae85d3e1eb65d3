package database

import (
	"log"

	"credon/config"
	"credon/internal/domain"
	"credon/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Wallet{},
		&models.Plan{},
		&models.Investment{},
		&models.RoiAccrual{},
		&models.Transaction{},
		&models.ReferralBonus{},
		&models.Notice{},
		&models.SupportTicket{},
		&models.Page{},
		&models.PageDocument{},
		&models.PlatformSetting{},
	)
}

// SeedAdmin creates the admin account (with its wallet) if missing.
func SeedAdmin(db *gorm.DB, cfg *config.PlatformConfig) {
	var count int64
	db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[Seed] admin password hash failed: %v", err)
		return
	}
	admin := &models.User{
		FullName:     "Administrator",
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		ReferralCode: "ADMIN000",
	}
	if err := db.Create(admin).Error; err != nil {
		log.Printf("[Seed] admin create failed: %v", err)
		return
	}
	db.Create(&models.Wallet{UserID: admin.ID})
	log.Printf("[Seed] admin account created: %s", cfg.AdminEmail)
}

// SeedPlans inserts the six fixed-term plans on an empty plans table.
func SeedPlans(db *gorm.DB) {
	var count int64
	db.Model(&models.Plan{}).Count(&count)
	if count > 0 {
		return
	}
	plans := []models.Plan{
		{Name: "Bronze", DailyROIPercentage: decimal.NewFromFloat(0.4), DurationMonths: 3, MinInvestment: decimal.NewFromInt(100)},
		{Name: "Silver", DailyROIPercentage: decimal.NewFromFloat(0.6), DurationMonths: 6, MinInvestment: decimal.NewFromInt(500)},
		{Name: "Gold", DailyROIPercentage: decimal.NewFromFloat(0.8), DurationMonths: 12, MinInvestment: decimal.NewFromInt(1000)},
		{Name: "Platinum", DailyROIPercentage: decimal.NewFromFloat(1.0), DurationMonths: 18, MinInvestment: decimal.NewFromInt(2500)},
		{Name: "Diamond", DailyROIPercentage: decimal.NewFromFloat(1.5), DurationMonths: 24, MinInvestment: decimal.NewFromInt(5000)},
		{Name: "Elite", DailyROIPercentage: decimal.NewFromFloat(2.0), DurationMonths: 36, MinInvestment: decimal.NewFromInt(10000)},
	}
	if err := db.Create(&plans).Error; err != nil {
		log.Printf("[Seed] plans create failed: %v", err)
		return
	}
	log.Printf("[Seed] %d investment plans created", len(plans))
}
