package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Cloudinary CloudinaryConfig
	Platform   PlatformConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
	Issuer string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// PlatformConfig holds product-level defaults seeded into platform settings on
// first boot plus a few knobs the handlers read directly.
type PlatformConfig struct {
	DepositAddress string // default BEP-20 deposit address shown to users
	MinDeposit     string // decimal string
	MinWithdrawal  string // decimal string
	AdminEmail     string // seeded admin account
	AdminPassword  string // seeded admin account
	SchedulerTZ    string // cron timezone; published schedule is UTC
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8090"),
			Env:          getEnv("APP_ENV", "development"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             getEnv("DATABASE_DSN", "credon:credon@tcp(localhost:3306)/credon?charset=utf8mb4&parseTime=True&loc=UTC"),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "change-me-in-production"),
			Expiry: 24 * time.Hour,
			Issuer: "credon",
		},
		Cloudinary: CloudinaryConfig{
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		},
		Platform: PlatformConfig{
			DepositAddress: getEnv("DEPOSIT_ADDRESS", ""),
			MinDeposit:     getEnv("MIN_DEPOSIT", "50"),
			MinWithdrawal:  getEnv("MIN_WITHDRAWAL", "10"),
			AdminEmail:     getEnv("ADMIN_EMAIL", "admin@credon.io"),
			AdminPassword:  getEnv("ADMIN_PASSWORD", "admin12345"),
			SchedulerTZ:    getEnv("SCHEDULER_TZ", "UTC"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
