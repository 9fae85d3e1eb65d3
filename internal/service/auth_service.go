package service

import (
	"errors"
	"strings"

	"credon/config"
	"credon/internal/auth"
	"credon/internal/domain"
	"credon/internal/models"
	"credon/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailExists     = errors.New("email already registered")
	ErrInvalidCreds    = errors.New("invalid email or password")
	ErrInvalidReferral = errors.New("invalid referral code")
)

type AuthService struct {
	cfg        *config.Config
	db         *gorm.DB
	userRepo   *repository.UserRepository
	walletRepo *repository.WalletRepository
}

func NewAuthService(cfg *config.Config, db *gorm.DB, userRepo *repository.UserRepository, walletRepo *repository.WalletRepository) *AuthService {
	return &AuthService{cfg: cfg, db: db, userRepo: userRepo, walletRepo: walletRepo}
}

// Register creates a user plus wallet and returns a signed token. An optional
// referral code links the new user into the referrer's downline; the link is
// set exactly once here and never changes, so referral chains cannot loop.
func (s *AuthService) Register(fullName, email, password, referralCode string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	_, err := s.userRepo.GetByEmail(email)
	if err == nil {
		return nil, "", ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	var referredBy *uint
	if referralCode != "" {
		ref, err := s.userRepo.GetByReferralCode(strings.ToUpper(strings.TrimSpace(referralCode)))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, "", ErrInvalidReferral
			}
			return nil, "", err
		}
		referredBy = &ref.ID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	u := &models.User{
		FullName:     strings.TrimSpace(fullName),
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		ReferralCode: newReferralCode(),
		ReferredBy:   referredBy,
		Level:        domain.LevelStarter,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).Create(u); err != nil {
			return err
		}
		return tx.Create(&models.Wallet{UserID: u.ID}).Error
	})
	if err != nil {
		return nil, "", err
	}
	token, err := auth.GenerateToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	u, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCreds
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCreds
	}
	token, err := auth.GenerateToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// AdminLogin is Login restricted to the ADMIN role.
func (s *AuthService) AdminLogin(email, password string) (*models.User, string, error) {
	u, token, err := s.Login(email, password)
	if err != nil {
		return nil, "", err
	}
	if u.Role != domain.RoleAdmin {
		return nil, "", ErrInvalidCreds
	}
	return u, token, nil
}

// ValidateReferral resolves a referral code to its owner's display name.
func (s *AuthService) ValidateReferral(code string) (*models.User, error) {
	u, err := s.userRepo.GetByReferralCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidReferral
		}
		return nil, err
	}
	return u, nil
}

func newReferralCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}
