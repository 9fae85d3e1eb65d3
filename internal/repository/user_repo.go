package repository

import (
	"strings"

	"credon/internal/domain"
	"credon/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{db: tx}
}

func (r *UserRepository) Create(u *models.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("email = ?", strings.ToLower(email)).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByReferralCode(code string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("referral_code = ?", code).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Update(u *models.User) error {
	return r.db.Save(u).Error
}

func (r *UserRepository) Delete(id uint) error {
	return r.db.Delete(&models.User{}, id).Error
}

// List returns non-admin users, newest first, optionally filtered by a search
// term matched against name and email.
func (r *UserRepository) List(search string) ([]models.User, error) {
	q := r.db.Where("role <> ?", domain.RoleAdmin).Order("created_at DESC")
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("full_name LIKE ? OR email LIKE ?", like, like)
	}
	var users []models.User
	err := q.Find(&users).Error
	return users, err
}

func (r *UserRepository) CountUsers() (int64, error) {
	var n int64
	err := r.db.Model(&models.User{}).Where("role <> ?", domain.RoleAdmin).Count(&n).Error
	return n, err
}

// ConfirmReferral bumps the referrer's confirmed count and recomputes the
// derived level in one statement pair. Called when a referred user's first
// deposit is approved.
func (r *UserRepository) ConfirmReferral(referrerID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var u models.User
		if err := tx.First(&u, referrerID).Error; err != nil {
			return err
		}
		u.ConfirmedReferrals++
		u.Level = domain.LevelForReferrals(u.ConfirmedReferrals)
		return tx.Model(&u).Updates(map[string]interface{}{
			"confirmed_referrals": u.ConfirmedReferrals,
			"level":               u.Level,
		}).Error
	})
}

// CountDirectReferrals counts users whose referred_by points at userID.
func (r *UserRepository) CountDirectReferrals(userID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.User{}).Where("referred_by = ?", userID).Count(&n).Error
	return n, err
}

// ListDirectReferrals returns the users referred by userID, newest first.
func (r *UserRepository) ListDirectReferrals(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("referred_by = ?", userID).Order("created_at DESC").Find(&users).Error
	return users, err
}
