package repository

import (
	"credon/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

func (r *SettingRepository) Get(key string) (string, error) {
	var s models.PlatformSetting
	if err := r.db.Where("`key` = ?", key).First(&s).Error; err != nil {
		return "", err
	}
	return s.Value, nil
}

func (r *SettingRepository) GetRow(key string) (*models.PlatformSetting, error) {
	var s models.PlatformSetting
	if err := r.db.Where("`key` = ?", key).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SettingRepository) Set(key, value, updatedBy string) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_by", "updated_at"}),
	}).Create(&models.PlatformSetting{Key: key, Value: value, UpdatedBy: updatedBy}).Error
}

// ToggleFlag flips a boolean setting in a single UPDATE so concurrent
// toggles cannot read the same old value. A missing row counts as "true",
// so the first toggle writes "false". Returns the stored value.
func (r *SettingRepository) ToggleFlag(key, updatedBy string) (string, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.PlatformSetting{}).
			Where("`key` = ?", key).
			Updates(map[string]interface{}{
				"value":      gorm.Expr("CASE WHEN value = 'false' THEN 'true' ELSE 'false' END"),
				"updated_by": updatedBy,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return tx.Create(&models.PlatformSetting{Key: key, Value: "false", UpdatedBy: updatedBy}).Error
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return r.Get(key)
}

func (r *SettingRepository) GetAll() ([]models.PlatformSetting, error) {
	var list []models.PlatformSetting
	err := r.db.Order("`key` ASC").Find(&list).Error
	return list, err
}

// SeedDefaults inserts default settings if they don't already exist.
func (r *SettingRepository) SeedDefaults(defaults map[string]string) error {
	for k, v := range defaults {
		var count int64
		r.db.Model(&models.PlatformSetting{}).Where("`key` = ?", k).Count(&count)
		if count == 0 {
			if err := r.db.Create(&models.PlatformSetting{Key: k, Value: v, UpdatedBy: "system"}).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
