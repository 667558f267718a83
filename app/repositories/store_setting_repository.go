package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ashrith-07/campus-bites-sub000/app/models"
)

// StoreSettingRepository handles database operations for StoreSetting.
type StoreSettingRepository struct {
	db *gorm.DB
}

func NewStoreSettingRepository(db *gorm.DB) *StoreSettingRepository {
	return &StoreSettingRepository{db: db}
}

// FindByKey looks up a setting row.
func (r *StoreSettingRepository) FindByKey(key string) (models.StoreSetting, error) {
	var setting models.StoreSetting
	err := r.db.Where("key = ?", key).First(&setting).Error
	return setting, err
}

// Create persists a new setting row.
func (r *StoreSettingRepository) Create(setting *models.StoreSetting) error {
	return r.db.Create(setting).Error
}

// Upsert writes the value for key, inserting the row if missing.
func (r *StoreSettingRepository) Upsert(key, value string) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&models.StoreSetting{Key: key, Value: value}).Error
}
