package repository

import (
	"errors"

	"salon-booking-api/internal/domain/entity"
	domainRepo "salon-booking-api/internal/domain/repository"

	"gorm.io/gorm"
)

type settingsRepository struct{}

func NewSettingsRepository() domainRepo.SettingsRepository {
	return &settingsRepository{}
}

// Get lazily creates the singleton row with defaults on first read
func (r *settingsRepository) Get(db *gorm.DB) (*entity.Settings, error) {
	var settings entity.Settings
	err := db.Where("id = ?", entity.SettingsRowID).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	defaults := entity.DefaultSettings()
	if err := db.Create(defaults).Error; err != nil {
		// Concurrent first read may have created it already
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if ferr := db.Where("id = ?", entity.SettingsRowID).First(&settings).Error; ferr == nil {
				return &settings, nil
			}
		}
		return nil, err
	}
	return defaults, nil
}

func (r *settingsRepository) Save(db *gorm.DB, settings *entity.Settings) error {
	settings.ID = entity.SettingsRowID
	return db.Save(settings).Error
}
