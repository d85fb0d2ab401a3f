package repository

import (
	"salon-booking-api/internal/domain/entity"

	"gorm.io/gorm"
)

type SettingsRepository interface {
	// Get returns the singleton row, creating it with defaults when absent.
	Get(db *gorm.DB) (*entity.Settings, error)
	Save(db *gorm.DB, settings *entity.Settings) error
}
