package repository

import (
	"salon-booking-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StyleRepository interface {
	Create(db *gorm.DB, style *entity.Style) error
	Update(db *gorm.DB, style *entity.Style) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Style, error)
	FindByValue(db *gorm.DB, value string) (*entity.Style, error)
	FindAll(db *gorm.DB, activeOnly bool) ([]entity.Style, error)
	CountByCategory(db *gorm.DB, category string) (int64, error)
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}

type StyleCategoryRepository interface {
	Create(db *gorm.DB, category *entity.StyleCategory) error
	Update(db *gorm.DB, category *entity.StyleCategory) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.StyleCategory, error)
	FindByName(db *gorm.DB, name string) (*entity.StyleCategory, error)
	FindAll(db *gorm.DB, activeOnly bool) ([]entity.StyleCategory, error)
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
