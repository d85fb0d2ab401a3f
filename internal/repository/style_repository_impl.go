package repository

import (
	"errors"

	"salon-booking-api/internal/domain/entity"
	domainRepo "salon-booking-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type styleRepository struct{}

func NewStyleRepository() domainRepo.StyleRepository {
	return &styleRepository{}
}

func (r *styleRepository) Create(db *gorm.DB, style *entity.Style) error {
	return db.Create(style).Error
}

func (r *styleRepository) Update(db *gorm.DB, style *entity.Style) error {
	return db.Save(style).Error
}

func (r *styleRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Style, error) {
	var style entity.Style
	err := db.Where("id = ?", id).First(&style).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &style, nil
}

func (r *styleRepository) FindByValue(db *gorm.DB, value string) (*entity.Style, error) {
	var style entity.Style
	err := db.Where("value = ?", value).First(&style).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &style, nil
}

func (r *styleRepository) FindAll(db *gorm.DB, activeOnly bool) ([]entity.Style, error) {
	var styles []entity.Style
	query := db.Order("category ASC, name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&styles).Error; err != nil {
		return nil, err
	}
	return styles, nil
}

func (r *styleRepository) CountByCategory(db *gorm.DB, category string) (int64, error) {
	var count int64
	err := db.Model(&entity.Style{}).Where("category = ?", category).Count(&count).Error
	return count, err
}

func (r *styleRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Style{})
	return result.RowsAffected, result.Error
}

type styleCategoryRepository struct{}

func NewStyleCategoryRepository() domainRepo.StyleCategoryRepository {
	return &styleCategoryRepository{}
}

func (r *styleCategoryRepository) Create(db *gorm.DB, category *entity.StyleCategory) error {
	return db.Create(category).Error
}

func (r *styleCategoryRepository) Update(db *gorm.DB, category *entity.StyleCategory) error {
	return db.Save(category).Error
}

func (r *styleCategoryRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.StyleCategory, error) {
	var category entity.StyleCategory
	err := db.Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *styleCategoryRepository) FindByName(db *gorm.DB, name string) (*entity.StyleCategory, error) {
	var category entity.StyleCategory
	err := db.Where("name = ?", name).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *styleCategoryRepository) FindAll(db *gorm.DB, activeOnly bool) ([]entity.StyleCategory, error) {
	var categories []entity.StyleCategory
	query := db.Order("sort_order ASC, name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *styleCategoryRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.StyleCategory{})
	return result.RowsAffected, result.Error
}
