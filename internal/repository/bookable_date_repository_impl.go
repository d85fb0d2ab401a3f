package repository

import (
	"errors"

	"salon-booking-api/internal/domain/entity"
	domainRepo "salon-booking-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type bookableDateRepository struct{}

func NewBookableDateRepository() domainRepo.BookableDateRepository {
	return &bookableDateRepository{}
}

// Upsert overwrites max_appointments when the calendar day already exists.
// The current counter is left alone so existing bookings keep counting.
func (r *bookableDateRepository) Upsert(db *gorm.DB, date *entity.BookableDate) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"max_appointments", "updated_at"}),
	}).Create(date).Error
}

func (r *bookableDateRepository) FindByDate(db *gorm.DB, date string) (*entity.BookableDate, error) {
	var bd entity.BookableDate
	err := db.Where("date = ?", date).First(&bd).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bd, nil
}

func (r *bookableDateRepository) FindBookable(db *gorm.DB, from string) ([]entity.BookableDate, error) {
	var dates []entity.BookableDate
	err := db.Where("date >= ? AND current_appointments < max_appointments", from).
		Order("date ASC").
		Find(&dates).Error
	if err != nil {
		return nil, err
	}
	return dates, nil
}

func (r *bookableDateRepository) FindAll(db *gorm.DB) ([]entity.BookableDate, error) {
	var dates []entity.BookableDate
	err := db.Order("date ASC").Find(&dates).Error
	if err != nil {
		return nil, err
	}
	return dates, nil
}

// ReserveSlot performs the increment and the capacity check as one server-side
// conditional update, so two concurrent reservations of the last slot cannot
// both succeed. Returns affected rows: 1 = reserved, 0 = exhausted or missing.
func (r *bookableDateRepository) ReserveSlot(db *gorm.DB, date string) (int64, error) {
	result := db.Model(&entity.BookableDate{}).
		Where("date = ? AND current_appointments < max_appointments", date).
		UpdateColumn("current_appointments", gorm.Expr("current_appointments + 1"))
	return result.RowsAffected, result.Error
}

// ReleaseSlot decrements the counter, guarded at zero server-side.
func (r *bookableDateRepository) ReleaseSlot(db *gorm.DB, date string) (int64, error) {
	result := db.Model(&entity.BookableDate{}).
		Where("date = ? AND current_appointments > 0", date).
		UpdateColumn("current_appointments", gorm.Expr("current_appointments - 1"))
	return result.RowsAffected, result.Error
}

func (r *bookableDateRepository) SetCurrent(db *gorm.DB, date string, current int) error {
	return db.Model(&entity.BookableDate{}).
		Where("date = ?", date).
		UpdateColumn("current_appointments", current).Error
}

func (r *bookableDateRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.BookableDate{})
	return result.RowsAffected, result.Error
}

func (r *bookableDateRepository) DeleteBefore(db *gorm.DB, date string) (int64, error) {
	result := db.Where("date < ?", date).Delete(&entity.BookableDate{})
	return result.RowsAffected, result.Error
}
