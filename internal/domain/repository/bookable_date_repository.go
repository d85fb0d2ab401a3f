package repository

import (
	"salon-booking-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookableDateRepository interface {
	// Upsert creates the date or, when the calendar day already exists,
	// overwrites its capacity (not summed).
	Upsert(db *gorm.DB, date *entity.BookableDate) error
	FindByDate(db *gorm.DB, date string) (*entity.BookableDate, error)
	FindBookable(db *gorm.DB, from string) ([]entity.BookableDate, error)
	FindAll(db *gorm.DB) ([]entity.BookableDate, error)

	// ReserveSlot atomically increments the counter, guarded server-side by
	// current < max. Returns affected rows: 1 = reserved, 0 = exhausted or
	// no such date.
	ReserveSlot(db *gorm.DB, date string) (int64, error)
	// ReleaseSlot atomically decrements the counter, floored at zero.
	ReleaseSlot(db *gorm.DB, date string) (int64, error)
	// SetCurrent overwrites the counter, used by reconciliation only.
	SetCurrent(db *gorm.DB, date string, current int) error

	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
	DeleteBefore(db *gorm.DB, date string) (int64, error)
}
