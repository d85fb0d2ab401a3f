package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DateLayout is the calendar-day format used everywhere a date crosses the
// API or the store. ISO dates compare correctly as strings.
const DateLayout = "2006-01-02"

// BookableDate is one calendar day customers can book, with a capacity
// counter maintained by the slot ledger. A date at capacity is kept (not
// deleted) so that a later cancellation has a row to release back into;
// bookability is derived from the counters instead.
type BookableDate struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Date                string    `gorm:"type:varchar(10);uniqueIndex;not null" json:"date"`
	MaxAppointments     int       `gorm:"not null;default:1" json:"max_appointments"`
	CurrentAppointments int       `gorm:"not null;default:0" json:"current_appointments"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BookableDate) TableName() string {
	return "bookable_dates"
}

func (d *BookableDate) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// IsExhausted reports whether the date has reached capacity
func (d *BookableDate) IsExhausted() bool {
	return d.CurrentAppointments >= d.MaxAppointments
}

// RemainingSlots returns how many appointments the date can still take
func (d *BookableDate) RemainingSlots() int {
	remaining := d.MaxAppointments - d.CurrentAppointments
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Today returns the current calendar day in DateLayout (UTC)
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}
