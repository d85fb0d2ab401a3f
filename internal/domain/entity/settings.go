package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings is the singleton configuration row, created lazily with defaults
// on first read.
type Settings struct {
	ID                       int               `gorm:"primaryKey" json:"id"`
	PaymentRequired          *bool             `gorm:"not null;default:true" json:"payment_required"`
	PaymentTimeoutMinutes    int               `gorm:"not null;default:10" json:"payment_timeout_minutes"`
	DefaultAppointmentStatus AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"default_appointment_status"`
	DefaultPrice             decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"default_price"`
	UpdatedAt                time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Settings) TableName() string {
	return "settings"
}

// SettingsRowID pins the singleton primary key
const SettingsRowID = 1

// DefaultSettings returns the values the lazy first read seeds
func DefaultSettings() *Settings {
	required := true
	return &Settings{
		ID:                       SettingsRowID,
		PaymentRequired:          &required,
		PaymentTimeoutMinutes:    10,
		DefaultAppointmentStatus: AppointmentStatusPending,
		DefaultPrice:             decimal.Zero,
	}
}

// IsPaymentRequired reports whether bookings must go through the payment flow
func (s *Settings) IsPaymentRequired() bool {
	return s.PaymentRequired != nil && *s.PaymentRequired
}
