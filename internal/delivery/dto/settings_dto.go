package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request DTOs

type UpdateSettingsRequest struct {
	PaymentRequired          *bool            `json:"payment_required,omitempty"`
	PaymentTimeoutMinutes    *int             `json:"payment_timeout_minutes,omitempty" validate:"omitempty,gte=1,lte=120"`
	DefaultAppointmentStatus *string          `json:"default_appointment_status,omitempty" validate:"omitempty,oneof=pending confirmed"`
	DefaultPrice             *decimal.Decimal `json:"default_price,omitempty"`
}

// Response DTOs

type SettingsResponse struct {
	PaymentRequired          bool            `json:"payment_required"`
	PaymentTimeoutMinutes    int             `json:"payment_timeout_minutes"`
	DefaultAppointmentStatus string          `json:"default_appointment_status"`
	DefaultPrice             decimal.Decimal `json:"default_price"`
	UpdatedAt                time.Time       `json:"updated_at"`
}
