package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateAppointmentRequest struct {
	CustomerName  string `json:"customer_name" validate:"required,min=2,max=255"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	CustomerPhone string `json:"customer_phone" validate:"omitempty,max=50"`
	Style         string `json:"style" validate:"required,max=100"`
	Date          string `json:"date" validate:"required,len=10"`
	Note          string `json:"note" validate:"omitempty,max=2000"`
}

type RecordPaymentRequest struct {
	Amount       decimal.Decimal  `json:"amount"`
	Method       string           `json:"method" validate:"omitempty,max=50"`
	Note         string           `json:"note" validate:"omitempty,max=2000"`
	TotalAmount  *decimal.Decimal `json:"total_amount,omitempty"`
	ResetPayment bool             `json:"reset_payment"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed cancelled"`
}

// Response DTOs

type PaymentEntryResponse struct {
	ID        uuid.UUID       `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference,omitempty"`
	Note      string          `json:"note,omitempty"`
	PaidAt    time.Time       `json:"paid_at"`
}

type AppointmentResponse struct {
	ID               uuid.UUID              `json:"id"`
	CustomerName     string                 `json:"customer_name"`
	CustomerEmail    string                 `json:"customer_email"`
	CustomerPhone    string                 `json:"customer_phone,omitempty"`
	Style            string                 `json:"style"`
	StyleName        string                 `json:"style_name,omitempty"`
	Date             string                 `json:"date"`
	Status           string                 `json:"status"`
	TotalAmount      decimal.Decimal        `json:"total_amount"`
	AmountPaid       decimal.Decimal        `json:"amount_paid"`
	PaymentStatus    string                 `json:"payment_status"`
	GatewayReference string                 `json:"gateway_reference,omitempty"`
	Note             string                 `json:"note,omitempty"`
	Payments         []PaymentEntryResponse `json:"payments"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
