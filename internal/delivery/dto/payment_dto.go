package dto

// Request DTOs

type InitializePaymentRequest struct {
	CustomerName  string `json:"customer_name" validate:"required,min=2,max=255"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	CustomerPhone string `json:"customer_phone" validate:"omitempty,max=50"`
	Style         string `json:"style" validate:"required,max=100"`
	Date          string `json:"date" validate:"required,len=10"`
	Note          string `json:"note" validate:"omitempty,max=2000"`
}

// Response DTOs

type InitializePaymentResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	Reference        string `json:"reference"`
	TimeoutMinutes   int    `json:"timeout_minutes"`
}

// Verification outcomes returned to the polling client
const (
	VerifyOutcomeConfirmed = "confirmed"
	VerifyOutcomePending   = "pending"
	VerifyOutcomeFailed    = "failed"
)

type VerifyPaymentResponse struct {
	Status      string               `json:"status"`
	Reference   string               `json:"reference"`
	Appointment *AppointmentResponse `json:"appointment,omitempty"`
}
