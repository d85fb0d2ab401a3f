package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// PaymentStatus is derived from AmountPaid vs TotalAmount, never set directly
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusFull    PaymentStatus = "full"
)

// Appointment represents a customer booking for a styling session.
// The style reference is denormalized (value + name captured at booking time),
// not a foreign key, so catalog edits never rewrite history.
type Appointment struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerName  string            `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerEmail string            `gorm:"type:varchar(255);not null" json:"customer_email"`
	CustomerPhone string            `gorm:"type:varchar(50)" json:"customer_phone"`
	StyleValue    string            `gorm:"type:varchar(100);not null;index" json:"style_value"`
	StyleName     string            `gorm:"type:varchar(255)" json:"style_name"`
	Date          string            `gorm:"type:varchar(10);not null;index" json:"date"`
	Status        AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	TotalAmount   decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	AmountPaid    decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"amount_paid"`
	PaymentStatus PaymentStatus     `gorm:"type:varchar(20);not null;default:'unpaid'" json:"payment_status"`

	// GatewayReference is the unique lookup key handed to the payment gateway.
	// Nil for appointments booked without the payment flow.
	GatewayReference *string `gorm:"type:varchar(100);uniqueIndex" json:"gateway_reference,omitempty"`

	// SlotReserved tracks whether this appointment currently holds a slot in
	// the ledger. Direct bookings consume a slot at creation; payment-mode
	// bookings only consume one when the gateway confirms.
	SlotReserved bool `gorm:"not null;default:false" json:"-"`

	Note      string    `gorm:"type:text" json:"note,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Payments []Payment `gorm:"foreignKey:AppointmentID" json:"payments,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// IsPending checks if the appointment is in pending status
func (a *Appointment) IsPending() bool {
	return a.Status == AppointmentStatusPending
}

// IsConfirmed checks if the appointment is confirmed
func (a *Appointment) IsConfirmed() bool {
	return a.Status == AppointmentStatusConfirmed
}

// IsCancelled checks if the appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// ComputePaymentStatus derives the payment status from paid vs total.
// 0 -> unpaid, 0 < paid < total -> partial, paid >= total -> full.
// A zero-priced appointment with no payments stays unpaid.
func ComputePaymentStatus(total, paid decimal.Decimal) PaymentStatus {
	if paid.LessThanOrEqual(decimal.Zero) {
		return PaymentStatusUnpaid
	}
	if paid.LessThan(total) {
		return PaymentStatusPartial
	}
	return PaymentStatusFull
}

// SumPayments returns the total of all history entries. AmountPaid must always
// equal this sum; callers recompute it after every payment mutation.
func SumPayments(payments []Payment) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		sum = sum.Add(p.Amount)
	}
	return sum
}

// Payment is one entry in an appointment's payment history. AmountPaid on the
// appointment is always recomputed as the sum of these rows.
type Payment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	AppointmentID uuid.UUID       `gorm:"type:uuid;not null;index" json:"appointment_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Method        string          `gorm:"type:varchar(50);not null" json:"method"`

	// Reference is set for gateway payments and unique across all entries,
	// which makes repeated verification calls append at most once.
	Reference *string `gorm:"type:varchar(100);uniqueIndex" json:"reference,omitempty"`

	Note      string    `gorm:"type:text" json:"note,omitempty"`
	PaidAt    time.Time `gorm:"not null" json:"paid_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Payment) TableName() string {
	return "payments"
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
