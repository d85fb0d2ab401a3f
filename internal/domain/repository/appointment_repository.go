package repository

import (
	"salon-booking-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	Save(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByReference(db *gorm.DB, reference string) (*entity.Appointment, error)
	FindAll(db *gorm.DB) ([]entity.Appointment, error)
	CountActiveByDate(db *gorm.DB, date string) (int64, error)
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)

	CreatePayment(db *gorm.DB, payment *entity.Payment) error
	FindPayments(db *gorm.DB, appointmentID uuid.UUID) ([]entity.Payment, error)
	PaymentExistsByReference(db *gorm.DB, reference string) (bool, error)
	DeletePayments(db *gorm.DB, appointmentID uuid.UUID) error
}
