package repository

import (
	"errors"

	"salon-booking-api/internal/domain/entity"
	domainRepo "salon-booking-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) Save(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Payments").Save(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Payments", func(db *gorm.DB) *gorm.DB {
		return db.Order("paid_at ASC")
	}).Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByReference(db *gorm.DB, reference string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Payments", func(db *gorm.DB) *gorm.DB {
		return db.Order("paid_at ASC")
	}).Where("gateway_reference = ?", reference).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Payments", func(db *gorm.DB) *gorm.DB {
		return db.Order("paid_at ASC")
	}).Order("date ASC, created_at ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) CountActiveByDate(db *gorm.DB, date string) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).
		Where("date = ? AND status != ? AND slot_reserved = ?", date, entity.AppointmentStatusCancelled, true).
		Count(&count).Error
	return count, err
}

func (r *appointmentRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) CreatePayment(db *gorm.DB, payment *entity.Payment) error {
	return db.Create(payment).Error
}

func (r *appointmentRepository) FindPayments(db *gorm.DB, appointmentID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := db.Where("appointment_id = ?", appointmentID).Order("paid_at ASC").Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *appointmentRepository) PaymentExistsByReference(db *gorm.DB, reference string) (bool, error) {
	var count int64
	err := db.Model(&entity.Payment{}).Where("reference = ?", reference).Count(&count).Error
	return count > 0, err
}

func (r *appointmentRepository) DeletePayments(db *gorm.DB, appointmentID uuid.UUID) error {
	return db.Where("appointment_id = ?", appointmentID).Delete(&entity.Payment{}).Error
}
