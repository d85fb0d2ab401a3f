package usecase

import (
	"context"
	"errors"
	"time"

	"salon-booking-api/internal/converter"
	"salon-booking-api/internal/delivery/dto"
	"salon-booking-api/internal/delivery/http/middleware"
	"salon-booking-api/internal/domain/entity"
	"salon-booking-api/internal/domain/repository"
	"salon-booking-api/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrDateUnavailable      = errors.New("date is not available for booking")
	ErrStyleNotFound        = errors.New("style not found or inactive")
	ErrPaymentRequired      = errors.New("payment is required to book an appointment")
	ErrNegativeAmount       = errors.New("amount must not be negative")
	ErrDuplicateReference   = errors.New("gateway reference already in use")
	ErrInvalidStatusChange  = errors.New("status change not allowed")
	ErrAppointmentCancelled = errors.New("appointment is cancelled")
)

// ConfirmPaymentParams carries a gateway-confirmed payment into the lifecycle
// manager. Amount and channel come from the gateway, never the client.
type ConfirmPaymentParams struct {
	Reference string
	Amount    decimal.Decimal
	Channel   string
	PaidAt    time.Time
}

type AppointmentUsecase interface {
	// Create books directly (no-payment mode) and consumes the slot immediately.
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	// CreatePending pre-creates a payment-mode appointment carrying the gateway
	// reference. No slot is consumed until the payment is verified.
	CreatePending(ctx context.Context, req *dto.InitializePaymentRequest, reference string) (*entity.Appointment, error)
	// ConfirmWithPayment applies a gateway success exactly once per reference.
	ConfirmWithPayment(ctx context.Context, params ConfirmPaymentParams) (*entity.Appointment, error)
	RecordManualPayment(ctx context.Context, id uuid.UUID, req *dto.RecordPaymentRequest) (*dto.AppointmentResponse, error)
	ChangeStatus(ctx context.Context, id uuid.UUID, newStatus entity.AppointmentStatus) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteByReference is the compensating action after a failed payment
	// initialization; it only removes appointments still pending and unpaid.
	DeleteByReference(ctx context.Context, reference string) error
	GetAll(ctx context.Context) (*dto.AppointmentListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	apptRepo     repository.AppointmentRepository
	styleRepo    repository.StyleRepository
	settingsRepo repository.SettingsRepository
	ledger       *service.SlotLedger
	cache        *service.QueryCache
	auditService service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	apptRepo repository.AppointmentRepository,
	styleRepo repository.StyleRepository,
	settingsRepo repository.SettingsRepository,
	ledger *service.SlotLedger,
	cache *service.QueryCache,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:           db,
		log:          log,
		apptRepo:     apptRepo,
		styleRepo:    styleRepo,
		settingsRepo: settingsRepo,
		ledger:       ledger,
		cache:        cache,
		auditService: auditService,
	}
}

// Create books an appointment in no-payment mode.
//
// Flow:
// 1. Reject when system settings require payment (client must use the payment flow)
// 2. Resolve the style and price
// 3. Reserve the slot atomically (capacity is consumed immediately in this mode)
// 4. Insert the appointment in the same transaction
func (u *appointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	settings, err := u.settingsRepo.Get(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to load settings: %+v", err)
		return nil, err
	}
	if settings.IsPaymentRequired() {
		return nil, ErrPaymentRequired
	}

	style, total, err := u.resolveStyle(ctx, req.Style, settings)
	if err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		StyleValue:    style.Value,
		StyleName:     style.Name,
		Date:          req.Date,
		Status:        settings.DefaultAppointmentStatus,
		TotalAmount:   total,
		AmountPaid:    decimal.Zero,
		PaymentStatus: entity.PaymentStatusUnpaid,
		SlotReserved:  true,
		Note:          req.Note,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.ledger.Reserve(ctx, tx, req.Date); err != nil {
			if errors.Is(err, service.ErrDateNotFound) || errors.Is(err, service.ErrDateExhausted) {
				return ErrDateUnavailable
			}
			return err
		}
		return u.apptRepo.Create(tx, appointment)
	})
	if err != nil {
		if !errors.Is(err, ErrDateUnavailable) {
			u.log.Warnf("Failed to create appointment for %s: %+v", req.Date, err)
		}
		return nil, err
	}

	u.log.Infof("Appointment created: id=%s, date=%s, style=%s", appointment.ID, appointment.Date, appointment.StyleValue)
	u.refreshCaches(ctx)
	return converter.AppointmentToResponse(appointment), nil
}

// CreatePending validates availability without consuming the slot; capacity
// for payment-mode bookings is only taken when the gateway confirms.
func (u *appointmentUsecase) CreatePending(ctx context.Context, req *dto.InitializePaymentRequest, reference string) (*entity.Appointment, error) {
	settings, err := u.settingsRepo.Get(u.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	style, total, err := u.resolveStyle(ctx, req.Style, settings)
	if err != nil {
		return nil, err
	}

	bookable, err := u.ledger.IsBookable(ctx, req.Date)
	if err != nil {
		return nil, err
	}
	if !bookable {
		return nil, ErrDateUnavailable
	}

	appointment := &entity.Appointment{
		CustomerName:     req.CustomerName,
		CustomerEmail:    req.CustomerEmail,
		CustomerPhone:    req.CustomerPhone,
		StyleValue:       style.Value,
		StyleName:        style.Name,
		Date:             req.Date,
		Status:           entity.AppointmentStatusPending,
		TotalAmount:      total,
		AmountPaid:       decimal.Zero,
		PaymentStatus:    entity.PaymentStatusUnpaid,
		GatewayReference: &reference,
		SlotReserved:     false,
		Note:             req.Note,
	}

	if err := u.apptRepo.Create(u.db.WithContext(ctx), appointment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateReference
		}
		u.log.Warnf("Failed to create pending appointment %s: %+v", reference, err)
		return nil, err
	}

	u.refreshCaches(ctx)
	return appointment, nil
}

// ConfirmWithPayment is idempotent per gateway reference. The unique index on
// payment references makes concurrent duplicate verifications collapse into a
// single applied entry, and the transition function keeps the slot from being
// reserved twice.
func (u *appointmentUsecase) ConfirmWithPayment(ctx context.Context, params ConfirmPaymentParams) (*entity.Appointment, error) {
	var confirmed *entity.Appointment

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		appointment, err := u.apptRepo.FindByReference(tx, params.Reference)
		if err != nil {
			return err
		}
		if appointment == nil {
			return ErrAppointmentNotFound
		}

		applied, err := u.apptRepo.PaymentExistsByReference(tx, params.Reference)
		if err != nil {
			return err
		}
		if applied {
			// Repeated verification; everything below already happened
			confirmed = appointment
			return nil
		}

		reference := params.Reference
		payment := &entity.Payment{
			AppointmentID: appointment.ID,
			Amount:        params.Amount,
			Method:        params.Channel,
			Reference:     &reference,
			PaidAt:        params.PaidAt,
		}
		if err := u.apptRepo.CreatePayment(tx, payment); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Lost the race against a concurrent verification: treat as applied
				confirmed = appointment
				return nil
			}
			return err
		}

		if err := u.recomputePaymentTotals(tx, appointment); err != nil {
			return err
		}

		next, effect, err := entity.NextStatus(appointment.Status, entity.EventConfirm, appointment.SlotReserved)
		if err != nil {
			// Gateway success for a cancelled appointment: keep the payment
			// unapplied and surface the conflict for manual follow-up
			return ErrAppointmentCancelled
		}
		appointment.Status = next

		if effect == entity.EffectReserve {
			switch err := u.ledger.Reserve(ctx, tx, appointment.Date); {
			case err == nil:
				appointment.SlotReserved = true
			case errors.Is(err, service.ErrDateExhausted) || errors.Is(err, service.ErrDateNotFound):
				// The customer has paid; confirm anyway and leave the
				// overbooked day to manual reconciliation.
				u.log.Warnf("Confirmed paid appointment %s on unavailable date %s", appointment.ID, appointment.Date)
			default:
				return err
			}
		}

		if err := u.apptRepo.Save(tx, appointment); err != nil {
			return err
		}
		confirmed = appointment
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrAppointmentNotFound) {
			u.log.Warnf("Failed to confirm payment for reference %s: %+v", params.Reference, err)
		}
		return nil, err
	}

	u.log.Infof("Payment confirmed: reference=%s, appointment=%s", params.Reference, confirmed.ID)
	u.refreshCaches(ctx)
	return confirmed, nil
}

// RecordManualPayment is the admin bookkeeping path. With ResetPayment it
// clears the entire history; the confirmation step for that destructive action
// lives in the admin UI, the server only re-checks non-negativity.
func (u *appointmentUsecase) RecordManualPayment(ctx context.Context, id uuid.UUID, req *dto.RecordPaymentRequest) (*dto.AppointmentResponse, error) {
	if req.Amount.IsNegative() {
		return nil, ErrNegativeAmount
	}
	if req.TotalAmount != nil && req.TotalAmount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	userID := actorID(ctx)
	var updated *entity.Appointment

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		appointment, err := u.apptRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if appointment == nil {
			return ErrAppointmentNotFound
		}

		if req.TotalAmount != nil {
			appointment.TotalAmount = *req.TotalAmount
		}

		if req.ResetPayment {
			if err := u.apptRepo.DeletePayments(tx, appointment.ID); err != nil {
				return err
			}
			if err := u.auditService.LogUpdate(ctx, tx, userID, entity.AuditActionPaymentReset,
				"appointment", appointment.ID.String(), appointment.AmountPaid, decimal.Zero); err != nil {
				return err
			}
		} else if req.Amount.IsPositive() {
			method := req.Method
			if method == "" {
				method = "manual"
			}
			payment := &entity.Payment{
				AppointmentID: appointment.ID,
				Amount:        req.Amount,
				Method:        method,
				Note:          req.Note,
				PaidAt:        time.Now().UTC(),
			}
			if err := u.apptRepo.CreatePayment(tx, payment); err != nil {
				return err
			}
			if err := u.auditService.LogUpdate(ctx, tx, userID, entity.AuditActionPaymentRecord,
				"appointment", appointment.ID.String(), nil, req.Amount); err != nil {
				return err
			}
		}

		if err := u.recomputePaymentTotals(tx, appointment); err != nil {
			return err
		}
		if err := u.apptRepo.Save(tx, appointment); err != nil {
			return err
		}
		updated = appointment
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrAppointmentNotFound) {
			u.log.Warnf("Failed to record payment for appointment %s: %+v", id, err)
		}
		return nil, err
	}

	u.refreshCaches(ctx)
	return u.reload(ctx, updated)
}

// ChangeStatus is the admin confirm/cancel path. It goes through the same
// transition function as payment confirmation, so cancelling an appointment
// that holds a slot releases it and confirming a payment-mode pending
// appointment reserves one.
func (u *appointmentUsecase) ChangeStatus(ctx context.Context, id uuid.UUID, newStatus entity.AppointmentStatus) (*dto.AppointmentResponse, error) {
	var event entity.StatusEvent
	switch newStatus {
	case entity.AppointmentStatusConfirmed:
		event = entity.EventConfirm
	case entity.AppointmentStatusCancelled:
		event = entity.EventCancel
	default:
		return nil, ErrInvalidStatusChange
	}

	userID := actorID(ctx)
	var updated *entity.Appointment

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		appointment, err := u.apptRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if appointment == nil {
			return ErrAppointmentNotFound
		}

		if appointment.Status == newStatus {
			updated = appointment
			return nil
		}

		next, effect, err := entity.NextStatus(appointment.Status, event, appointment.SlotReserved)
		if err != nil {
			return ErrInvalidStatusChange
		}

		oldStatus := appointment.Status
		appointment.Status = next

		switch effect {
		case entity.EffectReserve:
			if err := u.ledger.Reserve(ctx, tx, appointment.Date); err != nil {
				if errors.Is(err, service.ErrDateExhausted) || errors.Is(err, service.ErrDateNotFound) {
					return ErrDateUnavailable
				}
				return err
			}
			appointment.SlotReserved = true
		case entity.EffectRelease:
			if err := u.ledger.Release(ctx, tx, appointment.Date); err != nil && !errors.Is(err, service.ErrDateNotFound) {
				return err
			}
			appointment.SlotReserved = false
		}

		if err := u.apptRepo.Save(tx, appointment); err != nil {
			return err
		}

		action := entity.AuditActionAppointmentConfirm
		if newStatus == entity.AppointmentStatusCancelled {
			action = entity.AuditActionAppointmentCancel
		}
		if err := u.auditService.LogUpdate(ctx, tx, userID, action,
			"appointment", appointment.ID.String(), oldStatus, next); err != nil {
			return err
		}

		updated = appointment
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrAppointmentNotFound) && !errors.Is(err, ErrInvalidStatusChange) {
			u.log.Warnf("Failed to change status for appointment %s: %+v", id, err)
		}
		return nil, err
	}

	u.refreshCaches(ctx)
	return u.reload(ctx, updated)
}

// Delete removes an appointment and its payment history. A held slot goes
// back to the ledger unless the appointment was already cancelled.
func (u *appointmentUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	userID := actorID(ctx)

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		appointment, err := u.apptRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if appointment == nil {
			return ErrAppointmentNotFound
		}

		if appointment.SlotReserved && !appointment.IsCancelled() {
			if err := u.ledger.Release(ctx, tx, appointment.Date); err != nil && !errors.Is(err, service.ErrDateNotFound) {
				return err
			}
		}

		if err := u.apptRepo.DeletePayments(tx, appointment.ID); err != nil {
			return err
		}
		if _, err := u.apptRepo.Delete(tx, appointment.ID); err != nil {
			return err
		}

		return u.auditService.LogDelete(ctx, tx, userID, entity.AuditActionAppointmentDelete,
			"appointment", appointment.ID.String(), appointment.Status)
	})
	if err != nil {
		if !errors.Is(err, ErrAppointmentNotFound) {
			u.log.Warnf("Failed to delete appointment %s: %+v", id, err)
		}
		return err
	}

	u.log.Infof("Appointment deleted: id=%s", id)
	u.refreshCaches(ctx)
	return nil
}

// DeleteByReference rolls back the pre-created appointment of a failed payment
// initialization. Only untouched pending appointments qualify.
func (u *appointmentUsecase) DeleteByReference(ctx context.Context, reference string) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		appointment, err := u.apptRepo.FindByReference(tx, reference)
		if err != nil {
			return err
		}
		if appointment == nil {
			return nil
		}
		if !appointment.IsPending() || len(appointment.Payments) > 0 {
			u.log.Warnf("Skipping rollback of appointment %s: no longer an untouched pending booking", appointment.ID)
			return nil
		}
		_, err = u.apptRepo.Delete(tx, appointment.ID)
		return err
	})
}

func (u *appointmentUsecase) GetAll(ctx context.Context) (*dto.AppointmentListResponse, error) {
	value, err := u.cache.Get(service.CacheKeyAppointments, false, func() (interface{}, error) {
		return u.apptRepo.FindAll(u.db.WithContext(ctx))
	})
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	appointments := value.([]entity.Appointment)
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.apptRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return converter.AppointmentToResponse(appointment), nil
}

// recomputePaymentTotals re-derives amount_paid and payment_status from the
// payment history inside the caller's transaction. AmountPaid is never set
// directly anywhere else.
func (u *appointmentUsecase) recomputePaymentTotals(tx *gorm.DB, appointment *entity.Appointment) error {
	payments, err := u.apptRepo.FindPayments(tx, appointment.ID)
	if err != nil {
		return err
	}
	appointment.AmountPaid = entity.SumPayments(payments)
	appointment.PaymentStatus = entity.ComputePaymentStatus(appointment.TotalAmount, appointment.AmountPaid)
	appointment.Payments = payments
	return nil
}

func (u *appointmentUsecase) resolveStyle(ctx context.Context, value string, settings *entity.Settings) (*entity.Style, decimal.Decimal, error) {
	style, err := u.styleRepo.FindByValue(u.db.WithContext(ctx), value)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if style == nil || style.IsActive == nil || !*style.IsActive {
		return nil, decimal.Zero, ErrStyleNotFound
	}
	total := settings.DefaultPrice
	if style.Price != nil {
		total = *style.Price
	}
	return style, total, nil
}

// refreshCaches re-runs the list queries readers use so they never observe
// data older than the write that just happened.
func (u *appointmentUsecase) refreshCaches(ctx context.Context) {
	if _, err := u.cache.Get(service.CacheKeyAppointments, true, func() (interface{}, error) {
		return u.apptRepo.FindAll(u.db.WithContext(ctx))
	}); err != nil {
		u.log.Warnf("Failed to refresh appointment cache: %+v", err)
	}
	if _, err := u.cache.Get(service.CacheKeyBookableDates, true, func() (interface{}, error) {
		return u.ledger.ListBookable(ctx)
	}); err != nil {
		u.log.Warnf("Failed to refresh bookable dates cache: %+v", err)
	}
	if _, err := u.cache.Get(service.CacheKeyAllDates, true, func() (interface{}, error) {
		return u.ledger.ListAll(ctx)
	}); err != nil {
		u.log.Warnf("Failed to refresh dates cache: %+v", err)
	}
}

func (u *appointmentUsecase) reload(ctx context.Context, appointment *entity.Appointment) (*dto.AppointmentResponse, error) {
	full, err := u.apptRepo.FindByID(u.db.WithContext(ctx), appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}
	return converter.AppointmentToResponse(full), nil
}

// actorID pulls the acting admin out of the request context when present
func actorID(ctx context.Context) *uuid.UUID {
	if id, ok := middleware.GetUserIDFromContext(ctx); ok {
		return &id
	}
	return nil
}
