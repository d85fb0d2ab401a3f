package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salon-booking-api/internal/converter"
	"salon-booking-api/internal/delivery/dto"
	"salon-booking-api/internal/domain/repository"
	"salon-booking-api/internal/integrations/paystack"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	// ErrGatewayUnavailable means the gateway could not be reached; the caller
	// may retry the verification.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	// ErrGatewayRejected means the gateway refused the request; terminal.
	ErrGatewayRejected = errors.New("payment gateway rejected request")
)

// referencePrefix namespaces gateway references issued by this service
const referencePrefix = "SALON"

// PaymentGateway is the outbound contract to the payment provider
type PaymentGateway interface {
	InitializeTransaction(ctx context.Context, req *paystack.InitializeRequest) (*paystack.InitializeResponse, error)
	VerifyTransaction(ctx context.Context, reference string) (*paystack.VerifyData, error)
}

type PaymentUsecase interface {
	Initialize(ctx context.Context, req *dto.InitializePaymentRequest) (*dto.InitializePaymentResponse, error)
	Verify(ctx context.Context, reference string) (*dto.VerifyPaymentResponse, error)
}

type paymentUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	gateway      PaymentGateway
	apptUsecase  AppointmentUsecase
	apptRepo     repository.AppointmentRepository
	settingsRepo repository.SettingsRepository
	callbackURL  string
}

func NewPaymentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	gateway PaymentGateway,
	apptUsecase AppointmentUsecase,
	apptRepo repository.AppointmentRepository,
	settingsRepo repository.SettingsRepository,
	callbackURL string,
) PaymentUsecase {
	return &paymentUsecase{
		db:           db,
		log:          log,
		gateway:      gateway,
		apptUsecase:  apptUsecase,
		apptRepo:     apptRepo,
		settingsRepo: settingsRepo,
		callbackURL:  callbackURL,
	}
}

// Initialize runs phase one of the payment flow.
//
// Flow:
// 1. Generate a globally-unique gateway reference
// 2. Pre-create the pending appointment carrying that reference
// 3. Request a checkout session from the gateway
// 4. If the gateway call fails -> delete the pending appointment (compensate)
//    so no orphaned booking lingers against the calendar
func (p *paymentUsecase) Initialize(ctx context.Context, req *dto.InitializePaymentRequest) (*dto.InitializePaymentResponse, error) {
	settings, err := p.settingsRepo.Get(p.db.WithContext(ctx))
	if err != nil {
		p.log.Warnf("Failed to load settings: %+v", err)
		return nil, err
	}

	reference := newReference()

	appointment, err := p.apptUsecase.CreatePending(ctx, req, reference)
	if err != nil {
		return nil, err
	}

	session, err := p.gateway.InitializeTransaction(ctx, &paystack.InitializeRequest{
		Email:       req.CustomerEmail,
		Amount:      toSubunits(appointment.TotalAmount),
		Reference:   reference,
		CallbackURL: p.callbackURL,
		Metadata: map[string]string{
			"appointment_id": appointment.ID.String(),
			"style":          appointment.StyleValue,
			"date":           appointment.Date,
		},
	})
	if err != nil {
		p.log.Errorf("Gateway initialize failed for %s, rolling back pending appointment: %+v", reference, err)

		// Compensate with a fresh timeout so rollback survives a dead request context
		rollbackCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if rbErr := p.apptUsecase.DeleteByReference(rollbackCtx, reference); rbErr != nil {
			p.log.Errorf("CRITICAL: Failed to roll back pending appointment %s: %+v", reference, rbErr)
		}

		if errors.Is(err, paystack.ErrUnavailable) {
			return nil, ErrGatewayUnavailable
		}
		return nil, ErrGatewayRejected
	}

	p.log.Infof("Payment initialized: reference=%s, appointment=%s", reference, appointment.ID)
	return &dto.InitializePaymentResponse{
		AuthorizationURL: session.AuthorizationURL,
		Reference:        reference,
		TimeoutMinutes:   settings.PaymentTimeoutMinutes,
	}, nil
}

// Verify runs phase two. It is safe to call any number of times for the same
// reference: the client polls it until success, failure, or its timeout. A
// success observed after the client stopped polling still confirms durably.
func (p *paymentUsecase) Verify(ctx context.Context, reference string) (*dto.VerifyPaymentResponse, error) {
	appointment, err := p.apptRepo.FindByReference(p.db.WithContext(ctx), reference)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		// Expected while polling races initialization, or after a rollback
		return nil, ErrAppointmentNotFound
	}

	data, err := p.gateway.VerifyTransaction(ctx, reference)
	if err != nil {
		if errors.Is(err, paystack.ErrUnavailable) {
			p.log.Warnf("Gateway unreachable verifying %s: %+v", reference, err)
			return nil, ErrGatewayUnavailable
		}
		if errors.Is(err, paystack.ErrTransactionNotFound) {
			return nil, ErrAppointmentNotFound
		}
		p.log.Warnf("Gateway rejected verification of %s: %+v", reference, err)
		return nil, ErrGatewayRejected
	}

	switch data.Status {
	case paystack.TransactionSuccess:
		paidAt := time.Now().UTC()
		if data.PaidAt != nil {
			paidAt = *data.PaidAt
		}
		confirmed, err := p.apptUsecase.ConfirmWithPayment(ctx, ConfirmPaymentParams{
			Reference: reference,
			Amount:    fromSubunits(data.Amount),
			Channel:   data.Channel,
			PaidAt:    paidAt,
		})
		if err != nil {
			return nil, err
		}
		return &dto.VerifyPaymentResponse{
			Status:      dto.VerifyOutcomeConfirmed,
			Reference:   reference,
			Appointment: converter.AppointmentToResponse(confirmed),
		}, nil

	case paystack.TransactionPending:
		return &dto.VerifyPaymentResponse{
			Status:    dto.VerifyOutcomePending,
			Reference: reference,
		}, nil

	default:
		// failed, abandoned, reversed: terminal, nothing is mutated
		return &dto.VerifyPaymentResponse{
			Status:    dto.VerifyOutcomeFailed,
			Reference: reference,
		}, nil
	}
}

// newReference generates PREFIX_<unix>_<random>, unique across retries within
// the same second thanks to the random suffix.
func newReference() string {
	return fmt.Sprintf("%s_%d_%08X", referencePrefix, time.Now().Unix(), uuid.New().ID())
}

// toSubunits converts a decimal amount to the gateway's integer subunit
func toSubunits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// fromSubunits converts a gateway subunit amount back to decimal
func fromSubunits(amount int64) decimal.Decimal {
	return decimal.New(amount, -2)
}

// Compile time check
var _ PaymentGateway = (*paystack.Client)(nil)
