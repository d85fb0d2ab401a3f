package usecase

import (
	"context"
	"testing"
	"time"

	"salon-booking-api/internal/delivery/dto"
	"salon-booking-api/internal/domain/entity"
	"salon-booking-api/internal/integrations/paystack"
	"salon-booking-api/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// fakeGateway scripts the gateway's answers for a test
type fakeGateway struct {
	initErr    error
	initCalls  int
	verifyData *paystack.VerifyData
	verifyErr  error
}

func (f *fakeGateway) InitializeTransaction(ctx context.Context, req *paystack.InitializeRequest) (*paystack.InitializeResponse, error) {
	f.initCalls++
	if f.initErr != nil {
		return nil, f.initErr
	}
	return &paystack.InitializeResponse{
		AuthorizationURL: "https://checkout.example.com/" + req.Reference,
		Reference:        req.Reference,
	}, nil
}

func (f *fakeGateway) VerifyTransaction(ctx context.Context, reference string) (*paystack.VerifyData, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	data := *f.verifyData
	data.Reference = reference
	return &data, nil
}

func newPaymentEnv(t *testing.T, gateway *fakeGateway) (*testEnv, PaymentUsecase) {
	t.Helper()

	env := newTestEnv(t)
	log := logrus.New()
	log.SetLevel(logrus.FatalLevel)

	payment := NewPaymentUsecase(
		env.db,
		log,
		gateway,
		env.appointment,
		repository.NewAppointmentRepository(),
		repository.NewSettingsRepository(),
		"https://salon.example.com/payment/callback",
	)
	return env, payment
}

func initRequest(style, date string) *dto.InitializePaymentRequest {
	return &dto.InitializePaymentRequest{
		CustomerName:  "Amara Obi",
		CustomerEmail: "amara@example.com",
		Style:         style,
		Date:          date,
	}
}

func TestInitializeCreatesPendingWithoutSlot(t *testing.T) {
	gateway := &fakeGateway{}
	env, payment := newPaymentEnv(t, gateway)
	env.seedStyle(t, "box-braids", 50)
	date := env.futureDate(3)
	env.seedDate(t, date, 1)

	result, err := payment.Initialize(context.Background(), initRequest("box-braids", date))
	require.NoError(t, err)
	require.NotEmpty(t, result.Reference)
	require.Contains(t, result.AuthorizationURL, result.Reference)
	require.Equal(t, 1, gateway.initCalls)

	var appointment entity.Appointment
	require.NoError(t, env.db.Where("gateway_reference = ?", result.Reference).First(&appointment).Error)
	require.Equal(t, entity.AppointmentStatusPending, appointment.Status)
	require.False(t, appointment.SlotReserved)

	// No slot is consumed before the gateway confirms
	require.Equal(t, 0, env.dateCounter(t, date))
}

func TestInitializeRollsBackOnGatewayFailure(t *testing.T) {
	gateway := &fakeGateway{initErr: paystack.ErrUnavailable}
	env, payment := newPaymentEnv(t, gateway)
	env.seedStyle(t, "box-braids", 50)
	date := env.futureDate(3)
	env.seedDate(t, date, 1)

	_, err := payment.Initialize(context.Background(), initRequest("box-braids", date))
	require.ErrorIs(t, err, ErrGatewayUnavailable)

	// The pre-created pending appointment is gone
	var count int64
	require.NoError(t, env.db.Model(&entity.Appointment{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
	require.Equal(t, 0, env.dateCounter(t, date))
}

func TestInitializeRejectedByGateway(t *testing.T) {
	gateway := &fakeGateway{initErr: paystack.ErrRejected}
	env, payment := newPaymentEnv(t, gateway)
	env.seedStyle(t, "box-braids", 50)
	date := env.futureDate(3)
	env.seedDate(t, date, 1)

	_, err := payment.Initialize(context.Background(), initRequest("box-braids", date))
	require.ErrorIs(t, err, ErrGatewayRejected)
}

func TestInitializeUnavailableDate(t *testing.T) {
	gateway := &fakeGateway{}
	env, payment := newPaymentEnv(t, gateway)
	env.seedStyle(t, "box-braids", 50)

	_, err := payment.Initialize(context.Background(), initRequest("box-braids", env.futureDate(3)))
	require.ErrorIs(t, err, ErrDateUnavailable)
	require.Equal(t, 0, gateway.initCalls)
}

func TestVerifySuccessIsIdempotent(t *testing.T) {
	gateway := &fakeGateway{}
	env, payment := newPaymentEnv(t, gateway)
	env.seedStyle(t, "box-braids", 50)
	date := env.futureDate(3)
	env.seedDate(t, date, 1)

	ctx := context.Background()
	initialized, err := payment.Initialize(ctx, initRequest("box-braids", date))
	require.NoError(t, err)

	paidAt := time.Now().UTC()
	gateway.verifyData = &paystack.VerifyData{
		Status:  paystack.TransactionSuccess,
		Amount:  5000,
		Channel: "card",
		PaidAt:  &paidAt,
	}

	first, err := payment.Verify(ctx, initialized.Reference)
	require.NoError(t, err)
	require.Equal(t, dto.VerifyOutcomeConfirmed, first.Status)
	require.NotNil(t, first.Appointment)
	require.Equal(t, string(entity.AppointmentStatusConfirmed), first.Appointment.Status)
	require.Equal(t, string(entity.PaymentStatusFull), first.Appointment.PaymentStatus)
	require.True(t, first.Appointment.AmountPaid.Equal(decimal.NewFromInt(50)))
	require.Equal(t, 1, env.dateCounter(t, date))

	// The client polls again after the redirect: no double application
	second, err := payment.Verify(ctx, initialized.Reference)
	require.NoError(t, err)
	require.Equal(t, dto.VerifyOutcomeConfirmed, second.Status)

	var payments int64
	require.NoError(t, env.db.Model(&entity.Payment{}).Count(&payments).Error)
	require.EqualValues(t, 1, payments)
	require.Equal(t, 1, env.dateCounter(t, date))
}

func TestVerifyPendingLeavesAppointmentUntouched(t *testing.T) {
	gateway := &fakeGateway{}
	env, payment := newPaymentEnv(t, gateway)
	env.seedStyle(t, "box-braids", 50)
	date := env.futureDate(3)
	env.seedDate(t, date, 1)

	ctx := context.Background()
	initialized, err := payment.Initialize(ctx, initRequest("box-braids", date))
	require.NoError(t, err)

	gateway.verifyData = &paystack.VerifyData{Status: paystack.TransactionPending}

	result, err := payment.Verify(ctx, initialized.Reference)
	require.NoError(t, err)
	require.Equal(t, dto.VerifyOutcomePending, result.Status)
	require.Equal(t, 0, env.dateCounter(t, date))
}

func TestVerifyFailureMutatesNothing(t *testing.T) {
	gateway := &fakeGateway{}
	env, payment := newPaymentEnv(t, gateway)
	env.seedStyle(t, "box-braids", 50)
	date := env.futureDate(3)
	env.seedDate(t, date, 1)

	ctx := context.Background()
	initialized, err := payment.Initialize(ctx, initRequest("box-braids", date))
	require.NoError(t, err)

	gateway.verifyData = &paystack.VerifyData{Status: paystack.TransactionAbandoned}

	result, err := payment.Verify(ctx, initialized.Reference)
	require.NoError(t, err)
	require.Equal(t, dto.VerifyOutcomeFailed, result.Status)

	var appointment entity.Appointment
	require.NoError(t, env.db.Where("gateway_reference = ?", initialized.Reference).First(&appointment).Error)
	require.Equal(t, entity.AppointmentStatusPending, appointment.Status)
	require.Equal(t, entity.PaymentStatusUnpaid, appointment.PaymentStatus)
	require.Equal(t, 0, env.dateCounter(t, date))
}

func TestVerifySuccessOnCancelledAppointmentConflicts(t *testing.T) {
	gateway := &fakeGateway{}
	env, payment := newPaymentEnv(t, gateway)
	env.seedStyle(t, "box-braids", 50)
	date := env.futureDate(3)
	env.seedDate(t, date, 1)

	ctx := context.Background()
	initialized, err := payment.Initialize(ctx, initRequest("box-braids", date))
	require.NoError(t, err)

	var appointment entity.Appointment
	require.NoError(t, env.db.Where("gateway_reference = ?", initialized.Reference).First(&appointment).Error)
	_, err = env.appointment.ChangeStatus(ctx, appointment.ID, entity.AppointmentStatusCancelled)
	require.NoError(t, err)

	// The customer completes checkout anyway
	paidAt := time.Now().UTC()
	gateway.verifyData = &paystack.VerifyData{
		Status:  paystack.TransactionSuccess,
		Amount:  5000,
		Channel: "card",
		PaidAt:  &paidAt,
	}

	_, err = payment.Verify(ctx, initialized.Reference)
	require.ErrorIs(t, err, ErrAppointmentCancelled)

	// The payment stays unapplied and the ledger untouched
	var payments int64
	require.NoError(t, env.db.Model(&entity.Payment{}).Count(&payments).Error)
	require.EqualValues(t, 0, payments)
	require.Equal(t, 0, env.dateCounter(t, date))

	stored := env.loadAppointment(t, appointment.ID)
	require.Equal(t, entity.AppointmentStatusCancelled, stored.Status)
	require.True(t, stored.AmountPaid.IsZero())
}

func TestVerifyUnknownReference(t *testing.T) {
	gateway := &fakeGateway{}
	_, payment := newPaymentEnv(t, gateway)

	_, err := payment.Verify(context.Background(), "SALON_0_DEADBEEF")
	require.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestVerifyGatewayUnavailableIsRetryable(t *testing.T) {
	gateway := &fakeGateway{}
	env, payment := newPaymentEnv(t, gateway)
	env.seedStyle(t, "box-braids", 50)
	date := env.futureDate(3)
	env.seedDate(t, date, 1)

	ctx := context.Background()
	initialized, err := payment.Initialize(ctx, initRequest("box-braids", date))
	require.NoError(t, err)

	gateway.verifyErr = paystack.ErrUnavailable
	_, err = payment.Verify(ctx, initialized.Reference)
	require.ErrorIs(t, err, ErrGatewayUnavailable)

	// A later retry against a recovered gateway still succeeds
	gateway.verifyErr = nil
	paidAt := time.Now().UTC()
	gateway.verifyData = &paystack.VerifyData{
		Status:  paystack.TransactionSuccess,
		Amount:  5000,
		Channel: "card",
		PaidAt:  &paidAt,
	}
	result, err := payment.Verify(ctx, initialized.Reference)
	require.NoError(t, err)
	require.Equal(t, dto.VerifyOutcomeConfirmed, result.Status)
}

func TestReferenceFormat(t *testing.T) {
	first := newReference()
	second := newReference()
	require.NotEqual(t, first, second)
	require.Regexp(t, `^SALON_\d+_[0-9A-F]{8}$`, first)
}

func TestSubunitConversion(t *testing.T) {
	require.EqualValues(t, 5000, toSubunits(decimal.NewFromInt(50)))
	require.EqualValues(t, 5099, toSubunits(decimal.NewFromFloat(50.99)))
	require.True(t, fromSubunits(5099).Equal(decimal.NewFromFloat(50.99)))
}
