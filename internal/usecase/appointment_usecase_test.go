package usecase

import (
	"context"
	"testing"

	"salon-booking-api/internal/delivery/dto"
	"salon-booking-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func createRequest(style, date string) *dto.CreateAppointmentRequest {
	return &dto.CreateAppointmentRequest{
		CustomerName:  "Amara Obi",
		CustomerEmail: "amara@example.com",
		Style:         style,
		Date:          date,
	}
}

func TestCreateConsumesSlot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setPaymentRequired(t, false)
	env.seedStyle(t, "box-braids", 50)

	date := env.futureDate(3)
	env.seedDate(t, date, 1)

	created, err := env.appointment.Create(ctx, createRequest("box-braids", date))
	require.NoError(t, err)
	require.Equal(t, string(entity.AppointmentStatusPending), created.Status)
	require.True(t, created.TotalAmount.Equal(decimal.NewFromInt(50)))
	require.Equal(t, 1, env.dateCounter(t, date))

	stored := env.loadAppointment(t, created.ID)
	require.True(t, stored.SlotReserved)

	// Day is full: the next booking loses
	_, err = env.appointment.Create(ctx, createRequest("box-braids", date))
	require.ErrorIs(t, err, ErrDateUnavailable)
	require.Equal(t, 1, env.dateCounter(t, date))
}

func TestCreateRejectedWhenPaymentRequired(t *testing.T) {
	env := newTestEnv(t)
	env.seedStyle(t, "box-braids", 50)
	date := env.futureDate(3)
	env.seedDate(t, date, 1)

	// Settings default to payment required
	_, err := env.appointment.Create(context.Background(), createRequest("box-braids", date))
	require.ErrorIs(t, err, ErrPaymentRequired)
	require.Equal(t, 0, env.dateCounter(t, date))
}

func TestCreateUnknownStyle(t *testing.T) {
	env := newTestEnv(t)
	env.setPaymentRequired(t, false)
	date := env.futureDate(3)
	env.seedDate(t, date, 1)

	_, err := env.appointment.Create(context.Background(), createRequest("no-such-style", date))
	require.ErrorIs(t, err, ErrStyleNotFound)
}

func TestCancelReleasesSlot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setPaymentRequired(t, false)
	env.seedStyle(t, "box-braids", 50)
	date := env.futureDate(3)
	env.seedDate(t, date, 1)

	created, err := env.appointment.Create(ctx, createRequest("box-braids", date))
	require.NoError(t, err)
	require.Equal(t, 1, env.dateCounter(t, date))

	cancelled, err := env.appointment.ChangeStatus(ctx, created.ID, entity.AppointmentStatusCancelled)
	require.NoError(t, err)
	require.Equal(t, string(entity.AppointmentStatusCancelled), cancelled.Status)
	require.Equal(t, 0, env.dateCounter(t, date))

	stored := env.loadAppointment(t, created.ID)
	require.False(t, stored.SlotReserved)

	// The freed slot is bookable again
	_, err = env.appointment.Create(ctx, createRequest("box-braids", date))
	require.NoError(t, err)
}

func TestCancelledAppointmentCannotBeConfirmed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setPaymentRequired(t, false)
	env.seedStyle(t, "box-braids", 50)
	date := env.futureDate(3)
	env.seedDate(t, date, 2)

	created, err := env.appointment.Create(ctx, createRequest("box-braids", date))
	require.NoError(t, err)

	_, err = env.appointment.ChangeStatus(ctx, created.ID, entity.AppointmentStatusCancelled)
	require.NoError(t, err)

	_, err = env.appointment.ChangeStatus(ctx, created.ID, entity.AppointmentStatusConfirmed)
	require.ErrorIs(t, err, ErrInvalidStatusChange)

	// Only the first cancel touched the ledger
	require.Equal(t, 0, env.dateCounter(t, date))
}

func TestDeleteReleasesSlotAndPayments(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setPaymentRequired(t, false)
	env.seedStyle(t, "box-braids", 50)
	date := env.futureDate(3)
	env.seedDate(t, date, 1)

	created, err := env.appointment.Create(ctx, createRequest("box-braids", date))
	require.NoError(t, err)

	_, err = env.appointment.RecordManualPayment(ctx, created.ID, &dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(20),
	})
	require.NoError(t, err)

	require.NoError(t, env.appointment.Delete(ctx, created.ID))
	require.Equal(t, 0, env.dateCounter(t, date))

	var count int64
	require.NoError(t, env.db.Model(&entity.Appointment{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
	require.NoError(t, env.db.Model(&entity.Payment{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestDeleteCancelledDoesNotReleaseTwice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setPaymentRequired(t, false)
	env.seedStyle(t, "box-braids", 50)
	date := env.futureDate(3)
	env.seedDate(t, date, 2)

	created, err := env.appointment.Create(ctx, createRequest("box-braids", date))
	require.NoError(t, err)
	_, err = env.appointment.ChangeStatus(ctx, created.ID, entity.AppointmentStatusCancelled)
	require.NoError(t, err)
	require.Equal(t, 0, env.dateCounter(t, date))

	require.NoError(t, env.appointment.Delete(ctx, created.ID))
	require.Equal(t, 0, env.dateCounter(t, date))
}

func TestRecordManualPaymentThresholds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setPaymentRequired(t, false)
	env.seedStyle(t, "box-braids", 100)
	date := env.futureDate(3)
	env.seedDate(t, date, 1)

	created, err := env.appointment.Create(ctx, createRequest("box-braids", date))
	require.NoError(t, err)
	require.Equal(t, string(entity.PaymentStatusUnpaid), created.PaymentStatus)

	partial, err := env.appointment.RecordManualPayment(ctx, created.ID, &dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(40),
		Method: "cash",
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.PaymentStatusPartial), partial.PaymentStatus)
	require.True(t, partial.AmountPaid.Equal(decimal.NewFromInt(40)))

	full, err := env.appointment.RecordManualPayment(ctx, created.ID, &dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(60),
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.PaymentStatusFull), full.PaymentStatus)
	require.True(t, full.AmountPaid.Equal(decimal.NewFromInt(100)))
	require.Len(t, full.Payments, 2)
}

func TestRecordManualPaymentReset(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setPaymentRequired(t, false)
	env.seedStyle(t, "box-braids", 100)
	date := env.futureDate(3)
	env.seedDate(t, date, 1)

	created, err := env.appointment.Create(ctx, createRequest("box-braids", date))
	require.NoError(t, err)

	_, err = env.appointment.RecordManualPayment(ctx, created.ID, &dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	reset, err := env.appointment.RecordManualPayment(ctx, created.ID, &dto.RecordPaymentRequest{
		ResetPayment: true,
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.PaymentStatusUnpaid), reset.PaymentStatus)
	require.True(t, reset.AmountPaid.IsZero())
	require.Empty(t, reset.Payments)
}

func TestRecordManualPaymentRejectsNegative(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.appointment.RecordManualPayment(context.Background(), uuid.New(), &dto.RecordPaymentRequest{
		Amount: decimal.NewFromInt(-5),
	})
	require.ErrorIs(t, err, ErrNegativeAmount)

	negative := decimal.NewFromInt(-10)
	_, err = env.appointment.RecordManualPayment(context.Background(), uuid.New(), &dto.RecordPaymentRequest{
		Amount:      decimal.NewFromInt(5),
		TotalAmount: &negative,
	})
	require.ErrorIs(t, err, ErrNegativeAmount)
}

func TestAdminDateListRefreshedByBookingWrites(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setPaymentRequired(t, false)
	env.seedStyle(t, "box-braids", 50)
	date := env.futureDate(3)
	env.seedDate(t, date, 2)

	// Prime the admin list cache before any booking
	before, err := env.date.GetAll(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, before.Dates[0].CurrentAppointments)

	created, err := env.appointment.Create(ctx, createRequest("box-braids", date))
	require.NoError(t, err)

	after, err := env.date.GetAll(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, after.Dates[0].CurrentAppointments)

	// A cancellation shows up immediately as well
	_, err = env.appointment.ChangeStatus(ctx, created.ID, entity.AppointmentStatusCancelled)
	require.NoError(t, err)

	final, err := env.date.GetAll(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, final.Dates[0].CurrentAppointments)
}

func TestDuplicateGatewayReferenceConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedStyle(t, "box-braids", 50)
	date := env.futureDate(3)
	env.seedDate(t, date, 5)

	req := &dto.InitializePaymentRequest{
		CustomerName:  "Amara Obi",
		CustomerEmail: "amara@example.com",
		Style:         "box-braids",
		Date:          date,
	}

	_, err := env.appointment.CreatePending(ctx, req, "SALON_1_DEADBEEF")
	require.NoError(t, err)

	_, err = env.appointment.CreatePending(ctx, req, "SALON_1_DEADBEEF")
	require.ErrorIs(t, err, ErrDuplicateReference)

	var count int64
	require.NoError(t, env.db.Model(&entity.Appointment{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestGetByIDNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.appointment.GetByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrAppointmentNotFound)
}
