package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNextStatus(t *testing.T) {
	tests := []struct {
		name       string
		current    AppointmentStatus
		event      StatusEvent
		holdsSlot  bool
		wantStatus AppointmentStatus
		wantEffect LedgerEffect
		wantErr    bool
	}{
		{
			name:       "confirm pending without slot reserves one",
			current:    AppointmentStatusPending,
			event:      EventConfirm,
			holdsSlot:  false,
			wantStatus: AppointmentStatusConfirmed,
			wantEffect: EffectReserve,
		},
		{
			name:       "confirm pending holding slot keeps it",
			current:    AppointmentStatusPending,
			event:      EventConfirm,
			holdsSlot:  true,
			wantStatus: AppointmentStatusConfirmed,
			wantEffect: EffectNone,
		},
		{
			name:       "confirm confirmed is a no-op",
			current:    AppointmentStatusConfirmed,
			event:      EventConfirm,
			holdsSlot:  true,
			wantStatus: AppointmentStatusConfirmed,
			wantEffect: EffectNone,
		},
		{
			name:       "cancel pending with slot releases it",
			current:    AppointmentStatusPending,
			event:      EventCancel,
			holdsSlot:  true,
			wantStatus: AppointmentStatusCancelled,
			wantEffect: EffectRelease,
		},
		{
			name:       "cancel pending without slot releases nothing",
			current:    AppointmentStatusPending,
			event:      EventCancel,
			holdsSlot:  false,
			wantStatus: AppointmentStatusCancelled,
			wantEffect: EffectNone,
		},
		{
			name:       "cancel confirmed releases its slot",
			current:    AppointmentStatusConfirmed,
			event:      EventCancel,
			holdsSlot:  true,
			wantStatus: AppointmentStatusCancelled,
			wantEffect: EffectRelease,
		},
		{
			name:      "confirm cancelled is rejected",
			current:   AppointmentStatusCancelled,
			event:     EventConfirm,
			holdsSlot: false,
			wantErr:   true,
		},
		{
			name:      "cancel cancelled is rejected",
			current:   AppointmentStatusCancelled,
			event:     EventCancel,
			holdsSlot: false,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, effect, err := NextStatus(tt.current, tt.event, tt.holdsSlot)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTransition)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantStatus, next)
			require.Equal(t, tt.wantEffect, effect)
		})
	}
}

func TestComputePaymentStatus(t *testing.T) {
	total := decimal.NewFromInt(100)

	require.Equal(t, PaymentStatusUnpaid, ComputePaymentStatus(total, decimal.Zero))
	require.Equal(t, PaymentStatusPartial, ComputePaymentStatus(total, decimal.NewFromInt(40)))
	require.Equal(t, PaymentStatusFull, ComputePaymentStatus(total, decimal.NewFromInt(100)))
	// Overpayment still reads as full
	require.Equal(t, PaymentStatusFull, ComputePaymentStatus(total, decimal.NewFromInt(150)))
	// A zero-priced appointment with no payments stays unpaid
	require.Equal(t, PaymentStatusUnpaid, ComputePaymentStatus(decimal.Zero, decimal.Zero))
	// But any positive payment against a zero total is full
	require.Equal(t, PaymentStatusFull, ComputePaymentStatus(decimal.Zero, decimal.NewFromInt(1)))
}

func TestSumPayments(t *testing.T) {
	require.True(t, SumPayments(nil).IsZero())

	payments := []Payment{
		{Amount: decimal.NewFromFloat(10.50)},
		{Amount: decimal.NewFromFloat(20.25)},
		{Amount: decimal.NewFromFloat(0.25)},
	}
	require.True(t, SumPayments(payments).Equal(decimal.NewFromInt(31)))
}
