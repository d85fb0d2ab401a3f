package usecase

import (
	"testing"

	"salon-booking-api/internal/domain/entity"
	"salon-booking-api/internal/repository"

	"github.com/stretchr/testify/require"
)

func TestSettingsLazyDefaultsCreatedOnce(t *testing.T) {
	env := newTestEnv(t)
	repo := repository.NewSettingsRepository()

	first, err := repo.Get(env.db)
	require.NoError(t, err)
	require.Equal(t, entity.SettingsRowID, first.ID)
	require.True(t, first.IsPaymentRequired())
	require.Equal(t, 10, first.PaymentTimeoutMinutes)
	require.Equal(t, entity.AppointmentStatusPending, first.DefaultAppointmentStatus)
	require.True(t, first.DefaultPrice.IsZero())

	// A second read returns the same row instead of seeding again
	second, err := repo.Get(env.db)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, env.db.Model(&entity.Settings{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}
