package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"salon-booking-api/internal/domain/entity"
	"salon-booking-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.BookableDate{},
		&entity.Appointment{},
		&entity.Payment{},
	))
	return db
}

func newTestLedger(t *testing.T) (*SlotLedger, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	log := logrus.New()
	log.SetLevel(logrus.FatalLevel)
	ledger := NewSlotLedger(db, log, repository.NewBookableDateRepository(), repository.NewAppointmentRepository())
	return ledger, db
}

func futureDate(t *testing.T, days int) string {
	t.Helper()
	return time.Now().UTC().AddDate(0, 0, days).Format(entity.DateLayout)
}

func seedDate(t *testing.T, db *gorm.DB, date string, max, current int) {
	t.Helper()
	require.NoError(t, db.Create(&entity.BookableDate{
		Date:                date,
		MaxAppointments:     max,
		CurrentAppointments: current,
	}).Error)
}

func TestReserveConsumesLastSlotExactlyOnce(t *testing.T) {
	ledger, db := newTestLedger(t)
	ctx := context.Background()
	date := futureDate(t, 3)
	seedDate(t, db, date, 2, 0)

	require.NoError(t, ledger.Reserve(ctx, db, date))
	require.NoError(t, ledger.Reserve(ctx, db, date))

	err := ledger.Reserve(ctx, db, date)
	require.ErrorIs(t, err, ErrDateExhausted)

	var bd entity.BookableDate
	require.NoError(t, db.Where("date = ?", date).First(&bd).Error)
	require.Equal(t, 2, bd.CurrentAppointments)
}

func TestReserveConcurrentContendersWinLastSlotOnce(t *testing.T) {
	ledger, db := newTestLedger(t)
	date := futureDate(t, 3)
	seedDate(t, db, date, 1, 0)

	// One connection keeps sqlite from failing on file locks; the contenders
	// still race for the conditional update
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	const contenders = 8
	results := make(chan error, contenders)
	var wg sync.WaitGroup
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- ledger.Reserve(context.Background(), db, date)
		}()
	}
	wg.Wait()
	close(results)

	won := 0
	for err := range results {
		if err == nil {
			won++
			continue
		}
		require.ErrorIs(t, err, ErrDateExhausted)
	}
	require.Equal(t, 1, won)

	var bd entity.BookableDate
	require.NoError(t, db.Where("date = ?", date).First(&bd).Error)
	require.Equal(t, 1, bd.CurrentAppointments)
}

func TestReserveMissingDate(t *testing.T) {
	ledger, db := newTestLedger(t)

	err := ledger.Reserve(context.Background(), db, futureDate(t, 3))
	require.ErrorIs(t, err, ErrDateNotFound)
}

func TestReleaseReturnsSlot(t *testing.T) {
	ledger, db := newTestLedger(t)
	ctx := context.Background()
	date := futureDate(t, 3)
	seedDate(t, db, date, 1, 1)

	require.NoError(t, ledger.Release(ctx, db, date))

	var bd entity.BookableDate
	require.NoError(t, db.Where("date = ?", date).First(&bd).Error)
	require.Equal(t, 0, bd.CurrentAppointments)

	// Counter is guarded at zero
	err := ledger.Release(ctx, db, date)
	require.ErrorIs(t, err, ErrDateNotFound)
	require.NoError(t, db.Where("date = ?", date).First(&bd).Error)
	require.Equal(t, 0, bd.CurrentAppointments)
}

func TestReleaseAfterCancellationMakesDateBookableAgain(t *testing.T) {
	ledger, db := newTestLedger(t)
	ctx := context.Background()
	date := futureDate(t, 3)
	seedDate(t, db, date, 1, 1)

	bookable, err := ledger.IsBookable(ctx, date)
	require.NoError(t, err)
	require.False(t, bookable)

	require.NoError(t, ledger.Release(ctx, db, date))

	bookable, err = ledger.IsBookable(ctx, date)
	require.NoError(t, err)
	require.True(t, bookable)
}

func TestIsBookablePastDate(t *testing.T) {
	ledger, db := newTestLedger(t)
	past := time.Now().UTC().AddDate(0, 0, -1).Format(entity.DateLayout)
	seedDate(t, db, past, 5, 0)

	bookable, err := ledger.IsBookable(context.Background(), past)
	require.NoError(t, err)
	require.False(t, bookable)
}

func TestCreateBulk(t *testing.T) {
	ledger, db := newTestLedger(t)
	ctx := context.Background()

	past := time.Now().UTC().AddDate(0, 0, -2).Format(entity.DateLayout)
	result, err := ledger.CreateBulk(ctx, []BulkDateInput{
		{Date: futureDate(t, 1), MaxAppointments: 3},
		{Date: futureDate(t, 2), MaxAppointments: 0}, // defaults to 1
		{Date: past, MaxAppointments: 2},             // skipped silently
		{Date: "not-a-date", MaxAppointments: 2},
	})
	require.NoError(t, err)
	require.Equal(t, 2, result.Created)
	require.Equal(t, 1, result.Skipped)
	require.Len(t, result.Errors, 1)

	var bd entity.BookableDate
	require.NoError(t, db.Where("date = ?", futureDate(t, 2)).First(&bd).Error)
	require.Equal(t, 1, bd.MaxAppointments)
}

func TestCreateBulkOverwritesCapacityKeepsCounter(t *testing.T) {
	ledger, db := newTestLedger(t)
	ctx := context.Background()
	date := futureDate(t, 5)
	seedDate(t, db, date, 2, 2)

	result, err := ledger.CreateBulk(ctx, []BulkDateInput{{Date: date, MaxAppointments: 5}})
	require.NoError(t, err)
	require.Equal(t, 1, result.Created)

	var bd entity.BookableDate
	require.NoError(t, db.Where("date = ?", date).First(&bd).Error)
	require.Equal(t, 5, bd.MaxAppointments)
	require.Equal(t, 2, bd.CurrentAppointments)

	var count int64
	require.NoError(t, db.Model(&entity.BookableDate{}).Where("date = ?", date).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestReconcileSweepsPastAndRepairsCounters(t *testing.T) {
	ledger, db := newTestLedger(t)
	ctx := context.Background()

	past := time.Now().UTC().AddDate(0, 0, -1).Format(entity.DateLayout)
	seedDate(t, db, past, 2, 1)

	drifted := futureDate(t, 4)
	seedDate(t, db, drifted, 3, 3)

	// Only one active slot-holding appointment actually exists for the day
	require.NoError(t, db.Create(&entity.Appointment{
		CustomerName:  "Amara",
		CustomerEmail: "amara@example.com",
		StyleValue:    "box-braids",
		Date:          drifted,
		Status:        entity.AppointmentStatusConfirmed,
		TotalAmount:   decimal.NewFromInt(50),
		AmountPaid:    decimal.Zero,
		PaymentStatus: entity.PaymentStatusUnpaid,
		SlotReserved:  true,
	}).Error)
	require.NoError(t, db.Create(&entity.Appointment{
		CustomerName:  "Bisi",
		CustomerEmail: "bisi@example.com",
		StyleValue:    "box-braids",
		Date:          drifted,
		Status:        entity.AppointmentStatusCancelled,
		TotalAmount:   decimal.NewFromInt(50),
		AmountPaid:    decimal.Zero,
		PaymentStatus: entity.PaymentStatusUnpaid,
		SlotReserved:  true,
	}).Error)

	require.NoError(t, ledger.Reconcile(ctx))

	var count int64
	require.NoError(t, db.Model(&entity.BookableDate{}).Where("date = ?", past).Count(&count).Error)
	require.EqualValues(t, 0, count)

	var bd entity.BookableDate
	require.NoError(t, db.Where("date = ?", drifted).First(&bd).Error)
	require.Equal(t, 1, bd.CurrentAppointments)

	// Running it again changes nothing
	require.NoError(t, ledger.Reconcile(ctx))
	require.NoError(t, db.Where("date = ?", drifted).First(&bd).Error)
	require.Equal(t, 1, bd.CurrentAppointments)
}
