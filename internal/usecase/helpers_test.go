package usecase

import (
	"fmt"
	"testing"
	"time"

	"salon-booking-api/internal/domain/entity"
	"salon-booking-api/internal/repository"
	"salon-booking-api/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires the full usecase stack against an in-memory database
type testEnv struct {
	db          *gorm.DB
	appointment AppointmentUsecase
	date        BookableDateUsecase
	style       StyleUsecase
	category    CategoryUsecase
	ledger      *service.SlotLedger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.StyleCategory{},
		&entity.Style{},
		&entity.BookableDate{},
		&entity.Appointment{},
		&entity.Payment{},
		&entity.Settings{},
		&entity.AuditLog{},
	))

	log := logrus.New()
	log.SetLevel(logrus.FatalLevel)

	apptRepo := repository.NewAppointmentRepository()
	dateRepo := repository.NewBookableDateRepository()
	styleRepo := repository.NewStyleRepository()
	categoryRepo := repository.NewStyleCategoryRepository()
	settingsRepo := repository.NewSettingsRepository()
	auditRepo := repository.NewAuditLogRepository()

	auditService := service.NewAuditService(db, log, auditRepo)
	ledger := service.NewSlotLedger(db, log, dateRepo, apptRepo)
	cache := service.NewQueryCache(service.DefaultCacheTTL)

	return &testEnv{
		db:          db,
		appointment: NewAppointmentUsecase(db, log, apptRepo, styleRepo, settingsRepo, ledger, cache, auditService),
		date:        NewBookableDateUsecase(db, log, dateRepo, ledger, cache, auditService),
		style:       NewStyleUsecase(db, log, styleRepo, cache, auditService),
		category:    NewCategoryUsecase(db, log, categoryRepo, styleRepo, cache, auditService),
		ledger:      ledger,
	}
}

func (e *testEnv) futureDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format(entity.DateLayout)
}

func (e *testEnv) seedDate(t *testing.T, date string, max int) {
	t.Helper()
	require.NoError(t, e.db.Create(&entity.BookableDate{
		Date:            date,
		MaxAppointments: max,
	}).Error)
}

func (e *testEnv) seedStyle(t *testing.T, value string, price int64) {
	t.Helper()
	active := true
	p := decimal.NewFromInt(price)
	require.NoError(t, e.db.Create(&entity.Style{
		Category: "braids",
		Name:     value,
		Value:    value,
		Price:    &p,
		IsActive: &active,
	}).Error)
}

// setPaymentRequired forces the settings singleton into the wanted mode
func (e *testEnv) setPaymentRequired(t *testing.T, required bool) {
	t.Helper()
	settings, err := repository.NewSettingsRepository().Get(e.db)
	require.NoError(t, err)
	settings.PaymentRequired = &required
	require.NoError(t, e.db.Save(settings).Error)
}

func (e *testEnv) dateCounter(t *testing.T, date string) int {
	t.Helper()
	var bd entity.BookableDate
	require.NoError(t, e.db.Where("date = ?", date).First(&bd).Error)
	return bd.CurrentAppointments
}

func (e *testEnv) loadAppointment(t *testing.T, id uuid.UUID) *entity.Appointment {
	t.Helper()
	var appointment entity.Appointment
	require.NoError(t, e.db.Preload("Payments").Where("id = ?", id).First(&appointment).Error)
	return &appointment
}
