package usecase

import (
	"context"

	"salon-booking-api/internal/converter"
	"salon-booking-api/internal/delivery/dto"
	"salon-booking-api/internal/domain/entity"
	"salon-booking-api/internal/domain/repository"
	"salon-booking-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SettingsUsecase interface {
	Get(ctx context.Context) (*dto.SettingsResponse, error)
	Update(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
}

type settingsUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	settingsRepo repository.SettingsRepository
	auditService service.AuditService
}

func NewSettingsUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	settingsRepo repository.SettingsRepository,
	auditService service.AuditService,
) SettingsUsecase {
	return &settingsUsecase{
		db:           db,
		log:          log,
		settingsRepo: settingsRepo,
		auditService: auditService,
	}
}

func (u *settingsUsecase) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	settings, err := u.settingsRepo.Get(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to load settings: %+v", err)
		return nil, err
	}
	return converter.SettingsToResponse(settings), nil
}

// Update applies only the fields present in the request, so a partial payload
// leaves the rest of the singleton untouched.
func (u *settingsUsecase) Update(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	var updated *entity.Settings

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		settings, err := u.settingsRepo.Get(tx)
		if err != nil {
			return err
		}
		previous := *settings

		if req.PaymentRequired != nil {
			settings.PaymentRequired = req.PaymentRequired
		}
		if req.PaymentTimeoutMinutes != nil {
			settings.PaymentTimeoutMinutes = *req.PaymentTimeoutMinutes
		}
		if req.DefaultAppointmentStatus != nil {
			settings.DefaultAppointmentStatus = entity.AppointmentStatus(*req.DefaultAppointmentStatus)
		}
		if req.DefaultPrice != nil {
			settings.DefaultPrice = *req.DefaultPrice
		}

		if err := u.settingsRepo.Save(tx, settings); err != nil {
			return err
		}
		updated = settings
		return u.auditService.LogUpdate(ctx, tx, actorID(ctx),
			entity.AuditActionSettingsUpdate, "settings", "", &previous, settings)
	})
	if err != nil {
		u.log.Warnf("Failed to update settings: %+v", err)
		return nil, err
	}

	return converter.SettingsToResponse(updated), nil
}
