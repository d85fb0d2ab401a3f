package usecase

import (
	"context"
	"errors"

	"salon-booking-api/internal/converter"
	"salon-booking-api/internal/delivery/dto"
	"salon-booking-api/internal/domain/entity"
	"salon-booking-api/internal/domain/repository"
	"salon-booking-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrDateNotFound = errors.New("bookable date not found")

type BookableDateUsecase interface {
	// GetBookable is the public read: future dates with remaining capacity.
	GetBookable(ctx context.Context) (*dto.DateListResponse, error)
	// GetAll is the admin read including full and past-but-unswept dates.
	GetAll(ctx context.Context) (*dto.DateListResponse, error)
	CreateBulk(ctx context.Context, req *dto.CreateDatesRequest) (*service.BulkResult, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Reconcile(ctx context.Context) error
}

type bookableDateUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	dateRepo     repository.BookableDateRepository
	ledger       *service.SlotLedger
	cache        *service.QueryCache
	auditService service.AuditService
}

func NewBookableDateUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	dateRepo repository.BookableDateRepository,
	ledger *service.SlotLedger,
	cache *service.QueryCache,
	auditService service.AuditService,
) BookableDateUsecase {
	return &bookableDateUsecase{
		db:           db,
		log:          log,
		dateRepo:     dateRepo,
		ledger:       ledger,
		cache:        cache,
		auditService: auditService,
	}
}

func (u *bookableDateUsecase) GetBookable(ctx context.Context) (*dto.DateListResponse, error) {
	value, err := u.cache.Get(service.CacheKeyBookableDates, false, func() (interface{}, error) {
		return u.ledger.ListBookable(ctx)
	})
	if err != nil {
		u.log.Warnf("Failed to list bookable dates: %+v", err)
		return nil, err
	}

	dates := value.([]entity.BookableDate)
	return &dto.DateListResponse{
		Dates: converter.DatesToResponses(dates),
		Total: len(dates),
	}, nil
}

func (u *bookableDateUsecase) GetAll(ctx context.Context) (*dto.DateListResponse, error) {
	value, err := u.cache.Get(service.CacheKeyAllDates, false, func() (interface{}, error) {
		return u.dateRepo.FindAll(u.db.WithContext(ctx))
	})
	if err != nil {
		u.log.Warnf("Failed to list dates: %+v", err)
		return nil, err
	}

	dates := value.([]entity.BookableDate)
	return &dto.DateListResponse{
		Dates: converter.DatesToResponses(dates),
		Total: len(dates),
	}, nil
}

func (u *bookableDateUsecase) CreateBulk(ctx context.Context, req *dto.CreateDatesRequest) (*service.BulkResult, error) {
	inputs := make([]service.BulkDateInput, len(req.Dates))
	for i, item := range req.Dates {
		inputs[i] = service.BulkDateInput{
			Date:            item.Date,
			MaxAppointments: item.MaxAppointments,
		}
	}

	result, err := u.ledger.CreateBulk(ctx, inputs)
	if err != nil {
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, u.db.WithContext(ctx), actorID(ctx),
		entity.AuditActionDateBulkCreate, "bookable_date", "", result); err != nil {
		u.log.Warnf("Failed to audit bulk date creation: %+v", err)
	}

	u.refreshCaches(ctx)
	return result, nil
}

func (u *bookableDateUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected, err := u.dateRepo.Delete(tx, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrDateNotFound
		}
		return u.auditService.LogDelete(ctx, tx, actorID(ctx),
			entity.AuditActionDateDelete, "bookable_date", id.String(), nil)
	})
	if err != nil {
		if !errors.Is(err, ErrDateNotFound) {
			u.log.Warnf("Failed to delete date %s: %+v", id, err)
		}
		return err
	}

	u.refreshCaches(ctx)
	return nil
}

func (u *bookableDateUsecase) Reconcile(ctx context.Context) error {
	if err := u.ledger.Reconcile(ctx); err != nil {
		return err
	}
	u.refreshCaches(ctx)
	return nil
}

func (u *bookableDateUsecase) refreshCaches(ctx context.Context) {
	if _, err := u.cache.Get(service.CacheKeyBookableDates, true, func() (interface{}, error) {
		return u.ledger.ListBookable(ctx)
	}); err != nil {
		u.log.Warnf("Failed to refresh bookable dates cache: %+v", err)
	}
	if _, err := u.cache.Get(service.CacheKeyAllDates, true, func() (interface{}, error) {
		return u.dateRepo.FindAll(u.db.WithContext(ctx))
	}); err != nil {
		u.log.Warnf("Failed to refresh dates cache: %+v", err)
	}
}
