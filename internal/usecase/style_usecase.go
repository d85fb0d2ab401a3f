package usecase

import (
	"context"
	"errors"
	"strings"

	"salon-booking-api/internal/converter"
	"salon-booking-api/internal/delivery/dto"
	"salon-booking-api/internal/domain/entity"
	"salon-booking-api/internal/domain/repository"
	"salon-booking-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrStyleValueTaken = errors.New("style value already exists")
	ErrStyleMissing    = errors.New("style not found")
)

type StyleUsecase interface {
	Create(ctx context.Context, req *dto.CreateStyleRequest) (*dto.StyleResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateStyleRequest) (*dto.StyleResponse, error)
	GetAll(ctx context.Context, includeInactive bool) (*dto.StyleListResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type styleUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	styleRepo    repository.StyleRepository
	cache        *service.QueryCache
	auditService service.AuditService
}

func NewStyleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	styleRepo repository.StyleRepository,
	cache *service.QueryCache,
	auditService service.AuditService,
) StyleUsecase {
	return &styleUsecase{
		db:           db,
		log:          log,
		styleRepo:    styleRepo,
		cache:        cache,
		auditService: auditService,
	}
}

func (u *styleUsecase) Create(ctx context.Context, req *dto.CreateStyleRequest) (*dto.StyleResponse, error) {
	style := &entity.Style{
		Category: strings.TrimSpace(req.Category),
		Name:     strings.TrimSpace(req.Name),
		Value:    normalizeValue(req.Value),
		Price:    req.Price,
		IsActive: req.IsActive,
	}

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.styleRepo.Create(tx, style); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrStyleValueTaken
			}
			return err
		}
		return u.auditService.LogCreate(ctx, tx, actorID(ctx),
			entity.AuditActionStyleCreate, "style", style.ID.String(), style.Value)
	})
	if err != nil {
		if !errors.Is(err, ErrStyleValueTaken) {
			u.log.Warnf("Failed to create style %s: %+v", req.Value, err)
		}
		return nil, err
	}

	u.refreshCaches(ctx)
	return converter.StyleToResponse(style), nil
}

func (u *styleUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateStyleRequest) (*dto.StyleResponse, error) {
	var updated *entity.Style

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		style, err := u.styleRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if style == nil {
			return ErrStyleMissing
		}

		style.Category = strings.TrimSpace(req.Category)
		style.Name = strings.TrimSpace(req.Name)
		style.Value = normalizeValue(req.Value)
		style.Price = req.Price
		if req.IsActive != nil {
			style.IsActive = req.IsActive
		}

		if err := u.styleRepo.Update(tx, style); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrStyleValueTaken
			}
			return err
		}
		updated = style
		return u.auditService.LogUpdate(ctx, tx, actorID(ctx),
			entity.AuditActionStyleUpdate, "style", style.ID.String(), nil, style.Value)
	})
	if err != nil {
		if !errors.Is(err, ErrStyleMissing) && !errors.Is(err, ErrStyleValueTaken) {
			u.log.Warnf("Failed to update style %s: %+v", id, err)
		}
		return nil, err
	}

	u.refreshCaches(ctx)
	return converter.StyleToResponse(updated), nil
}

func (u *styleUsecase) GetAll(ctx context.Context, includeInactive bool) (*dto.StyleListResponse, error) {
	key := service.CacheKeyStyles
	activeOnly := true
	if includeInactive {
		key = service.CacheKeyAllStyles
		activeOnly = false
	}

	value, err := u.cache.Get(key, false, func() (interface{}, error) {
		return u.styleRepo.FindAll(u.db.WithContext(ctx), activeOnly)
	})
	if err != nil {
		u.log.Warnf("Failed to list styles: %+v", err)
		return nil, err
	}

	styles := value.([]entity.Style)
	return &dto.StyleListResponse{
		Styles: converter.StylesToResponses(styles),
		Total:  len(styles),
	}, nil
}

func (u *styleUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		style, err := u.styleRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if style == nil {
			return ErrStyleMissing
		}
		if _, err := u.styleRepo.Delete(tx, id); err != nil {
			return err
		}
		return u.auditService.LogDelete(ctx, tx, actorID(ctx),
			entity.AuditActionStyleDelete, "style", id.String(), style.Value)
	})
	if err != nil {
		if !errors.Is(err, ErrStyleMissing) {
			u.log.Warnf("Failed to delete style %s: %+v", id, err)
		}
		return err
	}

	u.refreshCaches(ctx)
	return nil
}

func (u *styleUsecase) refreshCaches(ctx context.Context) {
	if _, err := u.cache.Get(service.CacheKeyStyles, true, func() (interface{}, error) {
		return u.styleRepo.FindAll(u.db.WithContext(ctx), true)
	}); err != nil {
		u.log.Warnf("Failed to refresh styles cache: %+v", err)
	}
	if _, err := u.cache.Get(service.CacheKeyAllStyles, true, func() (interface{}, error) {
		return u.styleRepo.FindAll(u.db.WithContext(ctx), false)
	}); err != nil {
		u.log.Warnf("Failed to refresh styles cache: %+v", err)
	}
}

// normalizeValue lower-cases and dash-joins a style slug
func normalizeValue(value string) string {
	return strings.ToLower(strings.Join(strings.Fields(strings.TrimSpace(value)), "-"))
}
