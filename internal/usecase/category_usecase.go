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
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryTaken    = errors.New("category name already exists")
	ErrCategoryInUse    = errors.New("category still has styles referencing it")
)

type CategoryUsecase interface {
	Create(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	GetAll(ctx context.Context, includeInactive bool) (*dto.CategoryListResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	categoryRepo repository.StyleCategoryRepository
	styleRepo    repository.StyleRepository
	cache        *service.QueryCache
	auditService service.AuditService
}

func NewCategoryUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	categoryRepo repository.StyleCategoryRepository,
	styleRepo repository.StyleRepository,
	cache *service.QueryCache,
	auditService service.AuditService,
) CategoryUsecase {
	return &categoryUsecase{
		db:           db,
		log:          log,
		categoryRepo: categoryRepo,
		styleRepo:    styleRepo,
		cache:        cache,
		auditService: auditService,
	}
}

func (u *categoryUsecase) Create(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	category := &entity.StyleCategory{
		Name:        normalizeCategoryName(req.Name),
		Description: strings.TrimSpace(req.Description),
		IsActive:    req.IsActive,
		SortOrder:   req.SortOrder,
	}

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.categoryRepo.Create(tx, category); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrCategoryTaken
			}
			return err
		}
		return u.auditService.LogCreate(ctx, tx, actorID(ctx),
			entity.AuditActionCategoryCreate, "category", category.ID.String(), category.Name)
	})
	if err != nil {
		if !errors.Is(err, ErrCategoryTaken) {
			u.log.Warnf("Failed to create category %s: %+v", req.Name, err)
		}
		return nil, err
	}

	u.refreshCaches(ctx)
	return converter.CategoryToResponse(category), nil
}

func (u *categoryUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	var updated *entity.StyleCategory

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category, err := u.categoryRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if category == nil {
			return ErrCategoryNotFound
		}

		category.Name = normalizeCategoryName(req.Name)
		category.Description = strings.TrimSpace(req.Description)
		category.SortOrder = req.SortOrder
		if req.IsActive != nil {
			category.IsActive = req.IsActive
		}

		if err := u.categoryRepo.Update(tx, category); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrCategoryTaken
			}
			return err
		}
		updated = category
		return u.auditService.LogUpdate(ctx, tx, actorID(ctx),
			entity.AuditActionCategoryUpdate, "category", category.ID.String(), nil, category.Name)
	})
	if err != nil {
		if !errors.Is(err, ErrCategoryNotFound) && !errors.Is(err, ErrCategoryTaken) {
			u.log.Warnf("Failed to update category %s: %+v", id, err)
		}
		return nil, err
	}

	u.refreshCaches(ctx)
	return converter.CategoryToResponse(updated), nil
}

func (u *categoryUsecase) GetAll(ctx context.Context, includeInactive bool) (*dto.CategoryListResponse, error) {
	key := service.CacheKeyCategories
	activeOnly := true
	if includeInactive {
		key = service.CacheKeyAllCategories
		activeOnly = false
	}

	value, err := u.cache.Get(key, false, func() (interface{}, error) {
		return u.categoryRepo.FindAll(u.db.WithContext(ctx), activeOnly)
	})
	if err != nil {
		u.log.Warnf("Failed to list categories: %+v", err)
		return nil, err
	}

	categories := value.([]entity.StyleCategory)
	return &dto.CategoryListResponse{
		Categories: converter.CategoriesToResponses(categories),
		Total:      len(categories),
	}, nil
}

// Delete refuses while any style still references the category
func (u *categoryUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category, err := u.categoryRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if category == nil {
			return ErrCategoryNotFound
		}

		count, err := u.styleRepo.CountByCategory(tx, category.Name)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrCategoryInUse
		}

		if _, err := u.categoryRepo.Delete(tx, id); err != nil {
			return err
		}
		return u.auditService.LogDelete(ctx, tx, actorID(ctx),
			entity.AuditActionCategoryDelete, "category", id.String(), category.Name)
	})
	if err != nil {
		if !errors.Is(err, ErrCategoryNotFound) && !errors.Is(err, ErrCategoryInUse) {
			u.log.Warnf("Failed to delete category %s: %+v", id, err)
		}
		return err
	}

	u.refreshCaches(ctx)
	return nil
}

func (u *categoryUsecase) refreshCaches(ctx context.Context) {
	if _, err := u.cache.Get(service.CacheKeyCategories, true, func() (interface{}, error) {
		return u.categoryRepo.FindAll(u.db.WithContext(ctx), true)
	}); err != nil {
		u.log.Warnf("Failed to refresh categories cache: %+v", err)
	}
	if _, err := u.cache.Get(service.CacheKeyAllCategories, true, func() (interface{}, error) {
		return u.categoryRepo.FindAll(u.db.WithContext(ctx), false)
	}); err != nil {
		u.log.Warnf("Failed to refresh categories cache: %+v", err)
	}
}

// normalizeCategoryName lower-cases and collapses whitespace so uniqueness is
// case-insensitive
func normalizeCategoryName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(strings.TrimSpace(name)), " "))
}
