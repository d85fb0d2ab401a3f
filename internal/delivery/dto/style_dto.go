package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateStyleRequest struct {
	Category string           `json:"category" validate:"required,max=100"`
	Name     string           `json:"name" validate:"required,max=255"`
	Value    string           `json:"value" validate:"required,max=100"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	IsActive *bool            `json:"is_active,omitempty"`
}

type UpdateStyleRequest struct {
	Category string           `json:"category" validate:"required,max=100"`
	Name     string           `json:"name" validate:"required,max=255"`
	Value    string           `json:"value" validate:"required,max=100"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	IsActive *bool            `json:"is_active,omitempty"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	IsActive    *bool  `json:"is_active,omitempty"`
	SortOrder   int    `json:"sort_order"`
}

type UpdateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	IsActive    *bool  `json:"is_active,omitempty"`
	SortOrder   int    `json:"sort_order"`
}

// Response DTOs

type StyleResponse struct {
	ID        uuid.UUID        `json:"id"`
	Category  string           `json:"category"`
	Name      string           `json:"name"`
	Value     string           `json:"value"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	IsActive  bool             `json:"is_active"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type StyleListResponse struct {
	Styles []StyleResponse `json:"styles"`
	Total  int             `json:"total"`
}

type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Total      int                `json:"total"`
}
