package converter

import (
	"salon-booking-api/internal/delivery/dto"
	"salon-booking-api/internal/domain/entity"
)

// StyleToResponse converts a Style entity to its response DTO
func StyleToResponse(style *entity.Style) *dto.StyleResponse {
	if style == nil {
		return nil
	}

	return &dto.StyleResponse{
		ID:        style.ID,
		Category:  style.Category,
		Name:      style.Name,
		Value:     style.Value,
		Price:     style.Price,
		IsActive:  style.IsActive != nil && *style.IsActive,
		CreatedAt: style.CreatedAt,
		UpdatedAt: style.UpdatedAt,
	}
}

// StylesToResponses converts a slice of Style entities
func StylesToResponses(styles []entity.Style) []dto.StyleResponse {
	responses := make([]dto.StyleResponse, len(styles))
	for i, style := range styles {
		resp := StyleToResponse(&style)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// CategoryToResponse converts a StyleCategory entity to its response DTO
func CategoryToResponse(category *entity.StyleCategory) *dto.CategoryResponse {
	if category == nil {
		return nil
	}

	return &dto.CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		IsActive:    category.IsActive != nil && *category.IsActive,
		SortOrder:   category.SortOrder,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

// CategoriesToResponses converts a slice of StyleCategory entities
func CategoriesToResponses(categories []entity.StyleCategory) []dto.CategoryResponse {
	responses := make([]dto.CategoryResponse, len(categories))
	for i, category := range categories {
		resp := CategoryToResponse(&category)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// SettingsToResponse converts the settings singleton to its response DTO
func SettingsToResponse(settings *entity.Settings) *dto.SettingsResponse {
	if settings == nil {
		return nil
	}

	return &dto.SettingsResponse{
		PaymentRequired:          settings.IsPaymentRequired(),
		PaymentTimeoutMinutes:    settings.PaymentTimeoutMinutes,
		DefaultAppointmentStatus: string(settings.DefaultAppointmentStatus),
		DefaultPrice:             settings.DefaultPrice,
		UpdatedAt:                settings.UpdatedAt,
	}
}
