package converter

import (
	"salon-booking-api/internal/delivery/dto"
	"salon-booking-api/internal/domain/entity"
)

// DateToResponse converts a BookableDate entity to its response DTO
func DateToResponse(date *entity.BookableDate) *dto.DateResponse {
	if date == nil {
		return nil
	}

	return &dto.DateResponse{
		ID:                  date.ID,
		Date:                date.Date,
		MaxAppointments:     date.MaxAppointments,
		CurrentAppointments: date.CurrentAppointments,
		RemainingSlots:      date.RemainingSlots(),
		CreatedAt:           date.CreatedAt,
		UpdatedAt:           date.UpdatedAt,
	}
}

// DatesToResponses converts a slice of BookableDate entities
func DatesToResponses(dates []entity.BookableDate) []dto.DateResponse {
	responses := make([]dto.DateResponse, len(dates))
	for i, date := range dates {
		resp := DateToResponse(&date)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
