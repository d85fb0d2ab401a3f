package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type BulkDateItem struct {
	Date            string `json:"date" validate:"required,len=10"`
	MaxAppointments int    `json:"max_appointments"`
}

type CreateDatesRequest struct {
	Dates []BulkDateItem `json:"dates" validate:"required,min=1,dive"`
}

// Response DTOs

type DateResponse struct {
	ID                  uuid.UUID `json:"id"`
	Date                string    `json:"date"`
	MaxAppointments     int       `json:"max_appointments"`
	CurrentAppointments int       `json:"current_appointments"`
	RemainingSlots      int       `json:"remaining_slots"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type DateListResponse struct {
	Dates []DateResponse `json:"dates"`
	Total int            `json:"total"`
}
