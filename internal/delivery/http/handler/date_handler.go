package handler

import (
	"encoding/json"
	"net/http"

	"salon-booking-api/internal/delivery/dto"
	"salon-booking-api/internal/usecase"
	"salon-booking-api/pkg/response"
	"salon-booking-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type DateHandler struct {
	dateUsecase usecase.BookableDateUsecase
	validator   *validator.CustomValidator
}

func NewDateHandler(dateUsecase usecase.BookableDateUsecase, validator *validator.CustomValidator) *DateHandler {
	return &DateHandler{
		dateUsecase: dateUsecase,
		validator:   validator,
	}
}

// GetBookable serves the public calendar: future dates with remaining capacity
func (h *DateHandler) GetBookable(w http.ResponseWriter, r *http.Request) {
	dates, err := h.dateUsecase.GetBookable(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get bookable dates")
		return
	}

	response.Success(w, http.StatusOK, "Bookable dates retrieved successfully", dates)
}

func (h *DateHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	dates, err := h.dateUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get dates")
		return
	}

	response.Success(w, http.StatusOK, "Dates retrieved successfully", dates)
}

func (h *DateHandler) CreateBulk(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.dateUsecase.CreateBulk(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create dates")
		return
	}

	response.Success(w, http.StatusCreated, "Dates created successfully", result)
}

func (h *DateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid date ID", nil)
		return
	}

	if err := h.dateUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrDateNotFound:
			response.NotFound(w, "Date not found")
		default:
			response.InternalServerError(w, "Failed to delete date")
		}
		return
	}

	response.Success(w, http.StatusOK, "Date deleted successfully", nil)
}

// Reconcile sweeps past dates and recounts consumed slots on demand
func (h *DateHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	if err := h.dateUsecase.Reconcile(r.Context()); err != nil {
		response.InternalServerError(w, "Failed to reconcile dates")
		return
	}

	response.Success(w, http.StatusOK, "Dates reconciled successfully", nil)
}
