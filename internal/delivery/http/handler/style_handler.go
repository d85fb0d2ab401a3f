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

type StyleHandler struct {
	styleUsecase usecase.StyleUsecase
	validator    *validator.CustomValidator
}

func NewStyleHandler(styleUsecase usecase.StyleUsecase, validator *validator.CustomValidator) *StyleHandler {
	return &StyleHandler{
		styleUsecase: styleUsecase,
		validator:    validator,
	}
}

// GetAll serves the public catalog. Admin requests pass include_inactive=true
// to see retired styles as well.
func (h *StyleHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("include_inactive") == "true"

	styles, err := h.styleUsecase.GetAll(r.Context(), includeInactive)
	if err != nil {
		response.InternalServerError(w, "Failed to get styles")
		return
	}

	response.Success(w, http.StatusOK, "Styles retrieved successfully", styles)
}

func (h *StyleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateStyleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	style, err := h.styleUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrStyleValueTaken:
			response.Conflict(w, "Style value already exists")
		default:
			response.InternalServerError(w, "Failed to create style")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Style created successfully", style)
}

func (h *StyleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid style ID", nil)
		return
	}

	var req dto.UpdateStyleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	style, err := h.styleUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrStyleMissing:
			response.NotFound(w, "Style not found")
		case usecase.ErrStyleValueTaken:
			response.Conflict(w, "Style value already exists")
		default:
			response.InternalServerError(w, "Failed to update style")
		}
		return
	}

	response.Success(w, http.StatusOK, "Style updated successfully", style)
}

func (h *StyleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid style ID", nil)
		return
	}

	if err := h.styleUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrStyleMissing:
			response.NotFound(w, "Style not found")
		default:
			response.InternalServerError(w, "Failed to delete style")
		}
		return
	}

	response.Success(w, http.StatusOK, "Style deleted successfully", nil)
}
