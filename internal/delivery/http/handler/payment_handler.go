package handler

import (
	"encoding/json"
	"net/http"

	"salon-booking-api/internal/delivery/dto"
	"salon-booking-api/internal/usecase"
	"salon-booking-api/pkg/response"
	"salon-booking-api/pkg/validator"

	"github.com/gorilla/mux"
)

type PaymentHandler struct {
	paymentUsecase usecase.PaymentUsecase
	validator      *validator.CustomValidator
}

func NewPaymentHandler(paymentUsecase usecase.PaymentUsecase, validator *validator.CustomValidator) *PaymentHandler {
	return &PaymentHandler{
		paymentUsecase: paymentUsecase,
		validator:      validator,
	}
}

func (h *PaymentHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	var req dto.InitializePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.paymentUsecase.Initialize(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrStyleNotFound:
			response.NotFound(w, "Style not found")
		case usecase.ErrDateUnavailable:
			response.Conflict(w, "Date is not available for booking")
		case usecase.ErrGatewayUnavailable:
			response.BadGateway(w, "Payment gateway is unavailable, try again later")
		case usecase.ErrGatewayRejected:
			response.UnprocessableEntity(w, "Payment gateway rejected the request")
		default:
			response.InternalServerError(w, "Failed to initialize payment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Payment initialized successfully", result)
}

// Verify is polled by the booking client until the gateway settles
func (h *PaymentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	reference := mux.Vars(r)["reference"]
	if reference == "" {
		response.Error(w, http.StatusBadRequest, "Reference is required", nil)
		return
	}

	result, err := h.paymentUsecase.Verify(r.Context(), reference)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "No appointment found for this reference")
		case usecase.ErrAppointmentCancelled:
			response.Conflict(w, "Appointment for this reference was cancelled; payment needs manual review")
		case usecase.ErrGatewayUnavailable:
			response.BadGateway(w, "Payment gateway is unavailable, try again later")
		case usecase.ErrGatewayRejected:
			response.UnprocessableEntity(w, "Payment gateway rejected the verification")
		default:
			response.InternalServerError(w, "Failed to verify payment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Payment verification completed", result)
}
