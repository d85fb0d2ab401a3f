package converter

import (
	"salon-booking-api/internal/delivery/dto"
	"salon-booking-api/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to its response DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:            appointment.ID,
		CustomerName:  appointment.CustomerName,
		CustomerEmail: appointment.CustomerEmail,
		CustomerPhone: appointment.CustomerPhone,
		Style:         appointment.StyleValue,
		StyleName:     appointment.StyleName,
		Date:          appointment.Date,
		Status:        string(appointment.Status),
		TotalAmount:   appointment.TotalAmount,
		AmountPaid:    appointment.AmountPaid,
		PaymentStatus: string(appointment.PaymentStatus),
		Note:          appointment.Note,
		Payments:      PaymentsToResponses(appointment.Payments),
		CreatedAt:     appointment.CreatedAt,
		UpdatedAt:     appointment.UpdatedAt,
	}

	if appointment.GatewayReference != nil {
		response.GatewayReference = *appointment.GatewayReference
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// PaymentToResponse converts a payment history entry
func PaymentToResponse(payment *entity.Payment) *dto.PaymentEntryResponse {
	if payment == nil {
		return nil
	}

	response := &dto.PaymentEntryResponse{
		ID:     payment.ID,
		Amount: payment.Amount,
		Method: payment.Method,
		Note:   payment.Note,
		PaidAt: payment.PaidAt,
	}

	if payment.Reference != nil {
		response.Reference = *payment.Reference
	}

	return response
}

// PaymentsToResponses converts a payment history, oldest first
func PaymentsToResponses(payments []entity.Payment) []dto.PaymentEntryResponse {
	responses := make([]dto.PaymentEntryResponse, len(payments))
	for i, payment := range payments {
		resp := PaymentToResponse(&payment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
