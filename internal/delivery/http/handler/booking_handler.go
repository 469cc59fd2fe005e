package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"medcare-portal/internal/delivery/dto"
	"medcare-portal/internal/delivery/http/middleware"
	"medcare-portal/internal/usecase"
	"medcare-portal/pkg/response"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
	}
}

func (h *BookingHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	req.IdempotencyKey = r.Header.Get(IdempotencyKeyHeader)

	result, err := h.bookingUsecase.BookAppointment(r.Context(), identity, &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if result.Replayed {
		response.Success(w, http.StatusOK, "Appointment already booked", result)
		return
	}
	response.Success(w, http.StatusCreated, "Appointment booked successfully", result)
}

func (h *BookingHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var bookingErr *usecase.BookingError
	if !errors.As(err, &bookingErr) {
		captureError(r, err)
		response.InternalServerError(w, "Failed to book appointment")
		return
	}

	form := dto.BookingResult{Form: bookingErr.Form}
	switch {
	case errors.Is(err, usecase.ErrBookingValidation):
		response.ErrorWithData(w, http.StatusBadRequest, "Validation failed", bookingErr.Fields, form)
	case errors.Is(err, usecase.ErrBookingInProgress):
		response.ErrorWithData(w, http.StatusConflict, "This booking is already being processed", nil, form)
	case errors.Is(err, usecase.ErrDoctorNotFound):
		response.ErrorWithData(w, http.StatusNotFound, "Doctor not found", nil, form)
	case errors.Is(err, usecase.ErrNotPatient):
		response.ErrorWithData(w, http.StatusForbidden, "Only patients can book appointments", nil, form)
	case errors.Is(err, usecase.ErrProfileNotFound):
		response.ErrorWithData(w, http.StatusForbidden, "Profile not found", nil, form)
	default:
		captureError(r, err)
		response.ErrorWithData(w, http.StatusInternalServerError, "Failed to book appointment", nil, form)
	}
}
