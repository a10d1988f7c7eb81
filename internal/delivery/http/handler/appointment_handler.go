package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"clinic-appointment-server/internal/delivery/dto"
	"clinic-appointment-server/internal/service"
	"clinic-appointment-server/internal/usecase"
	"clinic-appointment-server/pkg/response"
	"clinic-appointment-server/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := &dto.ListAppointmentsQuery{
		Status:    params.Get("status"),
		Type:      params.Get("type"),
		Priority:  params.Get("priority"),
		DoctorID:  params.Get("doctor_id"),
		PatientID: params.Get("patient_id"),
		DateFrom:  params.Get("date_from"),
		DateTo:    params.Get("date_to"),
	}
	query.Page, _ = strconv.Atoi(params.Get("page"))
	query.Limit, _ = strconv.Atoi(params.Get("limit"))

	list, err := h.appointmentUsecase.List(r.Context(), query)
	if err != nil {
		h.writeError(w, err, "Failed to list appointments")
		return
	}

	meta := &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		Total:      list.Total,
		TotalPages: list.TotalPages,
	}
	response.SuccessWithMeta(w, http.StatusOK, "Appointments retrieved successfully", list.Appointments, meta)
}

func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update appointment status")
		return
	}

	response.Success(w, http.StatusOK, "Appointment status updated successfully", appointment)
}

func (h *AppointmentHandler) RescheduleAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req dto.RescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Reschedule(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to reschedule appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment rescheduled successfully", appointment)
}

func (h *AppointmentHandler) AddClinicalNotes(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req dto.ClinicalNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.AddClinicalNotes(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to add clinical notes")
		return
	}

	response.Success(w, http.StatusOK, "Clinical notes added successfully", appointment)
}

func (h *AppointmentHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["doctorId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	availability, err := h.appointmentUsecase.GetAvailability(r.Context(), doctorID, r.URL.Query().Get("date"))
	if err != nil {
		h.writeError(w, err, "Failed to get availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", availability)
}

func (h *AppointmentHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.appointmentUsecase.GetStatistics(r.Context(), r.URL.Query().Get("period"))
	if err != nil {
		h.writeError(w, err, "Failed to get statistics")
		return
	}

	response.Success(w, http.StatusOK, "Statistics retrieved successfully", stats)
}

func (h *AppointmentHandler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return uuid.Nil, false
	}
	return id, true
}

// writeError maps usecase and service sentinels to HTTP statuses
func (h *AppointmentHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrAppointmentNotFound):
		response.NotFound(w, "Appointment not found")
	case errors.Is(err, usecase.ErrPatientNotFound):
		response.NotFound(w, "Patient not found")
	case errors.Is(err, service.ErrDoctorNotFound):
		response.NotFound(w, "Doctor not found")
	case errors.Is(err, usecase.ErrForbidden):
		response.Forbidden(w, err.Error())
	case errors.Is(err, service.ErrSlotTaken),
		errors.Is(err, service.ErrPatientConflict):
		response.Error(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, usecase.ErrInvalidDateFormat),
		errors.Is(err, usecase.ErrInvalidTimeFormat),
		errors.Is(err, usecase.ErrInvalidSlot),
		errors.Is(err, usecase.ErrSlotInPast),
		errors.Is(err, usecase.ErrInvalidStatus),
		errors.Is(err, usecase.ErrInvalidTransition),
		errors.Is(err, usecase.ErrCancellationReasonRequired),
		errors.Is(err, usecase.ErrCancelWindowExpired),
		errors.Is(err, usecase.ErrInvalidPeriod),
		errors.Is(err, usecase.ErrNotesNotAllowed),
		errors.Is(err, usecase.ErrPatientRequired),
		errors.Is(err, usecase.ErrInvalidID),
		errors.Is(err, usecase.ErrPatientInactive),
		errors.Is(err, service.ErrDoctorInactive):
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	default:
		response.InternalServerError(w, fallback)
	}
}
