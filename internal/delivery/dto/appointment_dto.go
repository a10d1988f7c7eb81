package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateAppointmentRequest struct {
	// PatientID is optional for patient principals (their own profile is
	// implied) and required for doctors and admins booking on behalf.
	PatientID       uuid.UUID `json:"patient_id"`
	DoctorID        uuid.UUID `json:"doctor_id" validate:"required"`
	AppointmentDate string    `json:"appointment_date" validate:"required,datetime=2006-01-02"`
	AppointmentTime string    `json:"appointment_time" validate:"required"`
	Type            string    `json:"type" validate:"required,oneof=consultation follow-up checkup emergency surgery test"`
	Priority        string    `json:"priority" validate:"omitempty,oneof=routine urgent emergency"`
	Reason          string    `json:"reason" validate:"required"`
	Symptoms        []string  `json:"symptoms" validate:"omitempty,dive,max=200"`
}

type UpdateStatusRequest struct {
	Status             string `json:"status" validate:"required"`
	CancellationReason string `json:"cancellation_reason"`
	Notes              string `json:"notes"`
}

type RescheduleRequest struct {
	NewAppointmentDate string `json:"new_appointment_date" validate:"required,datetime=2006-01-02"`
	NewAppointmentTime string `json:"new_appointment_time" validate:"required"`
	Reason             string `json:"reason"`
}

type ClinicalNotesRequest struct {
	ClinicalNotes    string `json:"clinical_notes" validate:"required"`
	Recommendations  string `json:"recommendations"`
	FollowUpRequired bool   `json:"follow_up_required"`
	FollowUpDate     string `json:"follow_up_date" validate:"omitempty,datetime=2006-01-02"`
}

// ListAppointmentsQuery carries the raw query-string filters; the usecase
// parses and role-scopes them.
type ListAppointmentsQuery struct {
	Status    string
	Type      string
	Priority  string
	DoctorID  string
	PatientID string
	DateFrom  string
	DateTo    string
	Page      int
	Limit     int
}

// Response DTOs

type PersonSummary struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email,omitempty"`
}

type DoctorSummary struct {
	ID             uuid.UUID `json:"id"`
	FullName       string    `json:"full_name"`
	Specialization string    `json:"specialization,omitempty"`
}

type RescheduleEntry struct {
	FromDate      string    `json:"from_date"`
	FromTime      string    `json:"from_time"`
	RescheduledBy uuid.UUID `json:"rescheduled_by"`
	RescheduledAt time.Time `json:"rescheduled_at"`
	Reason        string    `json:"reason,omitempty"`
}

type AppointmentResponse struct {
	ID                uuid.UUID         `json:"id"`
	AppointmentNumber string            `json:"appointment_number"`
	PatientID         uuid.UUID         `json:"patient_id"`
	DoctorID          uuid.UUID         `json:"doctor_id"`
	Patient           *PersonSummary    `json:"patient,omitempty"`
	Doctor            *DoctorSummary    `json:"doctor,omitempty"`
	AppointmentDate   string            `json:"appointment_date"`
	AppointmentTime   string            `json:"appointment_time"`
	Type              string            `json:"type"`
	Priority          string            `json:"priority"`
	Reason            string            `json:"reason"`
	Symptoms          []string          `json:"symptoms,omitempty"`
	Status            string            `json:"status"`
	ConsultationFee   decimal.Decimal   `json:"consultation_fee"`
	PaymentStatus     string            `json:"payment_status"`
	RescheduleHistory []RescheduleEntry `json:"reschedule_history,omitempty"`

	CancelledBy        *uuid.UUID `json:"cancelled_by,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`

	ClinicalNotes    string     `json:"clinical_notes,omitempty"`
	Recommendations  string     `json:"recommendations,omitempty"`
	FollowUpRequired bool       `json:"follow_up_required"`
	FollowUpDate     *string    `json:"follow_up_date,omitempty"`
	NotesAddedAt     *time.Time `json:"notes_added_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
	TotalPages   int                   `json:"total_pages"`
}

type SlotResponse struct {
	Time     string     `json:"time"`
	Status   string     `json:"status"`
	BookedBy *uuid.UUID `json:"booked_by,omitempty"`
}

type AvailabilityResponse struct {
	DoctorID uuid.UUID      `json:"doctor_id"`
	Date     string         `json:"date"`
	Reason   string         `json:"reason,omitempty"`
	Slots    []SlotResponse `json:"slots"`
}

type StatisticsResponse struct {
	Period   string           `json:"period"`
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
	ByType   map[string]int64 `json:"by_type"`
}
