package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentType classifies the clinical encounter
type AppointmentType string

const (
	AppointmentTypeConsultation AppointmentType = "consultation"
	AppointmentTypeFollowUp     AppointmentType = "follow-up"
	AppointmentTypeCheckup      AppointmentType = "checkup"
	AppointmentTypeEmergency    AppointmentType = "emergency"
	AppointmentTypeSurgery      AppointmentType = "surgery"
	AppointmentTypeTest         AppointmentType = "test"
)

// AppointmentPriority ranks scheduling urgency
type AppointmentPriority string

const (
	PriorityRoutine   AppointmentPriority = "routine"
	PriorityUrgent    AppointmentPriority = "urgent"
	PriorityEmergency AppointmentPriority = "emergency"
)

// PaymentStatus is maintained by the payment collaborator; the scheduler only reads it
type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// StringList is a []string stored as a JSONB column
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("failed to unmarshal JSONB value:", value))
	}
	var result []string
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*l = StringList(result)
	return nil
}

// RescheduleRecord captures the slot an appointment held before a reschedule
type RescheduleRecord struct {
	FromDate      string    `json:"from_date"`
	FromTime      string    `json:"from_time"`
	RescheduledBy uuid.UUID `json:"rescheduled_by"`
	RescheduledAt time.Time `json:"rescheduled_at"`
	Reason        string    `json:"reason,omitempty"`
}

// RescheduleHistory is the append-only reschedule trail, stored as JSONB
type RescheduleHistory []RescheduleRecord

// Value implements driver.Valuer
func (h RescheduleHistory) Value() (driver.Value, error) {
	if len(h) == 0 {
		return nil, nil
	}
	return json.Marshal(h)
}

// Scan implements sql.Scanner
func (h *RescheduleHistory) Scan(value interface{}) error {
	if value == nil {
		*h = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("failed to unmarshal JSONB value:", value))
	}
	var result []RescheduleRecord
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*h = RescheduleHistory(result)
	return nil
}

// Appointment represents a scheduled clinical encounter between one patient
// and one doctor.
type Appointment struct {
	ID                uuid.UUID           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointmentNumber string              `gorm:"type:varchar(20);uniqueIndex;not null" json:"appointment_number"`
	PatientID         uuid.UUID           `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID          uuid.UUID           `gorm:"type:uuid;not null;index" json:"doctor_id"`
	AppointmentDate   time.Time           `gorm:"type:date;not null;index" json:"appointment_date"`
	AppointmentTime   string              `gorm:"type:varchar(5);not null" json:"appointment_time"`
	Type              AppointmentType     `gorm:"type:varchar(20);not null" json:"type"`
	Priority          AppointmentPriority `gorm:"type:varchar(20);not null;default:'routine'" json:"priority"`
	Reason            string              `gorm:"type:text;not null" json:"reason"`
	Symptoms          StringList          `gorm:"type:jsonb" json:"symptoms,omitempty"`
	Status            AppointmentStatus   `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`

	ConsultationFee decimal.Decimal `gorm:"type:numeric(10,2)" json:"consultation_fee"`
	PaymentStatus   PaymentStatus   `gorm:"type:varchar(10);not null;default:'unpaid'" json:"payment_status"`

	// Audit trail
	CreatedBy          uuid.UUID  `gorm:"type:uuid;not null" json:"created_by"`
	UpdatedBy          *uuid.UUID `gorm:"type:uuid" json:"updated_by,omitempty"`
	CancelledBy        *uuid.UUID `gorm:"type:uuid" json:"cancelled_by,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason string     `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`

	RescheduleHistory RescheduleHistory `gorm:"type:jsonb" json:"reschedule_history,omitempty"`

	// Clinical attachments, set only by the owning doctor
	MedicalRecordID  *uuid.UUID `gorm:"type:uuid" json:"medical_record_id,omitempty"`
	PrescriptionID   *uuid.UUID `gorm:"type:uuid" json:"prescription_id,omitempty"`
	ClinicalNotes    string     `gorm:"type:text" json:"clinical_notes,omitempty"`
	Recommendations  string     `gorm:"type:text" json:"recommendations,omitempty"`
	FollowUpRequired bool       `gorm:"not null;default:false" json:"follow_up_required"`
	FollowUpDate     *time.Time `gorm:"type:date" json:"follow_up_date,omitempty"`
	NotesAddedAt     *time.Time `json:"notes_added_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID;references:UserID" json:"patient,omitempty"`
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID;references:UserID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsActive reports whether the appointment currently holds its slot
func (a *Appointment) IsActive() bool {
	return a.Status == AppointmentStatusScheduled || a.Status == AppointmentStatusConfirmed
}

// IsTerminal reports whether the appointment can no longer change status
func (a *Appointment) IsTerminal() bool {
	return IsTerminalStatus(a.Status)
}

// PreviousAppointment returns the most recent reschedule snapshot, or nil if
// the appointment has never been rescheduled.
func (a *Appointment) PreviousAppointment() *RescheduleRecord {
	if len(a.RescheduleHistory) == 0 {
		return nil
	}
	return &a.RescheduleHistory[len(a.RescheduleHistory)-1]
}

// FormatAppointmentNumber renders a sequence value as APT-NNNNNN
func FormatAppointmentNumber(seq int64) string {
	return fmt.Sprintf("APT-%06d", seq)
}
