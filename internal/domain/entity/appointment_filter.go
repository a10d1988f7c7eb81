package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentFilter is a domain-level filter for querying appointments.
// Used by the repository layer to avoid coupling with delivery DTOs.
type AppointmentFilter struct {
	Status    string
	Type      string
	Priority  string
	DoctorID  uuid.UUID // uuid.Nil means unset
	PatientID uuid.UUID // uuid.Nil means unset
	DateFrom  *time.Time
	DateTo    *time.Time
	Page      int
	Limit     int
}

// GroupCount is one row of a grouped aggregation
type GroupCount struct {
	Key   string `gorm:"column:key"`
	Count int64  `gorm:"column:count"`
}

// BookedSlot is the projection the availability resolver overlays onto the
// slot grid.
type BookedSlot struct {
	AppointmentTime string    `gorm:"column:appointment_time"`
	PatientID       uuid.UUID `gorm:"column:patient_id"`
}
