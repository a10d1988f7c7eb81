package repository

import (
	"context"
	"time"

	"clinic-appointment-server/internal/domain/entity"

	"github.com/google/uuid"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	Search(ctx context.Context, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error)

	// FindBookedSlots returns the active (scheduled or confirmed) bookings
	// of one doctor on one calendar date.
	FindBookedSlots(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.BookedSlot, error)

	// DoctorHasActiveAt / PatientHasActiveAt are the conflict pre-checks.
	// excludeID skips one appointment, used during reschedule.
	DoctorHasActiveAt(ctx context.Context, doctorID uuid.UUID, date time.Time, timeOfDay string, excludeID uuid.UUID) (bool, error)
	PatientHasActiveAt(ctx context.Context, patientID uuid.UUID, date time.Time, timeOfDay string, excludeID uuid.UUID) (bool, error)

	// UpdateIfStatus applies updates only while the row still holds the
	// expected status. Returns affected rows: 0 means a concurrent writer
	// moved the status first.
	UpdateIfStatus(ctx context.Context, id uuid.UUID, expected entity.AppointmentStatus, updates map[string]interface{}) (int64, error)

	// Update applies updates unconditionally (clinical notes).
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error

	// NextAppointmentNumber draws the next value from the database sequence.
	NextAppointmentNumber(ctx context.Context) (int64, error)

	CountGroupedBy(ctx context.Context, column string, filter *entity.AppointmentFilter) ([]entity.GroupCount, error)
}
