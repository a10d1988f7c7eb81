package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"clinic-appointment-server/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSlotTaken       = errors.New("doctor is already booked for this slot")
	ErrPatientConflict = errors.New("patient already has an appointment at this time")
)

// Names of the partial unique indexes backing the no-double-booking
// invariants (see db/migrations).
const (
	doctorSlotIndex  = "idx_appointments_doctor_slot_active"
	patientSlotIndex = "idx_appointments_patient_slot_active"
)

// ConflictService rejects bookings that would double-book a doctor or a
// patient. The pre-checks catch the common case; the partial unique indexes
// are the authority under concurrent writes, surfaced through
// TranslateWriteError.
type ConflictService struct {
	log      *logrus.Logger
	apptRepo repository.AppointmentRepository
}

func NewConflictService(log *logrus.Logger, apptRepo repository.AppointmentRepository) *ConflictService {
	return &ConflictService{log: log, apptRepo: apptRepo}
}

// Check runs the doctor and patient conflict pre-checks for a proposed
// slot. excludeID skips one appointment, used during reschedule.
func (s *ConflictService) Check(ctx context.Context, doctorID, patientID uuid.UUID, date time.Time, timeOfDay string, excludeID uuid.UUID) error {
	taken, err := s.apptRepo.DoctorHasActiveAt(ctx, doctorID, date, timeOfDay, excludeID)
	if err != nil {
		s.log.Warnf("Doctor conflict check failed for %s: %+v", doctorID, err)
		return err
	}
	if taken {
		return ErrSlotTaken
	}

	taken, err = s.apptRepo.PatientHasActiveAt(ctx, patientID, date, timeOfDay, excludeID)
	if err != nil {
		s.log.Warnf("Patient conflict check failed for %s: %+v", patientID, err)
		return err
	}
	if taken {
		return ErrPatientConflict
	}

	return nil
}

// TranslateWriteError maps a duplicate-key failure from the partial unique
// indexes to the matching conflict error. The second writer of a slot race
// lands here.
func (s *ConflictService) TranslateWriteError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, patientSlotIndex) {
			return ErrPatientConflict
		}
		if strings.Contains(pgErr.ConstraintName, doctorSlotIndex) {
			return ErrSlotTaken
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrSlotTaken
	}
	return err
}
