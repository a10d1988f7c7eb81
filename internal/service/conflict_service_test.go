package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestConflictCheck(t *testing.T) {
	doctorID := uuid.New()
	patientID := uuid.New()
	date := time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		doctorBusy  bool
		patientBusy bool
		want        error
	}{
		{"free slot", false, false, nil},
		{"doctor busy", true, false, ErrSlotTaken},
		{"patient busy", false, true, ErrPatientConflict},
		{"doctor conflict wins", true, true, ErrSlotTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeAppointmentRepo{
				doctorHasActiveAt: func(ctx context.Context, id uuid.UUID, d time.Time, timeOfDay string, excludeID uuid.UUID) (bool, error) {
					return tt.doctorBusy, nil
				},
				patientHasActiveAt: func(ctx context.Context, id uuid.UUID, d time.Time, timeOfDay string, excludeID uuid.UUID) (bool, error) {
					return tt.patientBusy, nil
				},
			}
			svc := NewConflictService(testLogger(), repo)
			err := svc.Check(context.Background(), doctorID, patientID, date, "10:00", uuid.Nil)
			if err != tt.want {
				t.Fatalf("Check = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestConflictCheck_PassesExcludeID(t *testing.T) {
	excluded := uuid.New()
	var gotDoctorExclude, gotPatientExclude uuid.UUID
	repo := &fakeAppointmentRepo{
		doctorHasActiveAt: func(ctx context.Context, id uuid.UUID, d time.Time, timeOfDay string, excludeID uuid.UUID) (bool, error) {
			gotDoctorExclude = excludeID
			return false, nil
		},
		patientHasActiveAt: func(ctx context.Context, id uuid.UUID, d time.Time, timeOfDay string, excludeID uuid.UUID) (bool, error) {
			gotPatientExclude = excludeID
			return false, nil
		},
	}
	svc := NewConflictService(testLogger(), repo)
	date := time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC)
	if err := svc.Check(context.Background(), uuid.New(), uuid.New(), date, "10:00", excluded); err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if gotDoctorExclude != excluded || gotPatientExclude != excluded {
		t.Fatalf("exclude id not forwarded: doctor=%s patient=%s", gotDoctorExclude, gotPatientExclude)
	}
}

func TestTranslateWriteError(t *testing.T) {
	svc := NewConflictService(testLogger(), &fakeAppointmentRepo{})
	opaque := errors.New("connection reset")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil passes through", nil, nil},
		{"unrelated error passes through", opaque, opaque},
		{
			"doctor slot index",
			&pgconn.PgError{Code: "23505", ConstraintName: "idx_appointments_doctor_slot_active"},
			ErrSlotTaken,
		},
		{
			"patient slot index",
			&pgconn.PgError{Code: "23505", ConstraintName: "idx_appointments_patient_slot_active"},
			ErrPatientConflict,
		},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, ErrSlotTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.TranslateWriteError(tt.in); got != tt.want {
				t.Fatalf("TranslateWriteError = %v, want %v", got, tt.want)
			}
		})
	}

	// Other unique violations are not conflicts.
	other := &pgconn.PgError{Code: "23505", ConstraintName: "appointments_appointment_number_key"}
	if got := svc.TranslateWriteError(other); got != other {
		t.Fatalf("unrelated unique violation rewritten to %v", got)
	}
}
