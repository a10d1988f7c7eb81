package service

import (
	"context"
	"io"
	"testing"
	"time"

	"clinic-appointment-server/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type fakeDoctorRepo struct {
	findByUserID func(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error)
}

func (f *fakeDoctorRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error) {
	if f.findByUserID == nil {
		panic("fakeDoctorRepo.FindByUserID not configured")
	}
	return f.findByUserID(ctx, userID)
}

type fakeAppointmentRepo struct {
	create               func(ctx context.Context, appointment *entity.Appointment) error
	findByID             func(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	search               func(ctx context.Context, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error)
	findBookedSlots      func(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.BookedSlot, error)
	doctorHasActiveAt    func(ctx context.Context, doctorID uuid.UUID, date time.Time, timeOfDay string, excludeID uuid.UUID) (bool, error)
	patientHasActiveAt   func(ctx context.Context, patientID uuid.UUID, date time.Time, timeOfDay string, excludeID uuid.UUID) (bool, error)
	updateIfStatus       func(ctx context.Context, id uuid.UUID, expected entity.AppointmentStatus, updates map[string]interface{}) (int64, error)
	update               func(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	nextAppointmentNum   func(ctx context.Context) (int64, error)
	countGroupedByColumn func(ctx context.Context, column string, filter *entity.AppointmentFilter) ([]entity.GroupCount, error)
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, appointment *entity.Appointment) error {
	if f.create == nil {
		panic("fakeAppointmentRepo.Create not configured")
	}
	return f.create(ctx, appointment)
}

func (f *fakeAppointmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	if f.findByID == nil {
		panic("fakeAppointmentRepo.FindByID not configured")
	}
	return f.findByID(ctx, id)
}

func (f *fakeAppointmentRepo) Search(ctx context.Context, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error) {
	if f.search == nil {
		panic("fakeAppointmentRepo.Search not configured")
	}
	return f.search(ctx, filter)
}

func (f *fakeAppointmentRepo) FindBookedSlots(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.BookedSlot, error) {
	if f.findBookedSlots == nil {
		panic("fakeAppointmentRepo.FindBookedSlots not configured")
	}
	return f.findBookedSlots(ctx, doctorID, date)
}

func (f *fakeAppointmentRepo) DoctorHasActiveAt(ctx context.Context, doctorID uuid.UUID, date time.Time, timeOfDay string, excludeID uuid.UUID) (bool, error) {
	if f.doctorHasActiveAt == nil {
		panic("fakeAppointmentRepo.DoctorHasActiveAt not configured")
	}
	return f.doctorHasActiveAt(ctx, doctorID, date, timeOfDay, excludeID)
}

func (f *fakeAppointmentRepo) PatientHasActiveAt(ctx context.Context, patientID uuid.UUID, date time.Time, timeOfDay string, excludeID uuid.UUID) (bool, error) {
	if f.patientHasActiveAt == nil {
		panic("fakeAppointmentRepo.PatientHasActiveAt not configured")
	}
	return f.patientHasActiveAt(ctx, patientID, date, timeOfDay, excludeID)
}

func (f *fakeAppointmentRepo) UpdateIfStatus(ctx context.Context, id uuid.UUID, expected entity.AppointmentStatus, updates map[string]interface{}) (int64, error) {
	if f.updateIfStatus == nil {
		panic("fakeAppointmentRepo.UpdateIfStatus not configured")
	}
	return f.updateIfStatus(ctx, id, expected, updates)
}

func (f *fakeAppointmentRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if f.update == nil {
		panic("fakeAppointmentRepo.Update not configured")
	}
	return f.update(ctx, id, updates)
}

func (f *fakeAppointmentRepo) NextAppointmentNumber(ctx context.Context) (int64, error) {
	if f.nextAppointmentNum == nil {
		panic("fakeAppointmentRepo.NextAppointmentNumber not configured")
	}
	return f.nextAppointmentNum(ctx)
}

func (f *fakeAppointmentRepo) CountGroupedBy(ctx context.Context, column string, filter *entity.AppointmentFilter) ([]entity.GroupCount, error) {
	if f.countGroupedByColumn == nil {
		panic("fakeAppointmentRepo.CountGroupedBy not configured")
	}
	return f.countGroupedByColumn(ctx, column, filter)
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func activeDoctor(id uuid.UUID) *entity.DoctorProfile {
	active := true
	return &entity.DoctorProfile{
		UserID: id,
		User:   entity.User{ID: id, IsActive: &active},
	}
}

func noBookings(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.BookedSlot, error) {
	return nil, nil
}

func newTestAvailability(doctorRepo *fakeDoctorRepo, apptRepo *fakeAppointmentRepo) *AvailabilityService {
	return NewAvailabilityService(testLogger(), doctorRepo, apptRepo, 30)
}

func TestResolveDay_DefaultHours(t *testing.T) {
	doctorID := uuid.New()
	doctor := activeDoctor(doctorID)
	svc := newTestAvailability(
		&fakeDoctorRepo{findByUserID: func(ctx context.Context, id uuid.UUID) (*entity.DoctorProfile, error) {
			return doctor, nil
		}},
		&fakeAppointmentRepo{findBookedSlots: noBookings},
	)

	// A Wednesday, inside the Mon-Fri default.
	date := time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC)
	schedule, err := svc.ResolveDay(context.Background(), doctorID, date, false)
	if err != nil {
		t.Fatalf("ResolveDay failed: %v", err)
	}

	// 09:00-17:00 is 16 half-hour slots.
	if len(schedule.Slots) != 16 {
		t.Fatalf("got %d slots, want 16", len(schedule.Slots))
	}
	if schedule.Slots[0].Time != "09:00" {
		t.Errorf("first slot = %s, want 09:00", schedule.Slots[0].Time)
	}
	if last := schedule.Slots[len(schedule.Slots)-1]; last.Time != "16:30" {
		t.Errorf("last slot = %s, want 16:30", last.Time)
	}
	if got := schedule.SlotStatusAt("17:00"); got != SlotOutsideHours {
		t.Errorf("slot at work end = %s, want %s", got, SlotOutsideHours)
	}

	// 13:00-14:00 default break.
	if got := schedule.SlotStatusAt("13:00"); got != SlotBreak {
		t.Errorf("slot at 13:00 = %s, want %s", got, SlotBreak)
	}
	if got := schedule.SlotStatusAt("13:30"); got != SlotBreak {
		t.Errorf("slot at 13:30 = %s, want %s", got, SlotBreak)
	}
	if got := schedule.SlotStatusAt("12:30"); got != SlotAvailable {
		t.Errorf("slot at 12:30 = %s, want %s", got, SlotAvailable)
	}
	if got := schedule.SlotStatusAt("14:00"); got != SlotAvailable {
		t.Errorf("slot at 14:00 = %s, want %s", got, SlotAvailable)
	}
}

func TestResolveDay_NoPartialSlotAtWorkEnd(t *testing.T) {
	doctorID := uuid.New()
	doctor := activeDoctor(doctorID)
	doctor.WorkStart = "09:00"
	doctor.WorkEnd = "12:15"
	doctor.BreakStart = "11:00"
	doctor.BreakEnd = "11:00"
	svc := newTestAvailability(
		&fakeDoctorRepo{findByUserID: func(ctx context.Context, id uuid.UUID) (*entity.DoctorProfile, error) {
			return doctor, nil
		}},
		&fakeAppointmentRepo{findBookedSlots: noBookings},
	)

	date := time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC)
	schedule, err := svc.ResolveDay(context.Background(), doctorID, date, false)
	if err != nil {
		t.Fatalf("ResolveDay failed: %v", err)
	}

	// 12:00 would run past 12:15, so the last slot is 11:30.
	if last := schedule.Slots[len(schedule.Slots)-1]; last.Time != "11:30" {
		t.Errorf("last slot = %s, want 11:30", last.Time)
	}
	if got := schedule.SlotStatusAt("12:00"); got != SlotOutsideHours {
		t.Errorf("slot at 12:00 = %s, want %s", got, SlotOutsideHours)
	}
}

func TestResolveDay_BookedOverlay(t *testing.T) {
	doctorID := uuid.New()
	patientID := uuid.New()
	doctor := activeDoctor(doctorID)
	svc := newTestAvailability(
		&fakeDoctorRepo{findByUserID: func(ctx context.Context, id uuid.UUID) (*entity.DoctorProfile, error) {
			return doctor, nil
		}},
		&fakeAppointmentRepo{findBookedSlots: func(ctx context.Context, id uuid.UUID, date time.Time) ([]entity.BookedSlot, error) {
			return []entity.BookedSlot{
				{AppointmentTime: "10:00", PatientID: patientID},
				{AppointmentTime: "15:30", PatientID: patientID},
			}, nil
		}},
	)

	date := time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC)

	schedule, err := svc.ResolveDay(context.Background(), doctorID, date, false)
	if err != nil {
		t.Fatalf("ResolveDay failed: %v", err)
	}
	if got := schedule.SlotStatusAt("10:00"); got != SlotBooked {
		t.Errorf("slot at 10:00 = %s, want %s", got, SlotBooked)
	}
	if got := schedule.SlotStatusAt("15:30"); got != SlotBooked {
		t.Errorf("slot at 15:30 = %s, want %s", got, SlotBooked)
	}
	if got := schedule.SlotStatusAt("10:30"); got != SlotAvailable {
		t.Errorf("slot at 10:30 = %s, want %s", got, SlotAvailable)
	}
	for _, slot := range schedule.Slots {
		if slot.BookedBy != nil {
			t.Fatalf("slot %s exposes BookedBy to non-admin caller", slot.Time)
		}
	}

	// Admin callers see who holds the slot.
	schedule, err = svc.ResolveDay(context.Background(), doctorID, date, true)
	if err != nil {
		t.Fatalf("ResolveDay failed: %v", err)
	}
	for _, slot := range schedule.Slots {
		if slot.Time == "10:00" {
			if slot.BookedBy == nil || *slot.BookedBy != patientID {
				t.Fatalf("slot 10:00 BookedBy = %v, want %s", slot.BookedBy, patientID)
			}
		}
	}
}

func TestResolveDay_OffDay(t *testing.T) {
	doctorID := uuid.New()
	doctor := activeDoctor(doctorID)
	doctor.AvailableDays = entity.StringList{"monday", "wednesday"}
	svc := newTestAvailability(
		&fakeDoctorRepo{findByUserID: func(ctx context.Context, id uuid.UUID) (*entity.DoctorProfile, error) {
			return doctor, nil
		}},
		&fakeAppointmentRepo{},
	)

	// A Tuesday.
	date := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	schedule, err := svc.ResolveDay(context.Background(), doctorID, date, false)
	if err != nil {
		t.Fatalf("ResolveDay failed: %v", err)
	}
	if schedule.Reason != ReasonDoctorOffDay {
		t.Errorf("reason = %q, want %q", schedule.Reason, ReasonDoctorOffDay)
	}
	if len(schedule.Slots) != 0 {
		t.Errorf("got %d slots on an off day, want 0", len(schedule.Slots))
	}

	// Weekend is off by default when no days are configured.
	doctor.AvailableDays = nil
	saturday := time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC)
	schedule, err = svc.ResolveDay(context.Background(), doctorID, saturday, false)
	if err != nil {
		t.Fatalf("ResolveDay failed: %v", err)
	}
	if schedule.Reason != ReasonDoctorOffDay {
		t.Errorf("saturday reason = %q, want %q", schedule.Reason, ReasonDoctorOffDay)
	}
}

func TestResolveDay_UnavailableWindow(t *testing.T) {
	doctorID := uuid.New()
	doctor := activeDoctor(doctorID)
	until := time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC)
	doctor.UnavailableUntil = &until
	svc := newTestAvailability(
		&fakeDoctorRepo{findByUserID: func(ctx context.Context, id uuid.UUID) (*entity.DoctorProfile, error) {
			return doctor, nil
		}},
		&fakeAppointmentRepo{},
	)

	date := time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC)
	schedule, err := svc.ResolveDay(context.Background(), doctorID, date, false)
	if err != nil {
		t.Fatalf("ResolveDay failed: %v", err)
	}
	if schedule.Reason != ReasonDoctorUnavailable {
		t.Errorf("reason = %q, want %q", schedule.Reason, ReasonDoctorUnavailable)
	}
	for _, slot := range schedule.Slots {
		if slot.Status != SlotOutsideHours {
			t.Fatalf("slot %s = %s during unavailability, want %s", slot.Time, slot.Status, SlotOutsideHours)
		}
	}
}

func TestLookupActiveDoctor(t *testing.T) {
	doctorID := uuid.New()

	svc := newTestAvailability(
		&fakeDoctorRepo{findByUserID: func(ctx context.Context, id uuid.UUID) (*entity.DoctorProfile, error) {
			return nil, nil
		}},
		&fakeAppointmentRepo{},
	)
	if _, err := svc.LookupActiveDoctor(context.Background(), doctorID); err != ErrDoctorNotFound {
		t.Errorf("missing doctor: got %v, want %v", err, ErrDoctorNotFound)
	}

	inactive := false
	svc = newTestAvailability(
		&fakeDoctorRepo{findByUserID: func(ctx context.Context, id uuid.UUID) (*entity.DoctorProfile, error) {
			return &entity.DoctorProfile{UserID: id, User: entity.User{ID: id, IsActive: &inactive}}, nil
		}},
		&fakeAppointmentRepo{},
	)
	if _, err := svc.LookupActiveDoctor(context.Background(), doctorID); err != ErrDoctorInactive {
		t.Errorf("inactive doctor: got %v, want %v", err, ErrDoctorInactive)
	}
}

func TestOnGrid(t *testing.T) {
	svc := newTestAvailability(&fakeDoctorRepo{}, &fakeAppointmentRepo{})

	onGrid := []string{"09:00", "09:30", "16:30", "00:00"}
	for _, v := range onGrid {
		if !svc.OnGrid(v) {
			t.Errorf("OnGrid(%q) = false, want true", v)
		}
	}
	offGrid := []string{"09:15", "09:01", "9am", "25:00", ""}
	for _, v := range offGrid {
		if svc.OnGrid(v) {
			t.Errorf("OnGrid(%q) = true, want false", v)
		}
	}
}

func TestSlotStart_UsesDoctorTimezone(t *testing.T) {
	doctor := activeDoctor(uuid.New())
	doctor.Timezone = "America/New_York"

	date := time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC)
	start, err := SlotStart(doctor, date, "09:00")
	if err != nil {
		t.Fatalf("SlotStart failed: %v", err)
	}
	if start.Location().String() != "America/New_York" {
		t.Errorf("location = %s, want America/New_York", start.Location())
	}
	// 09:00 EDT is 13:00 UTC.
	if got := start.UTC().Hour(); got != 13 {
		t.Errorf("start in UTC = %02d:00, want 13:00", got)
	}

	doctor.Timezone = "not/a-zone"
	start, err = SlotStart(doctor, date, "09:00")
	if err != nil {
		t.Fatalf("SlotStart failed: %v", err)
	}
	if start.Location() != time.UTC {
		t.Errorf("bad timezone should fall back to UTC, got %s", start.Location())
	}
}
