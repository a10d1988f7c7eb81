package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-appointment-server/internal/domain/entity"
	"clinic-appointment-server/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrDoctorNotFound   = errors.New("doctor not found")
	ErrDoctorInactive   = errors.New("doctor is not active")
	ErrInvalidTimeOfDay = errors.New("invalid time of day, use HH:MM")
)

// SlotStatus labels one 30-minute slot on a doctor's day grid
type SlotStatus string

const (
	SlotAvailable    SlotStatus = "available"
	SlotBooked       SlotStatus = "booked"
	SlotBreak        SlotStatus = "break"
	SlotOutsideHours SlotStatus = "outside-hours"
)

// Day-level reasons returned alongside an empty or blocked grid
const (
	ReasonDoctorOffDay      = "doctor-off-day"
	ReasonDoctorUnavailable = "doctor-unavailable"
)

// Slot is one entry of a resolved day grid. BookedBy is only populated for
// admin callers.
type Slot struct {
	Time     string
	Status   SlotStatus
	BookedBy *uuid.UUID
}

// DaySchedule is the resolved grid for one doctor on one calendar date
type DaySchedule struct {
	DoctorID uuid.UUID
	Date     time.Time
	Reason   string
	Slots    []Slot
}

// SlotStatusAt returns the status of the slot starting at the given time,
// SlotOutsideHours if no such slot was generated.
func (d *DaySchedule) SlotStatusAt(timeOfDay string) SlotStatus {
	for _, slot := range d.Slots {
		if slot.Time == timeOfDay {
			return slot.Status
		}
	}
	return SlotOutsideHours
}

// AvailabilityService resolves the bookable slot grid of a doctor's day.
type AvailabilityService struct {
	log         *logrus.Logger
	doctorRepo  repository.DoctorProfileRepository
	apptRepo    repository.AppointmentRepository
	slotMinutes int
}

func NewAvailabilityService(
	log *logrus.Logger,
	doctorRepo repository.DoctorProfileRepository,
	apptRepo repository.AppointmentRepository,
	slotMinutes int,
) *AvailabilityService {
	return &AvailabilityService{
		log:         log,
		doctorRepo:  doctorRepo,
		apptRepo:    apptRepo,
		slotMinutes: slotMinutes,
	}
}

// SlotMinutes returns the configured scheduling granularity.
func (s *AvailabilityService) SlotMinutes() int {
	return s.slotMinutes
}

// LookupActiveDoctor loads a doctor profile, failing if the doctor is
// missing or the account is disabled.
func (s *AvailabilityService) LookupActiveDoctor(ctx context.Context, doctorID uuid.UUID) (*entity.DoctorProfile, error) {
	doctor, err := s.doctorRepo.FindByUserID(ctx, doctorID)
	if err != nil {
		s.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if !doctor.User.Active() {
		return nil, ErrDoctorInactive
	}
	return doctor, nil
}

// ResolveDay produces the slot grid for one doctor on one calendar date.
//
// Grid rules:
//   - slots run from work start to work end on the configured granularity
//   - a slot is generated only if its full window fits before work end
//   - a slot intersecting [breakStart, breakEnd) is marked break
//   - active bookings overlay their slot as booked
func (s *AvailabilityService) ResolveDay(ctx context.Context, doctorID uuid.UUID, date time.Time, includeBookedBy bool) (*DaySchedule, error) {
	doctor, err := s.LookupActiveDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return s.ResolveDayFor(ctx, doctor, date, includeBookedBy)
}

// ResolveDayFor is ResolveDay with an already-loaded doctor profile.
func (s *AvailabilityService) ResolveDayFor(ctx context.Context, doctor *entity.DoctorProfile, date time.Time, includeBookedBy bool) (*DaySchedule, error) {
	schedule := &DaySchedule{DoctorID: doctor.UserID, Date: date}

	workStart, workEnd, breakStart, breakEnd := doctor.WorkingHours()
	startMin, err := parseTimeOfDay(workStart)
	if err != nil {
		return nil, fmt.Errorf("doctor %s has malformed work start %q: %w", doctor.UserID, workStart, err)
	}
	endMin, err := parseTimeOfDay(workEnd)
	if err != nil {
		return nil, fmt.Errorf("doctor %s has malformed work end %q: %w", doctor.UserID, workEnd, err)
	}
	breakStartMin, err := parseTimeOfDay(breakStart)
	if err != nil {
		return nil, fmt.Errorf("doctor %s has malformed break start %q: %w", doctor.UserID, breakStart, err)
	}
	breakEndMin, err := parseTimeOfDay(breakEnd)
	if err != nil {
		return nil, fmt.Errorf("doctor %s has malformed break end %q: %w", doctor.UserID, breakEnd, err)
	}

	if doctor.UnavailableOn(date) {
		schedule.Reason = ReasonDoctorUnavailable
		for minute := startMin; minute+s.slotMinutes <= endMin; minute += s.slotMinutes {
			schedule.Slots = append(schedule.Slots, Slot{
				Time:   formatTimeOfDay(minute),
				Status: SlotOutsideHours,
			})
		}
		return schedule, nil
	}

	if !doctor.WorksOn(date.Weekday()) {
		schedule.Reason = ReasonDoctorOffDay
		return schedule, nil
	}

	for minute := startMin; minute+s.slotMinutes <= endMin; minute += s.slotMinutes {
		status := SlotAvailable
		if minute < breakEndMin && minute+s.slotMinutes > breakStartMin {
			status = SlotBreak
		}
		schedule.Slots = append(schedule.Slots, Slot{
			Time:   formatTimeOfDay(minute),
			Status: status,
		})
	}

	booked, err := s.apptRepo.FindBookedSlots(ctx, doctor.UserID, date)
	if err != nil {
		s.log.Warnf("Failed to load bookings for doctor %s on %s: %+v", doctor.UserID, date.Format("2006-01-02"), err)
		return nil, err
	}
	for _, booking := range booked {
		for i := range schedule.Slots {
			if schedule.Slots[i].Time == booking.AppointmentTime {
				schedule.Slots[i].Status = SlotBooked
				if includeBookedBy {
					patientID := booking.PatientID
					schedule.Slots[i].BookedBy = &patientID
				}
			}
		}
	}

	return schedule, nil
}

// OnGrid reports whether a time of day falls on the scheduling granularity.
func (s *AvailabilityService) OnGrid(timeOfDay string) bool {
	minute, err := parseTimeOfDay(timeOfDay)
	if err != nil {
		return false
	}
	return minute%s.slotMinutes == 0
}

// SlotStart combines a calendar date and a time of day into an instant in
// the doctor's timezone.
func SlotStart(doctor *entity.DoctorProfile, date time.Time, timeOfDay string) (time.Time, error) {
	minute, err := parseTimeOfDay(timeOfDay)
	if err != nil {
		return time.Time{}, err
	}
	loc := doctor.Location()
	return time.Date(date.Year(), date.Month(), date.Day(), minute/60, minute%60, 0, 0, loc), nil
}

func parseTimeOfDay(value string) (int, error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return 0, ErrInvalidTimeOfDay
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

func formatTimeOfDay(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
