package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-appointment-server/internal/converter"
	"clinic-appointment-server/internal/delivery/dto"
	"clinic-appointment-server/internal/delivery/http/middleware"
	"clinic-appointment-server/internal/domain/entity"
	"clinic-appointment-server/internal/domain/repository"
	"clinic-appointment-server/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrAppointmentNotFound        = errors.New("appointment not found")
	ErrPatientNotFound            = errors.New("patient not found")
	ErrPatientInactive            = errors.New("patient account is not active")
	ErrForbidden                  = errors.New("you are not allowed to perform this operation")
	ErrPatientRequired            = errors.New("patient_id is required when booking on behalf of a patient")
	ErrInvalidDateFormat          = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTimeFormat          = errors.New("invalid time format, use HH:MM")
	ErrInvalidSlot                = errors.New("slot is outside the doctor's bookable hours")
	ErrSlotInPast                 = errors.New("appointment slot must be in the future")
	ErrInvalidStatus              = errors.New("unknown appointment status")
	ErrInvalidTransition          = errors.New("status transition is not allowed")
	ErrCancellationReasonRequired = errors.New("cancellation reason is required")
	ErrCancelWindowExpired        = errors.New("appointments can only be cancelled at least 24 hours in advance")
	ErrInvalidPeriod              = errors.New("invalid period, use day, week, month or year")
	ErrNotesNotAllowed            = errors.New("clinical notes require a confirmed or completed appointment")
	ErrInvalidID                  = errors.New("invalid id")
)

// conditionalUpdateAttempts bounds the reload-and-retry loop around the
// conditional status writes.
const conditionalUpdateAttempts = 2

type AppointmentUsecase interface {
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	List(ctx context.Context, query *dto.ListAppointmentsQuery) (*dto.AppointmentListResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateStatusRequest) (*dto.AppointmentResponse, error)
	Reschedule(ctx context.Context, id uuid.UUID, req *dto.RescheduleRequest) (*dto.AppointmentResponse, error)
	AddClinicalNotes(ctx context.Context, id uuid.UUID, req *dto.ClinicalNotesRequest) (*dto.AppointmentResponse, error)
	GetAvailability(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailabilityResponse, error)
	GetStatistics(ctx context.Context, period string) (*dto.StatisticsResponse, error)
}

type appointmentUsecase struct {
	log          *logrus.Logger
	apptRepo     repository.AppointmentRepository
	doctorRepo   repository.DoctorProfileRepository
	patientRepo  repository.PatientProfileRepository
	availability *service.AvailabilityService
	conflicts    *service.ConflictService
	events       service.EventPublisher
	audit        service.AuditService
	cancelWindow time.Duration

	now func() time.Time
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	apptRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorProfileRepository,
	patientRepo repository.PatientProfileRepository,
	availability *service.AvailabilityService,
	conflicts *service.ConflictService,
	events service.EventPublisher,
	audit service.AuditService,
	cancelWindow time.Duration,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:          log,
		apptRepo:     apptRepo,
		doctorRepo:   doctorRepo,
		patientRepo:  patientRepo,
		availability: availability,
		conflicts:    conflicts,
		events:       events,
		audit:        audit,
		cancelWindow: cancelWindow,
		now:          time.Now,
	}
}

// Create books a new appointment on behalf of a patient.
//
// Flow:
//  1. Resolve the target patient from the principal (patients book only for
//     themselves, doctors and admins for anyone)
//  2. Validate the slot against the doctor's availability grid
//  3. Run the conflict pre-checks
//  4. Draw the next appointment number from the sequence
//  5. Insert; a duplicate-key failure from a concurrent writer is
//     translated to the matching conflict error
func (u *appointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	principal, ok := middleware.GetPrincipalFromContext(ctx)
	if !ok {
		return nil, ErrForbidden
	}

	date, err := time.Parse("2006-01-02", req.AppointmentDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if _, err := time.Parse("15:04", req.AppointmentTime); err != nil {
		return nil, ErrInvalidTimeFormat
	}
	if !u.availability.OnGrid(req.AppointmentTime) {
		return nil, ErrInvalidSlot
	}

	patientID, err := u.resolvePatientID(principal, req.PatientID)
	if err != nil {
		return nil, err
	}
	patient, err := u.patientRepo.FindByUserID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	if !patient.User.Active() {
		return nil, ErrPatientInactive
	}

	doctor, err := u.availability.LookupActiveDoctor(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor.UnavailableOn(date) {
		return nil, service.ErrDoctorInactive
	}

	if err := u.requireFutureSlot(doctor, date, req.AppointmentTime); err != nil {
		return nil, err
	}

	schedule, err := u.availability.ResolveDayFor(ctx, doctor, date, false)
	if err != nil {
		return nil, err
	}
	switch schedule.SlotStatusAt(req.AppointmentTime) {
	case service.SlotAvailable:
	case service.SlotBooked:
		return nil, service.ErrSlotTaken
	default:
		return nil, ErrInvalidSlot
	}

	if err := u.conflicts.Check(ctx, doctor.UserID, patientID, date, req.AppointmentTime, uuid.Nil); err != nil {
		return nil, err
	}

	seq, err := u.apptRepo.NextAppointmentNumber(ctx)
	if err != nil {
		u.log.Errorf("Failed to draw appointment number: %+v", err)
		return nil, err
	}

	priority := entity.AppointmentPriority(req.Priority)
	if priority == "" {
		priority = entity.PriorityRoutine
	}

	appointment := &entity.Appointment{
		AppointmentNumber: entity.FormatAppointmentNumber(seq),
		PatientID:         patientID,
		DoctorID:          doctor.UserID,
		AppointmentDate:   date,
		AppointmentTime:   req.AppointmentTime,
		Type:              entity.AppointmentType(req.Type),
		Priority:          priority,
		Reason:            req.Reason,
		Symptoms:          entity.StringList(req.Symptoms),
		Status:            entity.AppointmentStatusScheduled,
		ConsultationFee:   doctor.ConsultationFee,
		PaymentStatus:     entity.PaymentStatusUnpaid,
		CreatedBy:         principal.UserID,
	}

	if err := u.apptRepo.Create(ctx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, u.conflicts.TranslateWriteError(err)
	}

	u.audit.Record(ctx, principal.UserID, entity.AuditActionAppointmentCreate, appointment.ID, nil, map[string]interface{}{
		"appointment_number": appointment.AppointmentNumber,
		"doctor_id":          appointment.DoctorID.String(),
		"date":               req.AppointmentDate,
		"time":               req.AppointmentTime,
	})
	u.events.Publish(service.NewAppointmentEvent(service.EventAppointmentCreated, appointment, principal.UserID))

	u.log.Infof("Appointment created: id=%s, number=%s, doctor=%s, slot=%s %s",
		appointment.ID, appointment.AppointmentNumber, appointment.DoctorID, req.AppointmentDate, req.AppointmentTime)

	return u.reload(ctx, appointment)
}

func (u *appointmentUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	principal, ok := middleware.GetPrincipalFromContext(ctx)
	if !ok {
		return nil, ErrForbidden
	}

	appointment, err := u.loadAuthorized(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) List(ctx context.Context, query *dto.ListAppointmentsQuery) (*dto.AppointmentListResponse, error) {
	principal, ok := middleware.GetPrincipalFromContext(ctx)
	if !ok {
		return nil, ErrForbidden
	}

	filter, err := u.buildFilter(principal, query)
	if err != nil {
		return nil, err
	}

	appointments, total, err := u.apptRepo.Search(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to search appointments: %+v", err)
		return nil, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        total,
		Page:         filter.Page,
		Limit:        filter.Limit,
		TotalPages:   totalPages,
	}, nil
}

// UpdateStatus moves an appointment through the transition table using a
// conditional write. A lost race reloads and re-checks the transition once.
func (u *appointmentUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateStatusRequest) (*dto.AppointmentResponse, error) {
	principal, ok := middleware.GetPrincipalFromContext(ctx)
	if !ok {
		return nil, ErrForbidden
	}

	target, valid := entity.ParseAppointmentStatus(req.Status)
	if !valid {
		return nil, ErrInvalidStatus
	}
	// The rescheduled status is only reachable through the reschedule
	// compound operation.
	if target == entity.AppointmentStatusRescheduled {
		return nil, ErrInvalidTransition
	}

	for attempt := 0; attempt < conditionalUpdateAttempts; attempt++ {
		appointment, err := u.loadAuthorized(ctx, principal, id)
		if err != nil {
			return nil, err
		}
		current := appointment.Status

		actorRole := principal.Role
		if current == entity.AppointmentStatusRescheduled && target == entity.AppointmentStatusScheduled {
			// Applying the new slot back to scheduled is a system
			// transition, triggered by either participant side.
			if principal.IsDoctor() || principal.IsAdmin() {
				actorRole = entity.RoleSystem
			}
		}

		if !entity.TransitionExists(current, target) {
			return nil, ErrInvalidTransition
		}
		if !entity.CanTransition(current, target, actorRole) {
			return nil, ErrForbidden
		}

		updates := map[string]interface{}{
			"status":     target,
			"updated_by": principal.UserID,
		}
		switch target {
		case entity.AppointmentStatusCancelled:
			if req.CancellationReason == "" {
				return nil, ErrCancellationReasonRequired
			}
			if principal.IsPatient() {
				if err := u.requireCancelWindow(ctx, appointment); err != nil {
					return nil, err
				}
			}
			updates["cancelled_by"] = principal.UserID
			updates["cancelled_at"] = u.now().UTC()
			updates["cancellation_reason"] = req.CancellationReason
		case entity.AppointmentStatusCompleted:
			updates["completed_at"] = u.now().UTC()
		}
		// Doctors and admins may attach encounter notes to a transition.
		if req.Notes != "" && (principal.IsDoctor() || principal.IsAdmin()) {
			updates["clinical_notes"] = req.Notes
			updates["notes_added_at"] = u.now().UTC()
		}

		rows, err := u.apptRepo.UpdateIfStatus(ctx, id, current, updates)
		if err != nil {
			u.log.Warnf("Failed to update status of appointment %s: %+v", id, err)
			return nil, u.conflicts.TranslateWriteError(err)
		}
		if rows == 0 {
			// A concurrent writer moved the status; reload and re-check.
			continue
		}

		u.audit.Record(ctx, principal.UserID, entity.AuditActionAppointmentStatus, id,
			map[string]interface{}{"status": string(current)},
			map[string]interface{}{"status": string(target)})
		if eventType := statusEventType(target); eventType != "" {
			u.events.Publish(service.NewAppointmentEvent(eventType, appointment, principal.UserID))
		}

		u.log.Infof("Appointment status updated: id=%s, %s -> %s", id, current, target)
		appointment.Status = target
		return u.reload(ctx, appointment)
	}

	return nil, ErrInvalidTransition
}

// Reschedule atomically moves an appointment to a new slot, appending the
// old slot to the reschedule trail and parking the status at rescheduled.
func (u *appointmentUsecase) Reschedule(ctx context.Context, id uuid.UUID, req *dto.RescheduleRequest) (*dto.AppointmentResponse, error) {
	principal, ok := middleware.GetPrincipalFromContext(ctx)
	if !ok {
		return nil, ErrForbidden
	}

	newDate, err := time.Parse("2006-01-02", req.NewAppointmentDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if _, err := time.Parse("15:04", req.NewAppointmentTime); err != nil {
		return nil, ErrInvalidTimeFormat
	}
	if !u.availability.OnGrid(req.NewAppointmentTime) {
		return nil, ErrInvalidSlot
	}

	for attempt := 0; attempt < conditionalUpdateAttempts; attempt++ {
		appointment, err := u.loadAuthorized(ctx, principal, id)
		if err != nil {
			return nil, err
		}
		if !entity.CanRescheduleFrom(appointment.Status) {
			return nil, ErrInvalidTransition
		}
		// Recovering a no-show is role-gated by the transition table.
		if entity.TransitionExists(appointment.Status, entity.AppointmentStatusRescheduled) &&
			!entity.CanTransition(appointment.Status, entity.AppointmentStatusRescheduled, principal.Role) {
			return nil, ErrForbidden
		}

		doctor, err := u.availability.LookupActiveDoctor(ctx, appointment.DoctorID)
		if err != nil {
			return nil, err
		}
		if doctor.UnavailableOn(newDate) {
			return nil, service.ErrDoctorInactive
		}
		if err := u.requireFutureSlot(doctor, newDate, req.NewAppointmentTime); err != nil {
			return nil, err
		}

		schedule, err := u.availability.ResolveDayFor(ctx, doctor, newDate, false)
		if err != nil {
			return nil, err
		}
		switch schedule.SlotStatusAt(req.NewAppointmentTime) {
		case service.SlotAvailable, service.SlotBooked:
			// A booked slot may be the appointment's own; the conflict
			// check below excludes it.
		default:
			return nil, ErrInvalidSlot
		}

		if err := u.conflicts.Check(ctx, appointment.DoctorID, appointment.PatientID, newDate, req.NewAppointmentTime, appointment.ID); err != nil {
			return nil, err
		}

		oldDate := appointment.AppointmentDate.Format("2006-01-02")
		oldTime := appointment.AppointmentTime
		history := append(appointment.RescheduleHistory, entity.RescheduleRecord{
			FromDate:      oldDate,
			FromTime:      oldTime,
			RescheduledBy: principal.UserID,
			RescheduledAt: u.now().UTC(),
			Reason:        req.Reason,
		})

		updates := map[string]interface{}{
			"appointment_date":   newDate,
			"appointment_time":   req.NewAppointmentTime,
			"status":             entity.AppointmentStatusRescheduled,
			"reschedule_history": history,
			"updated_by":         principal.UserID,
		}

		rows, err := u.apptRepo.UpdateIfStatus(ctx, id, appointment.Status, updates)
		if err != nil {
			u.log.Warnf("Failed to reschedule appointment %s: %+v", id, err)
			return nil, u.conflicts.TranslateWriteError(err)
		}
		if rows == 0 {
			continue
		}

		u.audit.Record(ctx, principal.UserID, entity.AuditActionAppointmentReschedule, id,
			map[string]interface{}{"date": oldDate, "time": oldTime},
			map[string]interface{}{"date": req.NewAppointmentDate, "time": req.NewAppointmentTime})
		u.events.Publish(service.NewAppointmentEvent(service.EventAppointmentRescheduled, appointment, principal.UserID).
			WithSlotChange(oldDate, oldTime, req.NewAppointmentDate, req.NewAppointmentTime))

		u.log.Infof("Appointment rescheduled: id=%s, %s %s -> %s %s",
			id, oldDate, oldTime, req.NewAppointmentDate, req.NewAppointmentTime)
		return u.reload(ctx, appointment)
	}

	return nil, ErrInvalidTransition
}

// AddClinicalNotes records the doctor's notes after the encounter.
// Doctor-only; the doctor must own the appointment.
func (u *appointmentUsecase) AddClinicalNotes(ctx context.Context, id uuid.UUID, req *dto.ClinicalNotesRequest) (*dto.AppointmentResponse, error) {
	principal, ok := middleware.GetPrincipalFromContext(ctx)
	if !ok {
		return nil, ErrForbidden
	}
	if !principal.IsDoctor() {
		return nil, ErrForbidden
	}

	appointment, err := u.apptRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.DoctorID != principal.UserID {
		return nil, ErrForbidden
	}
	if appointment.Status != entity.AppointmentStatusConfirmed && appointment.Status != entity.AppointmentStatusCompleted {
		return nil, ErrNotesNotAllowed
	}

	updates := map[string]interface{}{
		"clinical_notes":     req.ClinicalNotes,
		"recommendations":    req.Recommendations,
		"follow_up_required": req.FollowUpRequired,
		"notes_added_at":     u.now().UTC(),
		"updated_by":         principal.UserID,
	}
	if req.FollowUpDate != "" {
		followUp, err := time.Parse("2006-01-02", req.FollowUpDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		updates["follow_up_date"] = followUp
	}

	if err := u.apptRepo.Update(ctx, id, updates); err != nil {
		u.log.Warnf("Failed to add clinical notes to appointment %s: %+v", id, err)
		return nil, err
	}

	u.audit.Record(ctx, principal.UserID, entity.AuditActionAppointmentNotes, id, nil, map[string]interface{}{
		"follow_up_required": req.FollowUpRequired,
	})

	return u.reload(ctx, appointment)
}

func (u *appointmentUsecase) GetAvailability(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailabilityResponse, error) {
	principal, ok := middleware.GetPrincipalFromContext(ctx)
	if !ok {
		return nil, ErrForbidden
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	schedule, err := u.availability.ResolveDay(ctx, doctorID, day, principal.IsAdmin())
	if err != nil {
		return nil, err
	}
	return converter.DayScheduleToResponse(schedule), nil
}

func (u *appointmentUsecase) GetStatistics(ctx context.Context, period string) (*dto.StatisticsResponse, error) {
	principal, ok := middleware.GetPrincipalFromContext(ctx)
	if !ok {
		return nil, ErrForbidden
	}

	now := u.now()
	var from time.Time
	switch period {
	case "day":
		from = now.AddDate(0, 0, -1)
	case "week":
		from = now.AddDate(0, 0, -7)
	case "month":
		from = now.AddDate(0, -1, 0)
	case "year":
		from = now.AddDate(-1, 0, 0)
	default:
		return nil, ErrInvalidPeriod
	}

	filter := &entity.AppointmentFilter{DateFrom: &from}
	switch {
	case principal.IsPatient():
		filter.PatientID = principal.UserID
	case principal.IsDoctor():
		filter.DoctorID = principal.UserID
	}

	byStatus, err := u.apptRepo.CountGroupedBy(ctx, "status", filter)
	if err != nil {
		u.log.Warnf("Failed to aggregate appointment statuses: %+v", err)
		return nil, err
	}
	byType, err := u.apptRepo.CountGroupedBy(ctx, "type", filter)
	if err != nil {
		u.log.Warnf("Failed to aggregate appointment types: %+v", err)
		return nil, err
	}

	stats := &dto.StatisticsResponse{
		Period:   period,
		ByStatus: make(map[string]int64, len(byStatus)),
		ByType:   make(map[string]int64, len(byType)),
	}
	for _, row := range byStatus {
		stats.ByStatus[row.Key] = row.Count
		stats.Total += row.Count
	}
	for _, row := range byType {
		stats.ByType[row.Key] = row.Count
	}
	return stats, nil
}

// resolvePatientID applies the booking-on-behalf rule
func (u *appointmentUsecase) resolvePatientID(principal middleware.Principal, requested uuid.UUID) (uuid.UUID, error) {
	if principal.IsPatient() {
		if requested != uuid.Nil && requested != principal.UserID {
			return uuid.Nil, ErrForbidden
		}
		return principal.UserID, nil
	}
	if requested == uuid.Nil {
		return uuid.Nil, ErrPatientRequired
	}
	return requested, nil
}

// loadAuthorized loads an appointment and checks the principal may see it:
// patients their own, doctors their own calendar, admins everything.
func (u *appointmentUsecase) loadAuthorized(ctx context.Context, principal middleware.Principal, id uuid.UUID) (*entity.Appointment, error) {
	appointment, err := u.apptRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	switch {
	case principal.IsAdmin():
	case principal.IsPatient() && appointment.PatientID == principal.UserID:
	case principal.IsDoctor() && appointment.DoctorID == principal.UserID:
	default:
		return nil, ErrForbidden
	}
	return appointment, nil
}

// requireFutureSlot checks the slot start lies strictly in the future,
// evaluated in the doctor's timezone.
func (u *appointmentUsecase) requireFutureSlot(doctor *entity.DoctorProfile, date time.Time, timeOfDay string) error {
	start, err := service.SlotStart(doctor, date, timeOfDay)
	if err != nil {
		return ErrInvalidTimeFormat
	}
	if !start.After(u.now()) {
		return ErrSlotInPast
	}
	return nil
}

// requireCancelWindow enforces the patient-side 24h cancellation policy
func (u *appointmentUsecase) requireCancelWindow(ctx context.Context, appointment *entity.Appointment) error {
	doctor, err := u.doctorRepo.FindByUserID(ctx, appointment.DoctorID)
	if err != nil {
		return err
	}
	if doctor == nil {
		// Doctor record gone; fall back to UTC interpretation
		doctor = &entity.DoctorProfile{UserID: appointment.DoctorID}
	}
	start, err := service.SlotStart(doctor, appointment.AppointmentDate, appointment.AppointmentTime)
	if err != nil {
		return ErrInvalidTimeFormat
	}
	if start.Sub(u.now()) < u.cancelWindow {
		return ErrCancelWindowExpired
	}
	return nil
}

func (u *appointmentUsecase) buildFilter(principal middleware.Principal, query *dto.ListAppointmentsQuery) (*entity.AppointmentFilter, error) {
	filter := &entity.AppointmentFilter{
		Status:   query.Status,
		Type:     query.Type,
		Priority: query.Priority,
		Page:     query.Page,
		Limit:    query.Limit,
	}

	if query.DoctorID != "" {
		doctorID, err := uuid.Parse(query.DoctorID)
		if err != nil {
			return nil, ErrInvalidID
		}
		filter.DoctorID = doctorID
	}
	if query.PatientID != "" {
		patientID, err := uuid.Parse(query.PatientID)
		if err != nil {
			return nil, ErrInvalidID
		}
		filter.PatientID = patientID
	}
	if query.DateFrom != "" {
		from, err := time.Parse("2006-01-02", query.DateFrom)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		filter.DateFrom = &from
	}
	if query.DateTo != "" {
		to, err := time.Parse("2006-01-02", query.DateTo)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		filter.DateTo = &to
	}

	// Role scoping overrides any requested ids
	switch {
	case principal.IsPatient():
		filter.PatientID = principal.UserID
	case principal.IsDoctor():
		filter.DoctorID = principal.UserID
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	return filter, nil
}

// reload fetches the appointment with its participants for the response,
// falling back to the in-memory copy if the read fails.
func (u *appointmentUsecase) reload(ctx context.Context, appointment *entity.Appointment) (*dto.AppointmentResponse, error) {
	full, err := u.apptRepo.FindByID(ctx, appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}
	return converter.AppointmentToResponse(full), nil
}

func statusEventType(status entity.AppointmentStatus) string {
	switch status {
	case entity.AppointmentStatusConfirmed:
		return service.EventAppointmentConfirmed
	case entity.AppointmentStatusCancelled:
		return service.EventAppointmentCancelled
	case entity.AppointmentStatusCompleted:
		return service.EventAppointmentCompleted
	case entity.AppointmentStatusNoShow:
		return service.EventAppointmentNoShow
	}
	return ""
}
