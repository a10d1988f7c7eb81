package converter

import (
	"clinic-appointment-server/internal/delivery/dto"
	"clinic-appointment-server/internal/domain/entity"
	"clinic-appointment-server/internal/service"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to its response DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	resp := &dto.AppointmentResponse{
		ID:                appointment.ID,
		AppointmentNumber: appointment.AppointmentNumber,
		PatientID:         appointment.PatientID,
		DoctorID:          appointment.DoctorID,
		AppointmentDate:   appointment.AppointmentDate.Format("2006-01-02"),
		AppointmentTime:   appointment.AppointmentTime,
		Type:              string(appointment.Type),
		Priority:          string(appointment.Priority),
		Reason:            appointment.Reason,
		Symptoms:          appointment.Symptoms,
		Status:            string(appointment.Status),
		ConsultationFee:   appointment.ConsultationFee,
		PaymentStatus:     string(appointment.PaymentStatus),

		CancelledBy:        appointment.CancelledBy,
		CancelledAt:        appointment.CancelledAt,
		CancellationReason: appointment.CancellationReason,
		CompletedAt:        appointment.CompletedAt,

		ClinicalNotes:    appointment.ClinicalNotes,
		Recommendations:  appointment.Recommendations,
		FollowUpRequired: appointment.FollowUpRequired,
		NotesAddedAt:     appointment.NotesAddedAt,

		CreatedAt: appointment.CreatedAt,
		UpdatedAt: appointment.UpdatedAt,
	}

	if appointment.FollowUpDate != nil {
		followUp := appointment.FollowUpDate.Format("2006-01-02")
		resp.FollowUpDate = &followUp
	}

	for _, record := range appointment.RescheduleHistory {
		resp.RescheduleHistory = append(resp.RescheduleHistory, dto.RescheduleEntry{
			FromDate:      record.FromDate,
			FromTime:      record.FromTime,
			RescheduledBy: record.RescheduledBy,
			RescheduledAt: record.RescheduledAt,
			Reason:        record.Reason,
		})
	}

	// Include participant info when preloaded
	if appointment.Patient.UserID != uuid.Nil {
		resp.Patient = &dto.PersonSummary{
			ID:       appointment.Patient.UserID,
			FullName: appointment.Patient.User.FullName,
			Email:    appointment.Patient.User.Email,
		}
	}
	if appointment.Doctor.UserID != uuid.Nil {
		resp.Doctor = &dto.DoctorSummary{
			ID:             appointment.Doctor.UserID,
			FullName:       appointment.Doctor.User.FullName,
			Specialization: appointment.Doctor.Specialization,
		}
	}

	return resp
}

// AppointmentsToResponses converts a slice of Appointment entities
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}

// DayScheduleToResponse converts a resolved day grid to its response DTO
func DayScheduleToResponse(schedule *service.DaySchedule) *dto.AvailabilityResponse {
	if schedule == nil {
		return nil
	}

	resp := &dto.AvailabilityResponse{
		DoctorID: schedule.DoctorID,
		Date:     schedule.Date.Format("2006-01-02"),
		Reason:   schedule.Reason,
		Slots:    make([]dto.SlotResponse, len(schedule.Slots)),
	}
	for i, slot := range schedule.Slots {
		resp.Slots[i] = dto.SlotResponse{
			Time:     slot.Time,
			Status:   string(slot.Status),
			BookedBy: slot.BookedBy,
		}
	}
	return resp
}
