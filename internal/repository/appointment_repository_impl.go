package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-appointment-server/internal/domain/entity"
	domainRepo "clinic-appointment-server/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var activeStatuses = []entity.AppointmentStatus{
	entity.AppointmentStatusScheduled,
	entity.AppointmentStatusConfirmed,
}

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient.User").
		Preload("Doctor.User").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) Search(ctx context.Context, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&entity.Appointment{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var appointments []entity.Appointment
	offset := (filter.Page - 1) * filter.Limit
	err := query.
		Preload("Patient.User").
		Preload("Doctor.User").
		Order("appointment_date ASC, appointment_time ASC").
		Offset(offset).
		Limit(filter.Limit).
		Find(&appointments).Error
	if err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

func (r *appointmentRepository) applyFilter(query *gorm.DB, filter *entity.AppointmentFilter) *gorm.DB {
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.DoctorID != uuid.Nil {
		query = query.Where("doctor_id = ?", filter.DoctorID)
	}
	if filter.PatientID != uuid.Nil {
		query = query.Where("patient_id = ?", filter.PatientID)
	}
	if filter.DateFrom != nil {
		query = query.Where("appointment_date >= ?", filter.DateFrom.Format("2006-01-02"))
	}
	if filter.DateTo != nil {
		query = query.Where("appointment_date <= ?", filter.DateTo.Format("2006-01-02"))
	}
	return query
}

func (r *appointmentRepository) FindBookedSlots(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.BookedSlot, error) {
	var slots []entity.BookedSlot
	err := r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Select("appointment_time, patient_id").
		Where("doctor_id = ? AND appointment_date = ? AND status IN ?", doctorID, date.Format("2006-01-02"), activeStatuses).
		Order("appointment_time ASC").
		Scan(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *appointmentRepository) DoctorHasActiveAt(ctx context.Context, doctorID uuid.UUID, date time.Time, timeOfDay string, excludeID uuid.UUID) (bool, error) {
	return r.hasActiveAt(ctx, "doctor_id", doctorID, date, timeOfDay, excludeID)
}

func (r *appointmentRepository) PatientHasActiveAt(ctx context.Context, patientID uuid.UUID, date time.Time, timeOfDay string, excludeID uuid.UUID) (bool, error) {
	return r.hasActiveAt(ctx, "patient_id", patientID, date, timeOfDay, excludeID)
}

func (r *appointmentRepository) hasActiveAt(ctx context.Context, column string, id uuid.UUID, date time.Time, timeOfDay string, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where(column+" = ? AND appointment_date = ? AND appointment_time = ? AND status IN ?",
			id, date.Format("2006-01-02"), timeOfDay, activeStatuses)
	if excludeID != uuid.Nil {
		query = query.Where("id != ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateIfStatus is the conditional write used for every status change.
// A zero row count means a concurrent writer got there first.
func (r *appointmentRepository) UpdateIfStatus(ctx context.Context, id uuid.UUID, expected entity.AppointmentStatus, updates map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *appointmentRepository) NextAppointmentNumber(ctx context.Context) (int64, error) {
	var next int64
	err := r.db.WithContext(ctx).
		Raw("SELECT nextval('appointment_number_seq')").
		Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (r *appointmentRepository) CountGroupedBy(ctx context.Context, column string, filter *entity.AppointmentFilter) ([]entity.GroupCount, error) {
	switch column {
	case "status", "type", "priority":
	default:
		return nil, fmt.Errorf("unsupported group column: %s", column)
	}

	var counts []entity.GroupCount
	err := r.applyFilter(r.db.WithContext(ctx).Model(&entity.Appointment{}), filter).
		Select(column + " AS key, COUNT(*) AS count").
		Group(column).
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
