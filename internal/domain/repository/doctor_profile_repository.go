package repository

import (
	"context"

	"clinic-appointment-server/internal/domain/entity"

	"github.com/google/uuid"
)

// DoctorProfileRepository is the scheduler's read-only port into the doctor
// directory.
type DoctorProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error)
}
