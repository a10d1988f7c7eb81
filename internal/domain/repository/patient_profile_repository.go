package repository

import (
	"context"

	"clinic-appointment-server/internal/domain/entity"

	"github.com/google/uuid"
)

// PatientProfileRepository is the scheduler's read-only port into the
// patient directory.
type PatientProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.PatientProfile, error)
}
