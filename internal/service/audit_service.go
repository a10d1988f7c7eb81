package service

import (
	"context"

	"clinic-appointment-server/internal/domain/entity"
	"clinic-appointment-server/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// AuditService records an operational audit trail for scheduler writes.
// Best-effort: failures are logged, never surfaced to the caller.
type AuditService interface {
	Record(ctx context.Context, userID uuid.UUID, action string, appointmentID uuid.UUID, oldValue, newValue interface{})
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{log: log, auditRepo: auditRepo}
}

func (s *auditService) Record(ctx context.Context, userID uuid.UUID, action string, appointmentID uuid.UUID, oldValue, newValue interface{}) {
	metadata := entity.JSON{
		"entity":    "appointment",
		"entity_id": appointmentID.String(),
		"old_value": oldValue,
		"new_value": newValue,
	}

	auditLog := &entity.AuditLog{
		UserID:   &userID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
	}
}
