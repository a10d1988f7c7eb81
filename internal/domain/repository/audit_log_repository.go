package repository

import (
	"context"

	"clinic-appointment-server/internal/domain/entity"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
}
