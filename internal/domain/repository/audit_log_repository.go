package repository

import (
	"context"

	"github.com/octavian/nexus-inventory/internal/domain/entity"
)

// AuditLogRepository define el puerto de persistencia para la auditoría. Solo inserción y lectura.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *entity.AuditLogEntry) error
	// ListRecent devuelve las entradas más recientes con el email y nombre actuales del usuario.
	ListRecent(ctx context.Context, limit int) ([]*entity.AuditLogView, error)
}
