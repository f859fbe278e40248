package postgres

import (
	"context"
	"fmt"

	"github.com/octavian/nexus-inventory/internal/domain/entity"
	"github.com/octavian/nexus-inventory/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo auditoría sobre PostgreSQL. Solo inserción y lectura.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador.
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create persiste una entrada de auditoría.
func (r *AuditLogRepo) Create(ctx context.Context, e *entity.AuditLogEntry) error {
	query := `
		INSERT INTO audit_logs (id, user_id, action, entity_type, entity_id, description, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.UserID, string(e.Action), e.EntityType, e.EntityID, e.Description, e.Details, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// ListRecent devuelve las últimas entradas con el email y nombre actuales del usuario.
func (r *AuditLogRepo) ListRecent(ctx context.Context, limit int) ([]*entity.AuditLogView, error) {
	query := `
		SELECT a.id, a.user_id, a.action, a.entity_type, a.entity_id, a.description, a.details, a.created_at,
		       u.email, u.display_name
		FROM audit_logs a
		JOIN app_users u ON u.id = a.user_id
		ORDER BY a.seq DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.AuditLogView, 0)
	for rows.Next() {
		var v entity.AuditLogView
		var action string
		if err := rows.Scan(
			&v.ID, &v.UserID, &action, &v.EntityType, &v.EntityID, &v.Description, &v.Details, &v.CreatedAt,
			&v.UserEmail, &v.UserDisplayName,
		); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		v.Action = entity.AuditAction(action)
		list = append(list, &v)
	}
	return list, rows.Err()
}
