package memory

import (
	"context"

	"github.com/octavian/nexus-inventory/internal/domain/entity"
	"github.com/octavian/nexus-inventory/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo auditoría en memoria.
type AuditLogRepo struct {
	sc scope
}

// NewAuditLogRepository construye el repositorio.
func NewAuditLogRepository(store *Store) *AuditLogRepo {
	return &AuditLogRepo{sc: scope{store: store}}
}

// Create agrega una entrada.
func (r *AuditLogRepo) Create(_ context.Context, entry *entity.AuditLogEntry) error {
	return r.sc.with(func(d *data) error {
		d.audits = append(d.audits, *entry)
		return nil
	})
}

// ListRecent devuelve las últimas entradas unidas con el usuario actual.
func (r *AuditLogRepo) ListRecent(_ context.Context, limit int) ([]*entity.AuditLogView, error) {
	var out []*entity.AuditLogView
	err := r.sc.with(func(d *data) error {
		out = make([]*entity.AuditLogView, 0, limit)
		for i := len(d.audits) - 1; i >= 0 && len(out) < limit; i-- {
			v := &entity.AuditLogView{AuditLogEntry: d.audits[i]}
			if u, ok := d.users[v.UserID]; ok {
				v.UserEmail = u.Email
				v.UserDisplayName = u.DisplayName
			}
			out = append(out, v)
		}
		return nil
	})
	return out, err
}
