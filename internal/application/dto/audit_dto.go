package dto

import (
	"time"

	"github.com/octavian/nexus-inventory/internal/domain/entity"
)

// AuditLogResponse entrada de auditoría con los datos actuales del usuario.
type AuditLogResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	UserEmail       string    `json:"user_email"`
	UserDisplayName *string   `json:"user_display_name,omitempty"`
	Action          string    `json:"action"`
	EntityType      string    `json:"entity_type"`
	EntityID        string    `json:"entity_id"`
	Description     string    `json:"description"`
	Details         *string   `json:"details,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// FromAuditLogs convierte la vista de auditoría.
func FromAuditLogs(list []*entity.AuditLogView) []AuditLogResponse {
	out := make([]AuditLogResponse, 0, len(list))
	for _, v := range list {
		out = append(out, AuditLogResponse{
			ID:              v.ID,
			UserID:          v.UserID,
			UserEmail:       v.UserEmail,
			UserDisplayName: v.UserDisplayName,
			Action:          string(v.Action),
			EntityType:      v.EntityType,
			EntityID:        v.EntityID,
			Description:     v.Description,
			Details:         v.Details,
			CreatedAt:       v.CreatedAt,
		})
	}
	return out
}
