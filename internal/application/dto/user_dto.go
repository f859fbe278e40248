package dto

import (
	"time"

	"github.com/octavian/nexus-inventory/internal/domain/entity"
)

// UserResponse salida de un usuario resuelto desde el token.
type UserResponse struct {
	ID          string    `json:"id"`
	AuthUserID  string    `json:"auth_user_id"`
	Email       string    `json:"email"`
	DisplayName *string   `json:"display_name,omitempty"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	LastSeenAt  time.Time `json:"last_seen_at"`
}

// FromUser convierte la entidad en su salida HTTP.
func FromUser(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:          u.ID,
		AuthUserID:  u.AuthUserID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		CreatedAt:   u.CreatedAt,
		LastSeenAt:  u.LastSeenAt,
	}
}

// FromUsers convierte una lista de usuarios.
func FromUsers(list []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *FromUser(u))
	}
	return out
}
