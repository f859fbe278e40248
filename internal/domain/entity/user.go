package entity

import "time"

// User usuario interno resuelto a partir de una identidad externa (subject del token).
type User struct {
	ID          string
	AuthUserID  string // subject externo, único
	Email       string
	DisplayName *string
	AvatarURL   *string
	CreatedAt   time.Time
	LastSeenAt  time.Time
}
