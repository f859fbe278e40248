package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/octavian/nexus-inventory/internal/domain"
	"github.com/octavian/nexus-inventory/internal/domain/entity"
	domainidentity "github.com/octavian/nexus-inventory/internal/domain/identity"
	"github.com/octavian/nexus-inventory/internal/domain/repository"
)

// Resolver mapea los claims de un token externo a un User persistido (upsert).
type Resolver struct {
	repo repository.UserRepository
	now  func() time.Time
}

// NewResolver construye el resolver.
func NewResolver(repo repository.UserRepository) *Resolver {
	return &Resolver{repo: repo, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// Resolve crea el usuario la primera vez que aparece el subject y lo actualiza en cada llamada
// posterior. LastSeenAt siempre avanza.
func (r *Resolver) Resolve(ctx context.Context, claims *domainidentity.Claims) (*entity.User, error) {
	profile := domainidentity.Extract(claims)
	if profile.Subject == "" {
		return nil, fmt.Errorf("%w: subject requerido", domain.ErrInvalidInput)
	}
	now := r.now().UTC()

	existing, err := r.repo.GetByAuthUserID(ctx, profile.Subject)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		user := NewUser(profile, now)
		err := r.repo.Create(ctx, user)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		// Otra petición creó el usuario entre la lectura y el insert.
		existing, err = r.repo.GetByAuthUserID(ctx, profile.Subject)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, fmt.Errorf("usuario %s no encontrado tras conflicto", profile.Subject)
		}
	}

	MergeProfile(existing, profile, now)
	if err := r.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// List devuelve todos los usuarios conocidos.
func (r *Resolver) List(ctx context.Context) ([]*entity.User, error) {
	return r.repo.List(ctx)
}

// NewUser construye un usuario nuevo; sin email se usa el subject.
func NewUser(p domainidentity.Profile, now time.Time) *entity.User {
	email := p.Email
	if email == "" {
		email = p.Subject
	}
	return &entity.User{
		ID:          uuid.New().String(),
		AuthUserID:  p.Subject,
		Email:       email,
		DisplayName: nonBlank(p.DisplayName),
		AvatarURL:   nonBlank(p.AvatarURL),
		CreatedAt:   now,
		LastSeenAt:  now,
	}
}

// MergeProfile actualiza u con el perfil: email si viene, nombre y avatar solo si no están vacíos.
func MergeProfile(u *entity.User, p domainidentity.Profile, now time.Time) {
	if p.Email != "" {
		u.Email = p.Email
	}
	if v := nonBlank(p.DisplayName); v != nil {
		u.DisplayName = v
	}
	if v := nonBlank(p.AvatarURL); v != nil {
		u.AvatarURL = v
	}
	u.LastSeenAt = now
}

func nonBlank(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
