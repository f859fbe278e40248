package memory

import (
	"context"
	"sort"

	"github.com/octavian/nexus-inventory/internal/domain"
	"github.com/octavian/nexus-inventory/internal/domain/entity"
	"github.com/octavian/nexus-inventory/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct {
	sc scope
}

// NewUserRepository construye el repositorio.
func NewUserRepository(store *Store) *UserRepo {
	return &UserRepo{sc: scope{store: store}}
}

// Create persiste un usuario; AuthUserID repetido -> domain.ErrDuplicate.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	return r.sc.with(func(d *data) error {
		if _, ok := d.authIndex[user.AuthUserID]; ok {
			return domain.ErrDuplicate
		}
		d.users[user.ID] = *user
		d.authIndex[user.AuthUserID] = user.ID
		return nil
	})
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.sc.with(func(d *data) error {
		if u, ok := d.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

// GetByAuthUserID obtiene un usuario por su subject externo.
func (r *UserRepo) GetByAuthUserID(_ context.Context, authUserID string) (*entity.User, error) {
	var out *entity.User
	err := r.sc.with(func(d *data) error {
		if id, ok := d.authIndex[authUserID]; ok {
			u := d.users[id]
			out = &u
		}
		return nil
	})
	return out, err
}

// Update actualiza email, nombre, avatar y último acceso.
func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	return r.sc.with(func(d *data) error {
		cur, ok := d.users[user.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Email = user.Email
		cur.DisplayName = user.DisplayName
		cur.AvatarURL = user.AvatarURL
		cur.LastSeenAt = user.LastSeenAt
		d.users[user.ID] = cur
		return nil
	})
}

// List devuelve todos los usuarios por fecha de creación.
func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	err := r.sc.with(func(d *data) error {
		out = make([]*entity.User, 0, len(d.users))
		for _, u := range d.users {
			u := u
			out = append(out, &u)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, err
}
