package identity_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appidentity "github.com/octavian/nexus-inventory/internal/application/identity"
	"github.com/octavian/nexus-inventory/internal/domain"
	"github.com/octavian/nexus-inventory/internal/domain/entity"
	"github.com/octavian/nexus-inventory/internal/domain/identity"
	"github.com/octavian/nexus-inventory/internal/infrastructure/memory"
)

// stepClock avanza un segundo en cada lectura.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func newResolver() (*appidentity.Resolver, *memory.UserRepo) {
	repo := memory.NewUserRepository(memory.NewStore())
	clock := &stepClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	return appidentity.NewResolver(repo).WithClock(clock.Now), repo
}

func TestResolve_CreaYLuegoActualizaNombre(t *testing.T) {
	r, repo := newResolver()
	ctx := context.Background()

	u1, err := r.Resolve(ctx, &identity.Claims{Subject: "u1", Email: "a@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u1.Email)
	assert.Nil(t, u1.DisplayName)

	u2, err := r.Resolve(ctx, &identity.Claims{Subject: "u1", Name: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, u1.ID, u2.ID)
	require.NotNil(t, u2.DisplayName)
	assert.Equal(t, "Ada", *u2.DisplayName)
	assert.Equal(t, "a@x.com", u2.Email, "sin claim de email se conserva el anterior")

	stored, _ := repo.GetByAuthUserID(ctx, "u1")
	assert.Equal(t, "Ada", *stored.DisplayName)
}

func TestResolve_EmailPorDefectoEsSubject(t *testing.T) {
	r, _ := newResolver()
	u, err := r.Resolve(context.Background(), &identity.Claims{Subject: "auth|42"})
	require.NoError(t, err)
	assert.Equal(t, "auth|42", u.Email)
}

func TestResolve_NoSobrescribeConVacio(t *testing.T) {
	r, _ := newResolver()
	ctx := context.Background()
	_, err := r.Resolve(ctx, &identity.Claims{Subject: "u1", Name: "Ada", Picture: "https://img/a.png"})
	require.NoError(t, err)

	u, err := r.Resolve(ctx, &identity.Claims{Subject: "u1", Name: "  ", Email: "nuevo@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", *u.DisplayName)
	assert.Equal(t, "https://img/a.png", *u.AvatarURL)
	assert.Equal(t, "nuevo@x.com", u.Email)
}

func TestResolve_IdempotenteEnCamposYAvanzaLastSeen(t *testing.T) {
	r, _ := newResolver()
	ctx := context.Background()
	claims := &identity.Claims{Subject: "u1", Email: "a@x.com", UserMetadata: map[string]any{"full_name": "Ada", "avatar_url": "https://img/a.png"}}

	u1, err := r.Resolve(ctx, claims)
	require.NoError(t, err)
	u2, err := r.Resolve(ctx, claims)
	require.NoError(t, err)

	assert.Equal(t, u1.Email, u2.Email)
	assert.Equal(t, *u1.DisplayName, *u2.DisplayName)
	assert.Equal(t, *u1.AvatarURL, *u2.AvatarURL)
	assert.True(t, u2.LastSeenAt.After(u1.LastSeenAt))
	assert.Equal(t, u1.CreatedAt, u2.CreatedAt)
}

func TestResolve_SinSubject(t *testing.T) {
	r, _ := newResolver()
	_, err := r.Resolve(context.Background(), &identity.Claims{Email: "a@x.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = r.Resolve(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// racingRepo simula que otra petición crea el usuario entre la lectura y el insert.
type racingRepo struct {
	*memory.UserRepo
	once sync.Once
}

func (r *racingRepo) Create(ctx context.Context, u *entity.User) error {
	r.once.Do(func() {
		winner := *u
		winner.ID = "ganador"
		_ = r.UserRepo.Create(ctx, &winner)
	})
	return r.UserRepo.Create(ctx, u)
}

func TestResolve_CarreraDeCreacion(t *testing.T) {
	repo := &racingRepo{UserRepo: memory.NewUserRepository(memory.NewStore())}
	r := appidentity.NewResolver(repo)

	u, err := r.Resolve(context.Background(), &identity.Claims{Subject: "u1", Name: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "ganador", u.ID)
	assert.Equal(t, "Ada", *u.DisplayName)
}
