package audit_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octavian/nexus-inventory/internal/application/audit"
	appidentity "github.com/octavian/nexus-inventory/internal/application/identity"
	"github.com/octavian/nexus-inventory/internal/domain"
	"github.com/octavian/nexus-inventory/internal/domain/entity"
	"github.com/octavian/nexus-inventory/internal/domain/identity"
	"github.com/octavian/nexus-inventory/internal/infrastructure/memory"
)

type brokenAuditRepo struct{}

func (brokenAuditRepo) Create(context.Context, *entity.AuditLogEntry) error {
	return errors.New("tabla bloqueada")
}

func (brokenAuditRepo) ListRecent(context.Context, int) ([]*entity.AuditLogView, error) {
	return nil, nil
}

type countingObserver map[string]int

func (c countingObserver) ObserveAudit(outcome string) { c[outcome]++ }

func newRecorder(policy audit.FailurePolicy) (*audit.Recorder, *memory.Store) {
	store := memory.NewStore()
	resolver := appidentity.NewResolver(memory.NewUserRepository(store))
	return audit.NewRecorder(memory.NewAuditLogRepository(store), resolver, policy, zerolog.Nop()), store
}

func TestRecord_SinClaimsNoHaceNada(t *testing.T) {
	r, _ := newRecorder(audit.PolicyLog)
	require.NoError(t, r.Record(context.Background(), nil, entity.AuditProductCreated, entity.EntityProduct, "p1", "x", nil))
	recent, err := r.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestRecord_PersisteYEnriquece(t *testing.T) {
	r, _ := newRecorder(audit.PolicyLog)
	ctx := context.Background()
	claims := &identity.Claims{Subject: "u1", Email: "a@x.com", Name: "Ada"}

	long := strings.Repeat("x", 1500)
	require.NoError(t, r.Record(ctx, claims, entity.AuditProductCreated, entity.EntityProduct, "p1", "Created product", &long))
	require.NoError(t, r.Record(ctx, claims, entity.AuditStockReceiving, entity.EntityStockMovement, "m1", "RECEIVING", nil))

	recent, err := r.Recent(ctx, 50)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, entity.AuditStockReceiving, recent[0].Action)
	assert.Equal(t, "a@x.com", recent[1].UserEmail)
	require.NotNil(t, recent[1].UserDisplayName)
	assert.Equal(t, "Ada", *recent[1].UserDisplayName)
	require.NotNil(t, recent[1].Details)
	assert.Len(t, *recent[1].Details, entity.MaxAuditDetailsLength)
}

// El email mostrado es el actual del usuario, no una copia del momento de la acción.
func TestRecent_UsaDatosActualesDelUsuario(t *testing.T) {
	r, _ := newRecorder(audit.PolicyLog)
	ctx := context.Background()
	require.NoError(t, r.Record(ctx, &identity.Claims{Subject: "u1", Email: "viejo@x.com"}, entity.AuditProductCreated, entity.EntityProduct, "p1", "d", nil))
	require.NoError(t, r.Record(ctx, &identity.Claims{Subject: "u1", Email: "nuevo@x.com"}, entity.AuditProductUpdated, entity.EntityProduct, "p1", "d", nil))

	recent, err := r.Recent(ctx, 10)
	require.NoError(t, err)
	for _, v := range recent {
		assert.Equal(t, "nuevo@x.com", v.UserEmail)
	}
}

func TestRecord_PoliticaLogNoPropagaError(t *testing.T) {
	store := memory.NewStore()
	obs := countingObserver{}
	r := audit.NewRecorder(brokenAuditRepo{}, appidentity.NewResolver(memory.NewUserRepository(store)), audit.PolicyLog, zerolog.Nop()).
		WithObserver(obs)

	err := r.Record(context.Background(), &identity.Claims{Subject: "u1"}, entity.AuditProductCreated, entity.EntityProduct, "p1", "d", nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, obs[audit.OutcomeFailed])
}

func TestRecord_PoliticaSurfaceDevuelveDegradado(t *testing.T) {
	store := memory.NewStore()
	r := audit.NewRecorder(brokenAuditRepo{}, appidentity.NewResolver(memory.NewUserRepository(store)), audit.PolicySurface, zerolog.Nop())

	err := r.Record(context.Background(), &identity.Claims{Subject: "u1"}, entity.AuditProductCreated, entity.EntityProduct, "p1", "d", nil)
	assert.ErrorIs(t, err, domain.ErrAuditDegraded)
}

func TestParsePolicy(t *testing.T) {
	assert.Equal(t, audit.PolicySurface, audit.ParsePolicy(" SURFACE "))
	assert.Equal(t, audit.PolicyLog, audit.ParsePolicy("log"))
	assert.Equal(t, audit.PolicyLog, audit.ParsePolicy("otra"))
}

func TestMovementDescription(t *testing.T) {
	m := &entity.StockMovement{Kind: entity.MovementReceiving, Delta: 5, SKU: "SKU-1", ProductName: "Tornillo"}
	assert.Equal(t, "RECEIVING: +5 units for SKU-1 – Tornillo", audit.MovementDescription(m))
	m.Kind, m.Delta = entity.MovementAdjustment, -2
	assert.Equal(t, "ADJUSTMENT: -2 units for SKU-1 – Tornillo", audit.MovementDescription(m))
}

func TestRecordMovement_AccionDerivadaDelTipo(t *testing.T) {
	r, _ := newRecorder(audit.PolicyLog)
	ctx := context.Background()
	note := "palet dañado"
	m := &entity.StockMovement{ID: "m1", Kind: entity.MovementTransfer, Delta: -1, SKU: "S", ProductName: "P", Note: &note}
	require.NoError(t, r.RecordMovement(ctx, &identity.Claims{Subject: "u1"}, m))

	recent, err := r.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, entity.AuditStockTransfer, recent[0].Action)
	assert.Equal(t, entity.EntityStockMovement, recent[0].EntityType)
	assert.Equal(t, "m1", recent[0].EntityID)
	assert.Equal(t, note, *recent[0].Details)
}

type countingResolver struct {
	calls int
}

func (c *countingResolver) Resolve(_ context.Context, claims *identity.Claims) (*entity.User, error) {
	c.calls++
	return &entity.User{ID: "u-" + claims.Subject, Email: claims.Email}, nil
}

// Con el usuario ya resuelto por la petición no se vuelve a consultar el resolver.
func TestRecordMovementBy_NoResuelveDeNuevo(t *testing.T) {
	store := memory.NewStore()
	resolver := &countingResolver{}
	obs := countingObserver{}
	r := audit.NewRecorder(memory.NewAuditLogRepository(store), resolver, audit.PolicyLog, zerolog.Nop()).
		WithObserver(obs)
	ctx := context.Background()

	m := &entity.StockMovement{ID: "m1", Kind: entity.MovementReceiving, Delta: 3, SKU: "S", ProductName: "P"}
	require.NoError(t, r.RecordMovementBy(ctx, &entity.User{ID: "u1"}, m))
	require.NoError(t, r.RecordMovementBy(ctx, nil, m))

	assert.Zero(t, resolver.calls)
	assert.Equal(t, 1, obs[audit.OutcomeRecorded])
	assert.Equal(t, 1, obs[audit.OutcomeSkipped])

	recent, err := r.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "u1", recent[0].UserID)
	assert.Equal(t, entity.AuditStockReceiving, recent[0].Action)
}

func TestRecordBy_PoliticaSurface(t *testing.T) {
	r := audit.NewRecorder(brokenAuditRepo{}, &countingResolver{}, audit.PolicySurface, zerolog.Nop())
	err := r.RecordBy(context.Background(), &entity.User{ID: "u1"}, entity.AuditProductUpdated, entity.EntityProduct, "p1", "d", nil)
	assert.ErrorIs(t, err, domain.ErrAuditDegraded)
}
