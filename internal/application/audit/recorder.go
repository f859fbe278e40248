package audit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/octavian/nexus-inventory/internal/application/inventory"
	"github.com/octavian/nexus-inventory/internal/domain"
	"github.com/octavian/nexus-inventory/internal/domain/entity"
	"github.com/octavian/nexus-inventory/internal/domain/identity"
	"github.com/octavian/nexus-inventory/internal/domain/repository"
)

// FailurePolicy define qué hace Record cuando no puede auditar.
type FailurePolicy string

const (
	// PolicyLog registra el fallo en el log y devuelve nil.
	PolicyLog FailurePolicy = "log"
	// PolicySurface devuelve un error que envuelve domain.ErrAuditDegraded.
	PolicySurface FailurePolicy = "surface"
)

// ParsePolicy interpreta el valor de configuración; cualquier valor desconocido es PolicyLog.
func ParsePolicy(s string) FailurePolicy {
	if FailurePolicy(strings.ToLower(strings.TrimSpace(s))) == PolicySurface {
		return PolicySurface
	}
	return PolicyLog
}

// IdentityResolver puerto hacia el resolver de identidad.
type IdentityResolver interface {
	Resolve(ctx context.Context, claims *identity.Claims) (*entity.User, error)
}

// Observer recibe el resultado de cada intento de auditoría (métricas).
type Observer interface {
	ObserveAudit(outcome string)
}

// Resultados de Record.
const (
	OutcomeRecorded = "recorded"
	OutcomeSkipped  = "skipped"
	OutcomeFailed   = "failed"
)

// Recorder registra acciones privilegiadas. Es best-effort: nunca revierte la operación principal.
type Recorder struct {
	repo     repository.AuditLogRepository
	resolver IdentityResolver
	policy   FailurePolicy
	log      zerolog.Logger
	observer Observer
	now      func() time.Time
}

// NewRecorder construye el recorder.
func NewRecorder(repo repository.AuditLogRepository, resolver IdentityResolver, policy FailurePolicy, log zerolog.Logger) *Recorder {
	return &Recorder{
		repo:     repo,
		resolver: resolver,
		policy:   policy,
		log:      log,
		now:      time.Now,
	}
}

// WithObserver registra un observador de métricas.
func (r *Recorder) WithObserver(o Observer) *Recorder {
	r.observer = o
	return r
}

// Record resuelve al usuario de los claims y persiste la entrada. Sin claims no hace nada.
func (r *Recorder) Record(
	ctx context.Context,
	claims *identity.Claims,
	action entity.AuditAction,
	entityType, entityID, description string,
	details *string,
) error {
	if claims == nil {
		r.observe(OutcomeSkipped)
		return nil
	}
	user, err := r.resolver.Resolve(ctx, claims)
	if err != nil {
		return r.fail(fmt.Errorf("resolver identidad: %w", err), action, entityType, entityID)
	}
	return r.RecordBy(ctx, user, action, entityType, entityID, description, details)
}

// RecordBy persiste la entrada para un usuario ya resuelto en la petición. Con user nil no audita.
func (r *Recorder) RecordBy(
	ctx context.Context,
	user *entity.User,
	action entity.AuditAction,
	entityType, entityID, description string,
	details *string,
) error {
	if user == nil {
		r.observe(OutcomeSkipped)
		return nil
	}
	entry := &entity.AuditLogEntry{
		ID:          uuid.New().String(),
		UserID:      user.ID,
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		Description: description,
		Details:     entity.TruncateDetails(details),
		CreatedAt:   r.now().UTC(),
	}
	if err := r.repo.Create(ctx, entry); err != nil {
		return r.fail(fmt.Errorf("guardar auditoría: %w", err), action, entityType, entityID)
	}
	r.observe(OutcomeRecorded)
	return nil
}

// fail aplica la política de fallos: siempre se loguea, y con PolicySurface se devuelve el error.
func (r *Recorder) fail(err error, action entity.AuditAction, entityType, entityID string) error {
	r.observe(OutcomeFailed)
	r.log.Warn().Err(err).
		Str("action", string(action)).
		Str("entity_type", entityType).
		Str("entity_id", entityID).
		Msg("auditoría no registrada")
	if r.policy == PolicySurface {
		return fmt.Errorf("%w: %v", domain.ErrAuditDegraded, err)
	}
	return nil
}

func (r *Recorder) observe(outcome string) {
	if r.observer != nil {
		r.observer.ObserveAudit(outcome)
	}
}

// Recent devuelve las entradas más recientes (limit ajustado a [1, 200]).
func (r *Recorder) Recent(ctx context.Context, limit int) ([]*entity.AuditLogView, error) {
	return r.repo.ListRecent(ctx, inventory.ClampLimit(limit))
}

// MovementDescription texto legible de un movimiento, p. ej. "RECEIVING: +5 units for SKU-1 – Tornillo".
func MovementDescription(m *entity.StockMovement) string {
	sign := ""
	if m.Delta >= 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s: %s%d units for %s – %s", m.Kind, sign, m.Delta, m.SKU, m.ProductName)
}

// RecordMovement audita un movimiento del libro con la acción derivada de su tipo.
func (r *Recorder) RecordMovement(ctx context.Context, claims *identity.Claims, m *entity.StockMovement) error {
	return r.Record(ctx, claims,
		entity.AuditActionForMovement(m.Kind),
		entity.EntityStockMovement, m.ID,
		MovementDescription(m),
		m.Note,
	)
}

// RecordMovementBy es RecordMovement para un usuario ya resuelto.
func (r *Recorder) RecordMovementBy(ctx context.Context, user *entity.User, m *entity.StockMovement) error {
	return r.RecordBy(ctx, user,
		entity.AuditActionForMovement(m.Kind),
		entity.EntityStockMovement, m.ID,
		MovementDescription(m),
		m.Note,
	)
}
