package inventory

import (
	"context"
	"time"

	"github.com/octavian/nexus-inventory/internal/domain/entity"
	"github.com/octavian/nexus-inventory/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Commit solo si fn devuelve nil; cualquier error (o panic) hace Rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// Resultados de un intento de movimiento, usados como etiqueta de métricas.
const (
	OutcomeApplied      = "applied"
	OutcomeInsufficient = "insufficient_stock"
	OutcomeNotFound     = "not_found"
	OutcomeInvalid      = "invalid"
	OutcomeError        = "error"
)

// LedgerObserver recibe el resultado de cada movimiento (métricas).
type LedgerObserver interface {
	ObserveMovement(kind entity.MovementKind, outcome string, elapsed time.Duration)
}

type noopObserver struct{}

func (noopObserver) ObserveMovement(entity.MovementKind, string, time.Duration) {}
