package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/octavian/nexus-inventory/internal/domain"
	"github.com/octavian/nexus-inventory/internal/domain/entity"
	"github.com/octavian/nexus-inventory/internal/domain/repository"
)

// Límites de los listados de movimientos.
const (
	MinRecentLimit = 1
	MaxRecentLimit = 200
)

// ClampLimit ajusta limit al rango [MinRecentLimit, MaxRecentLimit].
func ClampLimit(limit int) int {
	if limit < MinRecentLimit {
		return MinRecentLimit
	}
	if limit > MaxRecentLimit {
		return MaxRecentLimit
	}
	return limit
}

// LedgerUseCase aplica deltas de cantidad a un producto y registra el movimiento correspondiente
// en la misma transacción. La fila del producto se bloquea (SELECT FOR UPDATE) antes de leer la
// cantidad, de modo que dos movimientos concurrentes sobre el mismo producto se serializan.
type LedgerUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
	observer    LedgerObserver
	tracer      trace.Tracer
	now         func() time.Time
}

// LedgerOption configura dependencias opcionales del libro.
type LedgerOption func(*LedgerUseCase)

// WithObserver registra un observador de movimientos (métricas).
func WithObserver(o LedgerObserver) LedgerOption {
	return func(uc *LedgerUseCase) {
		if o != nil {
			uc.observer = o
		}
	}
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) LedgerOption {
	return func(uc *LedgerUseCase) { uc.now = now }
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	opts ...LedgerOption,
) *LedgerUseCase {
	uc := &LedgerUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		movRepo:     movRepo,
		observer:    noopObserver{},
		tracer:      otel.Tracer("github.com/octavian/nexus-inventory/ledger"),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// MovementInput entrada para aplicar un movimiento.
type MovementInput struct {
	ProductID     string
	Delta         int
	Kind          entity.MovementKind
	FromLocation  *string
	ToLocation    *string
	Note          *string
	PerformedByID *string
}

// ApplyMovement valida la entrada, abre una transacción, bloquea el producto, calcula la nueva
// cantidad y persiste producto + movimiento. Si la cantidad resultante fuese negativa devuelve
// domain.ErrInsufficientStock y no escribe nada.
func (uc *LedgerUseCase) ApplyMovement(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	start := uc.now()
	ctx, span := uc.tracer.Start(ctx, "ledger.apply_movement", trace.WithAttributes(
		attribute.String("product.id", in.ProductID),
		attribute.String("movement.kind", string(in.Kind)),
		attribute.Int("movement.delta", in.Delta),
	))
	defer span.End()

	mov, err := uc.applyMovement(ctx, in)

	outcome := outcomeFor(err)
	uc.observer.ObserveMovement(in.Kind, outcome, uc.now().Sub(start))
	span.SetAttributes(attribute.String("movement.outcome", outcome))
	if err != nil {
		span.SetStatus(codes.Error, outcome)
		return nil, err
	}
	span.SetAttributes(attribute.Int("movement.resulting_stock", mov.ResultingStock))
	return mov, nil
}

func (uc *LedgerUseCase) applyMovement(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	if in.ProductID == "" || !in.Kind.Valid() {
		return nil, domain.ErrInvalidInput
	}
	// Un delta cero no cambia la cantidad; se rechaza en vez de escribir un movimiento vacío.
	if in.Delta == 0 {
		return nil, fmt.Errorf("%w: el ajuste no puede ser cero", domain.ErrInvalidInput)
	}
	if !entity.QuantityInRange(in.Delta) {
		return nil, fmt.Errorf("%w: ajuste %d fuera de rango", domain.ErrInvalidInput, in.Delta)
	}

	var created *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error {
		created = nil
		product, err := productRepo.GetByIDForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		newQty := product.Quantity + in.Delta
		if newQty < 0 {
			return fmt.Errorf("%w: actual %d, ajuste %d", domain.ErrInsufficientStock, product.Quantity, in.Delta)
		}
		if newQty > entity.MaxQuantity {
			return fmt.Errorf("%w: la cantidad resultante %d supera el máximo %d", domain.ErrInvalidInput, newQty, entity.MaxQuantity)
		}
		if err := productRepo.UpdateQuantity(ctx, product.ID, newQty); err != nil {
			return err
		}
		mov := &entity.StockMovement{
			ID:             uuid.New().String(),
			ProductID:      product.ID,
			SKU:            product.SKU,
			ProductName:    product.Name,
			Kind:           in.Kind,
			Delta:          in.Delta,
			ResultingStock: newQty,
			FromLocation:   entity.NormalizeText(in.FromLocation),
			ToLocation:     entity.NormalizeText(in.ToLocation),
			Note:           entity.NormalizeText(in.Note),
			PerformedByID:  in.PerformedByID,
			CreatedAt:      uc.now().UTC(),
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		created = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func outcomeFor(err error) string {
	switch {
	case err == nil:
		return OutcomeApplied
	case errors.Is(err, domain.ErrInsufficientStock):
		return OutcomeInsufficient
	case errors.Is(err, domain.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}

// ListRecent devuelve los últimos movimientos (limit ajustado a [1, 200]).
func (uc *LedgerUseCase) ListRecent(ctx context.Context, limit int) ([]*entity.StockMovement, error) {
	return uc.movRepo.ListRecent(ctx, ClampLimit(limit))
}

// ListByProduct devuelve el libro completo de un producto en orden de creación.
func (uc *LedgerUseCase) ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.movRepo.ListByProduct(ctx, productID)
}
