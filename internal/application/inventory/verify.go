package inventory

import (
	"context"

	"github.com/octavian/nexus-inventory/internal/domain"
	"github.com/octavian/nexus-inventory/internal/domain/entity"
)

// LedgerCheck resultado del replay del libro de un producto.
type LedgerCheck struct {
	ProductID        string
	InitialQuantity  int
	CurrentQuantity  int
	ReplayedQuantity int
	Movements        int
	Consistent       bool
	// FirstMismatchID es el primer movimiento cuyo ResultingStock no coincide con el total acumulado.
	FirstMismatchID string
}

// VerifyLedger reproduce los movimientos del producto desde InitialQuantity y comprueba que cada
// ResultingStock y la cantidad actual coincidan con el total acumulado. Solo lectura.
func (uc *LedgerUseCase) VerifyLedger(ctx context.Context, productID string) (*LedgerCheck, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	movements, err := uc.movRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	check := Replay(product, movements)
	return &check, nil
}

// Replay calcula el LedgerCheck de un producto sobre sus movimientos ordenados por creación.
func Replay(product *entity.Product, movements []*entity.StockMovement) LedgerCheck {
	check := LedgerCheck{
		ProductID:       product.ID,
		InitialQuantity: product.InitialQuantity,
		CurrentQuantity: product.Quantity,
		Movements:       len(movements),
	}
	running := product.InitialQuantity
	for _, m := range movements {
		running += m.Delta
		if check.FirstMismatchID == "" && (m.ResultingStock != running || running < 0) {
			check.FirstMismatchID = m.ID
		}
	}
	check.ReplayedQuantity = running
	check.Consistent = check.FirstMismatchID == "" && running == product.Quantity
	return check
}
