package repository

import (
	"context"

	"github.com/octavian/nexus-inventory/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para el libro de movimientos.
// No hay Update ni Delete: los movimientos son inmutables.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListRecent devuelve los últimos movimientos, más recientes primero.
	ListRecent(ctx context.Context, limit int) ([]*entity.StockMovement, error)
	// ListByProduct devuelve los movimientos de un producto en orden de creación.
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error)
}
