package repository

import (
	"context"

	"github.com/octavian/nexus-inventory/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las lecturas devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetByIDForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// UpdateDetails sobrescribe nombre, categoría, descripción, precio y umbral. Nunca la cantidad.
	UpdateDetails(ctx context.Context, product *entity.Product) error
	// UpdateQuantity solo debe llamarse desde el libro de movimientos.
	UpdateQuantity(ctx context.Context, productID string, quantity int) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	ListLowStock(ctx context.Context) ([]*entity.Product, error)
	ListAll(ctx context.Context) ([]*entity.Product, error)
}
