package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultReorderThreshold umbral de reorden cuando no se indica al crear el producto.
const DefaultReorderThreshold = 5

// MaxQuantity límite de cantidades, deltas y umbrales: las columnas son INTEGER.
const MaxQuantity = math.MaxInt32

// QuantityInRange indica si n cabe en una columna de cantidad.
func QuantityInRange(n int) bool {
	return n >= -MaxQuantity && n <= MaxQuantity
}

// Product representa un producto del inventario.
// Quantity solo se modifica a través del libro de movimientos (LedgerUseCase).
type Product struct {
	ID               string
	SKU              string // único e inmutable
	Name             string
	Category         string
	Description      string
	Price            decimal.Decimal
	Quantity         int
	ReorderThreshold int
	InitialQuantity  int // cantidad al crear; origen del replay del libro
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// LowStockAlert es verdadero cuando la cantidad está en o por debajo del umbral de reorden.
func (p *Product) LowStockAlert() bool {
	return p.Quantity <= p.ReorderThreshold
}

// StockValue valor del inventario del producto (precio × cantidad).
func (p *Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
