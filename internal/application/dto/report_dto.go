package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryValueRow fila del reporte de inventario por categoría.
type CategoryValueRow struct {
	Category string          `json:"category"`
	SKUs     int             `json:"skus"`
	Units    int             `json:"units"`
	Value    decimal.Decimal `json:"value"`
	LowStock int             `json:"low_stock"`
}

// InventoryReport valor del inventario agrupado por categoría.
type InventoryReport struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Rows        []CategoryValueRow `json:"rows"`
	TotalSKUs   int                `json:"total_skus"`
	TotalUnits  int                `json:"total_units"`
	TotalValue  decimal.Decimal    `json:"total_value"`
}
