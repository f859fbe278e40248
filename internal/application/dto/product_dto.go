package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/octavian/nexus-inventory/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto. Quantity es el stock inicial.
type CreateProductRequest struct {
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price"`
	Quantity         int             `json:"quantity"`
	ReorderThreshold *int            `json:"reorder_threshold,omitempty"`
}

// UpdateProductRequest entrada para actualizar un producto. Nunca toca SKU ni cantidad.
type UpdateProductRequest struct {
	Name             *string          `json:"name,omitempty"`
	Category         *string          `json:"category,omitempty"`
	Description      *string          `json:"description,omitempty"`
	Price            *decimal.Decimal `json:"price,omitempty"`
	ReorderThreshold *int             `json:"reorder_threshold,omitempty"`
}

// AdjustStockRequest body de PATCH /products/:id/stock.
type AdjustStockRequest struct {
	Delta int     `json:"delta"`
	Note  *string `json:"note,omitempty"`
}

// ProductResponse salida de un producto; low_stock_alert se calcula en lectura.
type ProductResponse struct {
	ID               string          `json:"id"`
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price"`
	Quantity         int             `json:"quantity"`
	ReorderThreshold int             `json:"reorder_threshold"`
	InitialQuantity  int             `json:"initial_quantity"`
	LowStockAlert    bool            `json:"low_stock_alert"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	AuditWarning     string          `json:"audit_warning,omitempty"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// FromProduct convierte la entidad en su salida HTTP.
func FromProduct(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:               p.ID,
		SKU:              p.SKU,
		Name:             p.Name,
		Category:         p.Category,
		Description:      p.Description,
		Price:            p.Price,
		Quantity:         p.Quantity,
		ReorderThreshold: p.ReorderThreshold,
		InitialQuantity:  p.InitialQuantity,
		LowStockAlert:    p.LowStockAlert(),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
