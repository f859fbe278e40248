package dto

import (
	"time"

	"github.com/octavian/nexus-inventory/internal/domain/entity"
)

// DefaultRecentLimit límite por defecto de los listados recientes (movimientos y auditoría).
const DefaultRecentLimit = 50

// RegisterMovementRequest body de POST /api/v1/stock-movements.
type RegisterMovementRequest struct {
	ProductID    string  `json:"product_id"`
	Kind         string  `json:"kind"`
	Delta        int     `json:"delta"`
	FromLocation *string `json:"from_location,omitempty"`
	ToLocation   *string `json:"to_location,omitempty"`
	Note         *string `json:"note,omitempty"`
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"product_id"`
	SKU              string    `json:"sku"`
	ProductName      string    `json:"product_name"`
	Kind             string    `json:"kind"`
	Delta            int       `json:"delta"`
	ResultingStock   int       `json:"resulting_stock"`
	FromLocation     *string   `json:"from_location,omitempty"`
	ToLocation       *string   `json:"to_location,omitempty"`
	Note             *string   `json:"note,omitempty"`
	PerformedByID    *string   `json:"performed_by_id,omitempty"`
	PerformedByEmail *string   `json:"performed_by_email,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	AuditWarning     string    `json:"audit_warning,omitempty"`
}

// StockAdjustedResponse salida de PATCH /products/:id/stock.
type StockAdjustedResponse struct {
	ProductResponse
	MovementID string `json:"movement_id"`
}

// LedgerCheckResponse salida de GET /products/:id/ledger-check.
type LedgerCheckResponse struct {
	ProductID        string  `json:"product_id"`
	InitialQuantity  int     `json:"initial_quantity"`
	CurrentQuantity  int     `json:"current_quantity"`
	ReplayedQuantity int     `json:"replayed_quantity"`
	Movements        int     `json:"movements"`
	Consistent       bool    `json:"consistent"`
	FirstMismatchID  *string `json:"first_mismatch_id,omitempty"`
}

// FromMovement convierte la entidad en su salida HTTP.
func FromMovement(m *entity.StockMovement) *MovementResponse {
	if m == nil {
		return nil
	}
	return &MovementResponse{
		ID:               m.ID,
		ProductID:        m.ProductID,
		SKU:              m.SKU,
		ProductName:      m.ProductName,
		Kind:             string(m.Kind),
		Delta:            m.Delta,
		ResultingStock:   m.ResultingStock,
		FromLocation:     m.FromLocation,
		ToLocation:       m.ToLocation,
		Note:             m.Note,
		PerformedByID:    m.PerformedByID,
		PerformedByEmail: m.PerformedByEmail,
		CreatedAt:        m.CreatedAt,
	}
}

// FromMovements convierte una lista de movimientos.
func FromMovements(list []*entity.StockMovement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *FromMovement(m))
	}
	return out
}
