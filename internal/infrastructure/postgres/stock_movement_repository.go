package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/octavian/nexus-inventory/internal/domain/entity"
	"github.com/octavian/nexus-inventory/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, product_id, sku, product_name, kind, delta, resulting_stock, from_location, to_location, note, performed_by_id, created_at`

// movementSelect une el email actual del autor. El orden del libro es seq: lo asigna la base
// de datos al insertar, bajo el bloqueo de fila del producto, y no depende del reloj de la app.
const movementSelect = `SELECT m.id, m.product_id, m.sku, m.product_name, m.kind, m.delta, m.resulting_stock,
		m.from_location, m.to_location, m.note, m.performed_by_id, m.created_at, u.email
	FROM stock_movements m
	LEFT JOIN app_users u ON u.id = m.performed_by_id`

// StockMovementRepo libro de movimientos sobre PostgreSQL (usable con pool o tx). Solo inserción.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento. seq (BIGSERIAL) fija su posición en el libro.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.SKU, m.ProductName, string(m.Kind), m.Delta, m.ResultingStock,
		m.FromLocation, m.ToLocation, m.Note, m.PerformedByID, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListRecent devuelve los últimos movimientos, más recientes primero.
func (r *StockMovementRepo) ListRecent(ctx context.Context, limit int) ([]*entity.StockMovement, error) {
	return r.list(ctx, movementSelect+` ORDER BY m.seq DESC LIMIT $1`, limit)
}

// ListByProduct devuelve los movimientos de un producto en orden de creación.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	if !validUUID(productID) {
		return []*entity.StockMovement{}, nil
	}
	return r.list(ctx, movementSelect+` WHERE m.product_id = $1 ORDER BY m.seq`, productID)
}

func (r *StockMovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.StockMovement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var kind string
	if err := row.Scan(
		&m.ID, &m.ProductID, &m.SKU, &m.ProductName, &kind, &m.Delta, &m.ResultingStock,
		&m.FromLocation, &m.ToLocation, &m.Note, &m.PerformedByID, &m.CreatedAt, &m.PerformedByEmail,
	); err != nil {
		return nil, err
	}
	m.Kind = entity.MovementKind(kind)
	return &m, nil
}
