package memory

import (
	"context"

	"github.com/octavian/nexus-inventory/internal/domain/entity"
	"github.com/octavian/nexus-inventory/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos en memoria (orden de inserción = orden de creación).
type StockMovementRepo struct {
	sc scope
}

// NewStockMovementRepository construye el repositorio.
func NewStockMovementRepository(store *Store) *StockMovementRepo {
	return &StockMovementRepo{sc: scope{store: store}}
}

// Create agrega un movimiento al final del libro.
func (r *StockMovementRepo) Create(_ context.Context, movement *entity.StockMovement) error {
	return r.sc.with(func(d *data) error {
		d.movements = append(d.movements, *movement)
		return nil
	})
}

// ListRecent devuelve hasta limit movimientos, más recientes primero.
func (r *StockMovementRepo) ListRecent(_ context.Context, limit int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.sc.with(func(d *data) error {
		out = make([]*entity.StockMovement, 0, limit)
		for i := len(d.movements) - 1; i >= 0 && len(out) < limit; i-- {
			out = append(out, d.withPerformer(d.movements[i]))
		}
		return nil
	})
	return out, err
}

// ListByProduct devuelve los movimientos del producto en orden de creación.
func (r *StockMovementRepo) ListByProduct(_ context.Context, productID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.sc.with(func(d *data) error {
		out = make([]*entity.StockMovement, 0)
		for _, m := range d.movements {
			if m.ProductID == productID {
				out = append(out, d.withPerformer(m))
			}
		}
		return nil
	})
	return out, err
}

// withPerformer copia el movimiento con el email actual de su autor, como el LEFT JOIN de PostgreSQL.
func (d *data) withPerformer(m entity.StockMovement) *entity.StockMovement {
	m.PerformedByEmail = nil
	if m.PerformedByID != nil {
		if u, ok := d.users[*m.PerformedByID]; ok {
			email := u.Email
			m.PerformedByEmail = &email
		}
	}
	return &m
}
