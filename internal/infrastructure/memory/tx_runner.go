package memory

import (
	"context"

	"github.com/octavian/nexus-inventory/internal/application/inventory"
	"github.com/octavian/nexus-inventory/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta fn sobre una copia del estado con el Store bloqueado; la copia reemplaza
// al estado solo si fn termina sin error.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run implementa inventory.TxRunner.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	staged := r.store.data.clone()
	sc := scope{store: r.store, tx: staged}
	if err := fn(&ProductRepo{sc: sc}, &StockMovementRepo{sc: sc}); err != nil {
		return err
	}
	r.store.data = staged
	return nil
}
