package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octavian/nexus-inventory/internal/domain"
	"github.com/octavian/nexus-inventory/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de transacción
// ──────────────────────────────────────────────────────────────────────────────

// fakeTx solo implementa Commit y Rollback; el resto de pgx.Tx no se usa en estos tests.
type fakeTx struct {
	pgx.Tx
	commitErr error
	commits   int
	rollbacks int
}

func (t *fakeTx) Commit(context.Context) error {
	t.commits++
	return t.commitErr
}

func (t *fakeTx) Rollback(context.Context) error {
	t.rollbacks++
	return nil
}

type fakeBeginner struct {
	tx     *fakeTx
	begins int
}

func (b *fakeBeginner) Begin(context.Context) (pgx.Tx, error) {
	b.begins++
	return b.tx, nil
}

func newRunner(maxAttempts int) (*TxRunner, *fakeBeginner) {
	db := &fakeBeginner{tx: &fakeTx{}}
	return NewTxRunner(db, maxAttempts, zerolog.Nop()), db
}

// failing devuelve un callback que falla con err las primeras n veces.
func failing(n int, err error, calls *int) func(repository.ProductRepository, repository.StockMovementRepository) error {
	return func(repository.ProductRepository, repository.StockMovementRepository) error {
		*calls++
		if *calls <= n {
			return err
		}
		return nil
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Reintentos
// ──────────────────────────────────────────────────────────────────────────────

func TestTxRunner_ReintentaConflictosHastaAgotar(t *testing.T) {
	r, db := newRunner(3)
	calls := 0

	err := r.Run(context.Background(), failing(10, &pgconn.PgError{Code: codeSerializationFailure}, &calls))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTxConflict)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, db.begins)
	assert.Zero(t, db.tx.commits)
	assert.Equal(t, 3, db.tx.rollbacks)
}

func TestTxRunner_ConflictoTransitorioLuegoExito(t *testing.T) {
	r, db := newRunner(3)
	calls := 0

	err := r.Run(context.Background(), failing(2, &pgconn.PgError{Code: codeDeadlockDetected}, &calls))

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 1, db.tx.commits)
}

func TestTxRunner_ErrorNoTransitorioNoSeReintenta(t *testing.T) {
	r, db := newRunner(3)
	calls := 0

	err := r.Run(context.Background(), failing(10, domain.ErrInsufficientStock, &calls))

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.False(t, errors.Is(err, domain.ErrTxConflict))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, db.begins)
}

func TestTxRunner_ConflictoEnCommitSeReintenta(t *testing.T) {
	r, db := newRunner(2)
	db.tx.commitErr = &pgconn.PgError{Code: codeSerializationFailure}
	calls := 0

	err := r.Run(context.Background(), failing(0, nil, &calls))

	assert.ErrorIs(t, err, domain.ErrTxConflict)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, db.tx.commits)
}

func TestTxRunner_UnSoloIntento(t *testing.T) {
	r, _ := newRunner(0)
	calls := 0

	err := r.Run(context.Background(), failing(10, &pgconn.PgError{Code: codeSerializationFailure}, &calls))

	assert.ErrorIs(t, err, domain.ErrTxConflict)
	assert.Equal(t, 1, calls)
}
