package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClasificacionDeErrores(t *testing.T) {
	unique := fmt.Errorf("insert product: %w", &pgconn.PgError{Code: "23505"})
	serial := fmt.Errorf("update: %w", &pgconn.PgError{Code: "40001"})
	deadlock := &pgconn.PgError{Code: "40P01"}

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isTransient(unique))
	assert.True(t, isTransient(serial))
	assert.True(t, isTransient(deadlock))
	assert.False(t, isUniqueViolation(errors.New("23505 en el texto no cuenta")))
}

func TestMigracionesEmbebidas(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	assert.NoError(t, err)
	require.Len(t, entries, 4)
	// stock_movements referencia app_users: debe crearse después
	assert.Equal(t, "00002_app_users.sql", entries[1].Name())
	assert.Equal(t, "00003_stock_movements.sql", entries[2].Name())

	ddl, err := migrationsFS.ReadFile("migrations/00003_stock_movements.sql")
	require.NoError(t, err)
	assert.Contains(t, string(ddl), "performed_by_id UUID REFERENCES app_users (id)")
}
