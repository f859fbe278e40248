package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octavian/nexus-inventory/internal/application/dto"
	"github.com/octavian/nexus-inventory/internal/application/report"
	"github.com/octavian/nexus-inventory/internal/domain/entity"
	"github.com/octavian/nexus-inventory/internal/infrastructure/memory"
)

func product(sku, category, price string, qty int) *entity.Product {
	return &entity.Product{
		ID: sku, SKU: sku, Name: sku, Category: category,
		Price: decimal.RequireFromString(price), Quantity: qty,
		ReorderThreshold: entity.DefaultReorderThreshold,
	}
}

func TestAggregate(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rep := report.Aggregate([]*entity.Product{
		product("A", "Ferretería", "2.50", 10),
		product("B", "Ferretería", "1.00", 3),
		product("C", " ", "100", 1),
		product("D", "Pinturas", "0", 50),
	}, at)

	require.Len(t, rep.Rows, 3)
	assert.Equal(t, report.UncategorizedLabel, rep.Rows[0].Category)
	assert.Equal(t, "Ferretería", rep.Rows[1].Category)
	assert.Equal(t, 2, rep.Rows[1].SKUs)
	assert.Equal(t, 13, rep.Rows[1].Units)
	assert.True(t, decimal.RequireFromString("28").Equal(rep.Rows[1].Value))
	assert.Equal(t, 1, rep.Rows[1].LowStock)
	assert.Equal(t, "Pinturas", rep.Rows[2].Category)

	assert.Equal(t, 4, rep.TotalSKUs)
	assert.Equal(t, 64, rep.TotalUnits)
	assert.True(t, decimal.RequireFromString("128").Equal(rep.TotalValue))
	assert.Equal(t, at, rep.GeneratedAt)
}

type captureRenderer struct {
	got *dto.InventoryReport
}

func (c *captureRenderer) RenderInventoryPDF(_ context.Context, r *dto.InventoryReport) ([]byte, error) {
	c.got = r
	return []byte("%PDF"), nil
}

func (c *captureRenderer) RenderInventoryXLSX(_ context.Context, r *dto.InventoryReport) ([]byte, error) {
	c.got = r
	return []byte("PK"), nil
}

func TestRender_DelegaEnRenderers(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewProductRepository(store)
	require.NoError(t, repo.Create(context.Background(), product("A", "X", "1", 1)))

	r := &captureRenderer{}
	uc := report.NewUseCase(repo, r, r)

	out, err := uc.RenderPDF(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), out)
	require.NotNil(t, r.got)
	assert.Equal(t, 1, r.got.TotalSKUs)

	out, err = uc.RenderXLSX(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("PK"), out)
}
