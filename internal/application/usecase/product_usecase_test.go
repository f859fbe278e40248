package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octavian/nexus-inventory/internal/application/dto"
	"github.com/octavian/nexus-inventory/internal/application/usecase"
	"github.com/octavian/nexus-inventory/internal/domain"
	"github.com/octavian/nexus-inventory/internal/domain/entity"
	"github.com/octavian/nexus-inventory/internal/infrastructure/memory"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func newProductUseCase() *usecase.ProductUseCase {
	return usecase.NewProductUseCase(memory.NewProductRepository(memory.NewStore()))
}

func TestProductCreate_ValoresPorDefecto(t *testing.T) {
	uc := newProductUseCase()
	p, err := uc.Create(context.Background(), dto.CreateProductRequest{
		SKU:   "  SKU-1 ",
		Name:  " Tornillo ",
		Price: decimal.RequireFromString("1.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "SKU-1", p.SKU)
	assert.Equal(t, "Tornillo", p.Name)
	assert.Equal(t, 0, p.Quantity)
	assert.Equal(t, 5, p.ReorderThreshold)
	assert.True(t, p.LowStockAlert)
	assert.NotEmpty(t, p.ID)
}

func TestProductCreate_Validaciones(t *testing.T) {
	uc := newProductUseCase()
	ctx := context.Background()
	cases := map[string]dto.CreateProductRequest{
		"sku vacío":          {SKU: " ", Name: "A"},
		"name vacío":         {SKU: "A", Name: ""},
		"precio negativo":    {SKU: "A", Name: "A", Price: decimal.NewFromInt(-1)},
		"cantidad negativa":  {SKU: "A", Name: "A", Quantity: -1},
		"cantidad excesiva":  {SKU: "A", Name: "A", Quantity: entity.MaxQuantity + 1},
		"umbral negativo":    {SKU: "A", Name: "A", ReorderThreshold: intPtr(-1)},
		"umbral fuera rango": {SKU: "A", Name: "A", ReorderThreshold: intPtr(entity.MaxQuantity + 1)},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Create(ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestProductCreate_SKUDuplicado(t *testing.T) {
	uc := newProductUseCase()
	ctx := context.Background()
	_, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "A", Name: "Uno"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "A", Name: "Dos"})
	assert.ErrorIs(t, err, domain.ErrDuplicateSKU)
}

func TestProductGetByID_NoExiste(t *testing.T) {
	uc := newProductUseCase()
	_, err := uc.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUpdate_NoTocaCantidadNiSKU(t *testing.T) {
	uc := newProductUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "A", Name: "Uno", Quantity: 12, ReorderThreshold: intPtr(3)})
	require.NoError(t, err)

	price := decimal.RequireFromString("9.99")
	updated, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{
		Name:             strPtr("Uno bis"),
		Category:         strPtr("Ferretería"),
		Price:            &price,
		ReorderThreshold: intPtr(20),
	})
	require.NoError(t, err)
	assert.Equal(t, "A", updated.SKU)
	assert.Equal(t, 12, updated.Quantity)
	assert.Equal(t, 12, updated.InitialQuantity)
	assert.Equal(t, "Uno bis", updated.Name)
	assert.Equal(t, "Ferretería", updated.Category)
	assert.True(t, price.Equal(updated.Price))
	assert.True(t, updated.LowStockAlert)

	_, err = uc.Update(ctx, created.ID, dto.UpdateProductRequest{Name: strPtr("  ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Update(ctx, "nope", dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductList_OrdenadoYPaginado(t *testing.T) {
	uc := newProductUseCase()
	ctx := context.Background()
	for _, n := range []string{"Cuerda", "Alambre", "Brocha"} {
		_, err := uc.Create(ctx, dto.CreateProductRequest{SKU: n, Name: n, Quantity: 10})
		require.NoError(t, err)
	}

	page, err := uc.List(ctx, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Alambre", page.Items[0].Name)
	assert.Equal(t, "Brocha", page.Items[1].Name)

	page, err = uc.List(ctx, dto.PageRequest{Limit: 500, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, dto.MaxPageLimit, page.Page.Limit)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Cuerda", page.Items[0].Name)
}

func TestProductListLowStock(t *testing.T) {
	uc := newProductUseCase()
	ctx := context.Background()
	_, err := uc.Create(ctx, dto.CreateProductRequest{SKU: "A", Name: "A", Quantity: 5})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "B", Name: "B", Quantity: 6})
	require.NoError(t, err)

	low, err := uc.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "A", low[0].SKU)
}
