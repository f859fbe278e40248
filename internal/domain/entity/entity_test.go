package entity_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octavian/nexus-inventory/internal/domain/entity"
)

// Cada tipo de movimiento debe tener acción de auditoría (la función hace panic si falta).
func TestAuditActionForMovement_Exhaustivo(t *testing.T) {
	want := map[entity.MovementKind]entity.AuditAction{
		entity.MovementReceiving:  entity.AuditStockReceiving,
		entity.MovementTransfer:   entity.AuditStockTransfer,
		entity.MovementAdjustment: entity.AuditStockAdjustment,
	}
	for _, k := range entity.MovementKinds() {
		require.NotPanics(t, func() { entity.AuditActionForMovement(k) }, "kind %s", k)
		assert.Equal(t, want[k], entity.AuditActionForMovement(k))
	}
	assert.Panics(t, func() { entity.AuditActionForMovement("SALE") })
}

func TestMovementKind_Valid(t *testing.T) {
	assert.True(t, entity.MovementAdjustment.Valid())
	assert.False(t, entity.MovementKind("adjustment").Valid())
	assert.False(t, entity.MovementKind("").Valid())
}

func TestProduct_LowStockAlert(t *testing.T) {
	p := &entity.Product{Quantity: 10, ReorderThreshold: 5}
	assert.False(t, p.LowStockAlert())
	p.Quantity = 5
	assert.True(t, p.LowStockAlert())
	p.Quantity = 0
	assert.True(t, p.LowStockAlert())
}

func TestProduct_StockValue(t *testing.T) {
	p := &entity.Product{Quantity: 3, Price: decimal.RequireFromString("2.50")}
	assert.True(t, p.StockValue().Equal(decimal.RequireFromString("7.5")))
}

func TestNormalizeText(t *testing.T) {
	blank := "   \t"
	padded := "  Bodega Norte "
	assert.Nil(t, entity.NormalizeText(nil))
	assert.Nil(t, entity.NormalizeText(&blank))
	require.NotNil(t, entity.NormalizeText(&padded))
	assert.Equal(t, "Bodega Norte", *entity.NormalizeText(&padded))
}

func TestTruncateDetails(t *testing.T) {
	short := "nota"
	assert.Equal(t, &short, entity.TruncateDetails(&short))
	assert.Nil(t, entity.TruncateDetails(nil))

	long := strings.Repeat("ñ", entity.MaxAuditDetailsLength+10)
	got := entity.TruncateDetails(&long)
	require.NotNil(t, got)
	assert.Equal(t, entity.MaxAuditDetailsLength, len([]rune(*got)))
}
