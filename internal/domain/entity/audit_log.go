package entity

import (
	"fmt"
	"time"
)

// AuditAction tipo de acción auditada.
type AuditAction string

const (
	AuditProductCreated  AuditAction = "PRODUCT_CREATED"
	AuditProductUpdated  AuditAction = "PRODUCT_UPDATED"
	AuditStockAdjustment AuditAction = "STOCK_ADJUSTMENT"
	AuditStockReceiving  AuditAction = "STOCK_RECEIVING"
	AuditStockTransfer   AuditAction = "STOCK_TRANSFER"
)

// Tipos de entidad referenciados por la auditoría.
const (
	EntityProduct       = "PRODUCT"
	EntityStockMovement = "STOCK_MOVEMENT"
)

// MaxAuditDetailsLength longitud máxima (en runas) del campo Details.
const MaxAuditDetailsLength = 1000

// AuditActionForMovement mapea cada tipo de movimiento a su acción de auditoría.
// Un tipo nuevo sin mapeo hace fallar TestAuditActionForMovement_Exhaustivo.
func AuditActionForMovement(kind MovementKind) AuditAction {
	switch kind {
	case MovementReceiving:
		return AuditStockReceiving
	case MovementTransfer:
		return AuditStockTransfer
	case MovementAdjustment:
		return AuditStockAdjustment
	}
	panic(fmt.Sprintf("entity: tipo de movimiento sin acción de auditoría: %q", kind))
}

// AuditLogEntry registro inmutable de una acción privilegiada.
type AuditLogEntry struct {
	ID          string
	UserID      string
	Action      AuditAction
	EntityType  string
	EntityID    string
	Description string
	Details     *string
	CreatedAt   time.Time
}

// AuditLogView entrada de auditoría enriquecida con los datos actuales del usuario.
type AuditLogView struct {
	AuditLogEntry
	UserEmail       string
	UserDisplayName *string
}

// TruncateDetails corta details a MaxAuditDetailsLength runas.
func TruncateDetails(details *string) *string {
	if details == nil {
		return nil
	}
	r := []rune(*details)
	if len(r) <= MaxAuditDetailsLength {
		return details
	}
	t := string(r[:MaxAuditDetailsLength])
	return &t
}
