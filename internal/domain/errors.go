package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicateSKU      = errors.New("el SKU ya está registrado")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	// ErrTxConflict se devuelve cuando se agotan los reintentos de una transacción en conflicto.
	ErrTxConflict = errors.New("conflicto de transacción")
	// ErrAuditDegraded indica que la operación principal se aplicó pero la auditoría falló.
	ErrAuditDegraded = errors.New("auditoría no registrada")
)
