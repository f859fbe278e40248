package entity

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// MovementKind tipo de movimiento de stock.
type MovementKind string

// Tipos de movimiento soportados por el libro.
const (
	MovementReceiving  MovementKind = "RECEIVING"
	MovementTransfer   MovementKind = "TRANSFER"
	MovementAdjustment MovementKind = "ADJUSTMENT"
)

// MovementKinds devuelve todos los tipos válidos.
func MovementKinds() []MovementKind {
	return []MovementKind{MovementReceiving, MovementTransfer, MovementAdjustment}
}

// Valid indica si el tipo es uno de los enumerados.
func (k MovementKind) Valid() bool {
	switch k {
	case MovementReceiving, MovementTransfer, MovementAdjustment:
		return true
	}
	return false
}

// StockMovement registro inmutable de un cambio de cantidad de un producto.
// SKU y ProductName son snapshots: sobreviven a renombres posteriores del producto.
type StockMovement struct {
	ID             string
	ProductID      string
	SKU            string
	ProductName    string
	Kind           MovementKind
	Delta          int
	ResultingStock int // cantidad del producto inmediatamente después de aplicar Delta
	FromLocation   *string
	ToLocation     *string
	Note           *string
	PerformedByID  *string
	CreatedAt      time.Time

	// PerformedByEmail email actual del autor; lo rellenan las lecturas, no se persiste.
	PerformedByEmail *string
}

// NormalizeText recorta espacios y normaliza a NFC; devuelve nil si queda vacío.
func NormalizeText(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(norm.NFC.String(*s))
	if t == "" {
		return nil
	}
	return &t
}
