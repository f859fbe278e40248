package report

import (
	"context"

	"github.com/octavian/nexus-inventory/internal/application/dto"
)

// PDFRenderer genera el PDF del reporte de inventario.
type PDFRenderer interface {
	RenderInventoryPDF(ctx context.Context, report *dto.InventoryReport) ([]byte, error)
}

// XLSXRenderer genera la hoja de cálculo del reporte de inventario.
type XLSXRenderer interface {
	RenderInventoryXLSX(ctx context.Context, report *dto.InventoryReport) ([]byte, error)
}
