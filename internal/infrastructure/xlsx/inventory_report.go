// Package xlsx exporta el reporte de inventario a una hoja de cálculo.
package xlsx

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/octavian/nexus-inventory/internal/application/dto"
	"github.com/octavian/nexus-inventory/internal/application/report"
)

var _ report.XLSXRenderer = (*ExcelizeReportRenderer)(nil)

// SheetName nombre de la hoja del reporte.
const SheetName = "Inventory"

// ExcelizeReportRenderer implementa report.XLSXRenderer con excelize.
type ExcelizeReportRenderer struct{}

// NewExcelizeReportRenderer construye el renderer.
func NewExcelizeReportRenderer() *ExcelizeReportRenderer { return &ExcelizeReportRenderer{} }

// RenderInventoryXLSX escribe una fila por categoría más la fila de totales.
func (r *ExcelizeReportRenderer) RenderInventoryXLSX(_ context.Context, rep *dto.InventoryReport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), SheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	header := []interface{}{"category", "skus", "units", "low_stock", "value"}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx: cabecera: %w", err)
	}

	row := 2
	for _, c := range rep.Rows {
		values := []interface{}{c.Category, c.SKUs, c.Units, c.LowStock, c.Value.InexactFloat64()}
		if err := setRow(f, row, values); err != nil {
			return nil, err
		}
		row++
	}
	totals := []interface{}{"TOTAL", rep.TotalSKUs, rep.TotalUnits, nil, rep.TotalValue.InexactFloat64()}
	if err := setRow(f, row, totals); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	last := fmt.Sprintf("E%d", row)
	_ = f.SetCellStyle(SheetName, "A1", "E1", bold)
	_ = f.SetCellStyle(SheetName, "E2", last, money)
	_ = f.SetColWidth(SheetName, "A", "A", 28)

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("xlsx: celda: %w", err)
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("xlsx: fila %d: %w", row, err)
	}
	return nil
}
