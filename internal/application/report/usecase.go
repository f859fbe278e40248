// Package report agrega el valor del inventario por categoría y delega el formato a los renderers.
package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/octavian/nexus-inventory/internal/application/dto"
	"github.com/octavian/nexus-inventory/internal/domain/entity"
	"github.com/octavian/nexus-inventory/internal/domain/repository"
)

// UncategorizedLabel agrupa los productos sin categoría.
const UncategorizedLabel = "Uncategorized"

// UseCase reportes de solo lectura sobre el catálogo.
type UseCase struct {
	products repository.ProductRepository
	pdf      PDFRenderer
	xlsx     XLSXRenderer
	now      func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(products repository.ProductRepository, pdf PDFRenderer, xlsx XLSXRenderer) *UseCase {
	return &UseCase{products: products, pdf: pdf, xlsx: xlsx, now: time.Now}
}

// InventoryByCategory valor del inventario (precio × cantidad) agrupado por categoría,
// ordenado por valor descendente (empate: nombre de categoría).
func (uc *UseCase) InventoryByCategory(ctx context.Context) (*dto.InventoryReport, error) {
	list, err := uc.products.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: listar productos: %w", err)
	}
	return Aggregate(list, uc.now().UTC()), nil
}

// RenderPDF genera el reporte en PDF.
func (uc *UseCase) RenderPDF(ctx context.Context) ([]byte, error) {
	rep, err := uc.InventoryByCategory(ctx)
	if err != nil {
		return nil, err
	}
	return uc.pdf.RenderInventoryPDF(ctx, rep)
}

// RenderXLSX genera el reporte en XLSX.
func (uc *UseCase) RenderXLSX(ctx context.Context) ([]byte, error) {
	rep, err := uc.InventoryByCategory(ctx)
	if err != nil {
		return nil, err
	}
	return uc.xlsx.RenderInventoryXLSX(ctx, rep)
}

// Aggregate agrupa los productos por categoría. Función pura.
func Aggregate(products []*entity.Product, at time.Time) *dto.InventoryReport {
	byCategory := make(map[string]*dto.CategoryValueRow)
	rep := &dto.InventoryReport{GeneratedAt: at, TotalValue: decimal.Zero}
	for _, p := range products {
		cat := strings.TrimSpace(p.Category)
		if cat == "" {
			cat = UncategorizedLabel
		}
		row, ok := byCategory[cat]
		if !ok {
			row = &dto.CategoryValueRow{Category: cat, Value: decimal.Zero}
			byCategory[cat] = row
		}
		value := p.StockValue()
		row.SKUs++
		row.Units += p.Quantity
		row.Value = row.Value.Add(value)
		if p.LowStockAlert() {
			row.LowStock++
		}
		rep.TotalSKUs++
		rep.TotalUnits += p.Quantity
		rep.TotalValue = rep.TotalValue.Add(value)
	}

	rep.Rows = make([]dto.CategoryValueRow, 0, len(byCategory))
	for _, row := range byCategory {
		rep.Rows = append(rep.Rows, *row)
	}
	sort.Slice(rep.Rows, func(i, j int) bool {
		if c := rep.Rows[i].Value.Cmp(rep.Rows[j].Value); c != 0 {
			return c > 0
		}
		return rep.Rows[i].Category < rep.Rows[j].Category
	})
	return rep
}
