// Package pdf genera el reporte de inventario por categoría en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la app  │  Título + fecha de generación   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Categoría | SKUs | Unidades | Bajo stock | Valor     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES                                                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/octavian/nexus-inventory/internal/application/dto"
	"github.com/octavian/nexus-inventory/internal/application/report"
)

var _ report.PDFRenderer = (*MarotoReportRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 40, Blue: 40}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

// MarotoReportRenderer implementa report.PDFRenderer usando Maroto v2.
type MarotoReportRenderer struct {
	appName string
}

// NewMarotoReportRenderer construye el renderer.
func NewMarotoReportRenderer(appName string) *MarotoReportRenderer {
	return &MarotoReportRenderer{appName: appName}
}

// RenderInventoryPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportRenderer) RenderInventoryPDF(_ context.Context, rep *dto.InventoryReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Inventory by category", true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.appName, rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(rep.Rows)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(rep))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(appName string, rep *dto.InventoryReport) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New(appName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(6).Add(
			text.New("INVENTORY BY CATEGORY", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Generated: "+rep.GeneratedAt.Format("2006-01-02 15:04 MST"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Category", 4, align.Left),
		h("SKUs", 2, align.Center),
		h("Units", 2, align.Center),
		h("Low stock", 1, align.Center),
		h("Value", 3, align.Right),
	)
}

func tableRows(rows []dto.CategoryValueRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		low := props.Text{Size: 8, Align: align.Center, Top: 1}
		if r.LowStock > 0 {
			low.Color = colorAlert
			low.Style = fontstyle.Bold
		}
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(r.Category, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(strconv.Itoa(r.SKUs), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(strconv.Itoa(r.Units), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(strconv.Itoa(r.LowStock), low)),
			col.New(3).Add(text.New(FormatMoney(r.Value), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(rep *dto.InventoryReport) core.Row {
	bold := props.Text{Style: fontstyle.Bold, Size: 9, Top: 1}
	center := bold
	center.Align = align.Center
	right := bold
	right.Align = align.Right
	right.Right = 1
	right.Color = colorPrimary
	return row.New(9).Add(
		col.New(4).Add(text.New("TOTAL", bold)),
		col.New(2).Add(text.New(strconv.Itoa(rep.TotalSKUs), center)),
		col.New(2).Add(text.New(strconv.Itoa(rep.TotalUnits), center)),
		col.New(1),
		col.New(3).Add(text.New(FormatMoney(rep.TotalValue), right)),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// FormatMoney formatea con dos decimales y separador de miles.
// Ej: 1234567.5 → "$1,234,567.50"
func FormatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + "$" + string(buf) + "." + frac
}
