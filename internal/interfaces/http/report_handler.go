package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/octavian/nexus-inventory/internal/application/report"
)

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler reportes de inventario.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Inventory godoc
// @Summary      Valor del inventario por categoría
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.InventoryReport
// @Router       /api/v1/reports/inventory [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	out, err := h.uc.InventoryByCategory(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// InventoryPDF godoc
// @Summary      Valor del inventario por categoría (PDF)
// @Tags         reports
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/v1/reports/inventory.pdf [get]
func (h *ReportHandler) InventoryPDF(c *fiber.Ctx) error {
	out, err := h.uc.RenderPDF(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, out, "application/pdf", "inventory.pdf")
}

// InventoryXLSX godoc
// @Summary      Valor del inventario por categoría (XLSX)
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/v1/reports/inventory.xlsx [get]
func (h *ReportHandler) InventoryXLSX(c *fiber.Ctx) error {
	out, err := h.uc.RenderXLSX(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return sendAttachment(c, out, contentTypeXLSX, "inventory.xlsx")
}

func sendAttachment(c *fiber.Ctx, body []byte, contentType, filename string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(body)
}
