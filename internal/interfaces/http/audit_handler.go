package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/octavian/nexus-inventory/internal/application/audit"
	"github.com/octavian/nexus-inventory/internal/application/dto"
)

// AuditHandler lectura de la auditoría.
type AuditHandler struct {
	recorder *audit.Recorder
}

// NewAuditHandler construye el handler.
func NewAuditHandler(recorder *audit.Recorder) *AuditHandler {
	return &AuditHandler{recorder: recorder}
}

// Recent godoc
// @Summary      Entradas de auditoría más recientes
// @Tags         audit-logs
// @Produce      json
// @Param        limit  query  int  false  "Límite (1-200)"  default(50)
// @Success      200    {array}  dto.AuditLogResponse
// @Router       /api/v1/audit-logs [get]
func (h *AuditHandler) Recent(c *fiber.Ctx) error {
	list, err := h.recorder.Recent(c.UserContext(), c.QueryInt("limit", dto.DefaultRecentLimit))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromAuditLogs(list))
}
