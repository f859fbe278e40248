package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/octavian/nexus-inventory/internal/application/dto"
)

// MetaHandler salud y metadatos del servicio.
type MetaHandler struct {
	appName string
	env     string
	now     func() time.Time
}

// NewMetaHandler construye el handler.
func NewMetaHandler(appName, env string) *MetaHandler {
	return &MetaHandler{appName: appName, env: env, now: time.Now}
}

// Health godoc
// @Summary      Salud del servicio
// @Tags         meta
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *MetaHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "service": h.appName})
}

// Meta godoc
// @Summary      Nombre de la app y hora del servidor
// @Tags         meta
// @Produce      json
// @Success      200  {object}  dto.MetaResponse
// @Router       /api/v1/meta [get]
func (h *MetaHandler) Meta(c *fiber.Ctx) error {
	return c.JSON(dto.MetaResponse{
		AppName:    h.appName,
		Env:        h.env,
		ServerTime: h.now().UTC().Format(time.RFC3339),
	})
}
