package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/octavian/nexus-inventory/internal/application/dto"
	appidentity "github.com/octavian/nexus-inventory/internal/application/identity"
)

// UserHandler usuarios conocidos por la app (creados desde los tokens).
type UserHandler struct {
	resolver *appidentity.Resolver
}

// NewUserHandler construye el handler.
func NewUserHandler(resolver *appidentity.Resolver) *UserHandler {
	return &UserHandler{resolver: resolver}
}

// Me godoc
// @Summary      Usuario actual (crea o actualiza el perfil desde el token)
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/v1/users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, err := h.resolver.Resolve(c.UserContext(), GetClaims(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromUser(user))
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Produce      json
// @Success      200  {array}  dto.UserResponse
// @Router       /api/v1/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	list, err := h.resolver.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromUsers(list))
}
