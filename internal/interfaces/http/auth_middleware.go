package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/octavian/nexus-inventory/internal/application/dto"
	"github.com/octavian/nexus-inventory/internal/domain/identity"
	"github.com/octavian/nexus-inventory/pkg/jwt"
)

// LocalClaims clave de c.Locals con la identidad del token.
const LocalClaims = "identity_claims"

// IdentityMiddleware valida el Bearer Token si viene. Sin header la petición sigue anónima;
// un header malformado o un token inválido devuelve 401.
func IdentityMiddleware(jwtSecret, issuer string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Next()
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: CodeInvalidToken, Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: CodeMissingToken, Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, issuer, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: CodeInvalidToken, Message: "token inválido o expirado"})
		}
		c.Locals(LocalClaims, claims)
		return c.Next()
	}
}

// RequireIdentity exige que IdentityMiddleware haya cargado una identidad.
func RequireIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetClaims(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: CodeMissingToken, Message: "Authorization header requerido"})
		}
		return c.Next()
	}
}

// GetClaims devuelve la identidad del token o nil si la petición es anónima.
func GetClaims(c *fiber.Ctx) *identity.Claims {
	claims, _ := c.Locals(LocalClaims).(*identity.Claims)
	return claims
}
