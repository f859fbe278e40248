package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/octavian/nexus-inventory/internal/application/dto"
)

// RateLimit limita las mutaciones (POST, PUT, PATCH, DELETE) por IP. formatted usa el
// formato de ulule/limiter, p. ej. "60-M". Las lecturas no se limitan.
func RateLimit(formatted string) (fiber.Handler, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, err
	}
	instance := limiter.New(memory.NewStore(), rate)

	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}
		lctx, err := instance.Get(c.UserContext(), c.IP())
		if err != nil {
			// sin almacén de cuotas no se bloquea la petición
			log.Warn().Err(err).Msg("rate limit no disponible")
			return c.Next()
		}
		c.Set("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))
		if lctx.Reached {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: CodeRateLimited, Message: "demasiadas peticiones"})
		}
		return c.Next()
	}, nil
}
