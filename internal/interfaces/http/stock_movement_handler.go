package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/octavian/nexus-inventory/internal/application/audit"
	"github.com/octavian/nexus-inventory/internal/application/dto"
	appidentity "github.com/octavian/nexus-inventory/internal/application/identity"
	"github.com/octavian/nexus-inventory/internal/application/inventory"
	"github.com/octavian/nexus-inventory/internal/domain/entity"
	"github.com/octavian/nexus-inventory/internal/domain/identity"
)

// actor identidad de la petición, resuelta una sola vez y compartida por el movimiento
// (performed_by_id) y su auditoría.
type actor struct {
	claims *identity.Claims
	user   *entity.User
}

// resolveActor devuelve un actor anónimo sin claims. Si la identidad no puede resolverse
// el movimiento se registra igualmente sin autor.
func resolveActor(ctx context.Context, resolver *appidentity.Resolver, claims *identity.Claims) actor {
	a := actor{claims: claims}
	if claims == nil {
		return a
	}
	user, err := resolver.Resolve(ctx, claims)
	if err != nil {
		log.Warn().Err(err).Str("subject", claims.Subject).Msg("no se pudo resolver el autor del movimiento")
		return a
	}
	a.user = user
	return a
}

func (a actor) id() *string {
	if a.user == nil {
		return nil
	}
	return &a.user.ID
}

// attach completa el movimiento recién creado con el email del autor.
func (a actor) attach(m *entity.StockMovement) {
	if a.user != nil {
		email := a.user.Email
		m.PerformedByEmail = &email
	}
}

// recordMovement audita con el usuario ya resuelto. Si la resolución falló, Record lo
// reintenta y aplica la política de fallos de auditoría.
func (a actor) recordMovement(ctx context.Context, recorder *audit.Recorder, m *entity.StockMovement) error {
	if a.user != nil {
		return recorder.RecordMovementBy(ctx, a.user, m)
	}
	return recorder.RecordMovement(ctx, a.claims, m)
}

// StockMovementHandler maneja las peticiones HTTP del libro de movimientos.
type StockMovementHandler struct {
	ledger   *inventory.LedgerUseCase
	recorder *audit.Recorder
	resolver *appidentity.Resolver
}

// NewStockMovementHandler construye el handler.
func NewStockMovementHandler(ledger *inventory.LedgerUseCase, recorder *audit.Recorder, resolver *appidentity.Resolver) *StockMovementHandler {
	return &StockMovementHandler{ledger: ledger, recorder: recorder, resolver: resolver}
}

// Create godoc
// @Summary      Registrar movimiento de stock
// @Tags         stock-movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/v1/stock-movements [post]
func (h *StockMovementHandler) Create(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	ctx := c.UserContext()
	who := resolveActor(ctx, h.resolver, GetClaims(c))
	mov, err := h.ledger.ApplyMovement(ctx, inventory.MovementInput{
		ProductID:     in.ProductID,
		Delta:         in.Delta,
		Kind:          entity.MovementKind(in.Kind),
		FromLocation:  in.FromLocation,
		ToLocation:    in.ToLocation,
		Note:          in.Note,
		PerformedByID: who.id(),
	})
	if err != nil {
		return respondError(c, err)
	}
	who.attach(mov)
	out := dto.FromMovement(mov)
	out.AuditWarning = auditWarning(who.recordMovement(ctx, h.recorder, mov))
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Recent godoc
// @Summary      Movimientos más recientes
// @Tags         stock-movements
// @Produce      json
// @Param        limit  query  int  false  "Límite (1-200)"  default(50)
// @Success      200    {array}  dto.MovementResponse
// @Router       /api/v1/stock-movements [get]
func (h *StockMovementHandler) Recent(c *fiber.Ctx) error {
	list, err := h.ledger.ListRecent(c.UserContext(), c.QueryInt("limit", dto.DefaultRecentLimit))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromMovements(list))
}
