package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/octavian/nexus-inventory/internal/application/audit"
	"github.com/octavian/nexus-inventory/internal/application/dto"
	appidentity "github.com/octavian/nexus-inventory/internal/application/identity"
	"github.com/octavian/nexus-inventory/internal/application/inventory"
	"github.com/octavian/nexus-inventory/internal/application/usecase"
	"github.com/octavian/nexus-inventory/internal/domain/entity"
)

// ProductHandler maneja las peticiones HTTP del catálogo.
type ProductHandler struct {
	uc       *usecase.ProductUseCase
	ledger   *inventory.LedgerUseCase
	recorder *audit.Recorder
	resolver *appidentity.Resolver
}

// NewProductHandler construye el handler.
func NewProductHandler(
	uc *usecase.ProductUseCase,
	ledger *inventory.LedgerUseCase,
	recorder *audit.Recorder,
	resolver *appidentity.Resolver,
) *ProductHandler {
	return &ProductHandler{uc: uc, ledger: ledger, recorder: recorder, resolver: resolver}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/v1/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	out.AuditWarning = auditWarning(h.recorder.Record(c.UserContext(), GetClaims(c),
		entity.AuditProductCreated, entity.EntityProduct, out.ID,
		fmt.Sprintf("Created product %s – %s", out.SKU, out.Name), nil,
	))
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos ordenados por nombre
// @Tags         products
// @Produce      json
// @Param        limit   query  int  false  "Límite (1-100)"  default(20)
// @Param        offset  query  int  false  "Offset"          default(0)
// @Success      200     {object}  dto.ProductListResponse
// @Router       /api/v1/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", dto.DefaultPageLimit),
		Offset: c.QueryInt("offset", 0),
	}
	out, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListLowStock godoc
// @Summary      Productos con stock en o bajo el umbral de reorden
// @Tags         products
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/v1/products/low-stock [get]
func (h *ProductHandler) ListLowStock(c *fiber.Ctx) error {
	out, err := h.uc.ListLowStock(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar datos del producto (no la cantidad)
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	out.AuditWarning = auditWarning(h.recorder.Record(c.UserContext(), GetClaims(c),
		entity.AuditProductUpdated, entity.EntityProduct, out.ID,
		fmt.Sprintf("Updated product %s – %s", out.SKU, out.Name), nil,
	))
	return c.JSON(out)
}

// AdjustStock godoc
// @Summary      Ajustar stock (atajo de un movimiento ADJUSTMENT)
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "Delta con signo"
// @Success      200   {object}  dto.StockAdjustedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/v1/products/{id}/stock [patch]
func (h *ProductHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	ctx := c.UserContext()
	who := resolveActor(ctx, h.resolver, GetClaims(c))
	mov, err := h.ledger.ApplyMovement(ctx, inventory.MovementInput{
		ProductID:     c.Params("id"),
		Delta:         in.Delta,
		Kind:          entity.MovementAdjustment,
		Note:          in.Note,
		PerformedByID: who.id(),
	})
	if err != nil {
		return respondError(c, err)
	}
	product, err := h.uc.GetByID(ctx, mov.ProductID)
	if err != nil {
		return respondError(c, err)
	}
	product.AuditWarning = auditWarning(who.recordMovement(ctx, h.recorder, mov))
	return c.JSON(dto.StockAdjustedResponse{ProductResponse: *product, MovementID: mov.ID})
}

// Movements godoc
// @Summary      Movimientos del producto en orden de creación
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {array}   dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/products/{id}/movements [get]
func (h *ProductHandler) Movements(c *fiber.Ctx) error {
	list, err := h.ledger.ListByProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromMovements(list))
}

// LedgerCheck godoc
// @Summary      Verificar el libro del producto (replay desde la cantidad inicial)
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.LedgerCheckResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/products/{id}/ledger-check [get]
func (h *ProductHandler) LedgerCheck(c *fiber.Ctx) error {
	check, err := h.ledger.VerifyLedger(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := dto.LedgerCheckResponse{
		ProductID:        check.ProductID,
		InitialQuantity:  check.InitialQuantity,
		CurrentQuantity:  check.CurrentQuantity,
		ReplayedQuantity: check.ReplayedQuantity,
		Movements:        check.Movements,
		Consistent:       check.Consistent,
	}
	if check.FirstMismatchID != "" {
		out.FirstMismatchID = &check.FirstMismatchID
	}
	return c.JSON(out)
}

// auditWarning convierte el resultado de la auditoría en el aviso de éxito degradado.
func auditWarning(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
