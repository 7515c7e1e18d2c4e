package http

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fudge-api/internal/application/dto"
	"github.com/jhoicas/fudge-api/internal/application/inventory"
	"github.com/jhoicas/fudge-api/internal/domain"
	"github.com/jhoicas/fudge-api/internal/domain/entity"
)

// InventoryHandler maneja compras, reposiciones y el ledger de stock (protegido).
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Purchase godoc
// @Summary      Comprar dulce
// @Description  Descuenta la cantidad de forma atómica. La cantidad viaja en el body o en ?quantity=; por defecto 1.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id        path   string               true   "ID del dulce"
// @Param        quantity  query  int                  false  "Unidades a comprar"
// @Param        body      body   dto.QuantityRequest  false  "Unidades a comprar"
// @Success      200       {object}  dto.Envelope{data=dto.SweetResponse}
// @Failure      400       {object}  dto.Envelope
// @Failure      404       {object}  dto.Envelope
// @Router       /api/sweets/{id}/purchase [post]
func (h *InventoryHandler) Purchase(c *fiber.Ctx) error {
	qty, valid := quantityFrom(c, 1)
	if !valid {
		return fail(c, fiber.StatusBadRequest, "Invalid quantity")
	}
	out, err := h.uc.Purchase(c.UserContext(), GetUserID(c), c.Params("id"), qty)
	if err != nil {
		return h.stockError(c, err)
	}
	return ok(c, fmt.Sprintf("Successfully purchased %d %s(s)", qty, out.Name), out)
}

// Restock godoc
// @Summary      Reponer stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del dulce"
// @Param        body  body  dto.QuantityRequest  true  "Unidades a sumar (> 0)"
// @Success      200   {object}  dto.Envelope{data=dto.SweetResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/sweets/{id}/restock [post]
func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	qty, valid := quantityFrom(c, 0)
	if !valid {
		return fail(c, fiber.StatusBadRequest, "Invalid quantity")
	}
	out, err := h.uc.Restock(c.UserContext(), GetUserID(c), c.Params("id"), qty)
	if err != nil {
		return h.stockError(c, err)
	}
	return ok(c, fmt.Sprintf("Successfully restocked %d %s(s)", qty, out.Name), out)
}

// Movements godoc
// @Summary      Ledger de stock de un dulce
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del dulce"
// @Param        page   query  int     false  "Página"
// @Param        limit  query  int     false  "Elementos por página"
// @Success      200    {object}  dto.Envelope{data=dto.PageResult[dto.MovementResponse]}
// @Failure      403    {object}  dto.Envelope
// @Failure      404    {object}  dto.Envelope
// @Router       /api/sweets/{id}/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	out, err := h.uc.ListMovements(c.UserContext(), c.Params("id"), pageFromQuery(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "Sweet not found")
		}
		return err
	}
	return ok(c, "Movements retrieved successfully", out)
}

func (h *InventoryHandler) stockError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return fail(c, fiber.StatusBadRequest, "Invalid quantity")
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "Sweet not found")
	case errors.Is(err, domain.ErrInsufficientStock):
		return fail(c, fiber.StatusBadRequest, "Insufficient quantity in stock")
	case errors.Is(err, domain.ErrStockLimit):
		return fail(c, fiber.StatusBadRequest, "Quantity exceeds stock limit")
	}
	return err
}

// quantityFrom lee la cantidad del body JSON o de ?quantity=. Si no viene en ninguno
// se usa def; def <= 0 significa obligatoria. valid=false si el valor no es un entero
// en [1, entity.MaxQuantity].
func quantityFrom(c *fiber.Ctx, def int) (qty int, valid bool) {
	if len(c.Body()) > 0 {
		var in dto.QuantityRequest
		if err := c.BodyParser(&in); err != nil {
			return 0, false
		}
		if in.Quantity != nil {
			return *in.Quantity, validQuantity(*in.Quantity)
		}
	}
	if raw := strings.TrimSpace(c.Query("quantity")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, false
		}
		return n, validQuantity(n)
	}
	return def, validQuantity(def)
}

func validQuantity(n int) bool {
	return n > 0 && n <= entity.MaxQuantity
}
