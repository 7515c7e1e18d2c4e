package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fudge-api/internal/application/dto"
	"github.com/jhoicas/fudge-api/internal/application/usecase"
	"github.com/jhoicas/fudge-api/internal/domain"
)

// SweetHandler maneja el catálogo de dulces (protegido).
type SweetHandler struct {
	uc *usecase.SweetUseCase
}

// NewSweetHandler construye el handler.
func NewSweetHandler(uc *usecase.SweetUseCase) *SweetHandler {
	return &SweetHandler{uc: uc}
}

// Create godoc
// @Summary      Crear dulce
// @Tags         sweets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSweetRequest  true  "Datos del dulce"
// @Success      201   {object}  dto.Envelope{data=dto.SweetResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      401   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Router       /api/sweets [post]
func (h *SweetHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSweetRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Failed to create sweet", "invalid request body")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return fail(c, fiber.StatusBadRequest, verr.Error(), verr.Details...)
		}
		return err
	}
	return created(c, "Sweet created successfully", out)
}

// List godoc
// @Summary      Listar dulces
// @Tags         sweets
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página (1 por defecto)"
// @Param        limit  query  int  false  "Elementos por página (máx. 100)"
// @Success      200    {object}  dto.Envelope{data=dto.PageResult[dto.SweetResponse]}
// @Failure      401    {object}  dto.Envelope
// @Router       /api/sweets [get]
func (h *SweetHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), pageFromQuery(c))
	if err != nil {
		return err
	}
	return ok(c, "Sweets retrieved successfully", out)
}

// Search godoc
// @Summary      Buscar dulces
// @Tags         sweets
// @Security     Bearer
// @Produce      json
// @Param        name      query  string  false  "Subcadena del nombre (sin distinguir mayúsculas)"
// @Param        category  query  string  false  "Categoría exacta"
// @Param        minPrice  query  number  false  "Precio mínimo (inclusive)"
// @Param        maxPrice  query  number  false  "Precio máximo (inclusive)"
// @Param        page      query  int     false  "Página"
// @Param        limit     query  int     false  "Elementos por página"
// @Success      200       {object}  dto.Envelope{data=dto.PageResult[dto.SweetResponse]}
// @Failure      400       {object}  dto.Envelope
// @Failure      401       {object}  dto.Envelope
// @Router       /api/sweets/search [get]
func (h *SweetHandler) Search(c *fiber.Ctx) error {
	q := dto.SweetSearch{
		PageRequest: pageFromQuery(c),
		Name:        c.Query("name"),
		Category:    c.Query("category"),
	}
	var err error
	if q.MinPrice, err = priceFromQuery(c, "minPrice"); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid price filter", "minPrice must be a number")
	}
	if q.MaxPrice, err = priceFromQuery(c, "maxPrice"); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid price filter", "maxPrice must be a number")
	}
	out, err := h.uc.Search(c.UserContext(), q)
	if err != nil {
		return err
	}
	return ok(c, "Search results retrieved successfully", out)
}

// Get godoc
// @Summary      Obtener dulce por ID
// @Tags         sweets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del dulce"
// @Success      200  {object}  dto.Envelope{data=dto.SweetResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/sweets/{id} [get]
func (h *SweetHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "Sweet not found")
		}
		return err
	}
	return ok(c, "Sweet retrieved successfully", out)
}

// Update godoc
// @Summary      Actualizar dulce (parcial)
// @Tags         sweets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del dulce"
// @Param        body  body  dto.UpdateSweetRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.Envelope{data=dto.SweetResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/sweets/{id} [put]
func (h *SweetHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSweetRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Failed to update sweet", "invalid request body")
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return fail(c, fiber.StatusNotFound, "Sweet not found")
		case errors.As(err, &verr):
			return fail(c, fiber.StatusBadRequest, verr.Error(), verr.Details...)
		}
		return err
	}
	return ok(c, "Sweet updated successfully", out)
}

// Delete godoc
// @Summary      Eliminar dulce
// @Tags         sweets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del dulce"
// @Success      200  {object}  dto.Envelope
// @Failure      403  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/sweets/{id} [delete]
func (h *SweetHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, "Sweet not found")
		}
		return err
	}
	return ok(c, "Sweet deleted successfully", nil)
}

// pageFromQuery lee page/limit; valores no numéricos quedan en 0 y el caso de uso aplica defaults.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{Page: c.QueryInt("page"), Limit: c.QueryInt("limit")}
}

func priceFromQuery(c *fiber.Ctx, key string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
