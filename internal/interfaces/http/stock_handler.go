package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/drvet-api/internal/application/dto"
	appinventory "github.com/jhoicas/drvet-api/internal/application/inventory"
	"github.com/jhoicas/drvet-api/internal/application/usecase"
)

// StockHandler CRUD del catálogo de stock y consulta de disponibilidad.
type StockHandler struct {
	uc     *usecase.StockUseCase
	ledger *appinventory.StockLedger
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *usecase.StockUseCase, ledger *appinventory.StockLedger) *StockHandler {
	return &StockHandler{uc: uc, ledger: ledger}
}

// Create POST /api/stock
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.StockItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	item, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(item)
}

// List GET /api/stock
func (h *StockHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/stock/:id
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(item)
}

// Update PUT /api/stock/:id
func (h *StockHandler) Update(c *fiber.Ctx) error {
	var in dto.StockItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	item, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(item)
}

// Delete DELETE /api/stock/:id
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// Availability GET /api/stock/:id/availability
func (h *StockHandler) Availability(c *fiber.Ctx) error {
	id := c.Params("id")
	n, err := h.ledger.GetAvailable(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.AvailabilityResponse{StockID: id, Available: n})
}
