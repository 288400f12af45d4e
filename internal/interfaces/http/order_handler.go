package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/drvet-api/internal/application/dto"
	"github.com/jhoicas/drvet-api/internal/application/orders"
)

// OrderHandler expone el procesador de órdenes.
type OrderHandler struct {
	processor *orders.Processor
	receipts  orders.ReceiptGenerator
}

// NewOrderHandler construye el handler. receipts puede ser nil: la ruta del comprobante responde 404.
func NewOrderHandler(processor *orders.Processor, receipts orders.ReceiptGenerator) *OrderHandler {
	return &OrderHandler{processor: processor, receipts: receipts}
}

// Create POST /api/orders
//
// Body: {customerId, items:[{stockId, quantity}], notes?}. El stock se descuenta en la misma
// transacción que guarda la orden; 400 si alguna línea no tiene stock suficiente.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	order, err := h.processor.CreateOrderFromRequest(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromOrder(order))
}

// List GET /api/orders?status=pending
func (h *OrderHandler) List(c *fiber.Ctx) error {
	list, err := h.processor.ListOrders(c.UserContext(), c.Query("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromOrders(list))
}

// GetByID GET /api/orders/:id
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.processor.GetOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromOrder(order))
}

// Update PUT /api/orders/:id (status y/o notes)
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	order, err := h.processor.UpdateOrder(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromOrder(order))
}

// Delete DELETE /api/orders/:id. Siempre {success:true}; no repone stock.
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.processor.DeleteOrder(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// Receipt GET /api/orders/:id/receipt
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	if h.receipts == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "receipts are disabled"})
	}
	doc, filename, err := h.processor.DownloadReceipt(c.UserContext(), h.receipts, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(doc)
}
