package dto

import (
	"time"

	"github.com/jhoicas/drvet-api/internal/domain/entity"
)

// FromCustomer convierte la entidad a su respuesta.
func FromCustomer(c *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		City:      c.City,
		State:     c.State,
		Pincode:   c.Pincode,
		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt(c.CreatedAt, c.UpdatedAt),
	}
}

// FromStockItem convierte la entidad a su respuesta.
func FromStockItem(s *entity.StockItem) StockItemResponse {
	return StockItemResponse{
		ID:          s.ID,
		ProductName: s.ProductName,
		Category:    s.Category,
		Quantity:    s.Quantity,
		Price:       s.Price,
		Unit:        s.Unit,
		BatchNumber: s.BatchNumber,
		ExpiryDate:  s.ExpiryDate,
		Description: s.Description,
		LowStock:    s.IsLowStock(),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   updatedAt(s.CreatedAt, s.UpdatedAt),
	}
}

// FromOrder convierte la entidad a su respuesta.
func FromOrder(o *entity.Order) OrderResponse {
	items := make([]OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		items = append(items, OrderLineResponse{
			StockID:     l.StockID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal(),
		})
	}
	return OrderResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		CustomerID:   o.CustomerID,
		CustomerName: o.CustomerName,
		Items:        items,
		TotalAmount:  o.TotalAmount,
		Status:       o.Status,
		Notes:        o.Notes,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    updatedAt(o.CreatedAt, o.UpdatedAt),
	}
}

// FromOrders convierte una lista de órdenes conservando el orden.
func FromOrders(list []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, FromOrder(o))
	}
	return out
}

// updatedAt omite updatedAt en JSON mientras el registro no se haya modificado.
func updatedAt(created, updated time.Time) *time.Time {
	if updated.IsZero() || updated.Equal(created) {
		return nil
	}
	return &updated
}
