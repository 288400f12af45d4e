package jsonstore

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/drvet-api/internal/domain/entity"
)

// amount serializa decimales como número JSON (formato de los archivos data/*.json)
// sin depender de decimal.MarshalJSONWithoutQuotes. Al leer acepta número o string.
type amount struct {
	decimal.Decimal
}

func (a amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

type customerRecord struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Address   string     `json:"address,omitempty"`
	City      string     `json:"city,omitempty"`
	State     string     `json:"state,omitempty"`
	Pincode   string     `json:"pincode,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type stockRecord struct {
	ID          string     `json:"id"`
	ProductName string     `json:"productName"`
	Category    string     `json:"category"`
	Quantity    int        `json:"quantity"`
	Price       amount     `json:"price"`
	Unit        string     `json:"unit"`
	Description string     `json:"description,omitempty"`
	BatchNumber string     `json:"batchNumber,omitempty"`
	ExpiryDate  string     `json:"expiryDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

type orderLineRecord struct {
	StockID     string  `json:"stockId"`
	Quantity    int     `json:"quantity"`
	ProductName string  `json:"productName,omitempty"`
	UnitPrice   *amount `json:"unitPrice,omitempty"`
}

type orderRecord struct {
	ID           string            `json:"id"`
	OrderNumber  string            `json:"orderNumber"`
	CustomerID   string            `json:"customerId"`
	CustomerName string            `json:"customerName"`
	Items        []orderLineRecord `json:"items"`
	TotalAmount  amount            `json:"totalAmount"`
	Status       string            `json:"status"`
	Notes        string            `json:"notes,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    *time.Time        `json:"updatedAt,omitempty"`
}

func optionalTime(created, updated time.Time) *time.Time {
	if updated.IsZero() || updated.Equal(created) {
		return nil
	}
	return &updated
}

func orCreated(created time.Time, updated *time.Time) time.Time {
	if updated == nil {
		return created
	}
	return *updated
}

func toCustomerRecords(list []entity.Customer) []customerRecord {
	out := make([]customerRecord, len(list))
	for i, c := range list {
		out[i] = customerRecord{
			ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone, Address: c.Address,
			City: c.City, State: c.State, Pincode: c.Pincode,
			CreatedAt: c.CreatedAt, UpdatedAt: optionalTime(c.CreatedAt, c.UpdatedAt),
		}
	}
	return out
}

func fromCustomerRecords(list []customerRecord) []entity.Customer {
	out := make([]entity.Customer, len(list))
	for i, r := range list {
		out[i] = entity.Customer{
			ID: r.ID, Name: r.Name, Email: r.Email, Phone: r.Phone, Address: r.Address,
			City: r.City, State: r.State, Pincode: r.Pincode,
			CreatedAt: r.CreatedAt, UpdatedAt: orCreated(r.CreatedAt, r.UpdatedAt),
		}
	}
	return out
}

func toStockRecords(list []entity.StockItem) []stockRecord {
	out := make([]stockRecord, len(list))
	for i, s := range list {
		out[i] = stockRecord{
			ID: s.ID, ProductName: s.ProductName, Category: s.Category, Quantity: s.Quantity,
			Price: amount{s.Price}, Unit: s.Unit, Description: s.Description,
			BatchNumber: s.BatchNumber, ExpiryDate: s.ExpiryDate,
			CreatedAt: s.CreatedAt, UpdatedAt: optionalTime(s.CreatedAt, s.UpdatedAt),
		}
	}
	return out
}

func fromStockRecords(list []stockRecord) []entity.StockItem {
	out := make([]entity.StockItem, len(list))
	for i, r := range list {
		out[i] = entity.StockItem{
			ID: r.ID, ProductName: r.ProductName, Category: r.Category, Quantity: r.Quantity,
			Price: r.Price.Decimal, Unit: r.Unit, Description: r.Description,
			BatchNumber: r.BatchNumber, ExpiryDate: r.ExpiryDate,
			CreatedAt: r.CreatedAt, UpdatedAt: orCreated(r.CreatedAt, r.UpdatedAt),
		}
	}
	return out
}

func toOrderRecords(list []entity.Order) []orderRecord {
	out := make([]orderRecord, len(list))
	for i, o := range list {
		items := make([]orderLineRecord, len(o.Lines))
		for j, l := range o.Lines {
			price := amount{l.UnitPrice}
			items[j] = orderLineRecord{StockID: l.StockID, Quantity: l.Quantity, ProductName: l.ProductName, UnitPrice: &price}
		}
		out[i] = orderRecord{
			ID: o.ID, OrderNumber: o.OrderNumber, CustomerID: o.CustomerID, CustomerName: o.CustomerName,
			Items: items, TotalAmount: amount{o.TotalAmount}, Status: o.Status, Notes: o.Notes,
			CreatedAt: o.CreatedAt, UpdatedAt: optionalTime(o.CreatedAt, o.UpdatedAt),
		}
	}
	return out
}

// fromOrderRecords acepta órdenes escritas por versiones anteriores, cuyas líneas no
// guardaban productName ni unitPrice.
func fromOrderRecords(list []orderRecord) []entity.Order {
	out := make([]entity.Order, len(list))
	for i, r := range list {
		lines := make([]entity.OrderLine, len(r.Items))
		for j, it := range r.Items {
			price := decimal.Zero
			if it.UnitPrice != nil {
				price = it.UnitPrice.Decimal
			}
			lines[j] = entity.OrderLine{StockID: it.StockID, Quantity: it.Quantity, ProductName: it.ProductName, UnitPrice: price}
		}
		status := r.Status
		if status == "" {
			status = entity.OrderStatusPending
		}
		out[i] = entity.Order{
			ID: r.ID, OrderNumber: r.OrderNumber, CustomerID: r.CustomerID, CustomerName: r.CustomerName,
			Lines: lines, TotalAmount: r.TotalAmount.Decimal, Status: status, Notes: r.Notes,
			CreatedAt: r.CreatedAt, UpdatedAt: orCreated(r.CreatedAt, r.UpdatedAt),
		}
	}
	return out
}
