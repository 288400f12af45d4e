package mongodb

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/drvet-api/internal/domain/entity"
)

type customerDoc struct {
	ID        string    `bson:"_id"`
	Seq       int64     `bson:"seq"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Phone     string    `bson:"phone"`
	Address   string    `bson:"address"`
	City      string    `bson:"city"`
	State     string    `bson:"state"`
	Pincode   string    `bson:"pincode"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type stockDoc struct {
	ID          string               `bson:"_id"`
	Seq         int64                `bson:"seq"`
	ProductName string               `bson:"product_name"`
	Category    string               `bson:"category"`
	Quantity    int                  `bson:"quantity"`
	Price       primitive.Decimal128 `bson:"price"`
	Unit        string               `bson:"unit"`
	BatchNumber string               `bson:"batch_number"`
	ExpiryDate  string               `bson:"expiry_date"`
	Description string               `bson:"description"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

type orderLineDoc struct {
	StockID     string               `bson:"stock_id"`
	ProductName string               `bson:"product_name"`
	Quantity    int                  `bson:"quantity"`
	UnitPrice   primitive.Decimal128 `bson:"unit_price"`
}

type orderDoc struct {
	ID           string               `bson:"_id"`
	Seq          int64                `bson:"seq"`
	OrderNumber  string               `bson:"order_number"`
	CustomerID   string               `bson:"customer_id"`
	CustomerName string               `bson:"customer_name"`
	Lines        []orderLineDoc       `bson:"lines"`
	TotalAmount  primitive.Decimal128 `bson:"total_amount"`
	Status       string               `bson:"status"`
	Notes        string               `bson:"notes"`
	CreatedAt    time.Time            `bson:"created_at"`
	UpdatedAt    time.Time            `bson:"updated_at"`
}

func toDecimal128(d decimal.Decimal) primitive.Decimal128 {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		// fuera del rango de Decimal128
		return primitive.NewDecimal128(0, 0)
	}
	return v
}

func fromDecimal128(v primitive.Decimal128) decimal.Decimal {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

func newCustomerDoc(c *entity.Customer) customerDoc {
	return customerDoc{
		ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone, Address: c.Address,
		City: c.City, State: c.State, Pincode: c.Pincode, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

func (d customerDoc) entity() *entity.Customer {
	return &entity.Customer{
		ID: d.ID, Name: d.Name, Email: d.Email, Phone: d.Phone, Address: d.Address,
		City: d.City, State: d.State, Pincode: d.Pincode, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

func newStockDoc(s *entity.StockItem) stockDoc {
	return stockDoc{
		ID: s.ID, ProductName: s.ProductName, Category: s.Category, Quantity: s.Quantity,
		Price: toDecimal128(s.Price), Unit: s.Unit, BatchNumber: s.BatchNumber, ExpiryDate: s.ExpiryDate,
		Description: s.Description, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt,
	}
}

func (d stockDoc) entity() *entity.StockItem {
	return &entity.StockItem{
		ID: d.ID, ProductName: d.ProductName, Category: d.Category, Quantity: d.Quantity,
		Price: fromDecimal128(d.Price), Unit: d.Unit, BatchNumber: d.BatchNumber, ExpiryDate: d.ExpiryDate,
		Description: d.Description, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

func newOrderDoc(o *entity.Order) orderDoc {
	lines := make([]orderLineDoc, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = orderLineDoc{StockID: l.StockID, ProductName: l.ProductName, Quantity: l.Quantity, UnitPrice: toDecimal128(l.UnitPrice)}
	}
	return orderDoc{
		ID: o.ID, OrderNumber: o.OrderNumber, CustomerID: o.CustomerID, CustomerName: o.CustomerName,
		Lines: lines, TotalAmount: toDecimal128(o.TotalAmount), Status: o.Status, Notes: o.Notes,
		CreatedAt: o.CreatedAt, UpdatedAt: o.UpdatedAt,
	}
}

func (d orderDoc) entity() *entity.Order {
	lines := make([]entity.OrderLine, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = entity.OrderLine{StockID: l.StockID, ProductName: l.ProductName, Quantity: l.Quantity, UnitPrice: fromDecimal128(l.UnitPrice)}
	}
	return &entity.Order{
		ID: d.ID, OrderNumber: d.OrderNumber, CustomerID: d.CustomerID, CustomerName: d.CustomerName,
		Lines: lines, TotalAmount: fromDecimal128(d.TotalAmount), Status: d.Status, Notes: d.Notes,
		CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}
