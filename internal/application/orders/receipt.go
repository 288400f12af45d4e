package orders

import (
	"context"
	"fmt"

	"github.com/jhoicas/drvet-api/internal/domain/entity"
)

// ReceiptGenerator genera el comprobante imprimible de una orden.
// customer puede ser nil si el cliente fue borrado; se usa entonces order.CustomerName.
type ReceiptGenerator interface {
	GenerateOrderReceipt(ctx context.Context, order *entity.Order, customer *entity.Customer) ([]byte, error)
}

// DownloadReceipt genera el PDF de la orden y su nombre de archivo.
// NotFoundError si la orden no existe.
func (p *Processor) DownloadReceipt(ctx context.Context, gen ReceiptGenerator, orderID string) ([]byte, string, error) {
	order, err := p.GetOrder(ctx, orderID)
	if err != nil {
		return nil, "", err
	}
	customer, err := p.customerRepo.GetByID(ctx, order.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener cliente: %w", err)
	}

	doc, err := gen.GenerateOrderReceipt(ctx, order, customer)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: generación fallida: %w", err)
	}
	return doc, order.OrderNumber + ".pdf", nil
}
