package jsonstore_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/drvet-api/internal/application/inventory"
	"github.com/jhoicas/drvet-api/internal/application/orders"
	"github.com/jhoicas/drvet-api/internal/domain/entity"
	"github.com/jhoicas/drvet-api/internal/infrastructure/jsonstore"
	"github.com/jhoicas/drvet-api/internal/infrastructure/memstore"
)

// Archivos en formato legado (sin unitPrice en las líneas).
const legacyStock = `[
  {
    "id": "s1",
    "productName": "Premium Bull Semen - Holstein",
    "category": "Cattle",
    "quantity": 50,
    "price": 2500,
    "unit": "straw",
    "description": "High quality Holstein bull semen",
    "batchNumber": "BS-2024-001",
    "expiryDate": "2025-12-31"
  }
]`

const legacyCustomers = `[
  {"id": "c1", "name": "Green Valley Farm", "phone": "555-0101", "createdAt": "2024-05-01T10:00:00.000Z"}
]`

const legacyOrders = `[
  {
    "id": "o1",
    "orderNumber": "ORD-1714557600000",
    "customerId": "c1",
    "customerName": "Green Valley Farm",
    "items": [{"stockId": "s1", "quantity": 2}],
    "totalAmount": 5000,
    "status": "completed",
    "createdAt": "2024-05-01T10:00:00.000Z",
    "updatedAt": "2024-05-02T09:30:00.000Z"
  }
]`

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestOpen_CreaArchivosVacios(t *testing.T) {
	dir := t.TempDir()
	store, err := jsonstore.Open(context.Background(), dir, nil)
	require.NoError(t, err)

	snap := store.Snapshot()
	assert.Empty(t, snap.Customers)
	assert.Empty(t, snap.Stock)
	for _, name := range []string{"customers.json", "stock.json", "orders.json"} {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.JSONEq(t, "[]", string(raw))
	}
}

func TestOpen_LeeFormatoLegado(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "stock.json", legacyStock)
	writeFile(t, dir, "customers.json", legacyCustomers)
	writeFile(t, dir, "orders.json", legacyOrders)

	store, err := jsonstore.Open(context.Background(), dir, nil)
	require.NoError(t, err)
	snap := store.Snapshot()

	require.Len(t, snap.Stock, 1)
	assert.True(t, snap.Stock[0].Price.Equal(decimal.NewFromInt(2500)))
	assert.Equal(t, "2025-12-31", snap.Stock[0].ExpiryDate)

	require.Len(t, snap.Orders, 1)
	o := snap.Orders[0]
	assert.Equal(t, entity.OrderStatusCompleted, o.Status)
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(5000)))
	require.Len(t, o.Lines, 1)
	assert.True(t, o.Lines[0].UnitPrice.IsZero())
	assert.Equal(t, 2024, o.UpdatedAt.Year())
}

func TestPersist_OrdenYStockSeEscribenJuntos(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "stock.json", legacyStock)
	writeFile(t, dir, "customers.json", legacyCustomers)

	store, err := jsonstore.Open(context.Background(), dir, nil)
	require.NoError(t, err)

	p := orders.NewProcessor(store, appinventory.NewStockLedger(store.Stock()), store.Customers(), store.Orders(), orders.Options{}, nil)
	order, err := p.CreateOrder(context.Background(), "c1", []entity.OrderLine{{StockID: "s1", Quantity: 3}}, "")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, ".journal.json"))
	assert.True(t, os.IsNotExist(err), "el journal se borra tras un commit completo")

	var stock []map[string]any
	raw, err := os.ReadFile(filepath.Join(dir, "stock.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &stock))
	assert.EqualValues(t, 47, stock[0]["quantity"])
	assert.EqualValues(t, 2500, stock[0]["price"], "los precios se guardan como número")

	var saved []map[string]any
	raw, err = os.ReadFile(filepath.Join(dir, "orders.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &saved))
	require.Len(t, saved, 1)
	assert.Equal(t, order.OrderNumber, saved[0]["orderNumber"])
	assert.EqualValues(t, 7500, saved[0]["totalAmount"])

	reopened, err := jsonstore.Open(context.Background(), dir, nil)
	require.NoError(t, err)
	snap := reopened.Snapshot()
	assert.Equal(t, 47, snap.Stock[0].Quantity)
	require.Len(t, snap.Orders, 1)
	assert.Equal(t, "Premium Bull Semen - Holstein", snap.Orders[0].Lines[0].ProductName)
}

func TestOpen_ReaplicaJournalPendiente(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "stock.json", legacyStock)
	writeFile(t, dir, "customers.json", legacyCustomers)
	writeFile(t, dir, "orders.json", "[]")

	// El proceso murió tras escribir el journal pero antes de tocar orders.json.
	journal := map[string]any{
		"collections": map[string]json.RawMessage{
			"stock": json.RawMessage(`[{"id":"s1","productName":"Premium Bull Semen - Holstein","category":"Cattle","quantity":40,"price":2500,"unit":"straw","createdAt":"2024-05-01T10:00:00Z"}]`),
			"orders": json.RawMessage(`[{"id":"o9","orderNumber":"ORD-9","customerId":"c1","customerName":"Green Valley Farm","items":[{"stockId":"s1","quantity":10,"unitPrice":2500}],"totalAmount":25000,"status":"pending","createdAt":"` +
				time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Format(time.RFC3339) + `"}]`),
		},
	}
	raw, err := json.Marshal(journal)
	require.NoError(t, err)
	writeFile(t, dir, ".journal.json", string(raw))

	store, err := jsonstore.Open(context.Background(), dir, nil)
	require.NoError(t, err)
	snap := store.Snapshot()

	assert.Equal(t, 40, snap.Stock[0].Quantity)
	require.Len(t, snap.Orders, 1)
	assert.Equal(t, "ORD-9", snap.Orders[0].OrderNumber)

	_, err = os.Stat(filepath.Join(dir, ".journal.json"))
	assert.True(t, os.IsNotExist(err))
}

func newTestProcessor(store *memstore.Store) *orders.Processor {
	return orders.NewProcessor(store, appinventory.NewStockLedger(store.Stock()), store.Customers(), store.Orders(), orders.Options{}, nil)
}

func TestPersist_FalloAMitadDeCommitSeRevierte(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "stock.json", legacyStock)
	writeFile(t, dir, "customers.json", legacyCustomers)
	writeFile(t, dir, "orders.json", "[]")

	// stock.json se escribe; orders.json falla una vez.
	failOrders := true
	store, err := jsonstore.OpenWithWriter(context.Background(), dir, func(path string, data []byte) error {
		if failOrders && filepath.Base(path) == "orders.json" {
			failOrders = false
			return errors.New("disk full")
		}
		return jsonstore.WriteAtomic(path, data)
	})
	require.NoError(t, err)

	_, err = newTestProcessor(store).CreateOrder(context.Background(), "c1", []entity.OrderLine{{StockID: "s1", Quantity: 10}}, "")
	require.ErrorContains(t, err, "disk full")

	_, err = os.Stat(filepath.Join(dir, ".journal.json"))
	assert.True(t, os.IsNotExist(err), "el journal no sobrevive a un commit revertido")

	// Una escritura posterior de una sola colección debe sobrevivir al reabrir.
	item, err := store.Stock().GetByID(context.Background(), "s1")
	require.NoError(t, err)
	item.Quantity = 60
	require.NoError(t, store.Stock().Update(context.Background(), item))

	reopened, err := jsonstore.Open(context.Background(), dir, nil)
	require.NoError(t, err)
	snap := reopened.Snapshot()
	require.Len(t, snap.Stock, 1)
	assert.Equal(t, 60, snap.Stock[0].Quantity)
	assert.Empty(t, snap.Orders, "la orden rechazada no reaparece")
}

func TestPersist_ColeccionIlegibleNoEscribeNada(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "stock.json", legacyStock)
	writeFile(t, dir, "customers.json", legacyCustomers)

	store, err := jsonstore.Open(context.Background(), dir, nil)
	require.NoError(t, err)

	ordersPath := filepath.Join(dir, "orders.json")
	require.NoError(t, os.Remove(ordersPath))
	require.NoError(t, os.MkdirAll(filepath.Join(ordersPath, "x"), 0o755))

	_, err = newTestProcessor(store).CreateOrder(context.Background(), "c1", []entity.OrderLine{{StockID: "s1", Quantity: 10}}, "")
	require.Error(t, err)

	require.NoError(t, os.RemoveAll(ordersPath))
	writeFile(t, dir, "orders.json", "[]")

	reopened, err := jsonstore.Open(context.Background(), dir, nil)
	require.NoError(t, err)
	snap := reopened.Snapshot()
	assert.Equal(t, 50, snap.Stock[0].Quantity)
	assert.Empty(t, snap.Orders)
}

func TestPersist_ReintentaReversionPendiente(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "stock.json", legacyStock)
	writeFile(t, dir, "customers.json", legacyCustomers)
	writeFile(t, dir, "orders.json", "[]")

	// Falla orders.json y también el primer intento de reescribir el journal para revertir.
	ordersFails, journalWrites := 1, 0
	store, err := jsonstore.OpenWithWriter(context.Background(), dir, func(path string, data []byte) error {
		switch filepath.Base(path) {
		case "orders.json":
			if ordersFails > 0 {
				ordersFails--
				return errors.New("disk full")
			}
		case ".journal.json":
			journalWrites++
			if journalWrites == 2 {
				return errors.New("disk full")
			}
		}
		return jsonstore.WriteAtomic(path, data)
	})
	require.NoError(t, err)

	p := newTestProcessor(store)
	_, err = p.CreateOrder(context.Background(), "c1", []entity.OrderLine{{StockID: "s1", Quantity: 10}}, "")
	require.Error(t, err)

	// El siguiente commit termina la reversión antes de escribir lo suyo.
	_, err = p.CreateOrder(context.Background(), "c1", []entity.OrderLine{{StockID: "s1", Quantity: 2}}, "")
	require.NoError(t, err)

	reopened, err := jsonstore.Open(context.Background(), dir, nil)
	require.NoError(t, err)
	snap := reopened.Snapshot()
	assert.Equal(t, 48, snap.Stock[0].Quantity)
	require.Len(t, snap.Orders, 1)
	assert.Equal(t, 2, snap.Orders[0].Lines[0].Quantity)
}

func TestOpen_ArchivoInvalido(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "stock.json", "{no es json")

	_, err := jsonstore.Open(context.Background(), dir, nil)
	assert.ErrorContains(t, err, "stock.json")
}
