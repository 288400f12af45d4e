package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/drvet-api/internal/application/analytics"
	appinventory "github.com/jhoicas/drvet-api/internal/application/inventory"
	"github.com/jhoicas/drvet-api/internal/application/orders"
	"github.com/jhoicas/drvet-api/internal/application/usecase"
	"github.com/jhoicas/drvet-api/internal/domain/entity"
	"github.com/jhoicas/drvet-api/internal/infrastructure/memstore"
	apphttp "github.com/jhoicas/drvet-api/internal/interfaces/http"
)

func TestMain(m *testing.M) {
	decimal.MarshalJSONWithoutQuotes = true
	os.Exit(m.Run())
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fakeReceipts struct{ calls int }

func (f *fakeReceipts) GenerateOrderReceipt(_ context.Context, o *entity.Order, _ *entity.Customer) ([]byte, error) {
	f.calls++
	return []byte("%PDF-1.3 " + o.OrderNumber), nil
}

func seedStore() *memstore.Store {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return memstore.New(memstore.Snapshot{
		Customers: []entity.Customer{{ID: "c1", Name: "Green Valley Farm", CreatedAt: created}},
		Stock: []entity.StockItem{
			{ID: "a", ProductName: "Holstein Friesian", Category: entity.CategoryCattle, Quantity: 50, Price: decimal.NewFromInt(100), Unit: entity.UnitStraw, CreatedAt: created},
			{ID: "b", ProductName: "Murrah", Category: entity.CategoryBuffalo, Quantity: 50, Price: decimal.NewFromInt(50), Unit: entity.UnitStraw, CreatedAt: created},
			{ID: "c", ProductName: "Boer", Category: entity.CategoryGoat, Quantity: 5, Price: decimal.NewFromInt(30), Unit: entity.UnitStraw, CreatedAt: created},
		},
	}, nil)
}

// buildTestApp arma la aplicación completa sobre un store en memoria.
func buildTestApp(store *memstore.Store, receipts orders.ReceiptGenerator) *fiber.App {
	ledger := appinventory.NewStockLedger(store.Stock())
	return apphttp.NewApp(fiber.Config{}, apphttp.RouterDeps{
		AppName:     "drvet-test",
		CustomerUC:  usecase.NewCustomerUseCase(store.Customers()),
		StockUC:     usecase.NewStockUseCase(store.Stock()),
		Ledger:      ledger,
		Processor:   orders.NewProcessor(store, ledger, store.Customers(), store.Orders(), orders.Options{}, nil),
		DashboardUC: appanalytics.NewDashboardUseCase(store.Customers(), store.Stock(), store.Orders()),
		Receipts:    receipts,
	})
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decode(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func quantityOf(store *memstore.Store, id string) int {
	for _, s := range store.Snapshot().Stock {
		if s.ID == id {
			return s.Quantity
		}
	}
	return -1
}

// ──────────────────────────────────────────────────────────────────────────────
// Orders
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_DescuentaStockYDevuelveOrden(t *testing.T) {
	store := seedStore()
	app := buildTestApp(store, nil)

	resp, raw := doRequest(t, app, http.MethodPost, "/api/orders",
		`{"customerId":"c1","items":[{"stockId":"a","quantity":3},{"stockId":"b","quantity":1}],"notes":"urgent"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))

	body := decode(t, raw)
	assert.Equal(t, "pending", body["status"])
	assert.Equal(t, "Green Valley Farm", body["customerName"])
	assert.Equal(t, float64(350), body["totalAmount"])
	assert.True(t, strings.HasPrefix(body["orderNumber"].(string), "ORD-"))
	assert.Len(t, body["items"], 2)

	assert.Equal(t, 47, quantityOf(store, "a"))
	assert.Equal(t, 49, quantityOf(store, "b"))
}

func TestCreateOrder_StockInsuficiente400(t *testing.T) {
	store := seedStore()
	app := buildTestApp(store, nil)

	resp, raw := doRequest(t, app, http.MethodPost, "/api/orders",
		`{"customerId":"c1","items":[{"stockId":"a","quantity":1},{"stockId":"c","quantity":6}]}`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decode(t, raw)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	assert.Contains(t, body["error"], "Insufficient stock for Boer")

	assert.Equal(t, 50, quantityOf(store, "a"), "ninguna línea debe descontarse")
	assert.Empty(t, store.Snapshot().Orders)
}

func TestCreateOrder_CantidadEnormeRepetida400(t *testing.T) {
	store := seedStore()
	app := buildTestApp(store, nil)

	resp, raw := doRequest(t, app, http.MethodPost, "/api/orders",
		`{"customerId":"c1","items":[{"stockId":"a","quantity":1},{"stockId":"a","quantity":9223372036854775807}]}`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode, string(raw))
	assert.Equal(t, "INSUFFICIENT_STOCK", decode(t, raw)["code"])

	assert.Equal(t, 50, quantityOf(store, "a"))
	assert.Empty(t, store.Snapshot().Orders)
}

func TestCreateOrder_Validaciones(t *testing.T) {
	app := buildTestApp(seedStore(), nil)

	cases := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"sin items", `{"customerId":"c1","items":[]}`, fiber.StatusBadRequest, "VALIDATION"},
		{"cantidad cero", `{"customerId":"c1","items":[{"stockId":"a","quantity":0}]}`, fiber.StatusBadRequest, "VALIDATION"},
		{"cliente inexistente", `{"customerId":"nope","items":[{"stockId":"a","quantity":1}]}`, fiber.StatusNotFound, "NOT_FOUND"},
		{"stock inexistente", `{"customerId":"c1","items":[{"stockId":"zz","quantity":1}]}`, fiber.StatusNotFound, "NOT_FOUND"},
		{"json inválido", `{"customerId":`, fiber.StatusBadRequest, "INVALID_BODY"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, raw := doRequest(t, app, http.MethodPost, "/api/orders", tc.body)
			assert.Equal(t, tc.status, resp.StatusCode, string(raw))
			assert.Equal(t, tc.code, decode(t, raw)["code"])
		})
	}
}

func TestUpdateAndDeleteOrder(t *testing.T) {
	store := seedStore()
	app := buildTestApp(store, nil)

	_, raw := doRequest(t, app, http.MethodPost, "/api/orders", `{"customerId":"c1","items":[{"stockId":"a","quantity":2}]}`)
	id := decode(t, raw)["id"].(string)

	resp, raw := doRequest(t, app, http.MethodPut, "/api/orders/"+id, `{"status":"completed","notes":"paid"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	body := decode(t, raw)
	assert.Equal(t, "completed", body["status"])
	assert.Equal(t, "paid", body["notes"])

	resp, raw = doRequest(t, app, http.MethodPut, "/api/orders/"+id, `{"status":"shipped"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, string(raw))

	resp, _ = doRequest(t, app, http.MethodPut, "/api/orders/missing", `{"status":"completed"}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, raw = doRequest(t, app, http.MethodDelete, "/api/orders/"+id, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decode(t, raw)["success"])
	assert.Equal(t, 48, quantityOf(store, "a"), "borrar no repone stock")

	resp, raw = doRequest(t, app, http.MethodDelete, "/api/orders/"+id, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decode(t, raw)["success"])
}

func TestListOrders_FiltroPorStatus(t *testing.T) {
	app := buildTestApp(seedStore(), nil)

	_, raw := doRequest(t, app, http.MethodPost, "/api/orders", `{"customerId":"c1","items":[{"stockId":"a","quantity":1}]}`)
	first := decode(t, raw)["id"].(string)
	doRequest(t, app, http.MethodPost, "/api/orders", `{"customerId":"c1","items":[{"stockId":"b","quantity":1}]}`)
	doRequest(t, app, http.MethodPut, "/api/orders/"+first, `{"status":"cancelled"}`)

	_, raw = doRequest(t, app, http.MethodGet, "/api/orders", "")
	var all []map[string]any
	require.NoError(t, json.Unmarshal(raw, &all))
	assert.Len(t, all, 2)

	_, raw = doRequest(t, app, http.MethodGet, "/api/orders?status=cancelled", "")
	var filtered []map[string]any
	require.NoError(t, json.Unmarshal(raw, &filtered))
	require.Len(t, filtered, 1)
	assert.Equal(t, first, filtered[0]["id"])

	resp, _ := doRequest(t, app, http.MethodGet, "/api/orders?status=bogus", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestOrderReceipt(t *testing.T) {
	receipts := &fakeReceipts{}
	app := buildTestApp(seedStore(), receipts)

	_, raw := doRequest(t, app, http.MethodPost, "/api/orders", `{"customerId":"c1","items":[{"stockId":"a","quantity":1}]}`)
	order := decode(t, raw)

	resp, raw := doRequest(t, app, http.MethodGet, "/api/orders/"+order["id"].(string)+"/receipt", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), order["orderNumber"].(string)+".pdf")
	assert.True(t, strings.HasPrefix(string(raw), "%PDF"))
	assert.Equal(t, 1, receipts.calls)

	resp, _ = doRequest(t, app, http.MethodGet, "/api/orders/missing/receipt", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Customers, stock, dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomersCRUD(t *testing.T) {
	app := buildTestApp(seedStore(), nil)

	resp, raw := doRequest(t, app, http.MethodPost, "/api/customers", `{"name":"Sunrise Dairy","city":"Pune"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	id := decode(t, raw)["id"].(string)

	resp, raw = doRequest(t, app, http.MethodPut, "/api/customers/"+id, `{"phone":"555-0101"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode(t, raw)
	assert.Equal(t, "Sunrise Dairy", body["name"])
	assert.Equal(t, "555-0101", body["phone"])

	resp, raw = doRequest(t, app, http.MethodPost, "/api/customers", `{"city":"Pune"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode(t, raw)["code"])

	resp, _ = doRequest(t, app, http.MethodDelete, "/api/customers/"+id, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodGet, "/api/customers/"+id, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestStockAvailability(t *testing.T) {
	app := buildTestApp(seedStore(), nil)

	resp, raw := doRequest(t, app, http.MethodGet, "/api/stock/c/availability", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode(t, raw)
	assert.Equal(t, "c", body["stockId"])
	assert.Equal(t, float64(5), body["available"])

	resp, _ = doRequest(t, app, http.MethodGet, "/api/stock/zz/availability", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestStockCreate_PrecioNegativo400(t *testing.T) {
	app := buildTestApp(seedStore(), nil)

	resp, raw := doRequest(t, app, http.MethodPost, "/api/stock",
		`{"productName":"Sahiwal","category":"Cattle","quantity":10,"price":-1,"unit":"straw"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, string(raw))

	resp, raw = doRequest(t, app, http.MethodPost, "/api/stock",
		`{"productName":"Sahiwal","category":"Cattle","quantity":10,"price":1500,"unit":"straw"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	body := decode(t, raw)
	assert.Equal(t, float64(1500), body["price"])
	assert.Equal(t, false, body["lowStock"])
}

func TestDashboard(t *testing.T) {
	app := buildTestApp(seedStore(), nil)

	doRequest(t, app, http.MethodPost, "/api/orders", `{"customerId":"c1","items":[{"stockId":"a","quantity":1}]}`)

	resp, raw := doRequest(t, app, http.MethodGet, "/api/dashboard", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode(t, raw)
	assert.Equal(t, float64(1), body["totalCustomers"])
	assert.Equal(t, float64(1), body["totalOrders"])
	assert.Equal(t, float64(1), body["pendingOrders"])
	assert.Equal(t, float64(3), body["totalStockItems"])
	assert.Equal(t, float64(1), body["lowStockItems"])
	assert.Equal(t, float64(0), body["totalRevenue"])
	assert.Len(t, body["recentOrders"], 1)
}

func TestHealth(t *testing.T) {
	app := buildTestApp(seedStore(), nil)

	resp, raw := doRequest(t, app, http.MethodGet, "/health", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode(t, raw)["status"])
}
