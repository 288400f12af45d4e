package inventory_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/drvet-api/internal/domain"
	"github.com/jhoicas/drvet-api/internal/domain/entity"
	"github.com/jhoicas/drvet-api/internal/domain/inventory"
)

func stockFixture() []*entity.StockItem {
	return []*entity.StockItem{
		{ID: "a", ProductName: "Holstein", Quantity: 50, Price: decimal.NewFromInt(100)},
		{ID: "b", ProductName: "Murrah", Quantity: 50, Price: decimal.NewFromInt(50)},
		{ID: "c", ProductName: "Boer", Quantity: 5, Price: decimal.RequireFromString("12.5")},
	}
}

func TestReserve_DescuentaTodasLasLineas(t *testing.T) {
	stock := stockFixture()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	res, err := inventory.Reserve(stock, []entity.OrderLine{
		{StockID: "a", Quantity: 2},
		{StockID: "b", Quantity: 3},
	}, now)
	require.NoError(t, err)

	require.Len(t, res.Stock, 3)
	assert.Equal(t, 48, res.Stock[0].Quantity)
	assert.Equal(t, 47, res.Stock[1].Quantity)
	assert.Equal(t, 5, res.Stock[2].Quantity)
	assert.Equal(t, now, res.Stock[0].UpdatedAt)
	assert.True(t, res.Stock[2].UpdatedAt.IsZero(), "un ítem no tocado no cambia UpdatedAt")

	require.Len(t, res.UnitPrices, 2)
	assert.True(t, res.UnitPrices[0].Equal(decimal.NewFromInt(100)))
	assert.True(t, res.UnitPrices[1].Equal(decimal.NewFromInt(50)))

	// la entrada no se modifica
	assert.Equal(t, 50, stock[0].Quantity)
	assert.Equal(t, 50, stock[1].Quantity)
}

func TestReserve_StockInsuficienteRechazaTodoElLote(t *testing.T) {
	stock := stockFixture()

	_, err := inventory.Reserve(stock, []entity.OrderLine{
		{StockID: "a", Quantity: 1},
		{StockID: "c", Quantity: 6},
	}, time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, "Boer", insufficient.ProductName)
	assert.Equal(t, 6, insufficient.Requested)
	assert.Equal(t, 5, insufficient.Available)
	assert.Contains(t, err.Error(), "Boer")

	assert.Equal(t, 50, stock[0].Quantity, "ninguna línea se descuenta si el lote falla")
	assert.Equal(t, 5, stock[2].Quantity)
}

func TestReserve_LineasRepetidasSeAcumulan(t *testing.T) {
	_, err := inventory.Reserve(stockFixture(), []entity.OrderLine{
		{StockID: "c", Quantity: 3},
		{StockID: "c", Quantity: 3},
	}, time.Now())

	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 6, insufficient.Requested)

	res, err := inventory.Reserve(stockFixture(), []entity.OrderLine{
		{StockID: "c", Quantity: 2},
		{StockID: "c", Quantity: 3},
	}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Stock[2].Quantity)
}

func TestReserve_LineasRepetidasNoDesbordan(t *testing.T) {
	stock := stockFixture()
	_, err := inventory.Reserve(stock, []entity.OrderLine{
		{StockID: "a", Quantity: 1},
		{StockID: "a", Quantity: math.MaxInt},
	}, time.Now())

	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient), "got %v", err)
	assert.Equal(t, math.MaxInt, insufficient.Requested)
	assert.Equal(t, 50, insufficient.Available)
	assert.Equal(t, 50, stock[0].Quantity)

	_, err = inventory.Reserve(stockFixture(), []entity.OrderLine{
		{StockID: "a", Quantity: math.MaxInt},
		{StockID: "a", Quantity: math.MaxInt},
	}, time.Now())
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
}

func TestReserve_CantidadNoPositiva(t *testing.T) {
	_, err := inventory.Reserve(stockFixture(), []entity.OrderLine{
		{StockID: "a", Quantity: 3},
		{StockID: "a", Quantity: -2},
	}, time.Now())
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "got %v", err)
}

func TestReserve_StockDesconocido(t *testing.T) {
	_, err := inventory.Reserve(stockFixture(), []entity.OrderLine{
		{StockID: "a", Quantity: 1},
		{StockID: "zzz", Quantity: 1},
	}, time.Now())

	var notFound *domain.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "zzz", notFound.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestReserve_CantidadExactaDejaCero(t *testing.T) {
	res, err := inventory.Reserve(stockFixture(), []entity.OrderLine{{StockID: "c", Quantity: 5}}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Items[0].Quantity)
}

func TestRelease_DevuelveCantidadesEIgnoraDesconocidos(t *testing.T) {
	stock := stockFixture()
	out := inventory.Release(stock, []entity.OrderLine{
		{StockID: "a", Quantity: 2},
		{StockID: "borrado", Quantity: 9},
	}, time.Now())

	require.Len(t, out, 3)
	assert.Equal(t, 52, out[0].Quantity)
	assert.Equal(t, 50, stock[0].Quantity)
}

func TestTotal(t *testing.T) {
	total := inventory.Total([]entity.OrderLine{
		{Quantity: 2, UnitPrice: decimal.NewFromInt(100)},
		{Quantity: 3, UnitPrice: decimal.NewFromInt(50)},
	})
	assert.True(t, total.Equal(decimal.NewFromInt(350)), "got %s", total)
}
