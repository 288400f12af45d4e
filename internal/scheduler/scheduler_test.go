package scheduler

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/drvet-api/internal/domain/entity"
	"github.com/jhoicas/drvet-api/pkg/logger"
)

type stubSource struct {
	items []*entity.StockItem
	err   error
}

func (s stubSource) LowStock(context.Context) ([]*entity.StockItem, error) {
	return s.items, s.err
}

func TestLowStockReport_LogueaCadaItem(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})
	s := NewScheduler("", stubSource{items: []*entity.StockItem{
		{ID: "a", ProductName: "Boer", Quantity: 3},
		{ID: "b", ProductName: "Jersey", Quantity: 0},
	}}, log)

	n, err := s.LowStockReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 3, bytes.Count(buf.Bytes(), []byte("\n")))
	assert.Contains(t, buf.String(), `"product":"Boer"`)
	assert.Contains(t, buf.String(), `"component":"scheduler"`)
}

func TestLowStockReport_PropagaError(t *testing.T) {
	boom := errors.New("store down")
	s := NewScheduler("", stubSource{err: boom}, logger.Nop())

	_, err := s.LowStockReport(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestStart(t *testing.T) {
	off := NewScheduler("", stubSource{}, nil)
	require.NoError(t, off.Start())
	assert.Empty(t, off.cron.Entries())

	bad := NewScheduler("every tuesday", stubSource{}, nil)
	assert.Error(t, bad.Start())

	ok := NewScheduler("0 8 * * *", stubSource{}, nil)
	require.NoError(t, ok.Start())
	assert.Len(t, ok.cron.Entries(), 1)
	ok.Stop(context.Background())
}
