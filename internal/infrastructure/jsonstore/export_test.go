package jsonstore

import (
	"context"

	"github.com/jhoicas/drvet-api/internal/infrastructure/memstore"
)

// OpenWithWriter abre el store con write en lugar de writeAtomic.
func OpenWithWriter(ctx context.Context, dir string, write func(path string, data []byte) error) (*memstore.Store, error) {
	return open(ctx, dir, nil, write)
}

// WriteAtomic expone writeAtomic para envolverla en tests.
var WriteAtomic = writeAtomic
