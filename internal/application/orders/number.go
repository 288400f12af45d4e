package orders

import (
	"fmt"
	"sync"
	"time"
)

// NumberGenerator genera números de orden legibles ORD-<millis>.
// Nunca repite dentro del proceso: si el reloj no avanzó (o retrocedió) usa el último + 1.
type NumberGenerator struct {
	mu   sync.Mutex
	last int64
}

// NewNumberGenerator construye el generador.
func NewNumberGenerator() *NumberGenerator {
	return &NumberGenerator{}
}

// Next devuelve el siguiente número para el instante now.
func (g *NumberGenerator) Next(now time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := now.UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return fmt.Sprintf("ORD-%d", ms)
}
