// Package jsonstore implementa el Record Store sobre archivos JSON (un archivo por colección,
// camelCase con montos numéricos, el formato que lee el UI). El estado vive en un memstore; cada
// commit escribe primero un journal con las colecciones modificadas y luego los archivos,
// de modo que stock y órdenes se confirman juntos aunque el proceso muera a mitad de camino.
package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jhoicas/drvet-api/internal/infrastructure/memstore"
	"github.com/jhoicas/drvet-api/pkg/logger"
)

const journalFile = ".journal.json"

// journal colecciones pendientes de escribir, serializadas tal como irán a su archivo.
type journal struct {
	Collections map[memstore.Collection]json.RawMessage `json:"collections"`
}

// Persister escribe el Snapshot en dir. Implementa memstore.Persister.
type Persister struct {
	dir   string
	log   *logger.Logger
	write func(path string, data []byte) error
	// pending contenido previo de un commit cuya vuelta atrás no pudo completarse.
	pending *journal
	// staleJournal journal de un commit ya aplicado que no se pudo borrar.
	staleJournal bool
}

var _ memstore.Persister = (*Persister)(nil)

// Open carga (o crea) los archivos de dir y devuelve el store respaldado por ellos.
// Si quedó un journal de un commit interrumpido, lo aplica antes de leer.
func Open(ctx context.Context, dir string, log *logger.Logger) (*memstore.Store, error) {
	return open(ctx, dir, log, writeAtomic)
}

func open(ctx context.Context, dir string, log *logger.Logger, write func(string, []byte) error) (*memstore.Store, error) {
	p := &Persister{dir: dir, log: log.Named("jsonstore"), write: write}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("jsonstore: crear %s: %w", dir, err)
	}
	if err := p.recover(); err != nil {
		return nil, err
	}

	var snap memstore.Snapshot
	var customers []customerRecord
	var stock []stockRecord
	var orders []orderRecord
	if err := p.load(memstore.Customers, &customers); err != nil {
		return nil, err
	}
	if err := p.load(memstore.Stock, &stock); err != nil {
		return nil, err
	}
	if err := p.load(memstore.Orders, &orders); err != nil {
		return nil, err
	}
	snap.Customers = fromCustomerRecords(customers)
	snap.Stock = fromStockRecords(stock)
	snap.Orders = fromOrderRecords(orders)

	p.log.Info().
		Str("dir", dir).
		Int("customers", len(snap.Customers)).
		Int("stock", len(snap.Stock)).
		Int("orders", len(snap.Orders)).
		Msg("store JSON abierto")
	return memstore.New(snap, p), nil
}

// Persist implementa memstore.Persister.
//
// Con más de una colección: journal con el estado nuevo, archivos, borrar journal. Si algún
// archivo falla se vuelve al contenido previo antes de devolver el error, de modo que un
// commit rechazado no reaparece al reabrir.
func (p *Persister) Persist(ctx context.Context, snap memstore.Snapshot, changed []memstore.Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.pending != nil {
		if err := p.rollback(*p.pending); err != nil {
			return fmt.Errorf("jsonstore: commit anterior sin revertir: %w", err)
		}
		p.pending = nil
	}
	if p.staleJournal {
		if err := os.Remove(p.journalPath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("jsonstore: borrar journal: %w", err)
		}
		p.staleJournal = false
	}

	j := journal{Collections: make(map[memstore.Collection]json.RawMessage, len(changed))}
	for _, c := range changed {
		raw, err := encode(snap, c)
		if err != nil {
			return err
		}
		j.Collections[c] = raw
	}

	// Un solo archivo no necesita journal: el rename ya es atómico.
	if len(changed) == 1 {
		return p.apply(j)
	}

	prev, err := p.current(changed)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(j)
	if err != nil {
		return fmt.Errorf("jsonstore: journal: %w", err)
	}
	if err := p.write(p.journalPath(), raw); err != nil {
		return fmt.Errorf("jsonstore: journal: %w", err)
	}
	if err := p.apply(j); err != nil {
		if rbErr := p.rollback(prev); rbErr != nil {
			p.pending = &prev
			p.log.Error().Err(rbErr).Msg("no se pudo revertir el commit fallido")
			return errors.Join(err, rbErr)
		}
		return err
	}
	// Los archivos ya tienen el estado nuevo: el commit vale aunque el journal quede.
	if err := os.Remove(p.journalPath()); err != nil {
		p.staleJournal = true
		p.log.Warn().Err(err).Msg("journal aplicado sin borrar; se reintenta en el próximo commit")
	}
	return nil
}

// current lee el contenido en disco de las colecciones indicadas.
func (p *Persister) current(changed []memstore.Collection) (journal, error) {
	prev := journal{Collections: make(map[memstore.Collection]json.RawMessage, len(changed))}
	for _, c := range changed {
		raw, err := os.ReadFile(p.path(c))
		if errors.Is(err, fs.ErrNotExist) {
			raw = []byte("[]")
		} else if err != nil {
			return journal{}, fmt.Errorf("jsonstore: leer %s: %w", c, err)
		}
		prev.Collections[c] = raw
	}
	return prev, nil
}

// rollback reemplaza el journal por el contenido previo y lo aplica. Si el proceso muere
// a mitad de camino, recover termina de revertir.
func (p *Persister) rollback(prev journal) error {
	raw, err := json.Marshal(prev)
	if err != nil {
		return fmt.Errorf("jsonstore: journal previo: %w", err)
	}
	if err := p.write(p.journalPath(), raw); err != nil {
		return fmt.Errorf("jsonstore: journal previo: %w", err)
	}
	if err := p.apply(prev); err != nil {
		return err
	}
	if err := os.Remove(p.journalPath()); err != nil {
		return fmt.Errorf("jsonstore: borrar journal: %w", err)
	}
	return nil
}

func (p *Persister) apply(j journal) error {
	for _, c := range []memstore.Collection{memstore.Customers, memstore.Stock, memstore.Orders} {
		raw, ok := j.Collections[c]
		if !ok {
			continue
		}
		if err := p.write(p.path(c), raw); err != nil {
			return fmt.Errorf("jsonstore: escribir %s: %w", c, err)
		}
	}
	return nil
}

// recover reaplica un journal pendiente. Un journal ilegible significa que el commit
// nunca llegó a escribirse completo, así que se descarta.
func (p *Persister) recover() error {
	path := p.journalPath()
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("jsonstore: leer journal: %w", err)
	}
	var j journal
	if err := json.Unmarshal(raw, &j); err != nil {
		p.log.Warn().Err(err).Msg("journal corrupto descartado")
		return os.Remove(path)
	}
	if err := p.apply(j); err != nil {
		return err
	}
	p.log.Warn().Int("collections", len(j.Collections)).Msg("commit interrumpido reaplicado desde el journal")
	return os.Remove(path)
}

// load lee una colección; si el archivo no existe lo crea vacío.
func (p *Persister) load(c memstore.Collection, dst any) error {
	raw, err := os.ReadFile(p.path(c))
	if errors.Is(err, fs.ErrNotExist) {
		return p.write(p.path(c), []byte("[]"))
	}
	if err != nil {
		return fmt.Errorf("jsonstore: leer %s: %w", c, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("jsonstore: %s.json inválido: %w", c, err)
	}
	return nil
}

func (p *Persister) path(c memstore.Collection) string {
	return filepath.Join(p.dir, string(c)+".json")
}

func (p *Persister) journalPath() string { return filepath.Join(p.dir, journalFile) }

func encode(snap memstore.Snapshot, c memstore.Collection) (json.RawMessage, error) {
	var v any
	switch c {
	case memstore.Customers:
		v = toCustomerRecords(snap.Customers)
	case memstore.Stock:
		v = toStockRecords(snap.Stock)
	case memstore.Orders:
		v = toOrderRecords(snap.Orders)
	default:
		return nil, fmt.Errorf("jsonstore: colección desconocida %q", c)
	}
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("jsonstore: serializar %s: %w", c, err)
	}
	return raw, nil
}

// writeAtomic escribe en un temporal del mismo directorio, sincroniza y renombra.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
