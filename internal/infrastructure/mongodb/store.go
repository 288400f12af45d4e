// Package mongodb implementa el Record Store sobre MongoDB. La transacción de órdenes
// usa sesiones multi-documento, por lo que el servidor debe ser un replica set.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/drvet-api/internal/application/orders"
	"github.com/jhoicas/drvet-api/internal/domain/repository"
	"github.com/jhoicas/drvet-api/pkg/logger"
)

const (
	collCustomers = "customers"
	collStock     = "stock"
	collOrders    = "orders"
	collCounters  = "counters"
	collLocks     = "locks"
)

var _ orders.TxRunner = (*Store)(nil)

// Store cliente MongoDB y fábrica de repositorios.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	log    *logger.Logger
}

// Connect abre la conexión, verifica con Ping y crea los índices.
func Connect(ctx context.Context, uri, dbName string, log *logger.Logger) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	s := &Store{client: client, db: client.Database(dbName), log: log.Named("mongodb")}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	s.log.Info().Str("db", dbName).Msg("mongodb conectado")
	return s, nil
}

// Close cierra la conexión.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Customers devuelve el repositorio de clientes.
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{store: s} }

// Stock devuelve el repositorio de stock.
func (s *Store) Stock() *StockRepo { return &StockRepo{store: s} }

// Orders devuelve el repositorio de órdenes.
func (s *Store) Orders() *OrderRepo { return &OrderRepo{store: s} }

// Run ejecuta fn dentro de una transacción multi-documento. Los repositorios que recibe fn
// operan con el contexto de la sesión. WithTransaction reintenta fn ante conflictos de escritura
// transitorios, así que fn no debe tener efectos fuera de los repositorios.
func (s *Store) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	orderRepo repository.OrderRepository,
) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(&StockRepo{store: s, sc: sc}, &OrderRepo{store: s, sc: sc})
	})
	return err
}

func (s *Store) coll(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	seq := mongo.IndexModel{Keys: bson.D{{Key: "seq", Value: 1}}}
	for _, name := range []string{collCustomers, collStock, collOrders} {
		if _, err := s.coll(name).Indexes().CreateOne(ctx, seq); err != nil {
			return fmt.Errorf("index %s.seq: %w", name, err)
		}
	}
	_, err := s.coll(collOrders).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "order_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("index orders: %w", err)
	}
	return nil
}

// nextSeq devuelve el siguiente número de secuencia de la colección (orden de inserción).
func (s *Store) nextSeq(ctx context.Context, collection string) (int64, error) {
	var counter struct {
		Value int64 `bson:"value"`
	}
	err := s.coll(collCounters).FindOneAndUpdate(ctx,
		bson.M{"_id": collection},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next seq %s: %w", collection, err)
	}
	return counter.Value, nil
}

// lockStock escribe el documento de bloqueo del stock dentro de la transacción: dos
// transacciones de órdenes concurrentes chocan aquí y una de ellas se reintenta.
func (s *Store) lockStock(ctx context.Context) error {
	_, err := s.coll(collLocks).UpdateOne(ctx,
		bson.M{"_id": collStock},
		bson.M{"$inc": bson.M{"version": int64(1)}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("lock stock: %w", err)
	}
	return nil
}

// session elige el contexto de la sesión cuando el repositorio está atado a una transacción.
func session(ctx context.Context, sc mongo.SessionContext) context.Context {
	if sc != nil {
		return sc
	}
	return ctx
}

func isDuplicate(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
