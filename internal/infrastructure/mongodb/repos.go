package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/drvet-api/internal/domain"
	"github.com/jhoicas/drvet-api/internal/domain/entity"
	"github.com/jhoicas/drvet-api/internal/domain/repository"
)

var (
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
	_ repository.StockRepository    = (*StockRepo)(nil)
	_ repository.OrderRepository    = (*OrderRepo)(nil)
)

var bySeq = options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})

// CustomerRepo implementación de CustomerRepository sobre la colección customers.
type CustomerRepo struct {
	store *Store
}

func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	doc := newCustomerDoc(c)
	seq, err := r.store.nextSeq(ctx, collCustomers)
	if err != nil {
		return err
	}
	doc.Seq = seq
	if _, err := r.store.coll(collCustomers).InsertOne(ctx, doc); err != nil {
		if isDuplicate(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	var doc customerDoc
	if err := r.store.coll(collCustomers).FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return doc.entity(), nil
}

func (r *CustomerRepo) List(ctx context.Context) ([]*entity.Customer, error) {
	var docs []customerDoc
	if err := findAll(ctx, r.store.coll(collCustomers), &docs); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	out := make([]*entity.Customer, len(docs))
	for i, d := range docs {
		out[i] = d.entity()
	}
	return out, nil
}

func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	res, err := r.store.coll(collCustomers).UpdateOne(ctx, bson.M{"_id": c.ID}, bson.M{"$set": bson.M{
		"name": c.Name, "email": c.Email, "phone": c.Phone, "address": c.Address,
		"city": c.City, "state": c.State, "pincode": c.Pincode, "updated_at": c.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFoundError("customer", c.ID)
	}
	return nil
}

func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.store.coll(collCustomers).DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

// StockRepo implementación de StockRepository. sc != nil cuando está atado a una transacción.
type StockRepo struct {
	store *Store
	sc    mongo.SessionContext
}

func (r *StockRepo) Create(ctx context.Context, s *entity.StockItem) error {
	ctx = session(ctx, r.sc)
	doc := newStockDoc(s)
	seq, err := r.store.nextSeq(ctx, collStock)
	if err != nil {
		return err
	}
	doc.Seq = seq
	if _, err := r.store.coll(collStock).InsertOne(ctx, doc); err != nil {
		if isDuplicate(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock item: %w", err)
	}
	return nil
}

func (r *StockRepo) GetByID(ctx context.Context, id string) (*entity.StockItem, error) {
	var doc stockDoc
	if err := r.store.coll(collStock).FindOne(session(ctx, r.sc), bson.M{"_id": id}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return doc.entity(), nil
}

func (r *StockRepo) List(ctx context.Context) ([]*entity.StockItem, error) {
	var docs []stockDoc
	if err := findAll(session(ctx, r.sc), r.store.coll(collStock), &docs); err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	out := make([]*entity.StockItem, len(docs))
	for i, d := range docs {
		out[i] = d.entity()
	}
	return out, nil
}

// ListForUpdate toma el documento de bloqueo del stock antes de leer (solo en transacción).
func (r *StockRepo) ListForUpdate(ctx context.Context) ([]*entity.StockItem, error) {
	if r.sc != nil {
		if err := r.store.lockStock(r.sc); err != nil {
			return nil, err
		}
	}
	return r.List(ctx)
}

func (r *StockRepo) Update(ctx context.Context, s *entity.StockItem) error {
	res, err := r.store.coll(collStock).UpdateOne(session(ctx, r.sc), bson.M{"_id": s.ID}, bson.M{"$set": stockFields(s)})
	if err != nil {
		return fmt.Errorf("update stock item: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFoundError("stock item", s.ID)
	}
	return nil
}

func (r *StockRepo) UpdateDetails(ctx context.Context, s *entity.StockItem) error {
	fields := stockFields(s)
	delete(fields, "quantity")
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"quantity": 1})

	var current struct {
		Quantity int `bson:"quantity"`
	}
	err := r.store.coll(collStock).
		FindOneAndUpdate(session(ctx, r.sc), bson.M{"_id": s.ID}, bson.M{"$set": fields}, opts).
		Decode(&current)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.NewNotFoundError("stock item", s.ID)
	}
	if err != nil {
		return fmt.Errorf("update stock item: %w", err)
	}
	s.Quantity = current.Quantity
	return nil
}

func (r *StockRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.store.coll(collStock).DeleteOne(session(ctx, r.sc), bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete stock item: %w", err)
	}
	return nil
}

// ReplaceAll deja la colección con exactamente items: un BulkWrite de updates con upsert
// (seq se conserva) y el borrado de los documentos que ya no están.
func (r *StockRepo) ReplaceAll(ctx context.Context, items []*entity.StockItem) error {
	ctx = session(ctx, r.sc)
	ids := make([]string, len(items))
	models := make([]mongo.WriteModel, 0, len(items)+1)
	for i, s := range items {
		ids[i] = s.ID
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": s.ID}).
			SetUpdate(bson.M{"$set": stockFields(s)}).
			SetUpsert(true))
	}
	models = append(models, mongo.NewDeleteManyModel().SetFilter(bson.M{"_id": bson.M{"$nin": ids}}))

	if _, err := r.store.coll(collStock).BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true)); err != nil {
		return fmt.Errorf("replace stock: %w", err)
	}
	return nil
}

func stockFields(s *entity.StockItem) bson.M {
	return bson.M{
		"product_name": s.ProductName, "category": s.Category, "quantity": s.Quantity,
		"price": toDecimal128(s.Price), "unit": s.Unit, "batch_number": s.BatchNumber,
		"expiry_date": s.ExpiryDate, "description": s.Description,
		"created_at": s.CreatedAt, "updated_at": s.UpdatedAt,
	}
}

// OrderRepo implementación de OrderRepository: cada orden es un documento con sus líneas embebidas.
type OrderRepo struct {
	store *Store
	sc    mongo.SessionContext
}

func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	ctx = session(ctx, r.sc)
	doc := newOrderDoc(o)
	seq, err := r.store.nextSeq(ctx, collOrders)
	if err != nil {
		return err
	}
	doc.Seq = seq
	if _, err := r.store.coll(collOrders).InsertOne(ctx, doc); err != nil {
		if isDuplicate(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var doc orderDoc
	if err := r.store.coll(collOrders).FindOne(session(ctx, r.sc), bson.M{"_id": id}).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return doc.entity(), nil
}

func (r *OrderRepo) List(ctx context.Context) ([]*entity.Order, error) {
	var docs []orderDoc
	if err := findAll(session(ctx, r.sc), r.store.coll(collOrders), &docs); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	out := make([]*entity.Order, len(docs))
	for i, d := range docs {
		out[i] = d.entity()
	}
	return out, nil
}

func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	res, err := r.store.coll(collOrders).UpdateOne(session(ctx, r.sc), bson.M{"_id": o.ID}, bson.M{"$set": bson.M{
		"status": o.Status, "notes": o.Notes, "updated_at": o.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFoundError("order", o.ID)
	}
	return nil
}

func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.store.coll(collOrders).DeleteOne(session(ctx, r.sc), bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, out *[]T) error {
	cur, err := coll.Find(ctx, bson.M{}, bySeq)
	if err != nil {
		return err
	}
	*out = make([]T, 0)
	return cur.All(ctx, out)
}
