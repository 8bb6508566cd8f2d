package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection    = "users"
	menuCollection     = "menuitems"
	cartCollection     = "cartitems"
	ordersCollection   = "orders"
	paymentsCollection = "payments"
)

// MongoStore bundles the MongoDB backed repositories of one database
type MongoStore struct {
	client       *mongo.Client
	db           *mongo.Database
	transactions bool

	Users    *UserMongoRepository
	Menu     *MenuMongoRepository
	Carts    *CartMongoRepository
	Orders   *OrderMongoRepository
	Payments *PaymentMongoRepository
}

// NewMongoStore creates the repositories. With transactions disabled (standalone
// mongod) WithinTx runs fn directly.
func NewMongoStore(client *mongo.Client, database string, transactions bool) *MongoStore {
	db := client.Database(database)
	return &MongoStore{
		client:       client,
		db:           db,
		transactions: transactions,
		Users:        &UserMongoRepository{Collection: db.Collection(usersCollection)},
		Menu:         &MenuMongoRepository{Collection: db.Collection(menuCollection)},
		Carts:        &CartMongoRepository{Collection: db.Collection(cartCollection)},
		Orders:       &OrderMongoRepository{Collection: db.Collection(ordersCollection)},
		Payments:     &PaymentMongoRepository{Collection: db.Collection(paymentsCollection)},
	}
}

// WithinTx runs fn inside a MongoDB transaction when enabled
func (s *MongoStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if !s.transactions {
		return fn(ctx)
	}

	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// EnsureIndexes creates the unique indexes the data model relies on
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		cartCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "menu_item_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		ordersCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "checkout_key", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "payment_id", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
	}

	for name, specs := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, specs); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

// Ping checks that the database answers
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func duplicate(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}
