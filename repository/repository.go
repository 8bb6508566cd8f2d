// Package repository is the persistence layer. Each interface covers one
// MongoDB collection; services depend on the interfaces only.
package repository

import (
	"context"
	"errors"
	"time"

	"go-foodorder/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when no document matches
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicate is returned when a unique index rejects a write
	ErrDuplicate = errors.New("repository: duplicate key")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// FindByIDs returns the users that exist among ids, keyed by id
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, name, address, phone string) (*models.User, error)
	SetAdmin(ctx context.Context, id primitive.ObjectID, isAdmin bool) error
}

type MenuRepository interface {
	List(ctx context.Context) ([]models.MenuItem, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.MenuItem, error)
	Create(ctx context.Context, item *models.MenuItem) error
	Update(ctx context.Context, item *models.MenuItem) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type CartRepository interface {
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.CartItem, error)
	// AddQuantity creates the (user, menu item) row or increments its quantity
	AddQuantity(ctx context.Context, userID, menuItemID primitive.ObjectID, quantity int, now time.Time) (*models.CartItem, error)
	// UpdateQuantity only touches a row owned by userID, ErrNotFound otherwise
	UpdateQuantity(ctx context.Context, userID, cartItemID primitive.ObjectID, quantity int, now time.Time) (*models.CartItem, error)
	// Delete only removes a row owned by userID, ErrNotFound otherwise
	Delete(ctx context.Context, userID, cartItemID primitive.ObjectID) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

type OrderRepository interface {
	// Create returns ErrDuplicate when the user already has an order for the checkout key
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByCheckoutKey(ctx context.Context, userID primitive.ObjectID, key string) (*models.Order, error)
	FindByPaymentID(ctx context.Context, paymentID primitive.ObjectID) (*models.Order, error)
	// ListByUser and ListAll return newest first
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus, now time.Time) (*models.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Payment, error)
}

// Transactor runs fn as one unit of work. Repositories called with the ctx
// handed to fn take part in it.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

var (
	_ UserRepository    = (*UserMongoRepository)(nil)
	_ MenuRepository    = (*MenuMongoRepository)(nil)
	_ CartRepository    = (*CartMongoRepository)(nil)
	_ OrderRepository   = (*OrderMongoRepository)(nil)
	_ PaymentRepository = (*PaymentMongoRepository)(nil)
	_ Transactor        = (*MongoStore)(nil)
)
