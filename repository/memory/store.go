// Package memory keeps every collection in process memory. It backs the
// "memory" storage driver and the service and HTTP tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go-foodorder/models"
	"go-foodorder/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store holds all collections behind one lock. WithinTx gives no isolation or
// rollback; callers relying on compensation still behave correctly.
type Store struct {
	mu       sync.Mutex
	users    map[primitive.ObjectID]models.User
	menu     map[primitive.ObjectID]models.MenuItem
	carts    map[primitive.ObjectID]models.CartItem
	orders   map[primitive.ObjectID]models.Order
	payments map[primitive.ObjectID]models.Payment

	Users    *UserRepository
	Menu     *MenuRepository
	Carts    *CartRepository
	Orders   *OrderRepository
	Payments *PaymentRepository
}

func NewStore() *Store {
	s := &Store{
		users:    map[primitive.ObjectID]models.User{},
		menu:     map[primitive.ObjectID]models.MenuItem{},
		carts:    map[primitive.ObjectID]models.CartItem{},
		orders:   map[primitive.ObjectID]models.Order{},
		payments: map[primitive.ObjectID]models.Payment{},
	}
	s.Users = &UserRepository{s: s}
	s.Menu = &MenuRepository{s: s}
	s.Carts = &CartRepository{s: s}
	s.Orders = &OrderRepository{s: s}
	s.Payments = &PaymentRepository{s: s}
	return s
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repository.ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[primitive.ObjectID]models.User, len(ids))
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, name, address, phone string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Name, u.Address, u.Phone = name, address, phone
	r.s.users[id] = u
	return &u, nil
}

func (r *UserRepository) SetAdmin(ctx context.Context, id primitive.ObjectID, isAdmin bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.IsAdmin = isAdmin
	r.s.users[id] = u
	return nil
}

type MenuRepository struct{ s *Store }

func (r *MenuRepository) List(ctx context.Context) ([]models.MenuItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	items := make([]models.MenuItem, 0, len(r.s.menu))
	for _, item := range r.s.menu {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return items[i].Name < items[j].Name
	})
	return items, nil
}

func (r *MenuRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.menu[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &item, nil
}

func (r *MenuRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.MenuItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[primitive.ObjectID]models.MenuItem, len(ids))
	for _, id := range ids {
		if item, ok := r.s.menu[id]; ok {
			out[id] = item
		}
	}
	return out, nil
}

func (r *MenuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	r.s.menu[item.ID] = *item
	return nil
}

func (r *MenuRepository) Update(ctx context.Context, item *models.MenuItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.menu[item.ID]
	if !ok {
		return repository.ErrNotFound
	}
	updated := *item
	updated.CreatedAt = current.CreatedAt
	r.s.menu[item.ID] = updated
	return nil
}

func (r *MenuRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.menu[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.menu, id)
	return nil
}

type CartRepository struct{ s *Store }

func (r *CartRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	items := []models.CartItem{}
	for _, item := range r.s.carts {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ID.Hex() < items[j].ID.Hex()
	})
	return items, nil
}

func (r *CartRepository) AddQuantity(ctx context.Context, userID, menuItemID primitive.ObjectID, quantity int, now time.Time) (*models.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, item := range r.s.carts {
		if item.UserID == userID && item.MenuItemID == menuItemID {
			item.Quantity += quantity
			item.UpdatedAt = now
			r.s.carts[id] = item
			return &item, nil
		}
	}
	item := models.CartItem{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		MenuItemID: menuItemID,
		Quantity:   quantity,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.s.carts[item.ID] = item
	return &item, nil
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, userID, cartItemID primitive.ObjectID, quantity int, now time.Time) (*models.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.carts[cartItemID]
	if !ok || item.UserID != userID {
		return nil, repository.ErrNotFound
	}
	item.Quantity = quantity
	item.UpdatedAt = now
	r.s.carts[cartItemID] = item
	return &item, nil
}

func (r *CartRepository) Delete(ctx context.Context, userID, cartItemID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.carts[cartItemID]
	if !ok || item.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.s.carts, cartItemID)
	return nil
}

func (r *CartRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, item := range r.s.carts {
		if item.UserID == userID {
			delete(r.s.carts, id)
			n++
		}
	}
	return n, nil
}

type OrderRepository struct{ s *Store }

func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.orders {
		if o.UserID == order.UserID && o.CheckoutKey == order.CheckoutKey {
			return repository.ErrDuplicate
		}
		if order.PaymentID != nil && o.PaymentID != nil && *o.PaymentID == *order.PaymentID {
			return repository.ErrDuplicate
		}
	}
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	r.s.orders[order.ID] = cloneOrder(*order)
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	return r.findOne(func(o models.Order) bool { return o.ID == id })
}

func (r *OrderRepository) FindByCheckoutKey(ctx context.Context, userID primitive.ObjectID, key string) (*models.Order, error) {
	return r.findOne(func(o models.Order) bool { return o.UserID == userID && o.CheckoutKey == key })
}

func (r *OrderRepository) FindByPaymentID(ctx context.Context, paymentID primitive.ObjectID) (*models.Order, error) {
	return r.findOne(func(o models.Order) bool { return o.PaymentID != nil && *o.PaymentID == paymentID })
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return r.find(func(o models.Order) bool { return o.UserID == userID }), nil
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	return r.find(func(models.Order) bool { return true }), nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus, now time.Time) (*models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = now
	r.s.orders[id] = o
	out := cloneOrder(o)
	return &out, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.orders, id)
	return nil
}

func (r *OrderRepository) findOne(match func(models.Order) bool) (*models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.orders {
		if match(o) {
			out := cloneOrder(o)
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *OrderRepository) find(match func(models.Order) bool) []models.Order {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	orders := []models.Order{}
	for _, o := range r.s.orders {
		if match(o) {
			orders = append(orders, cloneOrder(o))
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].ID.Hex() > orders[j].ID.Hex()
	})
	return orders
}

// cloneOrder copies the item slice so callers cannot edit stored orders
func cloneOrder(o models.Order) models.Order {
	o.Items = append([]models.OrderItem(nil), o.Items...)
	return o
}

type PaymentRepository struct{ s *Store }

func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if payment.ID.IsZero() {
		payment.ID = primitive.NewObjectID()
	}
	r.s.payments[payment.ID] = *payment
	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

var (
	_ repository.UserRepository    = (*UserRepository)(nil)
	_ repository.MenuRepository    = (*MenuRepository)(nil)
	_ repository.CartRepository    = (*CartRepository)(nil)
	_ repository.OrderRepository   = (*OrderRepository)(nil)
	_ repository.PaymentRepository = (*PaymentRepository)(nil)
	_ repository.Transactor        = (*Store)(nil)
)
