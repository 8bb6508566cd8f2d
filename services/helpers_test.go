package services

import (
	"context"
	"testing"
	"time"

	"go-foodorder/models"
	"go-foodorder/repository/memory"
	"go-foodorder/utils"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MailerMock struct{ mock.Mock }

func (m *MailerMock) SendOrderConfirmation(ctx context.Context, to string, order *models.Order) error {
	args := m.Called(ctx, to, order)
	return args.Error(0)
}

func (m *MailerMock) SendStatusUpdate(ctx context.Context, to string, order *models.Order) error {
	args := m.Called(ctx, to, order)
	return args.Error(0)
}

type GatewayMock struct{ mock.Mock }

func (m *GatewayMock) Charge(ctx context.Context, amount models.Money, paymentMethodID string) (bool, error) {
	args := m.Called(ctx, amount, paymentMethodID)
	return args.Bool(0), args.Error(1)
}

// clock hands out strictly increasing times so newest-first ordering is deterministic
type clock struct{ t time.Time }

func newClock() *clock {
	return &clock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

type fixture struct {
	store    *memory.Store
	tokens   *utils.TokenManager
	mailer   *MailerMock
	clock    *clock
	accounts *AccountService
	catalog  *CatalogService
	carts    *CartService
	orders   *OrderService
	payments *PaymentService
	guard    *IdentityGuard
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	tokens := utils.NewTokenManager("test-secret", time.Hour)
	mailer := &MailerMock{}
	mailer.On("SendOrderConfirmation", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	mailer.On("SendStatusUpdate", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	c := newClock()

	f := &fixture{
		store:    store,
		tokens:   tokens,
		mailer:   mailer,
		clock:    c,
		accounts: NewAccountService(store.Users, tokens),
		catalog:  NewCatalogService(store.Menu),
		carts:    NewCartService(store.Carts, store.Menu),
		orders: NewOrderService(OrderDeps{
			Tx:       store,
			Orders:   store.Orders,
			Carts:    store.Carts,
			Menu:     store.Menu,
			Payments: store.Payments,
			Users:    store.Users,
			Mailer:   mailer,
		}),
		payments: NewPaymentService(store.Payments, store.Carts, store.Menu, ApproveGateway{}),
		guard:    NewIdentityGuard(tokens, store.Users),
	}
	f.accounts.Now = c.Now
	f.catalog.Now = c.Now
	f.carts.Now = c.Now
	f.orders.Now = c.Now
	f.payments.Now = c.Now
	return f
}

func (f *fixture) user(t *testing.T, name string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: name + "@example.com", CreatedAt: f.clock.Now()}
	require.NoError(t, f.store.Users.Create(context.Background(), u))
	return u
}

func (f *fixture) admin(t *testing.T) *models.User {
	t.Helper()
	u := &models.User{Name: "admin", Email: "admin@example.com", IsAdmin: true, CreatedAt: f.clock.Now()}
	require.NoError(t, f.store.Users.Create(context.Background(), u))
	return u
}

func (f *fixture) menuItem(t *testing.T, name, price string) *models.MenuItem {
	t.Helper()
	item := &models.MenuItem{Name: name, Price: models.MustMoney(price), Category: "Mains", CreatedAt: f.clock.Now()}
	require.NoError(t, f.store.Menu.Create(context.Background(), item))
	return item
}

func (f *fixture) addToCart(t *testing.T, user *models.User, item *models.MenuItem, qty int) *models.CartItem {
	t.Helper()
	row, err := f.carts.AddItem(context.Background(), user, item.ID, qty)
	require.NoError(t, err)
	return row
}

func requireKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	require.Error(t, err)
	se, ok := AsError(err)
	require.True(t, ok, "expected service error, got %v", err)
	require.Equal(t, kind, se.Kind, se.Message)
}

func ptr(id primitive.ObjectID) *primitive.ObjectID { return &id }
