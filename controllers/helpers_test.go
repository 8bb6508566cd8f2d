package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-foodorder/controllers"
	"go-foodorder/models"
	"go-foodorder/repository/memory"
	"go-foodorder/routes"
	"go-foodorder/services"
	"go-foodorder/utils"

	"github.com/stretchr/testify/require"
)

type testAPI struct {
	t       *testing.T
	handler http.Handler
	store   *memory.Store
	tokens  *utils.TokenManager
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	store := memory.NewStore()
	tokens := utils.NewTokenManager("test-secret", time.Hour)
	mailer, err := utils.NewEmailService("log", "orders@example.com", "", "")
	require.NoError(t, err)

	accounts := services.NewAccountService(store.Users, tokens)
	catalog := services.NewCatalogService(store.Menu)
	carts := services.NewCartService(store.Carts, store.Menu)
	orders := services.NewOrderService(services.OrderDeps{
		Tx:       store,
		Orders:   store.Orders,
		Carts:    store.Carts,
		Menu:     store.Menu,
		Payments: store.Payments,
		Users:    store.Users,
		Mailer:   mailer,
	})
	// strictly increasing timestamps keep newest-first listings deterministic
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	orders.Now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	payments := services.NewPaymentService(store.Payments, store.Carts, store.Menu, services.ApproveGateway{})

	handler := routes.NewRouter(routes.Controllers{
		Users:    controllers.NewUserController(accounts),
		Menu:     controllers.NewMenuController(catalog),
		Cart:     controllers.NewCartController(carts),
		Orders:   controllers.NewOrderController(orders),
		Admin:    controllers.NewAdminController(orders),
		Payments: controllers.NewPaymentController(payments),
		Health:   controllers.NewHealthController(store),
	}, services.NewIdentityGuard(tokens, store.Users), []string{"http://localhost:5173"})

	return &testAPI{t: t, handler: handler, store: store, tokens: tokens}
}

func (a *testAPI) do(method, path, token string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

// user creates an account directly in the store and returns it with a token
func (a *testAPI) user(name string, admin bool) (*models.User, string) {
	a.t.Helper()
	u := &models.User{Name: name, Email: name + "@example.com", IsAdmin: admin}
	require.NoError(a.t, a.store.Users.Create(context.Background(), u))
	token, err := a.tokens.Issue(u.ID)
	require.NoError(a.t, err)
	return u, token
}

func (a *testAPI) menuItem(name, price string) *models.MenuItem {
	a.t.Helper()
	item := &models.MenuItem{Name: name, Price: models.MustMoney(price)}
	require.NoError(a.t, a.store.Menu.Create(context.Background(), item))
	return item
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	decode(t, rec, &body)
	return body.Message
}
