package controllers_test

import (
	"net/http"
	"testing"

	"go-foodorder/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderResponse struct {
	ID     string  `json:"_id"`
	Total  float64 `json:"total"`
	Status string  `json:"status"`
	Items  []struct {
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Quantity int     `json:"quantity"`
	} `json:"items"`
}

type cartLineResponse struct {
	ID       string `json:"_id"`
	Quantity int    `json:"quantity"`
}

func (a *testAPI) addToCart(token string, item *models.MenuItem, qty int) *cartLineResponse {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/cart", token, map[string]interface{}{
		"menuItemId": item.ID.Hex(), "quantity": qty,
	}, nil)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	var line cartLineResponse
	decode(a.t, rec, &line)
	return &line
}

func (a *testAPI) checkout(token string, headers map[string]string) *orderResponse {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/orders", token, nil, headers)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	var order orderResponse
	decode(a.t, rec, &order)
	return &order
}

func TestCartAddMergesRows(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.user("dan", false)
	burger := api.menuItem("Burger", "5.00")

	first := api.addToCart(token, burger, 1)
	second := api.addToCart(token, burger, 2)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 3, second.Quantity)

	rec := api.do(http.MethodGet, "/api/cart", token, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var lines []cartLineResponse
	decode(t, rec, &lines)
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestCartValidation(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.user("eve", false)
	burger := api.menuItem("Burger", "5.00")

	rec := api.do(http.MethodPost, "/api/cart", token, map[string]interface{}{"menuItemId": burger.ID.Hex(), "quantity": 0}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPost, "/api/cart", token, map[string]interface{}{"menuItemId": "nope"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodGet, "/api/cart", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCartRowsAreOwned(t *testing.T) {
	api := newTestAPI(t)
	_, owner := api.user("fay", false)
	_, other := api.user("gus", false)
	line := api.addToCart(owner, api.menuItem("Burger", "5.00"), 1)

	rec := api.do(http.MethodPut, "/api/cart/"+line.ID, other, map[string]int{"quantity": 4}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = api.do(http.MethodDelete, "/api/cart/"+line.ID, other, nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodPut, "/api/cart/"+line.ID, owner, map[string]int{"quantity": 4}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated cartLineResponse
	decode(t, rec, &updated)
	assert.Equal(t, 4, updated.Quantity)

	rec = api.do(http.MethodDelete, "/api/cart/"+line.ID, owner, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Cart item removed", message(t, rec))
}

func TestCheckout(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.user("hal", false)
	api.addToCart(token, api.menuItem("Burger", "5.00"), 2)
	api.addToCart(token, api.menuItem("Fries", "2.50"), 1)

	order := api.checkout(token, nil)
	assert.Equal(t, 12.5, order.Total)
	assert.Equal(t, "Pending", order.Status)
	assert.Len(t, order.Items, 2)

	rec := api.do(http.MethodGet, "/api/cart", token, nil, nil)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = api.do(http.MethodGet, "/api/orders", token, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var orders []orderResponse
	decode(t, rec, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
}

func TestCheckoutEmptyCart(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.user("ivy", false)

	rec := api.do(http.MethodPost, "/api/orders", token, nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "cart is empty", message(t, rec))

	rec = api.do(http.MethodGet, "/api/orders", token, nil, nil)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCheckoutRetryWithIdempotencyKey(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.user("jay", false)
	api.addToCart(token, api.menuItem("Burger", "5.00"), 1)
	headers := map[string]string{"Idempotency-Key": "checkout-1"}

	first := api.checkout(token, headers)

	rec := api.do(http.MethodPost, "/api/orders", token, nil, headers)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var retry orderResponse
	decode(t, rec, &retry)
	assert.Equal(t, first.ID, retry.ID)

	rec = api.do(http.MethodGet, "/api/orders", token, nil, nil)
	var orders []orderResponse
	decode(t, rec, &orders)
	assert.Len(t, orders, 1)
}

func TestCancelOrder(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.user("kim", false)
	_, other := api.user("lou", false)
	_, admin := api.user("root", true)
	burger := api.menuItem("Burger", "5.00")

	api.addToCart(token, burger, 1)
	pending := api.checkout(token, nil)
	api.addToCart(token, burger, 1)
	preparing := api.checkout(token, nil)

	rec := api.do(http.MethodPut, "/api/admin/orders/"+preparing.ID, admin, map[string]string{"status": "Preparing"}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = api.do(http.MethodDelete, "/api/orders/"+preparing.ID, token, nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "cannot cancel order that is not pending", message(t, rec))

	rec = api.do(http.MethodDelete, "/api/orders/"+pending.ID, other, nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodDelete, "/api/orders/"+pending.ID, token, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Order cancelled successfully", message(t, rec))

	rec = api.do(http.MethodGet, "/api/orders", token, nil, nil)
	var orders []orderResponse
	decode(t, rec, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, preparing.ID, orders[0].ID)
}

func TestCheckoutWithPayment(t *testing.T) {
	api := newTestAPI(t)
	_, token := api.user("max", false)
	api.addToCart(token, api.menuItem("Burger", "5.00"), 2)

	rec := api.do(http.MethodPost, "/api/payments", token, map[string]string{}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPost, "/api/payments", token, map[string]string{"paymentMethodId": "pm_card_visa"}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var payment struct {
		Success   bool    `json:"success"`
		PaymentID string  `json:"paymentId"`
		Amount    float64 `json:"amount"`
	}
	decode(t, rec, &payment)
	require.True(t, payment.Success)
	assert.Equal(t, 10.0, payment.Amount)

	rec = api.do(http.MethodPost, "/api/orders", token, map[string]string{"paymentId": payment.PaymentID}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), payment.PaymentID)

	api.addToCart(token, api.menuItem("Fries", "10.00"), 1)
	rec = api.do(http.MethodPost, "/api/orders", token, map[string]string{"paymentId": payment.PaymentID}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "payment is already attached to another order", message(t, rec))
}
