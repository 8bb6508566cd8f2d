package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMenuEmpty(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/api/menu", "", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCreateMenuItemRequiresAdmin(t *testing.T) {
	api := newTestAPI(t)
	_, customer := api.user("cal", false)
	body := map[string]interface{}{"name": "Burger", "price": 5.00}

	rec := api.do(http.MethodPost, "/api/menu", "", body, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodPost, "/api/menu", customer, body, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodGet, "/api/menu", "", nil, nil)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestMenuItemLifecycle(t *testing.T) {
	api := newTestAPI(t)
	_, admin := api.user("root", true)

	rec := api.do(http.MethodPost, "/api/menu", admin, map[string]interface{}{"price": 5}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "name is required", message(t, rec))

	rec = api.do(http.MethodPost, "/api/menu", admin, map[string]interface{}{
		"name": "Burger", "description": "Beef", "price": 5.5, "category": "Mains",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID    string  `json:"_id"`
		Price float64 `json:"price"`
	}
	decode(t, rec, &created)
	assert.Equal(t, 5.5, created.Price)

	rec = api.do(http.MethodGet, "/api/menu/"+created.ID, "", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Burger")

	rec = api.do(http.MethodPut, "/api/menu/"+created.ID, admin, map[string]interface{}{"name": "Burger", "price": 6}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodDelete, "/api/menu/"+created.ID, admin, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(http.MethodGet, "/api/menu/"+created.ID, "", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodGet, "/api/menu/not-an-id", "", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
