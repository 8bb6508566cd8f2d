package controllers

import (
	"net/http"

	"go-foodorder/middleware"
	"go-foodorder/services"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartController handles cart-related requests
type CartController struct {
	Carts *services.CartService
}

// NewCartController creates a new CartController
func NewCartController(carts *services.CartService) *CartController {
	return &CartController{Carts: carts}
}

type addToCartRequest struct {
	MenuItemID string `json:"menuItemId"`
	Quantity   *int   `json:"quantity"`
}

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart retrieves the user's cart
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	lines, err := cc.Carts.ListCart(ctx, middleware.CurrentUser(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lines)
}

// AddToCart adds a menu item to the user's cart. Quantity defaults to 1.
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	menuItemID, err := primitive.ObjectIDFromHex(req.MenuItemID)
	if err != nil {
		writeError(w, r, services.NewError(services.KindNotFound, "menu item not found"))
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	item, err := cc.Carts.AddItem(ctx, middleware.CurrentUser(r), menuItemID, quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// UpdateCartItem sets the quantity of a cart row
func (cc *CartController) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "cart item")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req updateCartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	item, err := cc.Carts.UpdateItem(ctx, middleware.CurrentUser(r), id, req.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// RemoveFromCart removes a row from the user's cart
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "cart item")
	if err != nil {
		writeError(w, r, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	if err := cc.Carts.RemoveItem(ctx, middleware.CurrentUser(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Cart item removed"})
}
