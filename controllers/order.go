// controllers/order.go
package controllers

import (
	"io"
	"net/http"

	"go-foodorder/middleware"
	"go-foodorder/services"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IdempotencyKeyHeader lets clients retry a checkout without creating a second order
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderController handles order-related requests
type OrderController struct {
	Orders *services.OrderService
}

// NewOrderController creates a new OrderController
func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

type checkoutRequest struct {
	Address   string `json:"address"`
	PaymentID string `json:"paymentId"`
}

// CreateOrder creates a new order from the user's cart. The body is optional.
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if r.Body != nil {
		body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
		if err != nil {
			writeError(w, r, services.NewError(services.KindValidation, "invalid input"))
			return
		}
		if len(body) > 0 {
			if err := decodeBody(body, &req); err != nil {
				writeError(w, r, err)
				return
			}
		}
	}

	in := services.PlaceOrderInput{
		CheckoutKey: r.Header.Get(IdempotencyKeyHeader),
		Address:     req.Address,
	}
	if req.PaymentID != "" {
		paymentID, err := primitive.ObjectIDFromHex(req.PaymentID)
		if err != nil {
			writeError(w, r, services.NewError(services.KindInvalidState, "payment not found"))
			return
		}
		in.PaymentID = &paymentID
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	order, created, err := oc.Orders.PlaceOrder(ctx, middleware.CurrentUser(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	writeJSON(w, status, order)
}

// GetOrders retrieves all orders for the authenticated user
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	orders, err := oc.Orders.ListOrders(ctx, middleware.CurrentUser(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// CancelOrder deletes the user's order while it is still pending
func (oc *OrderController) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "order")
	if err != nil {
		writeError(w, r, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	if err := oc.Orders.CancelOrder(ctx, middleware.CurrentUser(r), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Order cancelled successfully"})
}
