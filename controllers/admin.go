package controllers

import (
	"net/http"

	"go-foodorder/models"
	"go-foodorder/services"
)

// AdminController handles order management for admins. Routes mount it behind AdminMiddleware.
type AdminController struct {
	Orders *services.OrderService
}

func NewAdminController(orders *services.OrderService) *AdminController {
	return &AdminController{Orders: orders}
}

type statusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// ListOrders returns every order with its owner's name and email
func (ac *AdminController) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	orders, err := ac.Orders.ListAllOrders(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// UpdateOrderStatus allows admin to set any order status
func (ac *AdminController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "order")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	order, err := ac.Orders.SetStatus(ctx, id, req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// DeleteOrder removes an order whatever its status
func (ac *AdminController) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "order")
	if err != nil {
		writeError(w, r, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	if err := ac.Orders.DeleteOrder(ctx, id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Order deleted successfully"})
}
