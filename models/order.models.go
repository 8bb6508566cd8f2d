package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the delivery progress of an order
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "Pending"
	OrderStatusPreparing      OrderStatus = "Preparing"
	OrderStatusOutForDelivery OrderStatus = "Out for Delivery"
	OrderStatusDelivered      OrderStatus = "Delivered"
)

// OrderStatuses lists every status in delivery order
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPreparing,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
}

// Valid reports whether s is a known status
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// OrderItem is a frozen copy of a cart row taken at checkout
type OrderItem struct {
	MenuItemID primitive.ObjectID `bson:"menu_item_id" json:"menuItem"`
	Name       string             `bson:"name" json:"name"`
	Price      Money              `bson:"price" json:"price"`
	Quantity   int                `bson:"quantity" json:"quantity"`
}

// Subtotal is price times quantity
func (i OrderItem) Subtotal() Money {
	return i.Price.Times(i.Quantity)
}

// Order represents a user's order. Only Status changes after creation.
type Order struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	UserID      primitive.ObjectID  `bson:"user_id" json:"user"`
	Items       []OrderItem         `bson:"items" json:"items"`
	Total       Money               `bson:"total" json:"total"`
	Status      OrderStatus         `bson:"status" json:"status"`
	Address     string              `bson:"address,omitempty" json:"address,omitempty"`
	PaymentID   *primitive.ObjectID `bson:"payment_id,omitempty" json:"paymentId,omitempty"`
	CheckoutKey string              `bson:"checkout_key" json:"-"`
	CreatedAt   time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updated_at" json:"updatedAt"`
}

// AdminOrder is an order with its owner resolved, as listed in the admin console
type AdminOrder struct {
	Order
	User *UserSummary `json:"user"`
}
