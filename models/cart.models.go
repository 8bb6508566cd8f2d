package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is one (user, menu item) row of a cart. The pair is unique.
type CartItem struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user"`
	MenuItemID primitive.ObjectID `bson:"menu_item_id" json:"menuItemId"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updatedAt"`
}

// CartLine is a cart row with its menu item resolved. MenuItem is nil when the
// item was removed from the menu after being added.
type CartLine struct {
	CartItem
	MenuItem *MenuItem `json:"menuItem"`
}
