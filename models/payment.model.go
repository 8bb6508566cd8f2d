package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentStatus is the gateway outcome of a payment
type PaymentStatus string

const (
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment represents a charge confirmed by the payment gateway before checkout
type Payment struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID          primitive.ObjectID `bson:"user_id" json:"user"`
	PaymentMethodID string             `bson:"payment_method_id" json:"paymentMethodId"`
	Amount          Money              `bson:"amount" json:"amount"`
	Status          PaymentStatus      `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
}
