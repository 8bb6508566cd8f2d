package repository

import (
	"context"

	"go-foodorder/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type PaymentMongoRepository struct {
	Collection *mongo.Collection
}

func (r *PaymentMongoRepository) Create(ctx context.Context, payment *models.Payment) error {
	result, err := r.Collection.InsertOne(ctx, payment)
	if err != nil {
		return err
	}
	payment.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *PaymentMongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Payment, error) {
	var payment models.Payment
	if err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&payment); err != nil {
		return nil, notFound(err)
	}
	return &payment, nil
}
