package repository

import (
	"context"
	"time"

	"go-foodorder/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderMongoRepository struct {
	Collection *mongo.Collection
}

var newestFirst = bson.D{{Key: "created_at", Value: -1}}

func (r *OrderMongoRepository) Create(ctx context.Context, order *models.Order) error {
	result, err := r.Collection.InsertOne(ctx, order)
	if err != nil {
		return duplicate(err)
	}
	order.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *OrderMongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *OrderMongoRepository) FindByCheckoutKey(ctx context.Context, userID primitive.ObjectID, key string) (*models.Order, error) {
	return r.findOne(ctx, bson.M{"user_id": userID, "checkout_key": key})
}

func (r *OrderMongoRepository) FindByPaymentID(ctx context.Context, paymentID primitive.ObjectID) (*models.Order, error) {
	return r.findOne(ctx, bson.M{"payment_id": paymentID})
}

func (r *OrderMongoRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *OrderMongoRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *OrderMongoRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus, now time.Time) (*models.Order, error) {
	update := bson.M{"$set": bson.M{"status": status, "updated_at": now}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	if err := r.Collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&order); err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

func (r *OrderMongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *OrderMongoRepository) findOne(ctx context.Context, filter bson.M) (*models.Order, error) {
	var order models.Order
	if err := r.Collection.FindOne(ctx, filter).Decode(&order); err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

func (r *OrderMongoRepository) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	cursor, err := r.Collection.Find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, err
	}
	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
