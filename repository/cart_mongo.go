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

type CartMongoRepository struct {
	Collection *mongo.Collection
}

func (r *CartMongoRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.CartItem, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{"user_id": userID}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	items := []models.CartItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CartMongoRepository) AddQuantity(ctx context.Context, userID, menuItemID primitive.ObjectID, quantity int, now time.Time) (*models.CartItem, error) {
	filter := bson.M{"user_id": userID, "menu_item_id": menuItemID}
	update := bson.M{
		"$inc":         bson.M{"quantity": quantity},
		"$set":         bson.M{"updated_at": now},
		"$setOnInsert": bson.M{"created_at": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var item models.CartItem
	if err := r.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *CartMongoRepository) UpdateQuantity(ctx context.Context, userID, cartItemID primitive.ObjectID, quantity int, now time.Time) (*models.CartItem, error) {
	filter := bson.M{"_id": cartItemID, "user_id": userID}
	update := bson.M{"$set": bson.M{"quantity": quantity, "updated_at": now}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var item models.CartItem
	if err := r.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&item); err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (r *CartMongoRepository) Delete(ctx context.Context, userID, cartItemID primitive.ObjectID) error {
	result, err := r.Collection.DeleteOne(ctx, bson.M{"_id": cartItemID, "user_id": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CartMongoRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	result, err := r.Collection.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
