package repository

import (
	"context"
	"time"

	"github.com/developia-II/tacticalgear-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderRepository interface {
	Create(ctx context.Context, order models.Order) error
	FindByID(ctx context.Context, id string) (models.Order, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (models.Order, error)
	// TransitionStatus updates the status only while the order is still in
	// from. It returns NotFound when no order matches both.
	TransitionStatus(ctx context.Context, id string, from, to models.OrderStatus) (models.Order, error)
	SetPaymentIntent(ctx context.Context, id, paymentIntentID string) error
}

type MongoOrderRepository struct {
	DB *mongo.Database
}

func NewOrderRepository(db *mongo.Database) OrderRepository {
	return &MongoOrderRepository{DB: db}
}

func (r *MongoOrderRepository) Create(ctx context.Context, order models.Order) error {
	_, err := r.DB.Collection("orders").InsertOne(ctx, order)
	return storeError(err, "order")
}

func (r *MongoOrderRepository) FindByID(ctx context.Context, id string) (models.Order, error) {
	var order models.Order
	err := r.DB.Collection("orders").FindOne(ctx, bson.M{"id": id}).Decode(&order)
	return order, storeError(err, "order")
}

func (r *MongoOrderRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Order, error) {
	return r.list(ctx, bson.M{"owner_id": ownerID})
}

func (r *MongoOrderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	return r.list(ctx, bson.M{})
}

func (r *MongoOrderRepository) list(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.DB.Collection("orders").Find(ctx, filter, opts)
	if err != nil {
		return nil, storeError(err, "orders")
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, storeError(err, "orders")
	}
	return orders, nil
}

func (r *MongoOrderRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (models.Order, error) {
	return r.setStatus(ctx, bson.M{"id": id}, status)
}

func (r *MongoOrderRepository) TransitionStatus(ctx context.Context, id string, from, to models.OrderStatus) (models.Order, error) {
	return r.setStatus(ctx, bson.M{"id": id, "status": from}, to)
}

func (r *MongoOrderRepository) setStatus(ctx context.Context, filter bson.M, status models.OrderStatus) (models.Order, error) {
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	err := r.DB.Collection("orders").FindOneAndUpdate(ctx, filter, update, opts).Decode(&order)
	return order, storeError(err, "order")
}

func (r *MongoOrderRepository) SetPaymentIntent(ctx context.Context, id, paymentIntentID string) error {
	update := bson.M{"$set": bson.M{"payment_intent_id": paymentIntentID, "updated_at": time.Now().UTC()}}
	res, err := r.DB.Collection("orders").UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return storeError(err, "order")
	}
	if res.MatchedCount == 0 {
		return storeError(mongo.ErrNoDocuments, "order")
	}
	return nil
}
