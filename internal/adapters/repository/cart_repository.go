package repository

import (
	"context"

	"github.com/developia-II/tacticalgear-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CartRepository stores one cart document per owner. Writes replace the whole
// document, so concurrent mutations of the same cart are last-write-wins.
type CartRepository interface {
	Get(ctx context.Context, ownerID string) (models.Cart, error)
	Save(ctx context.Context, cart models.Cart) error
	Delete(ctx context.Context, ownerID string) error
}

type MongoCartRepository struct {
	DB *mongo.Database
}

func NewCartRepository(db *mongo.Database) CartRepository {
	return &MongoCartRepository{DB: db}
}

func (r *MongoCartRepository) Get(ctx context.Context, ownerID string) (models.Cart, error) {
	var cart models.Cart
	err := r.DB.Collection("carts").FindOne(ctx, bson.M{"owner_id": ownerID}).Decode(&cart)
	return cart, storeError(err, "cart")
}

func (r *MongoCartRepository) Save(ctx context.Context, cart models.Cart) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.DB.Collection("carts").ReplaceOne(ctx, bson.M{"owner_id": cart.OwnerID}, cart, opts)
	return storeError(err, "cart")
}

func (r *MongoCartRepository) Delete(ctx context.Context, ownerID string) error {
	_, err := r.DB.Collection("carts").DeleteOne(ctx, bson.M{"owner_id": ownerID})
	return storeError(err, "cart")
}
