package repository

import (
	"context"

	"github.com/developia-II/tacticalgear-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type QuoteRepository interface {
	Create(ctx context.Context, quote models.Quote) error
	FindByID(ctx context.Context, id string) (models.Quote, error)
	ListByUser(ctx context.Context, userID string) ([]models.Quote, error)
	ListAll(ctx context.Context) ([]models.Quote, error)
	// Save replaces an existing quote; it never inserts.
	Save(ctx context.Context, quote models.Quote) error
}

type MongoQuoteRepository struct {
	DB *mongo.Database
}

func NewQuoteRepository(db *mongo.Database) QuoteRepository {
	return &MongoQuoteRepository{DB: db}
}

func (r *MongoQuoteRepository) Create(ctx context.Context, quote models.Quote) error {
	_, err := r.DB.Collection("quotes").InsertOne(ctx, quote)
	return storeError(err, "quote")
}

func (r *MongoQuoteRepository) FindByID(ctx context.Context, id string) (models.Quote, error) {
	var quote models.Quote
	err := r.DB.Collection("quotes").FindOne(ctx, bson.M{"id": id}).Decode(&quote)
	return quote, storeError(err, "quote")
}

func (r *MongoQuoteRepository) ListByUser(ctx context.Context, userID string) ([]models.Quote, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *MongoQuoteRepository) ListAll(ctx context.Context) ([]models.Quote, error) {
	return r.list(ctx, bson.M{})
}

func (r *MongoQuoteRepository) list(ctx context.Context, filter bson.M) ([]models.Quote, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.DB.Collection("quotes").Find(ctx, filter, opts)
	if err != nil {
		return nil, storeError(err, "quotes")
	}
	defer cursor.Close(ctx)

	quotes := []models.Quote{}
	if err := cursor.All(ctx, &quotes); err != nil {
		return nil, storeError(err, "quotes")
	}
	return quotes, nil
}

func (r *MongoQuoteRepository) Save(ctx context.Context, quote models.Quote) error {
	res, err := r.DB.Collection("quotes").ReplaceOne(ctx, bson.M{"id": quote.ID}, quote)
	if err != nil {
		return storeError(err, "quote")
	}
	if res.MatchedCount == 0 {
		return storeError(mongo.ErrNoDocuments, "quote")
	}
	return nil
}
