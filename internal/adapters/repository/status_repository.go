package repository

import (
	"context"

	"github.com/developia-II/tacticalgear-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type StatusRepository interface {
	Create(ctx context.Context, check models.StatusCheck) error
	List(ctx context.Context, limit int) ([]models.StatusCheck, error)
}

type MongoStatusRepository struct {
	DB *mongo.Database
}

func NewStatusRepository(db *mongo.Database) StatusRepository {
	return &MongoStatusRepository{DB: db}
}

func (r *MongoStatusRepository) Create(ctx context.Context, check models.StatusCheck) error {
	_, err := r.DB.Collection("status_checks").InsertOne(ctx, check)
	return storeError(err, "status check")
}

func (r *MongoStatusRepository) List(ctx context.Context, limit int) ([]models.StatusCheck, error) {
	opts := options.Find().SetLimit(int64(limit))
	cursor, err := r.DB.Collection("status_checks").Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storeError(err, "status checks")
	}
	defer cursor.Close(ctx)

	checks := []models.StatusCheck{}
	if err := cursor.All(ctx, &checks); err != nil {
		return nil, storeError(err, "status checks")
	}
	return checks, nil
}
