package repository

import (
	"context"

	"github.com/developia-II/tacticalgear-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListBrands(ctx context.Context) ([]models.Brand, error)
	ReplaceCategories(ctx context.Context, categories []models.Category) error
	ReplaceBrands(ctx context.Context, brands []models.Brand) error
}

type MongoCategoryRepository struct {
	DB *mongo.Database
}

func NewCategoryRepository(db *mongo.Database) CategoryRepository {
	return &MongoCategoryRepository{DB: db}
}

func (r *MongoCategoryRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	cursor, err := r.DB.Collection("categories").Find(ctx, bson.M{})
	if err != nil {
		return nil, storeError(err, "categories")
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, storeError(err, "categories")
	}
	return categories, nil
}

func (r *MongoCategoryRepository) ListBrands(ctx context.Context) ([]models.Brand, error) {
	cursor, err := r.DB.Collection("brands").Find(ctx, bson.M{})
	if err != nil {
		return nil, storeError(err, "brands")
	}
	defer cursor.Close(ctx)

	brands := []models.Brand{}
	if err := cursor.All(ctx, &brands); err != nil {
		return nil, storeError(err, "brands")
	}
	return brands, nil
}

func (r *MongoCategoryRepository) ReplaceCategories(ctx context.Context, categories []models.Category) error {
	docs := make([]interface{}, len(categories))
	for i := range categories {
		docs[i] = categories[i]
	}
	return replaceCollection(ctx, r.DB.Collection("categories"), docs, "categories")
}

func (r *MongoCategoryRepository) ReplaceBrands(ctx context.Context, brands []models.Brand) error {
	docs := make([]interface{}, len(brands))
	for i := range brands {
		docs[i] = brands[i]
	}
	return replaceCollection(ctx, r.DB.Collection("brands"), docs, "brands")
}

func replaceCollection(ctx context.Context, collection *mongo.Collection, docs []interface{}, what string) error {
	if _, err := collection.DeleteMany(ctx, bson.M{}); err != nil {
		return storeError(err, what)
	}
	if len(docs) == 0 {
		return nil
	}
	_, err := collection.InsertMany(ctx, docs)
	return storeError(err, what)
}
