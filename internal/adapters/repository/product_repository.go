package repository

import (
	"context"

	"github.com/developia-II/tacticalgear-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductRepository interface {
	Find(ctx context.Context, q models.ProductQuery) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (models.Product, error)
	Create(ctx context.Context, product models.Product) error
	Delete(ctx context.Context, id string) error
	SetImage(ctx context.Context, id, url string) (models.Product, error)
	// CountBy groups products on field ("category" or "brand") and returns
	// the number of products per distinct value.
	CountBy(ctx context.Context, field string) (map[string]int64, error)
	// PriceRange reports false when the catalog is empty.
	PriceRange(ctx context.Context) (models.PriceRange, bool, error)
	ReplaceAll(ctx context.Context, products []models.Product) error
}

type MongoProductRepository struct {
	DB *mongo.Database
}

func NewProductRepository(db *mongo.Database) ProductRepository {
	return &MongoProductRepository{DB: db}
}

func (r *MongoProductRepository) Find(ctx context.Context, q models.ProductQuery) ([]models.Product, error) {
	collection := r.DB.Collection("products")
	opts := options.Find().
		SetSkip(int64(q.Skip)).
		SetLimit(int64(q.Limit))
	if sort := q.Sort(); sort != nil {
		opts.SetSort(sort)
	}

	cursor, err := collection.Find(ctx, q.Filter(), opts)
	if err != nil {
		return nil, storeError(err, "products")
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, storeError(err, "products")
	}
	return products, nil
}

func (r *MongoProductRepository) FindByID(ctx context.Context, id string) (models.Product, error) {
	collection := r.DB.Collection("products")
	var product models.Product
	if err := collection.FindOne(ctx, bson.M{"id": id}).Decode(&product); err != nil {
		return models.Product{}, storeError(err, "product")
	}
	return product, nil
}

func (r *MongoProductRepository) Create(ctx context.Context, product models.Product) error {
	_, err := r.DB.Collection("products").InsertOne(ctx, product)
	return storeError(err, "product")
}

func (r *MongoProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.Collection("products").DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return storeError(err, "product")
	}
	if res.DeletedCount == 0 {
		return storeError(mongo.ErrNoDocuments, "product")
	}
	return nil
}

func (r *MongoProductRepository) SetImage(ctx context.Context, id, url string) (models.Product, error) {
	collection := r.DB.Collection("products")
	update := bson.M{
		"$set":  bson.M{"image_url": url},
		"$push": bson.M{"gallery_images": url},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product models.Product
	if err := collection.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&product); err != nil {
		return models.Product{}, storeError(err, "product")
	}
	return product, nil
}

func (r *MongoProductRepository) CountBy(ctx context.Context, field string) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.DB.Collection("products").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, storeError(err, "product counts")
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Value string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, storeError(err, "product counts")
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Value] = row.Count
	}
	return counts, nil
}

func (r *MongoProductRepository) PriceRange(ctx context.Context) (models.PriceRange, bool, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "min_price", Value: bson.D{{Key: "$min", Value: "$price"}}},
			{Key: "max_price", Value: bson.D{{Key: "$max", Value: "$price"}}},
		}}},
	}

	cursor, err := r.DB.Collection("products").Aggregate(ctx, pipeline)
	if err != nil {
		return models.PriceRange{}, false, storeError(err, "price range")
	}
	defer cursor.Close(ctx)

	var rows []models.PriceRange
	if err := cursor.All(ctx, &rows); err != nil {
		return models.PriceRange{}, false, storeError(err, "price range")
	}
	if len(rows) == 0 {
		return models.PriceRange{}, false, nil
	}
	return rows[0], true, nil
}

func (r *MongoProductRepository) ReplaceAll(ctx context.Context, products []models.Product) error {
	docs := make([]interface{}, len(products))
	for i := range products {
		docs[i] = products[i]
	}
	return replaceCollection(ctx, r.DB.Collection("products"), docs, "products")
}
