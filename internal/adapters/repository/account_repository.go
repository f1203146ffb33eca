package repository

import (
	"context"
	"time"

	"github.com/developia-II/tacticalgear-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

type DealerRepository interface {
	Create(ctx context.Context, dealer models.Dealer) error
	FindByEmail(ctx context.Context, email string) (models.Dealer, error)
	FindByID(ctx context.Context, id string) (models.Dealer, error)
	// List filters on is_approved when approved is non-nil.
	List(ctx context.Context, approved *bool) ([]models.Dealer, error)
	Approve(ctx context.Context, id string, at time.Time) (models.Dealer, error)
}

type AdminRepository interface {
	Create(ctx context.Context, admin models.Admin) error
	FindByEmail(ctx context.Context, email string) (models.Admin, error)
	FindByID(ctx context.Context, id string) (models.Admin, error)
}

type MongoUserRepository struct {
	DB *mongo.Database
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &MongoUserRepository{DB: db}
}

func (r *MongoUserRepository) Create(ctx context.Context, user models.User) error {
	_, err := r.DB.Collection("users").InsertOne(ctx, user)
	return storeError(err, "user")
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.DB.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
	return user, storeError(err, "user")
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := r.DB.Collection("users").FindOne(ctx, bson.M{"id": id}).Decode(&user)
	return user, storeError(err, "user")
}

func (r *MongoUserRepository) List(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.DB.Collection("users").Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storeError(err, "users")
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, storeError(err, "users")
	}
	return users, nil
}

type MongoDealerRepository struct {
	DB *mongo.Database
}

func NewDealerRepository(db *mongo.Database) DealerRepository {
	return &MongoDealerRepository{DB: db}
}

func (r *MongoDealerRepository) Create(ctx context.Context, dealer models.Dealer) error {
	_, err := r.DB.Collection("dealers").InsertOne(ctx, dealer)
	return storeError(err, "dealer")
}

func (r *MongoDealerRepository) FindByEmail(ctx context.Context, email string) (models.Dealer, error) {
	var dealer models.Dealer
	err := r.DB.Collection("dealers").FindOne(ctx, bson.M{"email": email}).Decode(&dealer)
	return dealer, storeError(err, "dealer")
}

func (r *MongoDealerRepository) FindByID(ctx context.Context, id string) (models.Dealer, error) {
	var dealer models.Dealer
	err := r.DB.Collection("dealers").FindOne(ctx, bson.M{"id": id}).Decode(&dealer)
	return dealer, storeError(err, "dealer")
}

func (r *MongoDealerRepository) List(ctx context.Context, approved *bool) ([]models.Dealer, error) {
	filter := bson.M{}
	if approved != nil {
		filter["is_approved"] = *approved
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.DB.Collection("dealers").Find(ctx, filter, opts)
	if err != nil {
		return nil, storeError(err, "dealers")
	}
	defer cursor.Close(ctx)

	dealers := []models.Dealer{}
	if err := cursor.All(ctx, &dealers); err != nil {
		return nil, storeError(err, "dealers")
	}
	return dealers, nil
}

func (r *MongoDealerRepository) Approve(ctx context.Context, id string, at time.Time) (models.Dealer, error) {
	update := bson.M{"$set": bson.M{"is_approved": true, "approved_at": at}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var dealer models.Dealer
	err := r.DB.Collection("dealers").FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&dealer)
	return dealer, storeError(err, "dealer")
}

type MongoAdminRepository struct {
	DB *mongo.Database
}

func NewAdminRepository(db *mongo.Database) AdminRepository {
	return &MongoAdminRepository{DB: db}
}

func (r *MongoAdminRepository) Create(ctx context.Context, admin models.Admin) error {
	_, err := r.DB.Collection("admins").InsertOne(ctx, admin)
	return storeError(err, "admin")
}

func (r *MongoAdminRepository) FindByEmail(ctx context.Context, email string) (models.Admin, error) {
	var admin models.Admin
	err := r.DB.Collection("admins").FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	return admin, storeError(err, "admin")
}

func (r *MongoAdminRepository) FindByID(ctx context.Context, id string) (models.Admin, error) {
	var admin models.Admin
	err := r.DB.Collection("admins").FindOne(ctx, bson.M{"id": id}).Decode(&admin)
	return admin, storeError(err, "admin")
}
