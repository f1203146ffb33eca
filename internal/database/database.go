package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	clientOptions := options.Client().ApplyURI(uri).SetServerSelectionTimeout(30 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("create mongo client: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	logrus.WithField("db", dbName).Info("Connected to MongoDB")
	return client, client.Database(dbName), nil
}

type index struct {
	collection string
	model      mongo.IndexModel
}

func indexes() []index {
	return []index{
		{"products", mongo.IndexModel{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("idx_product_id").SetUnique(true),
		}},
		{"products", mongo.IndexModel{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("idx_category"),
		}},
		{"products", mongo.IndexModel{
			Keys:    bson.D{{Key: "brand", Value: 1}},
			Options: options.Index().SetName("idx_brand"),
		}},
		{"products", mongo.IndexModel{
			Keys:    bson.D{{Key: "price", Value: 1}},
			Options: options.Index().SetName("idx_price"),
		}},
		{"products", mongo.IndexModel{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_created_at"),
		}},
		{"users", mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_user_email").SetUnique(true),
		}},
		{"dealers", mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_dealer_email").SetUnique(true),
		}},
		{"dealers", mongo.IndexModel{
			Keys:    bson.D{{Key: "is_approved", Value: 1}},
			Options: options.Index().SetName("idx_dealer_approved"),
		}},
		{"admins", mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_admin_email").SetUnique(true),
		}},
		{"carts", mongo.IndexModel{
			Keys:    bson.D{{Key: "owner_id", Value: 1}},
			Options: options.Index().SetName("idx_cart_owner").SetUnique(true),
		}},
		{"orders", mongo.IndexModel{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_order_owner_date"),
		}},
		{"quotes", mongo.IndexModel{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_quote_user_date"),
		}},
		{"chat_messages", mongo.IndexModel{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_chat_thread"),
		}},
	}
}

// EnsureIndexes creates every index the repositories rely on. Failures are
// logged per index and the first one is returned after all were attempted.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	var firstErr error
	for _, idx := range indexes() {
		name, err := db.Collection(idx.collection).Indexes().CreateOne(ctx, idx.model)
		entry := logrus.WithFields(logrus.Fields{"collection": idx.collection, "index": name})
		if err != nil {
			entry.WithError(err).Error("Failed to create index")
			if firstErr == nil {
				firstErr = fmt.Errorf("create index on %s: %w", idx.collection, err)
			}
			continue
		}
		entry.Debug("Index ready")
	}
	return firstErr
}
