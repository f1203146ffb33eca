package main

import (
	"context"
	"time"

	"github.com/developia-II/tacticalgear-backend/internal/config"
	"github.com/developia-II/tacticalgear-backend/internal/database"
	"github.com/developia-II/tacticalgear-backend/internal/logging"
	"github.com/sirupsen/logrus"
)

// Creates the database indexes without starting the API.
// Usage: go run scripts/create_indexes.go
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	logging.Setup("debug", cfg.IsProduction())

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, db, err := database.Connect(ctx, cfg.MongoURL, cfg.DBName)
	if err != nil {
		logrus.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	if err := database.EnsureIndexes(ctx, db); err != nil {
		logrus.Fatalf("Index creation finished with errors: %v", err)
	}
	logrus.Info("All indexes created successfully")
}
