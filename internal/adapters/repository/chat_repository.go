package repository

import (
	"context"

	"github.com/developia-II/tacticalgear-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChatRepository is append-only; there is no edit or delete.
type ChatRepository interface {
	Append(ctx context.Context, msg models.ChatMessage) error
	Thread(ctx context.Context, userID string) ([]models.ChatMessage, error)
	// Conversations returns one summary per thread, newest activity first.
	// Profile fields are left empty.
	Conversations(ctx context.Context) ([]models.ConversationSummary, error)
}

type MongoChatRepository struct {
	DB *mongo.Database
}

func NewChatRepository(db *mongo.Database) ChatRepository {
	return &MongoChatRepository{DB: db}
}

func (r *MongoChatRepository) Append(ctx context.Context, msg models.ChatMessage) error {
	_, err := r.DB.Collection("chat_messages").InsertOne(ctx, msg)
	return storeError(err, "chat message")
}

func (r *MongoChatRepository) Thread(ctx context.Context, userID string) ([]models.ChatMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.DB.Collection("chat_messages").Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, storeError(err, "chat messages")
	}
	defer cursor.Close(ctx)

	messages := []models.ChatMessage{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, storeError(err, "chat messages")
	}
	return messages, nil
}

func (r *MongoChatRepository) Conversations(ctx context.Context) ([]models.ConversationSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: 1}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$user_id"},
			{Key: "last_message", Value: bson.D{{Key: "$last", Value: "$message"}}},
			{Key: "last_message_time", Value: bson.D{{Key: "$last", Value: "$created_at"}}},
			{Key: "message_count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "last_message_time", Value: -1}}}},
	}

	cursor, err := r.DB.Collection("chat_messages").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, storeError(err, "conversations")
	}
	defer cursor.Close(ctx)

	conversations := []models.ConversationSummary{}
	if err := cursor.All(ctx, &conversations); err != nil {
		return nil, storeError(err, "conversations")
	}
	return conversations, nil
}
