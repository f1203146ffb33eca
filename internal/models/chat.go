package models

import "time"

type SenderType string

const (
	SenderUser  SenderType = "user"
	SenderAdmin SenderType = "admin"
)

type ChatMessage struct {
	ID         string     `json:"id" bson:"id"`
	UserID     string     `json:"user_id" bson:"user_id"`
	SenderType SenderType `json:"sender_type" bson:"sender_type"`
	SenderName string     `json:"sender_name" bson:"sender_name"`
	Message    string     `json:"message" bson:"message"`
	CreatedAt  time.Time  `json:"created_at" bson:"created_at"`
}

type SendChatInput struct {
	UserID  string `json:"user_id"`
	Message string `json:"message" binding:"required,max=4000"`
}

// ConversationSummary is one row of the admin inbox.
type ConversationSummary struct {
	UserID          string    `json:"user_id" bson:"_id"`
	LastMessage     string    `json:"last_message" bson:"last_message"`
	LastMessageTime time.Time `json:"last_message_time" bson:"last_message_time"`
	MessageCount    int       `json:"message_count" bson:"message_count"`
	UserName        string    `json:"user_name" bson:"user_name"`
	UserEmail       string    `json:"user_email" bson:"user_email"`
}
