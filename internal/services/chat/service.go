package chat

import (
	"context"
	"strings"
	"time"

	"github.com/developia-II/tacticalgear-backend/internal/adapters/repository"
	"github.com/developia-II/tacticalgear-backend/internal/core/domain"
	"github.com/developia-II/tacticalgear-backend/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type CustomerLookup interface {
	Lookup(ctx context.Context, id string) (models.Customer, bool, error)
}

// Publisher receives every message after it is stored.
type Publisher interface {
	Publish(msg models.ChatMessage)
}

type Service interface {
	// Send posts to the caller's own thread, or to input.UserID for admins.
	Send(ctx context.Context, caller models.Principal, input models.SendChatInput) (models.ChatMessage, error)
	Reply(ctx context.Context, admin models.Principal, userID, message string) (models.ChatMessage, error)
	Thread(ctx context.Context, caller models.Principal, userID string) ([]models.ChatMessage, error)
	Conversations(ctx context.Context) ([]models.ConversationSummary, error)
}

type service struct {
	messages  repository.ChatRepository
	admins    repository.AdminRepository
	customers CustomerLookup
	publisher Publisher
}

func NewService(messages repository.ChatRepository, admins repository.AdminRepository, customers CustomerLookup, publisher Publisher) Service {
	return &service{messages: messages, admins: admins, customers: customers, publisher: publisher}
}

func (s *service) Send(ctx context.Context, caller models.Principal, input models.SendChatInput) (models.ChatMessage, error) {
	if caller.IsAdmin() {
		if input.UserID == "" {
			return models.ChatMessage{}, domain.BadRequest("user_id is required for admin replies")
		}
		return s.Reply(ctx, caller, input.UserID, input.Message)
	}
	if input.UserID != "" && input.UserID != caller.ID {
		return models.ChatMessage{}, domain.Forbidden("cannot post to another user's thread")
	}

	name := "Customer"
	customer, ok, err := s.customers.Lookup(ctx, caller.ID)
	if err != nil {
		return models.ChatMessage{}, err
	}
	if ok && customer.Name != "" {
		name = customer.Name
	}
	return s.append(ctx, caller.ID, models.SenderUser, name, input.Message)
}

func (s *service) Reply(ctx context.Context, admin models.Principal, userID, message string) (models.ChatMessage, error) {
	if !admin.IsAdmin() {
		return models.ChatMessage{}, domain.Forbidden("admin access required")
	}

	name := "Support"
	if a, err := s.admins.FindByID(ctx, admin.ID); err == nil && a.Name != "" {
		name = a.Name
	}
	return s.append(ctx, userID, models.SenderAdmin, name, message)
}

func (s *service) append(ctx context.Context, userID string, sender models.SenderType, name, message string) (models.ChatMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return models.ChatMessage{}, domain.BadRequest("message cannot be empty")
	}

	msg := models.ChatMessage{
		ID:         uuid.NewString(),
		UserID:     userID,
		SenderType: sender,
		SenderName: name,
		Message:    message,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.messages.Append(ctx, msg); err != nil {
		return models.ChatMessage{}, err
	}
	if s.publisher != nil {
		s.publisher.Publish(msg)
	}
	return msg, nil
}

func (s *service) Thread(ctx context.Context, caller models.Principal, userID string) ([]models.ChatMessage, error) {
	if !caller.IsAdmin() && caller.ID != userID {
		return nil, domain.Forbidden("cannot read another user's thread")
	}
	return s.messages.Thread(ctx, userID)
}

func (s *service) Conversations(ctx context.Context) ([]models.ConversationSummary, error) {
	conversations, err := s.messages.Conversations(ctx)
	if err != nil {
		return nil, err
	}

	for i := range conversations {
		customer, ok, err := s.customers.Lookup(ctx, conversations[i].UserID)
		if err != nil {
			logrus.WithError(err).WithField("user_id", conversations[i].UserID).Warn("Conversation profile lookup failed")
			continue
		}
		if ok {
			conversations[i].UserName = customer.Name
			conversations[i].UserEmail = customer.Email
		}
	}
	return conversations, nil
}
