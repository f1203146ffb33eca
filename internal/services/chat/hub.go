package chat

import (
	"encoding/json"
	"sync"

	"github.com/developia-II/tacticalgear-backend/internal/models"
	"github.com/sirupsen/logrus"
)

const subscriberBuffer = 16

// Subscription is one live connection. C is closed when the subscription is
// removed from the hub.
type Subscription struct {
	Principal models.Principal
	C         <-chan []byte
	send      chan []byte
}

// Hub fans appended messages out to the thread owner and to all admins.
type Hub struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscription]struct{})}
}

func (h *Hub) Subscribe(p models.Principal) *Subscription {
	ch := make(chan []byte, subscriberBuffer)
	sub := &Subscription{Principal: p, C: ch, send: ch}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(sub)
}

// remove must be called with h.mu held.
func (h *Hub) remove(sub *Subscription) {
	if _, ok := h.subs[sub]; !ok {
		return
	}
	delete(h.subs, sub)
	close(sub.send)
}

// Publish never blocks; a subscriber whose buffer is full is dropped.
func (h *Hub) Publish(msg models.ChatMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		logrus.WithError(err).Error("Failed to encode chat message")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		if !sub.Principal.IsAdmin() && sub.Principal.ID != msg.UserID {
			continue
		}
		select {
		case sub.send <- data:
		default:
			logrus.WithField("principal", sub.Principal.ID).Warn("Dropping slow chat subscriber")
			h.remove(sub)
		}
	}
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
