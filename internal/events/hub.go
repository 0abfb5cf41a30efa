package events

import (
	"sync"

	"go.uber.org/zap"
)

const subscriberBuffer = 16

// Subscriber receives every published event on C until unsubscribed.
type Subscriber struct {
	C chan Event
}

// Hub is the in-process broadcast channel for reservation changes.
// Delivery is best effort: a subscriber that cannot keep up loses
// events and is expected to refetch state when it catches up.
type Hub struct {
	mu   sync.RWMutex
	subs map[*Subscriber]struct{}
	log  *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		subs: make(map[*Subscriber]struct{}),
		log:  log,
	}
}

func (h *Hub) Subscribe() *Subscriber {
	s := &Subscriber{C: make(chan Event, subscriberBuffer)}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
	return s
}

func (h *Hub) Unsubscribe(s *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[s]; ok {
		delete(h.subs, s)
		close(s.C)
	}
}

// Publish fans the event out to all current subscribers without
// blocking the caller.
func (h *Hub) Publish(e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs {
		select {
		case s.C <- e:
		default:
			h.log.Warn("event dropped for slow subscriber",
				zap.String("kind", string(e.Kind)),
				zap.String("date", e.Date))
		}
	}
}

// SubscriberCount returns the number of connected subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
