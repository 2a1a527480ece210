// Package events is the in-process publish/subscribe channel that carries
// article lifecycle events to real-time listeners.
package events

import (
	"log/slog"
	"sync"
)

const subscriberBuffer = 16

type Event struct {
	Topic   string `json:"topic"`
	Payload any    `json:"payload"`
}

// Hub fans events out to subscribers. Publish is fire-and-forget: it never
// blocks and never fails the caller; a subscriber that cannot keep up loses
// events rather than stalling a transition.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan Event]map[string]struct{}
	log  *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		subs: make(map[chan Event]map[string]struct{}),
		log:  log,
	}
}

// Subscribe registers interest in the given topics and returns the channel
// events arrive on. The caller must Unsubscribe when done.
func (h *Hub) Subscribe(topics ...string) chan Event {
	ch := make(chan Event, subscriberBuffer)

	set := make(map[string]struct{}, len(topics))
	for _, topic := range topics {
		set[topic] = struct{}{}
	}

	h.mu.Lock()
	h.subs[ch] = set
	h.mu.Unlock()

	return ch
}

func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

func (h *Hub) Publish(topic string, payload any) {
	event := Event{Topic: topic, Payload: payload}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch, topics := range h.subs {
		if _, ok := topics[topic]; !ok {
			continue
		}
		select {
		case ch <- event:
		default:
			h.log.Warn("events: dropped event for slow subscriber", "topic", topic)
		}
	}
}
