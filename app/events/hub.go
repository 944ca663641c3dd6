package events

import (
	"log/slog"
	"sync"

	"newsdesk/app/database"
)

// Kind labels the event types the live-update channel understands.
type Kind string

const (
	KindUpdated    Kind = "update"
	KindDeleted    Kind = "delete"
	KindPinChanged Kind = "pinChange"
)

// Event is one change notification delivered to subscribers.
type Event struct {
	Kind    Kind              `json:"kind"`
	Article *database.Article `json:"article,omitempty"`
	IDs     []int64           `json:"ids,omitempty"`
}

var _ database.EventPublisher = (*Hub)(nil)

// Hub is an in-process publish/subscribe fan-out for article change
// events. Delivery is best effort: a subscriber that cannot keep up has
// events dropped rather than blocking the mutation that published them.
type Hub struct {
	mu          sync.Mutex
	subscribers map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[chan Event]struct{}),
	}
}

// Subscribe registers a new subscriber and returns its event channel.
func (h *Hub) Subscribe() chan Event {
	ch := make(chan Event, 16)
	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes the subscriber and closes its channel. Safe to call
// more than once for the same channel.
func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	if _, ok := h.subscribers[ch]; ok {
		delete(h.subscribers, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// SubscriberCount returns the number of attached subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

func (h *Hub) PublishUpdated(article database.Article) {
	h.publish(Event{Kind: KindUpdated, Article: &article})
}

func (h *Hub) PublishDeleted(ids []int64) {
	h.publish(Event{Kind: KindDeleted, IDs: ids})
}

func (h *Hub) PublishPinChanged(article database.Article) {
	h.publish(Event{Kind: KindPinChanged, Article: &article})
}

func (h *Hub) publish(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			slog.Warn("Dropping event for slow subscriber", "kind", string(event.Kind))
		}
	}
}

// NoopPublisher satisfies the publisher interface for wiring where no
// live-update channel is attached.
type NoopPublisher struct{}

func (NoopPublisher) PublishUpdated(database.Article)    {}
func (NoopPublisher) PublishDeleted([]int64)             {}
func (NoopPublisher) PublishPinChanged(database.Article) {}
