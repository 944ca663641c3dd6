package events

import (
	"testing"

	"newsdesk/app/database"
)

func TestSubscribeAndPublish(t *testing.T) {
	hub := NewHub()
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	if hub.SubscriberCount() != 1 {
		t.Fatalf("Expected 1 subscriber, got: %d", hub.SubscriberCount())
	}

	hub.PublishUpdated(database.Article{ID: 7, Title: "Updated Article"})

	event := <-ch
	if event.Kind != KindUpdated {
		t.Errorf("Expected kind %s, got: %s", KindUpdated, event.Kind)
	}
	if event.Article == nil || event.Article.ID != 7 {
		t.Errorf("Expected article with ID 7, got: %+v", event.Article)
	}
}

func TestPublishDeletedCarriesIDs(t *testing.T) {
	hub := NewHub()
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	hub.PublishDeleted([]int64{3, 5, 8})

	event := <-ch
	if event.Kind != KindDeleted {
		t.Errorf("Expected kind %s, got: %s", KindDeleted, event.Kind)
	}
	if len(event.IDs) != 3 || event.IDs[0] != 3 {
		t.Errorf("Expected IDs [3 5 8], got: %v", event.IDs)
	}
	if event.Article != nil {
		t.Errorf("Expected no article payload, got: %+v", event.Article)
	}
}

func TestPublishPinChanged(t *testing.T) {
	hub := NewHub()
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	hub.PublishPinChanged(database.Article{ID: 2, Pinned: true})

	event := <-ch
	if event.Kind != KindPinChanged {
		t.Errorf("Expected kind %s, got: %s", KindPinChanged, event.Kind)
	}
	if event.Article == nil || !event.Article.Pinned {
		t.Errorf("Expected pinned article payload, got: %+v", event.Article)
	}
}

func TestPublishFansOutToAllSubscribers(t *testing.T) {
	hub := NewHub()
	first := hub.Subscribe()
	second := hub.Subscribe()
	defer hub.Unsubscribe(first)
	defer hub.Unsubscribe(second)

	hub.PublishUpdated(database.Article{ID: 1})

	for i, ch := range []chan Event{first, second} {
		select {
		case event := <-ch:
			if event.Kind != KindUpdated {
				t.Errorf("Subscriber %d: expected kind %s, got: %s", i, KindUpdated, event.Kind)
			}
		default:
			t.Errorf("Subscriber %d: expected a buffered event", i)
		}
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub()
	ch := hub.Subscribe()

	hub.Unsubscribe(ch)

	if _, ok := <-ch; ok {
		t.Error("Expected channel to be closed after unsubscribe")
	}
	if hub.SubscriberCount() != 0 {
		t.Errorf("Expected 0 subscribers, got: %d", hub.SubscriberCount())
	}

	// Second unsubscribe of the same channel must not panic.
	hub.Unsubscribe(ch)
}

func TestPublishDoesNotBlockOnSlowSubscriber(t *testing.T) {
	hub := NewHub()
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	// Overfill the subscriber buffer without reading; publish must drop
	// instead of blocking, so the loop completes.
	for i := 0; i < 32; i++ {
		hub.PublishUpdated(database.Article{ID: int64(i)})
	}

	if len(ch) != cap(ch) {
		t.Errorf("Expected buffer to be full at %d, got: %d", cap(ch), len(ch))
	}
}
