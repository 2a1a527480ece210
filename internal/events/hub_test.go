package events

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError + 1,
	})))
}

func TestPublish_DeliversToMatchingTopic(t *testing.T) {
	hub := newTestHub()
	ch := hub.Subscribe("article_status")
	defer hub.Unsubscribe(ch)

	hub.Publish("article_status", "payload")

	select {
	case event := <-ch:
		assert.Equal(t, "article_status", event.Topic)
		assert.Equal(t, "payload", event.Payload)
	default:
		t.Fatal("expected a buffered event")
	}
}

func TestPublish_FiltersByTopic(t *testing.T) {
	hub := newTestHub()
	statusOnly := hub.Subscribe("article_status")
	both := hub.Subscribe("article_status", "article_published")
	defer hub.Unsubscribe(statusOnly)
	defer hub.Unsubscribe(both)

	hub.Publish("article_published", 1)

	assert.Empty(t, statusOnly)
	require.Len(t, both, 1)
	assert.Equal(t, "article_published", (<-both).Topic)
}

func TestPublish_NoSubscribersIsFine(t *testing.T) {
	hub := newTestHub()
	hub.Publish("article_status", 1)
}

func TestPublish_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	hub := newTestHub()
	ch := hub.Subscribe("article_status")
	defer hub.Unsubscribe(ch)

	// Overfill the buffer; the extra publishes must return immediately.
	for i := 0; i < subscriberBuffer+5; i++ {
		hub.Publish("article_status", i)
	}

	assert.Len(t, ch, subscriberBuffer)
}

func TestUnsubscribe_ClosesChannel(t *testing.T) {
	hub := newTestHub()
	ch := hub.Subscribe("article_status")

	hub.Unsubscribe(ch)

	_, open := <-ch
	assert.False(t, open)

	// Double unsubscribe must not panic on a closed channel.
	hub.Unsubscribe(ch)

	hub.Publish("article_status", 1)
}
