package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubPublish(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe(TopicAttendance)
	defer cleanup()
	other, otherCleanup := hub.Subscribe(TopicNotifications)
	defer otherCleanup()

	hub.Publish(Event{Topic: TopicAttendance, Data: "hello"})

	select {
	case got := <-ch:
		assert.Equal(t, "hello", got.Data)
	default:
		t.Fatal("subscriber did not receive the event")
	}

	select {
	case <-other:
		t.Fatal("event leaked across topics")
	default:
	}
}

func TestHubSlowSubscriberIsSkipped(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe(TopicAttendance)
	defer cleanup()

	// Fill the buffer; further publishes must not block.
	for i := 0; i < cap(ch)+5; i++ {
		hub.Publish(Event{Topic: TopicAttendance, Data: i})
	}
	assert.Len(t, ch, cap(ch))
}

func TestHubCleanup(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe(TopicAttendance)
	require.Equal(t, 1, hub.SubscriberCount(TopicAttendance))

	cleanup()
	assert.Zero(t, hub.SubscriberCount(TopicAttendance))

	// Publishing to a topic with no subscribers is a no-op.
	hub.Publish(Event{Topic: TopicAttendance, Data: "nobody home"})
}
