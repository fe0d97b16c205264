package events

import (
	"testing"
	"time"
)

func TestSubscribeReceivesPublished(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe()
	defer cancel()

	hub.Publish(KindInfo, "listener ready")

	select {
	case e := <-ch:
		if e.Kind != KindInfo {
			t.Errorf("Kind = %v, want %v", e.Kind, KindInfo)
		}
		if e.Message != "listener ready" {
			t.Errorf("Message = %q, want %q", e.Message, "listener ready")
		}
		if e.Time.IsZero() {
			t.Error("Time should be stamped at publish")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestPublishPreservesOrderPerSubscriber(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe()
	defer cancel()

	messages := []string{"one", "two", "three"}
	for _, m := range messages {
		hub.Publish(KindConnection, m)
	}

	for i, want := range messages {
		select {
		case e := <-ch:
			if e.Message != want {
				t.Errorf("event %d: Message = %q, want %q", i, e.Message, want)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for event %d", i)
		}
	}
}

func TestCancelClosesChannel(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe()

	cancel()
	// A second cancel must be a no-op.
	cancel()

	if _, ok := <-ch; ok {
		t.Error("channel should be closed after cancel")
	}

	// Publishing after cancel must not panic.
	hub.Publish(KindInfo, "after cancel")
}

func TestFullSubscriberDoesNotBlockPublish(t *testing.T) {
	hub := NewHub()
	_, cancel := hub.Subscribe() // never drained
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			hub.Publish(KindInfo, "flood")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full subscriber")
	}
}
