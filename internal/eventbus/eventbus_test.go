package eventbus

import (
	"testing"
	"time"
)

func TestPublishSubscribe(t *testing.T) {
	bus := New[int]()
	defer bus.Close()

	ch, cancel := bus.Subscribe()
	defer cancel()

	bus.Publish(42)
	select {
	case got := <-ch:
		if got != 42 {
			t.Fatalf("got %d, want 42", got)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestSlowSubscriberDropsEvents(t *testing.T) {
	bus := New[int]()
	defer bus.Close()

	_, cancel := bus.Subscribe()
	defer cancel()

	for i := 0; i < defaultBuffer+5; i++ {
		bus.Publish(i)
	}
	if bus.Dropped() != 5 {
		t.Fatalf("dropped %d, want 5", bus.Dropped())
	}
}

func TestCancelClosesChannel(t *testing.T) {
	bus := New[string]()
	defer bus.Close()

	ch, cancel := bus.Subscribe()
	cancel()
	if _, ok := <-ch; ok {
		t.Fatal("channel should be closed after cancel")
	}
	// Cancelling twice is safe.
	cancel()

	// Publishing after cancel must not panic or deliver.
	bus.Publish("late")
}

func TestCloseTerminatesSubscribers(t *testing.T) {
	bus := New[int]()
	ch, cancel := bus.Subscribe()
	defer cancel()

	bus.Close()
	if _, ok := <-ch; ok {
		t.Fatal("channel should be closed after bus close")
	}

	// Subscribe after close returns an already-closed channel.
	ch2, cancel2 := bus.Subscribe()
	defer cancel2()
	if _, ok := <-ch2; ok {
		t.Fatal("post-close subscription should be closed")
	}

	// Close is idempotent.
	bus.Close()
}
