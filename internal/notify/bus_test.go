package notify

import (
	"testing"
	"time"

	"tamirciBul/internal/models"
)

func TestBusDelivers(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ch, cancel := bus.Subscribe(4)
	defer cancel()

	bus.Publish(models.Notification{Kind: models.NotifyError, Title: "boom"})

	select {
	case n := <-ch:
		if n.Kind != models.NotifyError || n.Title != "boom" {
			t.Fatalf("unexpected event: %+v", n)
		}
		if n.ID == "" || n.CreatedAt.IsZero() {
			t.Fatalf("bus must stamp id and timestamp: %+v", n)
		}
	case <-time.After(time.Second):
		t.Fatalf("event not delivered")
	}
}

func TestBusPublishNeverBlocks(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ch, cancel := bus.Subscribe(1)
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			bus.Publish(models.Notification{Title: "n"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("publish blocked on a slow subscriber")
	}

	// newest event is still readable
	select {
	case <-ch:
	default:
		t.Fatalf("expected a buffered event")
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	ch, cancel := bus.Subscribe(1)
	cancel()

	if _, ok := <-ch; ok {
		t.Fatalf("unsubscribed channel must be closed")
	}
	// publishing after unsubscribe must not panic
	bus.Publish(models.Notification{Title: "late"})
}

func TestBusClose(t *testing.T) {
	bus := NewBus()
	ch, _ := bus.Subscribe(1)
	bus.Close()

	if _, ok := <-ch; ok {
		t.Fatalf("close must close subscriber channels")
	}
	bus.Publish(models.Notification{Title: "after close"})
	if sub, cancel := bus.Subscribe(1); sub != nil {
		cancel()
		if _, ok := <-sub; ok {
			t.Fatalf("subscribe after close must return a closed channel")
		}
	}
}
