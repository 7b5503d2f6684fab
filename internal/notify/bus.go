package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"tamirciBul/internal/models"
)

// Bus fans typed notifications out to subscribers. Publishing never blocks:
// a subscriber that falls behind loses the oldest events, not the producer.
type Bus struct {
	mu     sync.Mutex
	subs   map[int]chan models.Notification
	nextID int
	closed bool
}

// NewBus constructs an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan models.Notification)}
}

// Subscribe registers a buffered subscriber channel. The returned func
// unsubscribes and closes the channel.
func (b *Bus) Subscribe(buffer int) (<-chan models.Notification, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan models.Notification, buffer)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
}

// Publish delivers n to every subscriber, stamping ID and CreatedAt when
// the producer left them empty.
func (b *Bus) Publish(n models.Notification) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- n:
		default:
			// drop the oldest so the newest always fits
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- n:
			default:
			}
		}
	}
}

// Close shuts the bus down and closes all subscriber channels.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
