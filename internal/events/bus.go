package events

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/plinkolabs/plinko/internal/model"
)

const (
	// Buffer size for each subscriber channel
	subscriberBufferSize = 64

	// Number of recent events retained for late subscribers
	recentBufferSize = 128
)

// Bus fans ledger events out to subscribers. Publishing never blocks:
// a subscriber that falls behind has events dropped, since the feed is
// advisory and the ledger remains the source of truth.
type Bus struct {
	logger *slog.Logger

	mu     sync.RWMutex
	subs   map[chan model.Event]struct{}
	recent []model.Event
}

// NewBus creates a new event bus
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		logger: logger,
		subs:   make(map[chan model.Event]struct{}),
	}
}

// Publish assigns the event an ID if it has none and delivers it to all
// subscribers.
func (b *Bus) Publish(evt model.Event) {
	if evt.ID == "" {
		evt.ID = uuid.NewString()
	}

	b.mu.Lock()
	b.recent = append(b.recent, evt)
	if len(b.recent) > recentBufferSize {
		b.recent = b.recent[len(b.recent)-recentBufferSize:]
	}

	sent := 0
	dropped := 0
	for ch := range b.subs {
		select {
		case ch <- evt:
			sent++
		default:
			dropped++
		}
	}
	b.mu.Unlock()

	if dropped > 0 {
		b.logger.Warn("event delivery partial - subscriber buffer full",
			slog.String("event_id", evt.ID),
			slog.Int("sent", sent),
			slog.Int("dropped", dropped))
	}
}

// Subscribe registers a new subscriber and returns the retained recent
// events, oldest first. The backlog snapshot and the registration happen
// under one lock, so every event lands either in the backlog or on the
// channel, never both. The returned cancel func must be called when the
// subscriber disconnects.
func (b *Bus) Subscribe() ([]model.Event, <-chan model.Event, func()) {
	ch := make(chan model.Event, subscriberBufferSize)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	count := len(b.subs)
	backlog := make([]model.Event, len(b.recent))
	copy(backlog, b.recent)
	b.mu.Unlock()

	b.logger.Info("event subscriber registered", slog.Int("total_subscribers", count))

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return backlog, ch, cancel
}

// Recent returns a copy of the retained recent events, oldest first.
func (b *Bus) Recent() []model.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	result := make([]model.Event, len(b.recent))
	copy(result, b.recent)
	return result
}
