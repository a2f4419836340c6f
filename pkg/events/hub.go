package events

import (
	"encoding/json"
	"sync"
	"time"
)

// Subscriber channels buffer this many events before the hub starts
// dropping.
const subscriberBuffer = 16

// Hub fans record-change notifications out to the daemon's SSE
// subscribers. Sends never block: a subscriber that stops draining its
// channel misses notifications instead of stalling a record mutation.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a listener. Callers must Unsubscribe when done;
// the channel stays registered (and buffered events undelivered) until
// they do.
func (h *Hub) Subscribe() chan Event {
	ch := make(chan Event, subscriberBuffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
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

// PublishRecordsChanged tells every subscriber the record list changed.
// A nil hub swallows the notification, so stores without listeners can
// skip the wiring.
func (h *Hub) PublishRecordsChanged(count int) {
	if h == nil {
		return
	}

	payload, err := json.Marshal(RecordsChangedEvent{
		Count: count,
		Ts:    time.Now().Unix(),
	})
	if err != nil {
		return
	}

	ev := Event{Name: RecordsChanged, Data: payload}
	h.mu.RLock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	h.mu.RUnlock()
}
