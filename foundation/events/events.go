// Package events fans ledger events out to any number of subscribers.
package events

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// messageBuffer is how many events a subscriber can fall behind before new
// events to it are dropped.
const messageBuffer = 100

// ErrUnknownSubscriber is returned when a subscription id isn't registered.
var ErrUnknownSubscriber = errors.New("unknown subscriber")

// Events maintains a mapping of subscriber id and channel so goroutines can
// receive the events raised while the ledger works.
type Events struct {
	subs    map[string]chan string
	dropped map[string]int
	mu      sync.RWMutex
}

// New constructs an empty events fan-out.
func New() *Events {
	return &Events{
		subs:    make(map[string]chan string),
		dropped: make(map[string]int),
	}
}

// Subscribe registers a new subscriber and returns its id and the channel
// it receives events on.
func (evt *Events) Subscribe() (string, <-chan string) {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	id := uuid.NewString()
	ch := make(chan string, messageBuffer)
	evt.subs[id] = ch

	return id, ch
}

// Unsubscribe closes and removes the subscriber's channel.
func (evt *Events) Unsubscribe(id string) error {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.subs[id]
	if !exists {
		return fmt.Errorf("id %q: %w", id, ErrUnknownSubscriber)
	}

	delete(evt.subs, id)
	delete(evt.dropped, id)
	close(ch)

	return nil
}

// Shutdown closes and removes every subscriber.
func (evt *Events) Shutdown() {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, ch := range evt.subs {
		delete(evt.subs, id)
		close(ch)
	}
	clear(evt.dropped)
}

// Send formats the event and hands it to every subscriber. Send will not
// block waiting for a receiver on any given channel. It has the shape of an
// event handler so it can be passed to the blockchain packages directly.
func (evt *Events) Send(v string, args ...any) {
	s := fmt.Sprintf(v, args...)

	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, ch := range evt.subs {
		select {
		case ch <- s:
		default:
			evt.dropped[id]++
		}
	}
}

// Dropped returns the number of events the subscriber missed because its
// channel was full.
func (evt *Events) Dropped(id string) int {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	return evt.dropped[id]
}
