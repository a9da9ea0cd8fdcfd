// Package identity carries the "identity changed" signal between the
// auth layer and task-list sessions, replacing ambient global session
// state with an explicit channel subscribed to once.
package identity

import "sync"

// Event marks that the identity bound to a session key changed (login
// or logout). Consumers holding per-session state keyed by SessionKey
// must discard it.
type Event struct {
	SessionKey string
	UserID     int64 // 0 after logout
}

// Broker fans Events out to subscribers. Publish never blocks: a
// subscriber that falls behind misses events rather than stalling the
// auth path.
type Broker struct {
	mu   sync.Mutex
	subs []chan Event
}

func NewBroker() *Broker { return &Broker{} }

// Subscribe registers a new subscriber channel.
func (b *Broker) Subscribe() <-chan Event {
	ch := make(chan Event, 16)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, ch)
	return ch
}

// Publish delivers e to every subscriber.
func (b *Broker) Publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
