package tasklist

import (
	"sync"

	"github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/identity"
	"github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/notify"
)

// Session pairs a controller with its notification queue. One Session
// exists per browser session key (demo cookie or auth session id) — the
// server-side counterpart of one task-manager instance.
type Session struct {
	Controller *Controller
	Notices    *notify.Queue
}

// Registry keeps live Sessions keyed by session key. It subscribes once
// to identity-change events and drops the affected session so the next
// request rebuilds it against the right store variant.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry returns a Registry consuming identity events from events.
// A nil channel disables eviction (tests).
func NewRegistry(events <-chan identity.Event) *Registry {
	r := &Registry{sessions: make(map[string]*Session)}
	if events != nil {
		go func() {
			for e := range events {
				r.Evict(e.SessionKey)
			}
		}()
	}
	return r
}

// Get returns the Session for key, building it on first use.
func (r *Registry) Get(key string, build func(*notify.Queue) *Controller) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[key]; ok {
		return s
	}
	q := notify.NewQueue()
	s := &Session{Controller: build(q), Notices: q}
	r.sessions[key] = s
	return s
}

// Evict drops the session for key after flushing its in-flight writes.
func (r *Registry) Evict(key string) {
	r.mu.Lock()
	s, ok := r.sessions[key]
	delete(r.sessions, key)
	r.mu.Unlock()
	if ok {
		s.Controller.Wait()
	}
}

// Close flushes every session's in-flight writes. Used on shutdown.
func (r *Registry) Close() {
	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()
	for _, s := range sessions {
		s.Controller.Wait()
	}
}
