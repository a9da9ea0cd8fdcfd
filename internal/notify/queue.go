package notify

import "sync"

// Sink receives user-visible, fire-and-forget notifications (the toast
// sink of the UI). Persistence failures are reported here and nowhere
// else; they never propagate as errors.
type Sink interface {
	Notify(msg string)
}

// Func adapts a plain function to a Sink.
type Func func(msg string)

func (f Func) Notify(msg string) { f(msg) }

// Queue is a Sink that buffers messages until drained. Each controller
// session owns one; the HTTP layer drains it into toast responses.
type Queue struct {
	mu   sync.Mutex
	msgs []string
}

func NewQueue() *Queue { return &Queue{} }

func (q *Queue) Notify(msg string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.msgs = append(q.msgs, msg)
}

// Drain returns and clears all pending messages.
func (q *Queue) Drain() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.msgs
	q.msgs = nil
	return out
}
