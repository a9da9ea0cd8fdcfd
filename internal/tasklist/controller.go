package tasklist

import (
	"context"
	"sync"
	"time"

	dom "github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/domain"
	"github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/notify"
	"github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/store"

	"github.com/google/uuid"
)

const persistTimeout = 10 * time.Second

// Controller owns the in-memory ordered task list for one selected date
// within one session. Every mutation is applied to the in-memory list
// first (the list is authoritative for rendering) and then dispatched to
// the backing store asynchronously. Store failures are reported to the
// notification sink; the optimistic change is deliberately not rolled
// back, matching the product's observed behavior.
//
// Writes are dispatched in the order the user actions occurred but may
// complete out of order; nothing cancels an in-flight write.
type Controller struct {
	store  store.Store
	scope  store.Scope
	notify notify.Sink

	mu    sync.Mutex
	date  string
	tasks []dom.Task
	gen   uint64 // load generation, guards against stale ListByDate results

	wg sync.WaitGroup // in-flight persistence calls
}

// New returns a controller over the given store variant. The variant is
// chosen by the caller once, from the presence or absence of an
// authenticated identity; the controller never branches on it again.
func New(s store.Store, scope store.Scope, sink notify.Sink) *Controller {
	if sink == nil {
		sink = notify.Func(func(string) {})
	}
	return &Controller{store: s, scope: scope, notify: sink}
}

// SetSelectedDate switches the controller to a new day and loads its
// partition. The in-memory list is replaced wholesale once the load
// resolves; a load that resolves after a newer selection is discarded.
// Invalid dates are ignored.
func (c *Controller) SetSelectedDate(ctx context.Context, date string) {
	if !dom.ValidDate(date) {
		return
	}
	c.mu.Lock()
	if c.date == date && c.tasks != nil {
		c.mu.Unlock()
		return
	}
	c.date = date
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	list, err := c.store.ListByDate(ctx, c.scope, date)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return // a newer selection won
	}
	if err != nil {
		c.tasks = []dom.Task{}
		c.notify.Notify("failed to load tasks: " + err.Error())
		return
	}
	// Copy: cached loads may hand the same slice to concurrent callers.
	owned := make([]dom.Task, len(list))
	copy(owned, list)
	c.tasks = owned
}

// SelectedDate returns the currently selected day.
func (c *Controller) SelectedDate() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.date
}

// Tasks returns a copy of the in-memory list in visible order.
func (c *Controller) Tasks() []dom.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]dom.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// AddTask appends a new task at max(position)+1 for the selected date.
// Empty trimmed text is a silent no-op.
func (c *Controller) AddTask(text string) (dom.Task, bool) {
	text = dom.NormalizeText(text)
	if text == "" {
		return dom.Task{}, false
	}

	c.mu.Lock()
	if c.date == "" {
		c.mu.Unlock()
		return dom.Task{}, false
	}
	now := time.Now().UTC()
	t := dom.Task{
		ID:        uuid.NewString(),
		Text:      text,
		Date:      c.date,
		Completed: false,
		Position:  dom.NextPosition(c.tasks),
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.tasks = append(c.tasks, t)
	c.mu.Unlock()

	c.dispatch("save task", func(ctx context.Context) error {
		created, err := c.store.Create(ctx, c.scope, t)
		if err != nil {
			return err
		}
		c.mergeServerFields(created)
		return nil
	})
	return t, true
}

// UpdateTaskText replaces the task's text. Empty trimmed text and
// unknown ids are silent no-ops.
func (c *Controller) UpdateTaskText(id, text string) bool {
	text = dom.NormalizeText(text)
	if text == "" {
		return false
	}

	c.mu.Lock()
	i := indexOf(c.tasks, id)
	if i < 0 {
		c.mu.Unlock()
		return false
	}
	c.tasks[i].Text = text
	c.tasks[i].UpdatedAt = time.Now().UTC()
	c.mu.Unlock()

	c.dispatch("save task", func(ctx context.Context) error {
		return c.store.Update(ctx, c.scope, id, store.Patch{Text: &text})
	})
	return true
}

// DeleteTask removes the task from the list and the store.
func (c *Controller) DeleteTask(id string) bool {
	c.mu.Lock()
	i := indexOf(c.tasks, id)
	if i < 0 {
		c.mu.Unlock()
		return false
	}
	c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
	c.mu.Unlock()

	c.dispatch("delete task", func(ctx context.Context) error {
		return c.store.Delete(ctx, c.scope, id)
	})
	return true
}

// ToggleComplete flips the task's completed flag.
func (c *Controller) ToggleComplete(id string) (dom.Task, bool) {
	c.mu.Lock()
	i := indexOf(c.tasks, id)
	if i < 0 {
		c.mu.Unlock()
		return dom.Task{}, false
	}
	c.tasks[i].Completed = !c.tasks[i].Completed
	c.tasks[i].UpdatedAt = time.Now().UTC()
	t := c.tasks[i]
	c.mu.Unlock()

	completed := t.Completed
	c.dispatch("save task", func(ctx context.Context) error {
		return c.store.Update(ctx, c.scope, id, store.Patch{Completed: &completed})
	})
	return t, true
}

// MoveToDate re-partitions the task onto another day. It disappears from
// the current list immediately and is appended at the end of the
// destination day's list, irrespective of its position here.
func (c *Controller) MoveToDate(id, newDate string) bool {
	if !dom.ValidDate(newDate) {
		return false
	}

	c.mu.Lock()
	if newDate == c.date {
		c.mu.Unlock()
		return false
	}
	i := indexOf(c.tasks, id)
	if i < 0 {
		c.mu.Unlock()
		return false
	}
	c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
	c.mu.Unlock()

	c.dispatch("move task", func(ctx context.Context) error {
		// The destination day's controller may not be active; append
		// position is computed against the store directly.
		target, err := c.store.ListByDate(ctx, c.scope, newDate)
		if err != nil {
			return err
		}
		pos := dom.NextPosition(target)
		return c.store.Update(ctx, c.scope, id, store.Patch{Date: &newDate, Position: &pos})
	})
	return true
}

// Reorder drops the dragged task onto the target task's slot and
// persists the dense position reassignment with one update per task in
// the partition. Each write may fail independently; failures are
// notified independently and leave the store's positions inconsistent
// until the next full load.
func (c *Controller) Reorder(draggedID, targetID string) bool {
	c.mu.Lock()
	next, ok := Reorder(c.tasks, draggedID, targetID)
	if !ok {
		c.mu.Unlock()
		return false
	}
	c.tasks = next
	snapshot := make([]dom.Task, len(next))
	copy(snapshot, next)
	c.mu.Unlock()

	for _, t := range snapshot {
		id := t.ID
		pos := t.Position
		c.dispatch("save task order", func(ctx context.Context) error {
			return c.store.Update(ctx, c.scope, id, store.Patch{Position: &pos})
		})
	}
	return true
}

// Wait blocks until every dispatched persistence call has completed.
// Used on shutdown and by tests.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// dispatch runs a persistence call in the background and converts its
// failure into a notification. The caller has already applied the
// optimistic in-memory change and returned to the user.
func (c *Controller) dispatch(op string, fn func(ctx context.Context) error) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			c.notify.Notify("failed to " + op + ": " + err.Error())
		}
	}()
}

// mergeServerFields folds store-assigned fields of a created task back
// into the in-memory entry, if it is still visible.
func (c *Controller) mergeServerFields(created dom.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := indexOf(c.tasks, created.ID); i >= 0 && c.tasks[i].Date == created.Date {
		c.tasks[i] = created
	}
}
