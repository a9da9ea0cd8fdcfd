package tasklist

import (
	"context"
	"sync"
	"testing"
	"time"

	dom "github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/domain"
	"github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/notify"
	"github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingStore wraps a MemoryStore, counting calls and injecting
// failures per operation.
type recordingStore struct {
	inner *store.MemoryStore

	mu      sync.Mutex
	lists   int
	creates int
	updates int
	deletes int

	failCreate error
	failUpdate error
	listDelay  map[string]time.Duration
}

func newRecordingStore() *recordingStore {
	return &recordingStore{inner: store.NewMemoryStore(), listDelay: map[string]time.Duration{}}
}

func (s *recordingStore) counts() (lists, creates, updates, deletes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lists, s.creates, s.updates, s.deletes
}

func (s *recordingStore) ListByDate(ctx context.Context, scope store.Scope, date string) ([]dom.Task, error) {
	s.mu.Lock()
	s.lists++
	delay := s.listDelay[date]
	s.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}
	return s.inner.ListByDate(ctx, scope, date)
}

func (s *recordingStore) Create(ctx context.Context, scope store.Scope, t dom.Task) (dom.Task, error) {
	s.mu.Lock()
	s.creates++
	fail := s.failCreate
	s.mu.Unlock()
	if fail != nil {
		return dom.Task{}, &store.PersistenceError{Op: "create task", Err: fail}
	}
	return s.inner.Create(ctx, scope, t)
}

func (s *recordingStore) Update(ctx context.Context, scope store.Scope, id string, p store.Patch) error {
	s.mu.Lock()
	s.updates++
	fail := s.failUpdate
	s.mu.Unlock()
	if fail != nil {
		return &store.PersistenceError{Op: "update task", Err: fail}
	}
	return s.inner.Update(ctx, scope, id, p)
}

func (s *recordingStore) Delete(ctx context.Context, scope store.Scope, id string) error {
	s.mu.Lock()
	s.deletes++
	s.mu.Unlock()
	return s.inner.Delete(ctx, scope, id)
}

func (s *recordingStore) ListBefore(ctx context.Context, scope store.Scope, date string) ([]dom.Task, error) {
	return s.inner.ListBefore(ctx, scope, date)
}

func newTestController(t *testing.T) (*Controller, *recordingStore, *notify.Queue) {
	t.Helper()
	rs := newRecordingStore()
	q := notify.NewQueue()
	c := New(rs, store.Anonymous, q)
	c.SetSelectedDate(context.Background(), "2024-01-01")
	return c, rs, q
}

func TestAddTask_LocalScenario(t *testing.T) {
	c, rs, q := newTestController(t)

	task, ok := c.AddTask("Buy milk")
	require.True(t, ok)
	c.Wait()

	list := c.Tasks()
	require.Len(t, list, 1)
	assert.Equal(t, "Buy milk", list[0].Text)
	assert.False(t, list[0].Completed)
	assert.Equal(t, 0, list[0].Position)
	assert.Equal(t, "2024-01-01", list[0].Date)
	assert.NotEmpty(t, task.ID)

	stored, err := rs.inner.ListByDate(context.Background(), store.Anonymous, "2024-01-01")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, list[0].ID, stored[0].ID)
	assert.Equal(t, "Buy milk", stored[0].Text)
	assert.Empty(t, q.Drain())
}

func TestAddTask_BlankTextIsSilentNoOp(t *testing.T) {
	c, rs, q := newTestController(t)

	_, ok := c.AddTask("")
	assert.False(t, ok)
	_, ok = c.AddTask("   ")
	assert.False(t, ok)
	c.Wait()

	assert.Empty(t, c.Tasks())
	_, creates, _, _ := rs.counts()
	assert.Equal(t, 0, creates)
	assert.Empty(t, q.Drain())
}

func TestAddTask_PositionsAppend(t *testing.T) {
	c, _, _ := newTestController(t)

	c.AddTask("A")
	c.AddTask("B")
	c.AddTask("C")
	c.Wait()

	list := c.Tasks()
	require.Len(t, list, 3)
	for i, task := range list {
		assert.Equal(t, i, task.Position)
	}
}

func TestAddTask_StoreFailureKeepsOptimisticEntryAndNotifiesOnce(t *testing.T) {
	c, rs, q := newTestController(t)
	rs.failCreate = assert.AnError

	_, ok := c.AddTask("Buy milk")
	require.True(t, ok)
	c.Wait()

	// The optimistic entry is deliberately not rolled back.
	require.Len(t, c.Tasks(), 1)
	msgs := q.Drain()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "failed to save task")
}

func TestToggleComplete_TwiceRestoresAndPersistsTwice(t *testing.T) {
	c, rs, _ := newTestController(t)
	task, _ := c.AddTask("A")
	c.Wait()

	got, ok := c.ToggleComplete(task.ID)
	require.True(t, ok)
	assert.True(t, got.Completed)

	got, ok = c.ToggleComplete(task.ID)
	require.True(t, ok)
	assert.False(t, got.Completed)
	c.Wait()

	_, _, updates, _ := rs.counts()
	assert.Equal(t, 2, updates)

	stored, _ := rs.inner.ListByDate(context.Background(), store.Anonymous, "2024-01-01")
	require.Len(t, stored, 1)
	assert.False(t, stored[0].Completed)
}

func TestUpdateTaskText(t *testing.T) {
	c, rs, _ := newTestController(t)
	task, _ := c.AddTask("A")
	c.Wait()

	assert.False(t, c.UpdateTaskText(task.ID, "  "))
	assert.False(t, c.UpdateTaskText("missing", "new text"))
	require.True(t, c.UpdateTaskText(task.ID, " new text "))
	c.Wait()

	assert.Equal(t, "new text", c.Tasks()[0].Text)
	stored, _ := rs.inner.ListByDate(context.Background(), store.Anonymous, "2024-01-01")
	assert.Equal(t, "new text", stored[0].Text)
}

func TestDeleteTask(t *testing.T) {
	c, rs, _ := newTestController(t)
	task, _ := c.AddTask("A")
	c.Wait()

	assert.False(t, c.DeleteTask("missing"))
	require.True(t, c.DeleteTask(task.ID))
	c.Wait()

	assert.Empty(t, c.Tasks())
	stored, _ := rs.inner.ListByDate(context.Background(), store.Anonymous, "2024-01-01")
	assert.Empty(t, stored)
	_, _, _, deletes := rs.counts()
	assert.Equal(t, 1, deletes)
}

func TestReorder_PersistsOneUpdatePerTask(t *testing.T) {
	c, rs, q := newTestController(t)
	a, _ := c.AddTask("A")
	c.AddTask("B")
	cc, _ := c.AddTask("C")
	c.Wait()

	require.True(t, c.Reorder(cc.ID, a.ID))
	c.Wait()

	list := c.Tasks()
	assert.Equal(t, []string{"C", "A", "B"}, []string{list[0].Text, list[1].Text, list[2].Text})
	for i, task := range list {
		assert.Equal(t, i, task.Position)
	}

	_, _, updates, _ := rs.counts()
	assert.Equal(t, 3, updates)

	stored, _ := rs.inner.ListByDate(context.Background(), store.Anonymous, "2024-01-01")
	require.Len(t, stored, 3)
	assert.Equal(t, "C", stored[0].Text)
	assert.Equal(t, "A", stored[1].Text)
	assert.Equal(t, "B", stored[2].Text)
	assert.Empty(t, q.Drain())
}

func TestReorder_SameTaskIsNoOp(t *testing.T) {
	c, rs, _ := newTestController(t)
	a, _ := c.AddTask("A")
	c.AddTask("B")
	c.Wait()
	_, _, updatesBefore, _ := rs.counts()

	assert.False(t, c.Reorder(a.ID, a.ID))
	c.Wait()

	_, _, updatesAfter, _ := rs.counts()
	assert.Equal(t, updatesBefore, updatesAfter)
}

func TestReorder_PartialFailureNotifiesPerTask(t *testing.T) {
	c, rs, q := newTestController(t)
	a, _ := c.AddTask("A")
	c.AddTask("B")
	cc, _ := c.AddTask("C")
	c.Wait()

	rs.mu.Lock()
	rs.failUpdate = assert.AnError
	rs.mu.Unlock()

	require.True(t, c.Reorder(cc.ID, a.ID))
	c.Wait()

	// Each failing position write reports independently.
	assert.Len(t, q.Drain(), 3)
	// The in-memory order keeps the optimistic result regardless.
	list := c.Tasks()
	assert.Equal(t, "C", list[0].Text)
}

func TestMoveToDate_AppendsAtDestinationEnd(t *testing.T) {
	c, rs, _ := newTestController(t)

	// Destination day already has two tasks.
	ctx := context.Background()
	_, err := rs.inner.Create(ctx, store.Anonymous, dom.Task{ID: "x", Text: "X", Date: "2024-01-02", Position: 0})
	require.NoError(t, err)
	_, err = rs.inner.Create(ctx, store.Anonymous, dom.Task{ID: "y", Text: "Y", Date: "2024-01-02", Position: 1})
	require.NoError(t, err)

	moved, _ := c.AddTask("Moved")
	c.AddTask("Stays")
	c.Wait()

	require.True(t, c.MoveToDate(moved.ID, "2024-01-02"))
	c.Wait()

	// Gone from the source view immediately and from the source partition.
	for _, task := range c.Tasks() {
		assert.NotEqual(t, moved.ID, task.ID)
	}
	src, _ := rs.inner.ListByDate(ctx, store.Anonymous, "2024-01-01")
	require.Len(t, src, 1)
	assert.Equal(t, "Stays", src[0].Text)

	dst, _ := rs.inner.ListByDate(ctx, store.Anonymous, "2024-01-02")
	require.Len(t, dst, 3)
	assert.Equal(t, moved.ID, dst[2].ID)
	assert.Equal(t, 2, dst[2].Position)
	assert.Equal(t, "2024-01-02", dst[2].Date)
}

func TestMoveToDate_NoOps(t *testing.T) {
	c, _, _ := newTestController(t)
	task, _ := c.AddTask("A")
	c.Wait()

	assert.False(t, c.MoveToDate(task.ID, "not-a-date"))
	assert.False(t, c.MoveToDate(task.ID, "2024-01-01")) // same day
	assert.False(t, c.MoveToDate("missing", "2024-01-02"))
	assert.Len(t, c.Tasks(), 1)
}

func TestSetSelectedDate_ReplacesListWholesale(t *testing.T) {
	c, rs, _ := newTestController(t)
	c.AddTask("Day one task")
	c.Wait()

	ctx := context.Background()
	_, err := rs.inner.Create(ctx, store.Anonymous, dom.Task{ID: "z", Text: "Z", Date: "2024-01-05", Position: 0})
	require.NoError(t, err)

	c.SetSelectedDate(ctx, "2024-01-05")
	list := c.Tasks()
	require.Len(t, list, 1)
	assert.Equal(t, "Z", list[0].Text)
	assert.Equal(t, "2024-01-05", c.SelectedDate())
}

func TestSetSelectedDate_StaleLoadIsDiscarded(t *testing.T) {
	rs := newRecordingStore()
	ctx := context.Background()
	_, err := rs.inner.Create(ctx, store.Anonymous, dom.Task{ID: "slow", Text: "Slow day", Date: "2024-01-01", Position: 0})
	require.NoError(t, err)
	rs.listDelay["2024-01-01"] = 50 * time.Millisecond

	c := New(rs, store.Anonymous, notify.NewQueue())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.SetSelectedDate(ctx, "2024-01-01")
	}()
	time.Sleep(10 * time.Millisecond)
	c.SetSelectedDate(ctx, "2024-01-02")
	wg.Wait()

	// The slow response for the first day must not overwrite the newer
	// selection.
	assert.Equal(t, "2024-01-02", c.SelectedDate())
	assert.Empty(t, c.Tasks())
}

func TestSetSelectedDate_LoadFailureNotifies(t *testing.T) {
	rs := newRecordingStore()
	q := notify.NewQueue()
	c := New(&failingListStore{recordingStore: rs}, store.Anonymous, q)

	c.SetSelectedDate(context.Background(), "2024-01-01")

	assert.Empty(t, c.Tasks())
	msgs := q.Drain()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "failed to load tasks")
}

type failingListStore struct {
	*recordingStore
}

func (s *failingListStore) ListByDate(ctx context.Context, scope store.Scope, date string) ([]dom.Task, error) {
	return nil, &store.PersistenceError{Op: "list tasks", Err: assert.AnError}
}
