package store

import (
	"context"
	"testing"

	dom "github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CreateAndListByDate(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	list, err := s.ListByDate(ctx, Anonymous, "2024-01-01")
	require.NoError(t, err)
	assert.Empty(t, list)

	created, err := s.Create(ctx, Anonymous, dom.Task{Text: "Buy milk", Date: "2024-01-01", Position: 0})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID) // assigned by the store

	list, err = s.ListByDate(ctx, Anonymous, "2024-01-01")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created, list[0])

	// Other partitions are untouched.
	other, err := s.ListByDate(ctx, Anonymous, "2024-01-02")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestMemoryStore_ListByDateOrdersByPosition(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for i, pos := range []int{2, 0, 1} {
		_, err := s.Create(ctx, Anonymous, dom.Task{ID: string(rune('a' + i)), Text: "t", Date: "2024-01-01", Position: pos})
		require.NoError(t, err)
	}

	list, err := s.ListByDate(ctx, Anonymous, "2024-01-01")
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, task := range list {
		assert.Equal(t, i, task.Position)
	}
}

func TestMemoryStore_UpdateFields(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	created, _ := s.Create(ctx, Anonymous, dom.Task{Text: "old", Date: "2024-01-01"})

	text := "new"
	done := true
	require.NoError(t, s.Update(ctx, Anonymous, created.ID, Patch{Text: &text, Completed: &done}))

	list, _ := s.ListByDate(ctx, Anonymous, "2024-01-01")
	require.Len(t, list, 1)
	assert.Equal(t, "new", list[0].Text)
	assert.True(t, list[0].Completed)
}

func TestMemoryStore_UpdateUnknownIDFails(t *testing.T) {
	s := NewMemoryStore()
	text := "x"
	err := s.Update(context.Background(), Anonymous, "missing", Patch{Text: &text})
	require.Error(t, err)
	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_UpdateDateRepartitions(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	created, _ := s.Create(ctx, Anonymous, dom.Task{Text: "move me", Date: "2024-01-01", Position: 0})
	_, _ = s.Create(ctx, Anonymous, dom.Task{Text: "dest 0", Date: "2024-01-02", Position: 0})

	newDate := "2024-01-02"
	pos := 1
	require.NoError(t, s.Update(ctx, Anonymous, created.ID, Patch{Date: &newDate, Position: &pos}))

	src, _ := s.ListByDate(ctx, Anonymous, "2024-01-01")
	assert.Empty(t, src)

	dst, _ := s.ListByDate(ctx, Anonymous, "2024-01-02")
	require.Len(t, dst, 2)
	assert.Equal(t, created.ID, dst[1].ID)
	assert.Equal(t, "2024-01-02", dst[1].Date)
	assert.Equal(t, 1, dst[1].Position)

	// The task is never in both partitions.
	total := len(src) + len(dst)
	assert.Equal(t, 2, total)
}

func TestMemoryStore_DeleteIsIdempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	created, _ := s.Create(ctx, Anonymous, dom.Task{Text: "x", Date: "2024-01-01"})

	require.NoError(t, s.Delete(ctx, Anonymous, created.ID))
	require.NoError(t, s.Delete(ctx, Anonymous, created.ID))
	require.NoError(t, s.Delete(ctx, Anonymous, "never existed"))

	list, _ := s.ListByDate(ctx, Anonymous, "2024-01-01")
	assert.Empty(t, list)
}

func TestMemoryStore_MalformedPartitionReadsAsEmpty(t *testing.T) {
	s := NewMemoryStore()
	s.partitions[partitionKeyPrefix+"2024-01-01"] = []byte("{not json")

	list, err := s.ListByDate(context.Background(), Anonymous, "2024-01-01")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemoryStore_ListBeforeNewestDayFirst(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_, _ = s.Create(ctx, Anonymous, dom.Task{Text: "older", Date: "2024-01-01", Position: 0})
	_, _ = s.Create(ctx, Anonymous, dom.Task{Text: "newer", Date: "2024-01-05", Position: 0})
	_, _ = s.Create(ctx, Anonymous, dom.Task{Text: "today", Date: "2024-01-10", Position: 0})

	list, err := s.ListBefore(ctx, Anonymous, "2024-01-10")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "newer", list[0].Text)
	assert.Equal(t, "older", list[1].Text)
}
