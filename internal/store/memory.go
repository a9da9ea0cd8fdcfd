package store

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	dom "github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/domain"

	"github.com/google/uuid"
)

const partitionKeyPrefix = "demo-tasks-"

// MemoryStore is the local ephemeral variant of Store. Each calendar day
// is a separate partition kept as one serialized JSON entry, rewritten
// wholesale on every mutation, mirroring a browser's local storage.
// It ignores scope: the date alone is the partition key.
//
// Reads never fail; a malformed partition is treated as empty.
type MemoryStore struct {
	mu         sync.Mutex
	partitions map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{partitions: make(map[string][]byte)}
}

func (s *MemoryStore) ListByDate(ctx context.Context, scope Scope, date string) ([]dom.Task, error) {
	_ = ctx
	_ = scope
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readPartition(date), nil
}

func (s *MemoryStore) Create(ctx context.Context, scope Scope, t dom.Task) (dom.Task, error) {
	_ = ctx
	_ = scope
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.readPartition(t.Date)
	list = append(list, t)
	s.writePartition(t.Date, list)
	return t, nil
}

func (s *MemoryStore) Update(ctx context.Context, scope Scope, id string, p Patch) error {
	_ = ctx
	_ = scope
	s.mu.Lock()
	defer s.mu.Unlock()

	date, i := s.locate(id)
	if i < 0 {
		return &PersistenceError{Op: "memory update", Err: ErrNotFound}
	}

	list := s.readPartition(date)
	t := list[i]
	if p.Text != nil {
		t.Text = *p.Text
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Position != nil {
		t.Position = *p.Position
	}
	if p.Date != nil && *p.Date != date {
		// Re-partition: drop from the old day, append to the new one.
		t.Date = *p.Date
		s.writePartition(date, append(list[:i], list[i+1:]...))
		target := s.readPartition(t.Date)
		if p.Position == nil {
			t.Position = dom.NextPosition(target)
		}
		s.writePartition(t.Date, append(target, t))
		return nil
	}
	list[i] = t
	s.writePartition(date, list)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, scope Scope, id string) error {
	_ = ctx
	_ = scope
	s.mu.Lock()
	defer s.mu.Unlock()

	date, i := s.locate(id)
	if i < 0 {
		return nil // idempotent
	}
	list := s.readPartition(date)
	s.writePartition(date, append(list[:i], list[i+1:]...))
	return nil
}

func (s *MemoryStore) ListBefore(ctx context.Context, scope Scope, date string) ([]dom.Task, error) {
	_ = ctx
	_ = scope
	s.mu.Lock()
	defer s.mu.Unlock()

	var days []string
	for key := range s.partitions {
		day := key[len(partitionKeyPrefix):]
		if day < date {
			days = append(days, day)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	var out []dom.Task
	for _, day := range days {
		out = append(out, s.readPartition(day)...)
	}
	return out, nil
}

// readPartition deserializes one day's entry, sorted ascending by
// position. Missing or malformed data yields an empty list.
func (s *MemoryStore) readPartition(date string) []dom.Task {
	raw, ok := s.partitions[partitionKeyPrefix+date]
	if !ok {
		return nil
	}
	var list []dom.Task
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Position < list[j].Position })
	return list
}

func (s *MemoryStore) writePartition(date string, list []dom.Task) {
	key := partitionKeyPrefix + date
	if len(list) == 0 {
		delete(s.partitions, key)
		return
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return
	}
	s.partitions[key] = raw
}

// locate finds the partition and index holding id. Returns -1 if absent.
func (s *MemoryStore) locate(id string) (string, int) {
	for key := range s.partitions {
		date := key[len(partitionKeyPrefix):]
		for i, t := range s.readPartition(date) {
			if t.ID == id {
				return date, i
			}
		}
	}
	return "", -1
}
