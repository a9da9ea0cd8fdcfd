package store

import (
	"context"
	"errors"
	"fmt"

	dom "github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/domain"
)

// Scope identifies the owner of a task partition. The remote variant
// scopes every read and write by the authenticated user's ID; the local
// variant has no user concept and uses Anonymous.
type Scope int64

// Anonymous is the scope of the local ephemeral store.
const Anonymous Scope = 0

// ErrNotFound is returned (wrapped in a *PersistenceError) when an update
// targets a task that does not exist in the backend.
var ErrNotFound = errors.New("task not found")

// PersistenceError is any failure of the backing store: backend
// unavailability, a failed network round trip, or not-found on update.
// The message is surfaced to the user as a notification.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Patch is a partial field-level update. Nil fields are left unchanged.
// Setting Date re-partitions the task; callers are expected to also set
// Position so the task lands at the end of the destination day.
type Patch struct {
	Text      *string
	Date      *string
	Completed *bool
	Position  *int
}

// Store is the persistence capability shared by the local ephemeral
// variant (MemoryStore) and the remote authenticated variant (PGStore).
// The variant is chosen once, at controller construction time, by the
// presence or absence of an authenticated identity.
type Store interface {
	// ListByDate returns the partition's tasks ascending by position.
	ListByDate(ctx context.Context, scope Scope, date string) ([]dom.Task, error)
	// Create inserts t and returns it with server-assigned fields merged
	// back. An empty t.ID is assigned by the store.
	Create(ctx context.Context, scope Scope, t dom.Task) (dom.Task, error)
	// Update applies a partial patch to the task with the given id.
	Update(ctx context.Context, scope Scope, id string, p Patch) error
	// Delete removes the task. Deleting an absent id is not an error.
	Delete(ctx context.Context, scope Scope, id string) error
	// ListBefore returns every task dated strictly before the given day,
	// newest day first, positions ascending within a day. Feeds the
	// read-only past-tasks view.
	ListBefore(ctx context.Context, scope Scope, date string) ([]dom.Task, error)
}
