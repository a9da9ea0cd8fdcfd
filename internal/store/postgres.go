package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	dom "github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore is the remote authenticated variant of Store. Every operation
// is a single round trip against the tasks table, scoped by the owning
// user's ID. Failures surface as *PersistenceError; the controller does
// not retry.
type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

const taskColumns = `id, text, date::text, completed, "position", created_at, updated_at`

func (s *PGStore) ListByDate(ctx context.Context, scope Scope, date string) ([]dom.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks WHERE user_id = $1 AND date = $2::date
		ORDER BY "position" ASC`
	rows, err := s.db.Query(ctx, query, int64(scope), date)
	if err != nil {
		return nil, &PersistenceError{Op: "list tasks", Err: err}
	}
	defer rows.Close()
	var list []dom.Task
	for rows.Next() {
		var t dom.Task
		if err := rows.Scan(&t.ID, &t.Text, &t.Date, &t.Completed, &t.Position,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, &PersistenceError{Op: "list tasks", Err: err}
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "list tasks", Err: err}
	}
	return list, nil
}

func (s *PGStore) Create(ctx context.Context, scope Scope, t dom.Task) (dom.Task, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	query := `
		INSERT INTO tasks (id, user_id, text, date, completed, "position")
		VALUES ($1, $2, $3, $4::date, $5, $6)
		RETURNING ` + taskColumns
	var out dom.Task
	err := s.db.QueryRow(ctx, query, t.ID, int64(scope), t.Text, t.Date, t.Completed, t.Position).Scan(
		&out.ID, &out.Text, &out.Date, &out.Completed, &out.Position,
		&out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return dom.Task{}, &PersistenceError{Op: "create task", Err: err}
	}
	return out, nil
}

func (s *PGStore) Update(ctx context.Context, scope Scope, id string, p Patch) error {
	sets := []string{"updated_at = NOW()"}
	args := []any{id, int64(scope)}
	add := func(expr string, v any) {
		args = append(args, v)
		sets = append(sets, expr+" = $"+strconv.Itoa(len(args)))
	}
	if p.Text != nil {
		add("text", *p.Text)
	}
	if p.Date != nil {
		add("date", *p.Date)
	}
	if p.Completed != nil {
		add("completed", *p.Completed)
	}
	if p.Position != nil {
		add(`"position"`, *p.Position)
	}

	query := fmt.Sprintf(`UPDATE tasks SET %s WHERE id = $1 AND user_id = $2`, strings.Join(sets, ", "))
	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return &PersistenceError{Op: "update task", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return &PersistenceError{Op: "update task", Err: ErrNotFound}
	}
	return nil
}

func (s *PGStore) Delete(ctx context.Context, scope Scope, id string) error {
	// Deleting an already-absent id is not an error.
	_, err := s.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, int64(scope))
	if err != nil {
		return &PersistenceError{Op: "delete task", Err: err}
	}
	return nil
}

func (s *PGStore) ListBefore(ctx context.Context, scope Scope, date string) ([]dom.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks WHERE user_id = $1 AND date < $2::date
		ORDER BY date DESC, "position" ASC`
	rows, err := s.db.Query(ctx, query, int64(scope), date)
	if err != nil {
		return nil, &PersistenceError{Op: "list past tasks", Err: err}
	}
	defer rows.Close()
	var list []dom.Task
	for rows.Next() {
		var t dom.Task
		if err := rows.Scan(&t.ID, &t.Text, &t.Date, &t.Completed, &t.Position,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, &PersistenceError{Op: "list past tasks", Err: err}
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "list past tasks", Err: err}
	}
	return list, nil
}
