package domain

import (
	"strings"
	"time"
)

// Task is the domain entity for a single to-do item.
// It does not depend on Gin, Postgres or Redis.
//
// Tasks are partitioned by Date; Position is a zero-based index that is
// unique only within one (owner, date) partition. After a successful
// reorder or move the positions of a partition form a dense 0..N-1
// sequence matching the visible order.
type Task struct {
	ID        string
	Text      string
	Date      string // calendar day, "2006-01-02"
	Completed bool
	Position  int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DateLayout is the wire and storage format for Task.Date.
const DateLayout = "2006-01-02"

// ValidDate reports whether s is a well-formed YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return false
	}
	// time.Parse accepts "2024-1-2"; require the canonical form back.
	return t.Format(DateLayout) == s
}

// NormalizeText trims surrounding whitespace. Operations treat an empty
// result as a silent no-op rather than an error.
func NormalizeText(s string) string {
	return strings.TrimSpace(s)
}

// NextPosition returns the append position for a partition:
// max(existing positions)+1, or 0 for an empty partition.
func NextPosition(tasks []Task) int {
	next := 0
	for _, t := range tasks {
		if t.Position >= next {
			next = t.Position + 1
		}
	}
	return next
}
