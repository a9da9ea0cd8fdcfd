package dto

import (
	"time"

	dom "github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/domain"
)

// CreateTaskRequest is the JSON body for POST /tasks. Text is allowed
// to be blank: blank input is a silent no-op, not a validation error.
type CreateTaskRequest struct {
	Text string `json:"text" binding:"max=500"`
}

// UpdateTaskRequest is the JSON body for PATCH /tasks/{id}.
type UpdateTaskRequest struct {
	Text string `json:"text" binding:"max=500"`
}

// MoveTaskRequest is the JSON body for POST /tasks/{id}/move.
type MoveTaskRequest struct {
	Date string `json:"date" binding:"required"`
}

// ReorderRequest is the JSON body for POST /tasks/reorder: the dragged
// task is dropped onto the target task's slot.
type ReorderRequest struct {
	DraggedID string `json:"dragged_id" binding:"required"`
	TargetID  string `json:"target_id" binding:"required"`
}

type TaskResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Date      string    `json:"date"`
	Completed bool      `json:"completed"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListTasksResponse struct {
	Date  string         `json:"date"`
	Items []TaskResponse `json:"items"`
}

// PastDayResponse is one day's group in the read-only past-tasks view.
type PastDayResponse struct {
	Date  string         `json:"date"`
	Items []TaskResponse `json:"items"`
}

type PastTasksResponse struct {
	Days []PastDayResponse `json:"days"`
}

// NotificationsResponse carries drained toast messages (persistence
// failures reported after the optimistic response went out).
type NotificationsResponse struct {
	Messages []string `json:"messages"`
}

func TaskToResponse(t dom.Task) TaskResponse {
	return TaskResponse{
		ID:        t.ID,
		Text:      t.Text,
		Date:      t.Date,
		Completed: t.Completed,
		Position:  t.Position,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func TasksToResponses(list []dom.Task) []TaskResponse {
	out := make([]TaskResponse, len(list))
	for i := range list {
		out[i] = TaskToResponse(list[i])
	}
	return out
}
