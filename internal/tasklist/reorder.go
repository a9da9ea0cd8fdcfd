package tasklist

import (
	dom "github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/domain"
)

// Reorder moves the dragged task into the target task's former slot,
// shifting the target and everything between by one, then reassigns
// every position as its zero-based index. The returned slice is a new
// ordering of the same partition with dense positions 0..N-1.
//
// It is a no-op (ok=false) when draggedID equals targetID or either id
// is absent from the list.
func Reorder(tasks []dom.Task, draggedID, targetID string) ([]dom.Task, bool) {
	if draggedID == targetID {
		return nil, false
	}
	from := indexOf(tasks, draggedID)
	to := indexOf(tasks, targetID)
	if from < 0 || to < 0 {
		return nil, false
	}

	out := make([]dom.Task, 0, len(tasks))
	out = append(out, tasks...)
	dragged := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]dom.Task{dragged}, out[to:]...)...)

	for i := range out {
		out[i].Position = i
	}
	return out, true
}

func indexOf(tasks []dom.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
