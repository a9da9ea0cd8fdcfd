package handlers

import (
	"net/http"
	"time"

	"github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/dates"
	dom "github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/domain"
	"github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/dto"
	"github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/tasklist"

	"github.com/gin-gonic/gin"
)

// TaskHandler exposes one task-manager mode (demo or authenticated)
// over HTTP. Mutations respond with the optimistic in-memory state;
// persistence failures arrive later through GET /notifications.
type TaskHandler struct {
	src SessionSource
}

func NewTaskHandler(src SessionSource) *TaskHandler {
	return &TaskHandler{src: src}
}

// session resolves the request's controller and points it at the
// requested day (query param "date", defaulting to today on first use).
func (h *TaskHandler) session(c *gin.Context) (*tasklist.Session, bool) {
	sess := h.src.Session(c)
	date := c.Query("date")
	if date == "" {
		if sess.Controller.SelectedDate() != "" {
			return sess, true
		}
		date = dates.Today()
	}
	if !dom.ValidDate(date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return nil, false
	}
	sess.Controller.SetSelectedDate(c.Request.Context(), date)
	return sess, true
}

// List godoc
// @Summary      List tasks for a day
// @Tags         tasks
// @Produce      json
// @Param        date  query     string  false  "Day (YYYY-MM-DD), defaults to today"
// @Success      200   {object}  dto.ListTasksResponse
// @Failure      400   {object}  map[string]string
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ListTasksResponse{
		Date:  sess.Controller.SelectedDate(),
		Items: dto.TasksToResponses(sess.Controller.Tasks()),
	})
}

// Create godoc
// @Summary      Add a task to the selected day
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateTaskRequest  true  "Task body"
// @Success      201   {object}  dto.TaskResponse
// @Success      204   "blank text, nothing created"
// @Failure      400   {object}  map[string]string
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess, ok := h.session(c)
	if !ok {
		return
	}
	t, ok := sess.Controller.AddTask(req.Text)
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusCreated, dto.TaskToResponse(t))
}

// Update godoc
// @Summary      Edit a task's text
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id    path      string  true  "Task ID"
// @Param        body  body      dto.UpdateTaskRequest  true  "New text"
// @Success      200   {object}  map[string]bool
// @Success      204   "blank text or unknown id, nothing changed"
// @Failure      400   {object}  map[string]string
// @Router       /tasks/{id} [patch]
func (h *TaskHandler) Update(c *gin.Context) {
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess, ok := h.session(c)
	if !ok {
		return
	}
	if !sess.Controller.UpdateTaskText(c.Param("id"), req.Text) {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Delete godoc
// @Summary      Delete a task
// @Tags         tasks
// @Param        id  path  string  true  "Task ID"
// @Success      204
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	sess.Controller.DeleteTask(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// Toggle godoc
// @Summary      Toggle a task's completed flag
// @Tags         tasks
// @Produce      json
// @Param        id  path      string  true  "Task ID"
// @Success      200  {object}  dto.TaskResponse
// @Success      204  "unknown id, nothing changed"
// @Router       /tasks/{id}/toggle [post]
func (h *TaskHandler) Toggle(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	t, ok := sess.Controller.ToggleComplete(c.Param("id"))
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, dto.TaskToResponse(t))
}

// Move godoc
// @Summary      Move a task to another day
// @Tags         tasks
// @Accept       json
// @Param        id    path  string  true  "Task ID"
// @Param        body  body  dto.MoveTaskRequest  true  "Destination day"
// @Success      204
// @Failure      400   {object}  map[string]string
// @Router       /tasks/{id}/move [post]
func (h *TaskHandler) Move(c *gin.Context) {
	var req dto.MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !dom.ValidDate(req.Date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}
	sess, ok := h.session(c)
	if !ok {
		return
	}
	sess.Controller.MoveToDate(c.Param("id"), req.Date)
	c.Status(http.StatusNoContent)
}

// Reorder godoc
// @Summary      Drop one task onto another's slot
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ReorderRequest  true  "Dragged and target ids"
// @Success      200   {object}  dto.ListTasksResponse
// @Failure      400   {object}  map[string]string
// @Router       /tasks/reorder [post]
func (h *TaskHandler) Reorder(c *gin.Context) {
	var req dto.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess, ok := h.session(c)
	if !ok {
		return
	}
	sess.Controller.Reorder(req.DraggedID, req.TargetID)
	c.JSON(http.StatusOK, dto.ListTasksResponse{
		Date:  sess.Controller.SelectedDate(),
		Items: dto.TasksToResponses(sess.Controller.Tasks()),
	})
}

// Past godoc
// @Summary      Tasks from previous days, grouped by day, newest first
// @Tags         tasks
// @Produce      json
// @Success      200  {object}  dto.PastTasksResponse
// @Failure      500  {object}  map[string]string
// @Router       /tasks/past [get]
func (h *TaskHandler) Past(c *gin.Context) {
	st, scope := h.src.Store(c)
	list, err := st.ListBefore(c.Request.Context(), scope, dates.Today())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.PastTasksResponse{Days: groupByDay(list)})
}

// Notifications godoc
// @Summary      Drain pending toast messages for this session
// @Tags         tasks
// @Produce      json
// @Success      200  {object}  dto.NotificationsResponse
// @Router       /notifications [get]
func (h *TaskHandler) Notifications(c *gin.Context) {
	sess := h.src.Session(c)
	msgs := sess.Notices.Drain()
	if msgs == nil {
		msgs = []string{}
	}
	c.JSON(http.StatusOK, dto.NotificationsResponse{Messages: msgs})
}

// DateOptions godoc
// @Summary      Selectable days: the next seven starting today
// @Tags         tasks
// @Produce      json
// @Success      200  {array}  dates.Option
// @Router       /dates [get]
func (h *TaskHandler) DateOptions(c *gin.Context) {
	c.JSON(http.StatusOK, dates.Upcoming(7, time.Now().UTC()))
}

// groupByDay preserves the input's day order (ListBefore returns newest
// day first) and the position order inside each day.
func groupByDay(list []dom.Task) []dto.PastDayResponse {
	var days []dto.PastDayResponse
	index := make(map[string]int)
	for _, t := range list {
		i, ok := index[t.Date]
		if !ok {
			i = len(days)
			index[t.Date] = i
			days = append(days, dto.PastDayResponse{Date: t.Date})
		}
		days[i].Items = append(days[i].Items, dto.TaskToResponse(t))
	}
	if days == nil {
		days = []dto.PastDayResponse{}
	}
	return days
}
