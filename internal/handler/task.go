package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/msomdec/taskflow/internal/domain"
	"github.com/msomdec/taskflow/internal/service"
)

// TaskHandler handles task-related HTTP requests. Every route is protected
// by RequireAuth, so an authenticated user is always present in context.
type TaskHandler struct {
	tasks *service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// HandleCreate creates a new task for the authenticated user.
// POST /api/tasks
// Request:  {"title":"...","description":"...","status":"...","priority":"...","dueDate":"..."}
// Response: 201 {"task": {...}}
func (h *TaskHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		Status      string     `json:"status"`
		Priority    string     `json:"priority"`
		DueDate     *time.Time `json:"dueDate"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	task, err := h.tasks.Create(r.Context(), user.ID, service.TaskCreate{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		writeTaskError(w, err, "create task")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"task": toTaskDTO(task),
	})
}

// HandleList lists the authenticated user's tasks, newest first.
// GET /api/tasks?status=&priority=&search=
// A non-empty search parameter switches to substring search and ignores the
// filters. Response: 200 {"tasks": [...]}
func (h *TaskHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	q := r.URL.Query()

	var tasks []domain.Task
	var err error
	if search := q.Get("search"); search != "" {
		tasks, err = h.tasks.Search(r.Context(), user.ID, search)
	} else {
		tasks, err = h.tasks.List(r.Context(), user.ID, q.Get("status"), q.Get("priority"))
	}
	if err != nil {
		writeTaskError(w, err, "list tasks")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"tasks": toTaskDTOs(tasks),
	})
}

// HandleGet returns a single task by ID.
// GET /api/tasks/{id}
// Response: 200 {"task": {...}}, 404 if absent, 403 if owned by someone else.
func (h *TaskHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	taskID, ok := pathID(w, r)
	if !ok {
		return
	}

	task, err := h.tasks.Get(r.Context(), taskID, user.ID)
	if err != nil {
		writeTaskError(w, err, "get task")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"task": toTaskDTO(task),
	})
}

// HandleUpdate applies a partial update to a task. Absent fields are left
// unchanged.
// PUT /api/tasks/{id}
// Response: 200 {"task": {...}}
func (h *TaskHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	taskID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		Status      *string    `json:"status"`
		Priority    *string    `json:"priority"`
		DueDate     *time.Time `json:"dueDate"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	task, err := h.tasks.Update(r.Context(), taskID, user.ID, service.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		writeTaskError(w, err, "update task")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"task": toTaskDTO(task),
	})
}

// HandleDelete permanently removes a task.
// DELETE /api/tasks/{id}
// Response: 204 No Content
func (h *TaskHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	taskID, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.tasks.Delete(r.Context(), taskID, user.ID); err != nil {
		writeTaskError(w, err, "delete task")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid task ID.")
		return 0, false
	}
	return id, true
}

// writeTaskError maps task service errors to HTTP status codes.
func writeTaskError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, "Task not found.")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusForbidden, "You are not authorized to access this task.")
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found.")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error(op, "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
	}
}
