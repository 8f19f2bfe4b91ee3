package handlers

import (
	"context"
	"net/http"
	"time"

	"jobtrack/application/services"
	"jobtrack/domain/entities"
	"jobtrack/pkg/common"
	"jobtrack/pkg/validation"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TaskService is the slice of the applications service the task routes need.
type TaskService interface {
	AddTaskToApplication(ctx context.Context, applicationID string, in services.CreateTaskInput) (services.TaskDTO, error)
	GetTask(ctx context.Context, applicationID, taskID string) (services.TaskDTO, error)
	UpdateTask(ctx context.Context, applicationID string, in services.UpdateTaskInput) error
	AddTaskNote(ctx context.Context, applicationID, taskID, content string) error
	UpdateTaskNote(ctx context.Context, applicationID, taskID, noteID, content string) error
	DeleteTaskNote(ctx context.Context, applicationID, taskID, noteID string) error
}

// TaskHandler serves the task routes nested under an application.
type TaskHandler struct {
	tasks  TaskService
	logger *zap.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(tasks TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, logger: logger}
}

type createTaskRequest struct {
	Name        string     `json:"name" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	DueDate     *time.Time `json:"dueDate"`
}

type updateTaskRequest struct {
	Name        string     `json:"name" validate:"required,max=200"`
	Description string     `json:"description" validate:"max=2000"`
	Status      string     `json:"status" validate:"required,oneof=active completed closed archived"`
	DueDate     *time.Time `json:"dueDate"`
}

// CreateTask adds a task to the application in the path.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	applicationID := chi.URLParam(r, "applicationID")

	var req createTaskRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, err)
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		common.RespondAppError(w, err)
		return
	}

	task, err := h.tasks.AddTaskToApplication(r.Context(), applicationID, services.CreateTaskInput{
		Name:        req.Name,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, task)
}

// GetTask returns one task.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	applicationID := chi.URLParam(r, "applicationID")
	taskID := chi.URLParam(r, "taskID")

	task, err := h.tasks.GetTask(r.Context(), applicationID, taskID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, task)
}

// UpdateTask replaces the mutable fields of a task.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	applicationID := chi.URLParam(r, "applicationID")
	taskID := chi.URLParam(r, "taskID")

	var req updateTaskRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, err)
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		common.RespondAppError(w, err)
		return
	}

	err := h.tasks.UpdateTask(r.Context(), applicationID, services.UpdateTaskInput{
		ID:          taskID,
		Name:        req.Name,
		Description: req.Description,
		Status:      entities.TaskStatus(req.Status),
		DueDate:     req.DueDate,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, nil)
}

// AddNote prepends a note to a task.
func (h *TaskHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	applicationID := chi.URLParam(r, "applicationID")
	taskID := chi.URLParam(r, "taskID")

	var req noteRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, err)
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		common.RespondAppError(w, err)
		return
	}

	if err := h.tasks.AddTaskNote(r.Context(), applicationID, taskID, req.Content); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, nil)
}

// UpdateNote replaces the content of an existing task note.
func (h *TaskHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	applicationID := chi.URLParam(r, "applicationID")
	taskID := chi.URLParam(r, "taskID")
	noteID := chi.URLParam(r, "noteID")

	var req noteRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		common.RespondAppError(w, err)
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		common.RespondAppError(w, err)
		return
	}

	if err := h.tasks.UpdateTaskNote(r.Context(), applicationID, taskID, noteID, req.Content); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, nil)
}

// DeleteNote removes a note from a task.
func (h *TaskHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	applicationID := chi.URLParam(r, "applicationID")
	taskID := chi.URLParam(r, "taskID")
	noteID := chi.URLParam(r, "noteID")

	if err := h.tasks.DeleteTaskNote(r.Context(), applicationID, taskID, noteID); err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, nil)
}
