package dto

import (
	"time"

	"github.com/yukikurage/task-tracker/internal/constants"
	"github.com/yukikurage/task-tracker/internal/models"
	"github.com/yukikurage/task-tracker/internal/services"
)

// TaskDTO represents a task in API responses. Status is the effective
// status; StoredStatus is what is persisted.
type TaskDTO struct {
	ID                  uint64              `json:"id"`
	Title               string              `json:"title"`
	Description         string              `json:"description"`
	AssignedTo          string              `json:"assigned_to"`
	Priority            models.TaskPriority `json:"priority"`
	Status              models.TaskStatus   `json:"status"`
	StoredStatus        models.TaskStatus   `json:"stored_status"`
	Deadline            string              `json:"deadline"`
	CreatedAt           time.Time           `json:"created_at"`
	Editable            bool                `json:"editable"`
	EditorDefaultStatus models.TaskStatus   `json:"editor_default_status"`
}

// TaskListResponse represents a list of tasks. Message is set when the
// list is empty.
type TaskListResponse struct {
	Tasks   []TaskDTO `json:"tasks"`
	Total   int       `json:"total"`
	Message string    `json:"message,omitempty"`
}

// ToTaskDTO converts a TaskView to TaskDTO
func ToTaskDTO(view services.TaskView) TaskDTO {
	dto := TaskDTO{
		ID:                  view.ID,
		Title:               view.Title,
		Description:         view.Description,
		AssignedTo:          view.AssignedTo,
		Priority:            view.Priority,
		Status:              view.EffectiveStatus,
		StoredStatus:        view.Status,
		CreatedAt:           view.CreatedAt,
		Editable:            view.Editable,
		EditorDefaultStatus: view.EditorDefault,
	}
	if !view.Deadline.IsZero() {
		dto.Deadline = view.Deadline.Format(constants.DateLayout)
	}
	return dto
}

// ToTaskListResponse converts task views to TaskListResponse
func ToTaskListResponse(views []services.TaskView) TaskListResponse {
	items := make([]TaskDTO, len(views))
	for i, view := range views {
		items[i] = ToTaskDTO(view)
	}

	resp := TaskListResponse{
		Tasks: items,
		Total: len(items),
	}
	if len(items) == 0 {
		resp.Message = constants.EmptyTaskListMessage
	}
	return resp
}

// GeneratedTasksResponse wraps AI task drafts
type GeneratedTasksResponse struct {
	Tasks []services.GeneratedTask `json:"tasks"`
}
