package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/task-tracker/internal/constants"
	"github.com/yukikurage/task-tracker/internal/models"
	"github.com/yukikurage/task-tracker/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound           = errors.New("task not found")
	ErrTaskPermissionDenied   = errors.New("user does not have permission to modify this task")
	ErrTitleRequired          = errors.New("title is required")
	ErrInvalidStatus          = errors.New("invalid task status")
	ErrInvalidPriority        = errors.New("priority must be low, medium or high")
	ErrInvalidDeadline        = errors.New("deadline must be a YYYY-MM-DD date")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
	ErrAINoValidTasks         = errors.New("no valid tasks could be created from AI output")
	ErrAITooManyTasks         = errors.New("AI generated too many tasks")
	ErrAIInvalidResponse      = errors.New("AI response is not valid task JSON")
)

// TaskService handles task business logic. It is the caller of the task
// store and enforces role-based visibility on top of it.
type TaskService struct {
	taskRepo repository.TaskRepository
	drafter  TaskDrafter
	now      func() time.Time
}

// NewTaskService creates a new TaskService. drafter may be nil.
func NewTaskService(taskRepo repository.TaskRepository, drafter TaskDrafter) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		drafter:  drafter,
		now:      time.Now,
	}
}

// WithClock replaces the clock used to decide what "today" is.
func (s *TaskService) WithClock(now func() time.Time) *TaskService {
	s.now = now
	return s
}

// TaskView is a task as presented to a session.
type TaskView struct {
	models.Task
	EffectiveStatus models.TaskStatus
	Editable        bool
	EditorDefault   models.TaskStatus
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	AssignedTo  string
	Priority    models.TaskPriority
	Deadline    time.Time
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	AssignedTo *string
	Status     *models.TaskStatus
}

// CreateTask stores a new todo task. Admin only. The assignee is not
// checked against the user table.
func (s *TaskService) CreateTask(ctx context.Context, sess Session, input CreateTaskInput) (*TaskView, error) {
	if !sess.IsAdmin() {
		return nil, ErrAdminRequired
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}
	if input.Deadline.IsZero() {
		return nil, ErrInvalidDeadline
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		AssignedTo:  input.AssignedTo,
		Priority:    input.Priority,
		Status:      models.TaskStatusTodo,
		Deadline:    CalendarDate(input.Deadline),
		CreatedAt:   s.now(),
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	view := s.view(sess, *task, s.now())
	return &view, nil
}

// ListTasks returns the tasks visible to the session. The assignee filter
// runs in storage; the status filter runs after derivation, so "overdue"
// matches late tasks and "todo" excludes them.
func (s *TaskService) ListTasks(ctx context.Context, sess Session, input ListTasksInput) ([]TaskView, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	filter := repository.TaskFilter{AssignedTo: input.AssignedTo}
	if !sess.IsAdmin() {
		if input.AssignedTo != nil && *input.AssignedTo != sess.Username {
			return []TaskView{}, nil
		}
		username := sess.Username
		filter.AssignedTo = &username
	}

	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	today := s.now()
	views := make([]TaskView, 0, len(tasks))
	for _, task := range tasks {
		view := s.view(sess, task, today)
		if input.Status != nil && view.EffectiveStatus != *input.Status {
			continue
		}
		views = append(views, view)
	}

	return views, nil
}

// GetTask returns a single task. Tasks the session cannot access are
// reported as not found.
func (s *TaskService) GetTask(ctx context.Context, sess Session, taskID uint64) (*TaskView, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !sess.CanAccess(*task) {
		return nil, ErrTaskNotFound
	}

	view := s.view(sess, *task, s.now())
	return &view, nil
}

// UpdateStatus overwrites the stored status. Only todo, in_progress and done
// may be set. Last write wins.
func (s *TaskService) UpdateStatus(ctx context.Context, sess Session, taskID uint64, status models.TaskStatus) (*TaskView, error) {
	if !status.Settable() {
		return nil, ErrInvalidStatus
	}

	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !sess.CanAccess(*task) {
		return nil, ErrTaskPermissionDenied
	}

	// MySQL reports zero affected rows when the status is unchanged.
	if _, err := s.taskRepo.UpdateStatus(ctx, taskID, status); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	task.Status = status
	view := s.view(sess, *task, s.now())
	return &view, nil
}

// GenerateTasks asks the drafter for task drafts built from free text.
// Drafts are not stored. Admin only.
func (s *TaskService) GenerateTasks(ctx context.Context, sess Session, text string) ([]GeneratedTask, error) {
	if !sess.IsAdmin() {
		return nil, ErrAdminRequired
	}
	if s.drafter == nil {
		return nil, ErrAIServiceNotConfigured
	}

	today := CalendarDate(s.now())
	drafts, err := s.drafter.GenerateTasksFromText(ctx, text, today)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	if len(drafts) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(drafts) > constants.MaxAIGeneratedTasks {
		return nil, fmt.Errorf("%w (max %d)", ErrAITooManyTasks, constants.MaxAIGeneratedTasks)
	}

	valid := make([]GeneratedTask, 0, len(drafts))
	for _, draft := range drafts {
		if strings.TrimSpace(draft.Title) == "" {
			continue
		}
		if !draft.Priority.Valid() {
			draft.Priority = models.TaskPriorityMedium
		}
		if draft.Deadline != "" {
			deadline, err := ParseDeadline(draft.Deadline)
			if err != nil || deadline.Before(today) {
				draft.Deadline = ""
			}
		}
		valid = append(valid, draft)
	}

	if len(valid) == 0 {
		return nil, ErrAINoValidTasks
	}

	return valid, nil
}

func (s *TaskService) findTask(ctx context.Context, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

func (s *TaskService) view(sess Session, task models.Task, today time.Time) TaskView {
	effective := DeriveStatus(task, today)
	return TaskView{
		Task:            task,
		EffectiveStatus: effective,
		Editable:        sess.CanAccess(task),
		EditorDefault:   EditorDefaultStatus(effective),
	}
}
