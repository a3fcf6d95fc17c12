package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker/internal/dto"
	apierrors "github.com/yukikurage/task-tracker/internal/errors"
	"github.com/yukikurage/task-tracker/internal/middleware"
	"github.com/yukikurage/task-tracker/internal/models"
	"github.com/yukikurage/task-tracker/internal/services"
	"go.uber.org/zap"
)

type TaskHandler struct {
	taskService *services.TaskService
	log         *zap.Logger
}

func NewTaskHandler(taskService *services.TaskService, log *zap.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		log:         log,
	}
}

// ListTasks returns the tasks visible to the current user.
// Optional query filters: assigned_to, status (effective status).
func (h *TaskHandler) ListTasks(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var input services.ListTasksInput
	if assignee := c.Query("assigned_to"); assignee != "" {
		input.AssignedTo = &assignee
	}
	if status := c.Query("status"); status != "" {
		s := models.TaskStatus(status)
		input.Status = &s
	}

	views, err := h.taskService.ListTasks(c.Request.Context(), sess, input)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(views))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	view, err := h.taskService.GetTask(c.Request.Context(), sess, taskID)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*view))
}

// CreateTask creates a new task. Admin only.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		AssignedTo  string `json:"assigned_to"`
		Priority    string `json:"priority" binding:"required,task_priority"`
		Deadline    string `json:"deadline" binding:"required,datetime=2006-01-02"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	deadline, err := services.ParseDeadline(req.Deadline)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	view, err := h.taskService.CreateTask(c.Request.Context(), sess, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		Priority:    models.TaskPriority(req.Priority),
		Deadline:    deadline,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	h.log.Info("task created",
		zap.Uint64("task_id", view.ID),
		zap.String("assigned_to", view.AssignedTo),
		zap.String("by", sess.Username),
	)
	c.JSON(http.StatusCreated, dto.ToTaskDTO(*view))
}

// UpdateStatus sets the stored status of a task the caller may edit
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return
	}

	type UpdateStatusRequest struct {
		Status string `json:"status" binding:"required,task_status"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	view, err := h.taskService.UpdateStatus(c.Request.Context(), sess, taskID, models.TaskStatus(req.Status))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	h.log.Info("task status updated",
		zap.Uint64("task_id", taskID),
		zap.String("status", req.Status),
		zap.String("by", sess.Username),
	)
	c.JSON(http.StatusOK, dto.ToTaskDTO(*view))
}

// GenerateTasks drafts tasks from free text using AI. Admin only.
func (h *TaskHandler) GenerateTasks(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type GenerateTasksRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req GenerateTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	drafts, err := h.taskService.GenerateTasks(c.Request.Context(), sess, req.Text)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.GeneratedTasksResponse{Tasks: drafts})
}

func parseTaskID(c *gin.Context) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return 0, false
	}
	return taskID, true
}
