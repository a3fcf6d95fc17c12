package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker/internal/dto"
	apierrors "github.com/yukikurage/task-tracker/internal/errors"
	"github.com/yukikurage/task-tracker/internal/middleware"
	"github.com/yukikurage/task-tracker/internal/models"
	"github.com/yukikurage/task-tracker/internal/services"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService *services.UserService
	log         *zap.Logger
}

func NewUserHandler(userService *services.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		log:         log,
	}
}

// ListUsers returns every account. Used by assignee pickers.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": dto.ToUserDTOs(users),
	})
}

// CreateUser adds an account. Admin only.
func (h *UserHandler) CreateUser(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateUserRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password"`
		Role     string `json:"role" binding:"required,user_role"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), sess, services.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Role:     models.Role(req.Role),
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	h.log.Info("user created",
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
		zap.String("by", sess.Username),
	)
	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// ChangePassword replaces a user's password. Admin only.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type ChangePasswordRequest struct {
		Password string `json:"password"`
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	username := c.Param("username")
	if err := h.userService.ChangePassword(c.Request.Context(), sess, username, req.Password); err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	h.log.Info("password changed", zap.String("username", username), zap.String("by", sess.Username))
	c.JSON(http.StatusOK, gin.H{
		"message": "Password updated successfully",
	})
}

// DeleteUser removes an account. Tasks assigned to it are kept.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	username := c.Param("username")
	if err := h.userService.DeleteUser(c.Request.Context(), sess, username); err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	h.log.Info("user deleted", zap.String("username", username), zap.String("by", sess.Username))
	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted successfully",
	})
}
