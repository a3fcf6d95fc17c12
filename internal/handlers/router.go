package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker/internal/constants"
	"github.com/yukikurage/task-tracker/internal/middleware"
	"github.com/yukikurage/task-tracker/internal/services"
	"github.com/yukikurage/task-tracker/internal/validation"
	"go.uber.org/zap"
)

// Dependencies holds everything NewRouter wires into the handlers.
type Dependencies struct {
	AuthService      *services.AuthService
	UserService      *services.UserService
	TaskService      *services.TaskService
	DashboardService *services.DashboardService
	SessionStore     sessions.Store
	Logger           *zap.Logger
}

// NewRouter builds the HTTP API.
func NewRouter(deps Dependencies) (*gin.Engine, error) {
	if err := validation.Register(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestLogger(log))
	r.Use(sessions.Sessions(constants.SessionCookieName, deps.SessionStore))

	authHandler := NewAuthHandler(deps.AuthService, log)
	taskHandler := NewTaskHandler(deps.TaskService, log)
	userHandler := NewUserHandler(deps.UserService, log)
	dashboardHandler := NewDashboardHandler(deps.DashboardService, log)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Task Tracker API is running",
		})
	})

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentSession)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", middleware.RequireAdmin(), taskHandler.CreateTask)
			tasks.POST("/generate", middleware.RequireAdmin(), taskHandler.GenerateTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id/status", taskHandler.UpdateStatus)
		}

		// User routes (protected)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth())
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", middleware.RequireAdmin(), userHandler.CreateUser)
			users.PUT("/:username/password", middleware.RequireAdmin(), userHandler.ChangePassword)
			users.DELETE("/:username", middleware.RequireAdmin(), userHandler.DeleteUser)
		}

		api.GET("/dashboard", middleware.RequireAuth(), dashboardHandler.GetDashboard)
		api.GET("/meta/options", middleware.RequireAuth(), dashboardHandler.GetOptions)
	}

	return r, nil
}
