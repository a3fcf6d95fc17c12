package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yukikurage/task-tracker/internal/config"
	"github.com/yukikurage/task-tracker/internal/constants"
	"github.com/yukikurage/task-tracker/internal/database"
	"github.com/yukikurage/task-tracker/internal/handlers"
	"github.com/yukikurage/task-tracker/internal/logger"
	"github.com/yukikurage/task-tracker/internal/repository"
	"github.com/yukikurage/task-tracker/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "task-tracker",
	Short: "Task Tracker - a small team task tracker API",
	Long:  `Task Tracker serves a session-authenticated HTTP API for assigning and tracking tasks.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate, seed the default accounts and start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Migrate and seed the default accounts, then exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type app struct {
	cfg         *config.Config
	log         *zap.Logger
	db          *gorm.DB
	userRepo    repository.UserRepository
	taskRepo    repository.TaskRepository
	userService *services.UserService
}

// bootstrap loads configuration and the logger, then prepares the app.
func bootstrap(ctx context.Context) (*app, error) {
	cfg := config.Load()

	log, err := logger.New(cfg.GinMode, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	return a, nil
}

// newApp opens the database, migrates it and makes sure the seed accounts
// exist. The database is closed again when any step fails.
func newApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*app, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	a := &app{
		cfg:      cfg,
		log:      log,
		db:       db,
		userRepo: repository.NewUserRepository(db),
		taskRepo: repository.NewTaskRepository(db),
	}
	a.userService = services.NewUserService(a.userRepo, cfg.BcryptCost)

	if err := a.prepare(ctx); err != nil {
		a.closeDB()
		return nil, err
	}
	return a, nil
}

func (a *app) prepare(ctx context.Context) error {
	if err := database.Migrate(a.db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	a.log.Info("database ready", zap.String("driver", a.cfg.DBDriver))

	accounts, err := a.cfg.SeedAccounts()
	if err != nil {
		return err
	}
	created, err := a.userService.EnsureDefaultAccounts(ctx, accounts)
	if err != nil {
		return fmt.Errorf("failed to seed accounts: %w", err)
	}
	a.log.Info("accounts seeded", zap.Int("created", created), zap.Int("configured", len(accounts)))
	return nil
}

func (a *app) closeDB() {
	sqlDB, err := a.db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		a.log.Warn("failed to close database", zap.Error(err))
		return
	}
	a.log.Info("database closed")
}

func (a *app) close() {
	a.closeDB()
	_ = a.log.Sync()
}

func runServe(ctx context.Context) error {
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	gin.SetMode(a.cfg.GinMode)

	store, err := newSessionStore(a.cfg)
	if err != nil {
		return err
	}

	var drafter services.TaskDrafter
	if a.cfg.OpenAIAPIKey != "" {
		drafter = services.NewAIService(a.cfg.OpenAIAPIKey)
	} else {
		a.log.Warn("OPENAI_API_KEY not set; task generation disabled")
	}

	router, err := handlers.NewRouter(handlers.Dependencies{
		AuthService:      services.NewAuthService(a.userRepo),
		UserService:      a.userService,
		TaskService:      services.NewTaskService(a.taskRepo, drafter),
		DashboardService: services.NewDashboardService(a.taskRepo),
		SessionStore:     store,
		Logger:           a.log,
	})
	if err != nil {
		return err
	}

	a.log.Info("server starting", zap.String("addr", a.cfg.HTTPAddr), zap.String("db_driver", a.cfg.DBDriver))
	if err := router.Run(a.cfg.HTTPAddr); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// newSessionStore returns a cookie or Redis backed store per SESSION_STORE.
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	switch cfg.SessionStore {
	case "redis":
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		rs, err := redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // username (empty for default user)
			"",        // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis store: %w", err)
		}
		store = rs
	case "cookie", "":
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	default:
		return nil, fmt.Errorf("unsupported session store %q", cfg.SessionStore)
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAgeSecond,
		HttpOnly: true,
		Secure:   cfg.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}
