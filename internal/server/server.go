package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"tasktracker/internal/cache"
	"tasktracker/internal/config"
	"tasktracker/internal/database"
	"tasktracker/internal/handler"
	"tasktracker/internal/middleware"
	"tasktracker/internal/repository"
	"tasktracker/internal/service"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
	Config *config.Config
	Logger *slog.Logger
}

// Handlers groups everything the router dispatches to.
type Handlers struct {
	Users  *handler.UserHandler
	Tasks  *handler.TaskHandler
	Health *handler.HealthHandler
}

func Init(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if err := handler.RegisterValidation(); err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.DSN(), cfg.DBDebug)
	if err != nil {
		return nil, err
	}
	logger.Info("connected to database", "host", cfg.DBHost, "name", cfg.DBName)

	if cfg.DBAutoMigrate {
		if err := database.Migrate(cfg.DSN(), database.Up); err != nil {
			_ = database.Close(db)
			return nil, err
		}
		logger.Info("database schema is up to date")
	}

	loc, err := cfg.Location()
	if err != nil {
		_ = database.Close(db)
		return nil, err
	}

	checks := map[string]handler.Check{
		"database": func(ctx context.Context) error { return database.Ping(ctx, db) },
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	var users service.UserStore = userRepo
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		userCache := cache.NewUserCache(userRepo, rdb, cfg.CacheTTL, logger)
		if err := userCache.Ping(context.Background()); err != nil {
			logger.Warn("redis unreachable, user lookups will hit the database", "addr", cfg.RedisAddr, "error", err)
		} else {
			logger.Info("connected to redis", "addr", cfg.RedisAddr)
		}
		users = userCache
		checks["redis"] = userCache.Ping
	}

	userService := service.NewUserService(users)
	taskService := service.NewTaskService(taskRepo, users,
		service.WithLocation(loc),
		service.WithLogger(logger),
	)

	engine := NewRouter(Handlers{
		Users:  handler.NewUserHandler(userService, cfg.JWTSecret, cfg.JWTExpiry, logger),
		Tasks:  handler.NewTaskHandler(taskService, logger),
		Health: handler.NewHealthHandler(checks),
	}, cfg, logger)

	return &Server{
		Engine: engine,
		DB:     db,
		Redis:  rdb,
		Config: cfg,
		Logger: logger,
	}, nil
}

// NewRouter wires middleware and routes. Task routes require a bearer token.
func NewRouter(h Handlers, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.CORS(cfg.CORSOrigins))

	r.GET("/health", h.Health.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	users := r.Group("/users")
	{
		users.POST("", h.Users.Register)
		users.POST("/register", h.Users.Register)
		users.POST("/login", h.Users.Login)
		users.GET("", h.Users.FindByEmail)
		users.GET("/:id", h.Users.GetByID)
	}

	tasks := r.Group("/tasks")
	tasks.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		tasks.POST("", h.Tasks.Create)
		tasks.GET("", h.Tasks.List)
		tasks.GET("/:id", h.Tasks.GetByID)
		tasks.PATCH("/:id", h.Tasks.Update)
		tasks.DELETE("/:id", h.Tasks.Delete)
		tasks.POST("/:id/updates", h.Tasks.AddUpdate)
		tasks.GET("/:id/updates", h.Tasks.ListUpdates)
		tasks.GET("/:id/logs", h.Tasks.ListLogs)
	}

	return r
}

// Run serves until SIGINT or SIGTERM, then drains requests for up to
// SHUTDOWN_TIMEOUT and releases the database and redis connections.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("server listening", "port", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			s.close()
			return fmt.Errorf("failed to listen: %w", err)
		}
	case <-ctx.Done():
	}
	s.Logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.Config.ShutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.close()
	if err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	s.Logger.Info("server exited properly")
	return nil
}

func (s *Server) close() {
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			s.Logger.Warn("failed to close redis", "error", err)
		}
	}
	if err := database.Close(s.DB); err != nil {
		s.Logger.Warn("failed to close database", "error", err)
	}
}
