package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kanban-api/internal/client"
	"kanban-api/internal/config"
	"kanban-api/internal/handler"
	"kanban-api/internal/metrics"
	"kanban-api/internal/middleware"
	"kanban-api/internal/realtime"
	"kanban-api/internal/repository"
	"kanban-api/internal/service"
)

// Setup builds the full engine: repositories, services, handlers and
// routes. The hub must already be started.
func Setup(
	cfg *config.Config,
	db *gorm.DB,
	hub *realtime.Hub,
	store client.FileStore,
	m *metrics.Metrics,
	logger *zap.Logger,
) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	engine := gin.New()
	engine.Use(middleware.Recovery(logger))
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Metrics(m))
	engine.Use(middleware.CORS())

	// Repositories
	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	tagRepo := repository.NewTagRepository(db)
	subtaskRepo := repository.NewSubtaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// Services
	verifier := client.NewHMACVerifier(cfg.JWT.Secret)
	activityService := service.NewActivityService(activityRepo, logger, m)
	authService := service.NewAuthService(userRepo, boardRepo, verifier, cfg.JWT.Secret, cfg.JWT.ExpiresIn, logger)
	boardService := service.NewBoardService(boardRepo, logger)
	columnService := service.NewColumnService(columnRepo, boardRepo, logger, m)
	taskService := service.NewTaskService(taskRepo, columnRepo, boardRepo, tagRepo, activityService, hub, logger, m)
	subtaskService := service.NewSubtaskService(subtaskRepo, taskRepo, columnRepo, boardRepo, hub, logger)
	commentService := service.NewCommentService(commentRepo, taskRepo, columnRepo, boardRepo, hub, logger)
	tagService := service.NewTagService(tagRepo, logger)
	attachmentService := service.NewAttachmentService(attachmentRepo, taskRepo, columnRepo, boardRepo, store, hub, logger)
	userService := service.NewUserService(userRepo, boardRepo, taskRepo, verifier, logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, logger)
	boardHandler := handler.NewBoardHandler(boardService, logger)
	columnHandler := handler.NewColumnHandler(columnService, taskService, logger)
	taskHandler := handler.NewTaskHandler(taskService, logger)
	subtaskHandler := handler.NewSubtaskHandler(subtaskService, logger)
	commentHandler := handler.NewCommentHandler(commentService, logger)
	tagHandler := handler.NewTagHandler(tagService, logger)
	attachmentHandler := handler.NewAttachmentHandler(attachmentService, logger)
	userHandler := handler.NewUserHandler(userService, logger)
	healthHandler := handler.NewHealthHandler()
	wsHandler := handler.NewWSHandler(hub)

	// Public surface
	engine.GET("/health", healthHandler.Health)
	engine.GET("/ready", healthHandler.Ready)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{})))
	engine.GET("/ws", wsHandler.Subscribe)
	if cfg.Storage.Backend == "local" {
		engine.Static("/uploads", cfg.Storage.LocalDir)
	}

	api := engine.Group("/api")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
	}

	authed := api.Group("")
	authed.Use(middleware.Auth(cfg.JWT.Secret))
	{
		// Boards
		authed.GET("/boards", boardHandler.GetBoards)
		authed.POST("/boards", boardHandler.CreateBoard)
		authed.GET("/boards/:id", boardHandler.GetBoard)
		authed.PUT("/boards/:id", boardHandler.UpdateBoard)
		authed.DELETE("/boards/:id", boardHandler.DeleteBoard)

		// Columns
		authed.POST("/boards/:id/columns", columnHandler.CreateColumn)
		authed.PATCH("/columns/:id", columnHandler.UpdateColumn)
		authed.DELETE("/columns/:id", columnHandler.DeleteColumn)
		authed.PUT("/columns/reorder", columnHandler.ReorderColumns)
		authed.PUT("/columns/:id/tasks/reorder", columnHandler.ReorderTasks)

		// Tasks
		authed.POST("/tasks", taskHandler.CreateTask)
		authed.GET("/tasks/:id", taskHandler.GetTask)
		authed.PATCH("/tasks/:id", taskHandler.UpdateTask)
		authed.DELETE("/tasks/:id", taskHandler.DeleteTask)
		authed.GET("/tasks/:id/activity", taskHandler.ListActivity)

		// Subtasks
		authed.POST("/tasks/:id/subtasks", subtaskHandler.CreateSubtask)
		authed.PATCH("/subtasks/:id", subtaskHandler.UpdateSubtask)
		authed.DELETE("/subtasks/:id", subtaskHandler.DeleteSubtask)

		// Comments
		authed.POST("/tasks/:id/comments", commentHandler.CreateComment)
		authed.GET("/tasks/:id/comments", commentHandler.ListComments)
		authed.DELETE("/comments/:id", commentHandler.DeleteComment)

		// Attachments
		authed.POST("/tasks/:id/attachments", attachmentHandler.Upload)
		authed.DELETE("/attachments/:id", attachmentHandler.Delete)

		// Tags
		authed.GET("/tags", tagHandler.ListTags)
		authed.POST("/tags", tagHandler.CreateTag)
		authed.PATCH("/tags/:id", tagHandler.UpdateTag)
		authed.DELETE("/tags/:id", tagHandler.DeleteTag)

		// Users
		authed.GET("/users/me", userHandler.GetMe)
		authed.PUT("/profile", userHandler.UpdateProfile)

		// Admin
		admin := authed.Group("", middleware.AdminOnly())
		admin.GET("/users", userHandler.ListUsers)
		admin.POST("/users", userHandler.CreateUser)
		admin.DELETE("/users/:id", userHandler.DeleteUser)
		admin.PUT("/users/:id/password", userHandler.ResetPassword)
		admin.GET("/admin/stats", userHandler.Stats)
	}

	return engine
}
