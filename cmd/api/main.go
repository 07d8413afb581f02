package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"kanban-api/internal/client"
	"kanban-api/internal/config"
	"kanban-api/internal/database"
	"kanban-api/internal/job"
	"kanban-api/internal/metrics"
	"kanban-api/internal/realtime"
	"kanban-api/internal/repository"
	"kanban-api/internal/router"
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic("config load failed: " + err.Error())
	}

	logger := initLogger(cfg.Logging.Level)
	defer logger.Sync()

	db, err := database.New(database.Config{
		DSN:             cfg.Database.DSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	database.SetDB(db)
	database.SafeAutoMigrate(db, logger)

	m := metrics.New()
	if err := database.RegisterMetricsCallbacks(db, m); err != nil {
		logger.Warn("metrics callbacks not registered", zap.Error(err))
	}
	stop := make(chan struct{})
	database.StartDBStatsCollector(db, m, logger, stop)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = database.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			logger.Warn("redis unavailable, running single-instance", zap.Error(err))
			redisClient = nil
		}
	}

	hub := realtime.NewHub(logger, m, redisClient, cfg.Redis.Channel)
	hub.Start(ctx)

	store, err := buildFileStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("file store init failed", zap.Error(err))
	}

	engine := router.Setup(cfg, db, hub, store, m, logger)

	statsJob := job.NewStatsJob(
		repository.NewUserRepository(db),
		repository.NewBoardRepository(db),
		repository.NewAttachmentRepository(db),
		store,
		m,
		logger,
	)
	if err := statsJob.Start(); err != nil {
		logger.Warn("stats job not started", zap.Error(err))
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: engine,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	statsJob.Stop()
	close(stop)
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	if err := database.Close(); err != nil {
		logger.Error("database close failed", zap.Error(err))
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("redis close failed", zap.Error(err))
		}
	}
	logger.Info("bye")
}

func buildFileStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (client.FileStore, error) {
	if cfg.Storage.Backend == "s3" {
		return client.NewS3FileStore(ctx, client.S3Config{
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
		}, logger)
	}
	return client.NewLocalFileStore(cfg.Storage.LocalDir, logger)
}

func initLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	zapCfg := zap.Config{
		Level:       zap.NewAtomicLevelAt(zapLevel),
		Development: false,
		Encoding:    "json",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := zapCfg.Build()
	if err != nil {
		panic("logger init failed: " + err.Error())
	}
	return logger
}
