package job

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"kanban-api/internal/client"
	"kanban-api/internal/metrics"
	"kanban-api/internal/repository"
)

// StatsJob refreshes usage gauges and sweeps orphaned attachment
// objects on a schedule.
type StatsJob struct {
	cron           *cron.Cron
	userRepo       repository.UserRepository
	boardRepo      repository.BoardRepository
	attachmentRepo repository.AttachmentRepository
	store          client.FileStore
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// NewStatsJob creates the scheduled job runner
func NewStatsJob(
	userRepo repository.UserRepository,
	boardRepo repository.BoardRepository,
	attachmentRepo repository.AttachmentRepository,
	store client.FileStore,
	m *metrics.Metrics,
	logger *zap.Logger,
) *StatsJob {
	return &StatsJob{
		cron:           cron.New(),
		userRepo:       userRepo,
		boardRepo:      boardRepo,
		attachmentRepo: attachmentRepo,
		store:          store,
		metrics:        m,
		logger:         logger,
	}
}

// Start registers the schedules and launches the runner
func (j *StatsJob) Start() error {
	if _, err := j.cron.AddFunc("@every 1m", j.refreshGauges); err != nil {
		return err
	}
	if _, err := j.cron.AddFunc("@hourly", j.sweepOrphans); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("stats job started")
	return nil
}

// Stop halts the runner and waits for running jobs
func (j *StatsJob) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
}

func (j *StatsJob) refreshGauges() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users, err := j.userRepo.Count(ctx)
	if err != nil {
		j.logger.Warn("user count failed", zap.Error(err))
	} else {
		j.metrics.SetUserCount(users)
	}

	boards, err := j.boardRepo.Count(ctx)
	if err != nil {
		j.logger.Warn("board count failed", zap.Error(err))
	} else {
		j.metrics.SetBoardCount(boards)
	}
}

// sweepOrphans removes attachment rows whose task is gone, deleting
// the stored objects as it goes.
func (j *StatsJob) sweepOrphans() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	orphans, err := j.attachmentRepo.ListOrphaned(ctx)
	if err != nil {
		j.logger.Warn("orphan attachment scan failed", zap.Error(err))
		return
	}
	for _, a := range orphans {
		if err := j.store.Delete(ctx, a.StorageKey); err != nil {
			j.logger.Warn("orphan object delete failed",
				zap.String("key", a.StorageKey), zap.Error(err))
			continue
		}
		if err := j.attachmentRepo.Delete(ctx, a.ID); err != nil {
			j.logger.Warn("orphan row delete failed",
				zap.String("id", a.ID.String()), zap.Error(err))
		}
	}
	if len(orphans) > 0 {
		j.logger.Info("orphan attachment sweep finished", zap.Int("count", len(orphans)))
	}
}
