package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"kanban-api/internal/domain"
	"kanban-api/internal/repository"
)

// ActivityMetrics receives activity write counters
type ActivityMetrics interface {
	RecordActivityWrite(result string)
}

// ActivityService records the per-task audit trail and reads it back
type ActivityService interface {
	// Record appends an entry. It never returns an error: logging is
	// best effort and must not fail the mutation that triggered it.
	Record(ctx context.Context, entry ActivityEntry)
	// ListByTask returns a task's entries, newest first, with the
	// acting user's name joined in.
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]domain.ActivityLog, error)
}

// ActivityEntry is what callers hand to Record. Action is the
// human-readable description; Details optionally carries the values
// behind it.
type ActivityEntry struct {
	Action  string
	Details interface{}
	TaskID  uuid.UUID
	UserID  uuid.UUID
}

type activityServiceImpl struct {
	repo    repository.ActivityRepository
	logger  *zap.Logger
	metrics ActivityMetrics
}

// NewActivityService creates the activity recorder
func NewActivityService(repo repository.ActivityRepository, logger *zap.Logger, metrics ActivityMetrics) ActivityService {
	return &activityServiceImpl{repo: repo, logger: logger, metrics: metrics}
}

func (s *activityServiceImpl) Record(ctx context.Context, entry ActivityEntry) {
	log := &domain.ActivityLog{
		Action: entry.Action,
		TaskID: entry.TaskID,
		UserID: entry.UserID,
	}

	if entry.Details != nil {
		data, err := json.Marshal(entry.Details)
		if err != nil {
			s.logger.Warn("activity details not serializable, recording without",
				zap.String("action", entry.Action),
				zap.Error(err))
		} else {
			log.Details = datatypes.JSON(data)
		}
	}

	if err := s.repo.Create(ctx, log); err != nil {
		// A lost log entry is preferable to a failed board mutation.
		s.logger.Warn("activity log write failed",
			zap.String("action", entry.Action),
			zap.String("task_id", entry.TaskID.String()),
			zap.Error(err))
		s.metrics.RecordActivityWrite("failure")
		return
	}
	s.metrics.RecordActivityWrite("success")
}

func (s *activityServiceImpl) ListByTask(ctx context.Context, taskID uuid.UUID) ([]domain.ActivityLog, error) {
	return s.repo.ListByTask(ctx, taskID)
}
