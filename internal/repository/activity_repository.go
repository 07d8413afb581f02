package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kanban-api/internal/domain"
)

// ActivityRepository handles the append-only activity log
type ActivityRepository interface {
	Create(ctx context.Context, entry *domain.ActivityLog) error
	// ListByTask returns every entry for a task, newest first, with
	// the acting user joined in.
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]domain.ActivityLog, error)
}

type activityRepositoryImpl struct {
	db *gorm.DB
}

// NewActivityRepository creates an activity log repository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepositoryImpl{db: db}
}

func (r *activityRepositoryImpl) Create(ctx context.Context, entry *domain.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *activityRepositoryImpl) ListByTask(ctx context.Context, taskID uuid.UUID) ([]domain.ActivityLog, error) {
	var entries []domain.ActivityLog
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("task_id = ?", taskID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
