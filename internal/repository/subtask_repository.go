package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kanban-api/internal/domain"
)

// SubtaskRepository handles subtask persistence
type SubtaskRepository interface {
	Create(ctx context.Context, subtask *domain.Subtask) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Subtask, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]domain.Subtask, error)
	Update(ctx context.Context, subtask *domain.Subtask) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type subtaskRepositoryImpl struct {
	db *gorm.DB
}

// NewSubtaskRepository creates a subtask repository
func NewSubtaskRepository(db *gorm.DB) SubtaskRepository {
	return &subtaskRepositoryImpl{db: db}
}

func (r *subtaskRepositoryImpl) Create(ctx context.Context, subtask *domain.Subtask) error {
	return r.db.WithContext(ctx).Create(subtask).Error
}

func (r *subtaskRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Subtask, error) {
	var subtask domain.Subtask
	if err := r.db.WithContext(ctx).First(&subtask, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &subtask, nil
}

func (r *subtaskRepositoryImpl) ListByTask(ctx context.Context, taskID uuid.UUID) ([]domain.Subtask, error) {
	var subtasks []domain.Subtask
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Order("created_at ASC").Find(&subtasks).Error; err != nil {
		return nil, err
	}
	return subtasks, nil
}

func (r *subtaskRepositoryImpl) Update(ctx context.Context, subtask *domain.Subtask) error {
	return r.db.WithContext(ctx).Save(subtask).Error
}

func (r *subtaskRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Subtask{}, "id = ?", id).Error
}
