package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kanban-api/internal/domain"
)

// TaskRepository handles task persistence, ordering and tag links
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	// GetWithRelations loads the task with its tags, subtasks,
	// attachments and column.
	GetWithRelations(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ListByColumn(ctx context.Context, columnID uuid.UUID) ([]domain.Task, error)
	CountByColumn(ctx context.Context, columnID uuid.UUID) (int64, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Reorder atomically rewrites positions so that each task takes
	// the position of its index in the given slice.
	Reorder(ctx context.Context, taskIDs []uuid.UUID) error
	// Move reparents a task to another column at the given position.
	// The source column is not renumbered.
	Move(ctx context.Context, taskID, toColumnID uuid.UUID, position int) error
	ReplaceTags(ctx context.Context, task *domain.Task, tags []domain.Tag) error
	Count(ctx context.Context) (int64, error)
	CountByPriority(ctx context.Context) (map[domain.TaskPriority]int64, error)
	// CountByOwner groups tasks by the owner of the board they sit in
	CountByOwner(ctx context.Context) (map[uuid.UUID]int64, error)
}

type taskRepositoryImpl struct {
	db *gorm.DB
}

// NewTaskRepository creates a task repository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepositoryImpl{db: db}
}

func (r *taskRepositoryImpl) Create(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepositoryImpl) GetWithRelations(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var task domain.Task
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Subtasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Attachments").
		Preload("Column").
		First(&task, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepositoryImpl) ListByColumn(ctx context.Context, columnID uuid.UUID) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := r.db.WithContext(ctx).Where("column_id = ?", columnID).Order("position ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepositoryImpl) CountByColumn(ctx context.Context, columnID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Task{}).Where("column_id = ?", columnID).Count(&count).Error
	return count, err
}

func (r *taskRepositoryImpl) Update(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// Delete removes the task and its children. Sibling tasks keep their
// positions; gaps are tolerated until the next full reorder.
func (r *taskRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteTaskChildren(tx, []uuid.UUID{id}); err != nil {
			return err
		}
		res := tx.Delete(&domain.Task{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *taskRepositoryImpl) Reorder(ctx context.Context, taskIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range taskIDs {
			if err := tx.Model(&domain.Task{}).Where("id = ?", id).
				UpdateColumn("position", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *taskRepositoryImpl) Move(ctx context.Context, taskID, toColumnID uuid.UUID, position int) error {
	res := r.db.WithContext(ctx).Model(&domain.Task{}).Where("id = ?", taskID).
		UpdateColumns(map[string]interface{}{
			"column_id": toColumnID,
			"position":  position,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *taskRepositoryImpl) ReplaceTags(ctx context.Context, task *domain.Task, tags []domain.Tag) error {
	return r.db.WithContext(ctx).Model(task).Association("Tags").Replace(tags)
}

func (r *taskRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Task{}).Count(&count).Error
	return count, err
}

func (r *taskRepositoryImpl) CountByPriority(ctx context.Context) (map[domain.TaskPriority]int64, error) {
	var rows []struct {
		Priority domain.TaskPriority
		Total    int64
	}
	err := r.db.WithContext(ctx).Model(&domain.Task{}).
		Select("priority, COUNT(*) AS total").
		Group("priority").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[domain.TaskPriority]int64, len(rows))
	for _, row := range rows {
		counts[row.Priority] = row.Total
	}
	return counts, nil
}

func (r *taskRepositoryImpl) CountByOwner(ctx context.Context) (map[uuid.UUID]int64, error) {
	var rows []struct {
		OwnerID uuid.UUID
		Total   int64
	}
	err := r.db.WithContext(ctx).Model(&domain.Task{}).
		Select("boards.owner_id AS owner_id, COUNT(*) AS total").
		Joins("JOIN columns ON columns.id = tasks.column_id").
		Joins("JOIN boards ON boards.id = columns.board_id").
		Group("boards.owner_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.OwnerID] = row.Total
	}
	return counts, nil
}
