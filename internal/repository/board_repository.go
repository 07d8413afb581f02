package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kanban-api/internal/domain"
)

// BoardRepository handles board persistence
type BoardRepository interface {
	Create(ctx context.Context, board *domain.Board) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	// GetFull loads the board with columns ordered by position, each
	// column's tasks ordered by position, and every task's tags,
	// subtasks and attachments.
	GetFull(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	// ListFullByOwner loads every board of one owner in the same
	// aggregate shape as GetFull.
	ListFullByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Board, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Board, error)
	List(ctx context.Context) ([]domain.Board, error)
	Update(ctx context.Context, board *domain.Board) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type boardRepositoryImpl struct {
	db *gorm.DB
}

// NewBoardRepository creates a board repository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &boardRepositoryImpl{db: db}
}

func (r *boardRepositoryImpl) Create(ctx context.Context, board *domain.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

func (r *boardRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	var board domain.Board
	if err := r.db.WithContext(ctx).First(&board, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *boardRepositoryImpl) GetFull(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	var board domain.Board
	err := r.db.WithContext(ctx).
		Preload("Columns", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Columns.Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Columns.Tasks.Tags").
		Preload("Columns.Tasks.Subtasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Columns.Tasks.Attachments").
		First(&board, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *boardRepositoryImpl) ListFullByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Board, error) {
	var boards []domain.Board
	err := r.db.WithContext(ctx).
		Preload("Columns", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Columns.Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Columns.Tasks.Tags").
		Preload("Columns.Tasks.Subtasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Columns.Tasks.Attachments").
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&boards).Error
	if err != nil {
		return nil, err
	}
	return boards, nil
}

func (r *boardRepositoryImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Board, error) {
	var boards []domain.Board
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at ASC").Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

func (r *boardRepositoryImpl) List(ctx context.Context) ([]domain.Board, error) {
	var boards []domain.Board
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

func (r *boardRepositoryImpl) Update(ctx context.Context, board *domain.Board) error {
	return r.db.WithContext(ctx).Save(board).Error
}

func (r *boardRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteBoardCascade(tx, id)
	})
}

func (r *boardRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Board{}).Count(&count).Error
	return count, err
}

// deleteBoardCascade removes a board and all rows hanging off it.
// Explicit statements instead of database-level ON DELETE CASCADE keep
// the behavior identical across Postgres and the SQLite test driver.
func deleteBoardCascade(tx *gorm.DB, boardID uuid.UUID) error {
	var columnIDs []uuid.UUID
	if err := tx.Model(&domain.Column{}).Where("board_id = ?", boardID).Pluck("id", &columnIDs).Error; err != nil {
		return err
	}
	if len(columnIDs) > 0 {
		var taskIDs []uuid.UUID
		if err := tx.Model(&domain.Task{}).Where("column_id IN ?", columnIDs).Pluck("id", &taskIDs).Error; err != nil {
			return err
		}
		if len(taskIDs) > 0 {
			if err := deleteTaskChildren(tx, taskIDs); err != nil {
				return err
			}
			if err := tx.Where("column_id IN ?", columnIDs).Delete(&domain.Task{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("board_id = ?", boardID).Delete(&domain.Column{}).Error; err != nil {
			return err
		}
	}
	return tx.Delete(&domain.Board{}, "id = ?", boardID).Error
}

// deleteTaskChildren removes subtasks, comments, attachments, activity
// entries and tag links for the given tasks.
func deleteTaskChildren(tx *gorm.DB, taskIDs []uuid.UUID) error {
	if err := tx.Where("task_id IN ?", taskIDs).Delete(&domain.Subtask{}).Error; err != nil {
		return err
	}
	if err := tx.Where("task_id IN ?", taskIDs).Delete(&domain.ActivityLog{}).Error; err != nil {
		return err
	}
	if err := tx.Where("task_id IN ?", taskIDs).Delete(&domain.Comment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("task_id IN ?", taskIDs).Delete(&domain.Attachment{}).Error; err != nil {
		return err
	}
	return tx.Exec("DELETE FROM task_tags WHERE task_id IN ?", taskIDs).Error
}
