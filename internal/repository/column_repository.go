package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kanban-api/internal/domain"
)

// ColumnRepository handles column persistence and ordering
type ColumnRepository interface {
	Create(ctx context.Context, column *domain.Column) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Column, error)
	ListByBoard(ctx context.Context, boardID uuid.UUID) ([]domain.Column, error)
	CountByBoard(ctx context.Context, boardID uuid.UUID) (int64, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Column, error)
	Update(ctx context.Context, column *domain.Column) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Reorder atomically rewrites positions so that each column takes
	// the position of its index in the given slice.
	Reorder(ctx context.Context, columnIDs []uuid.UUID) error
}

type columnRepositoryImpl struct {
	db *gorm.DB
}

// NewColumnRepository creates a column repository
func NewColumnRepository(db *gorm.DB) ColumnRepository {
	return &columnRepositoryImpl{db: db}
}

func (r *columnRepositoryImpl) Create(ctx context.Context, column *domain.Column) error {
	return r.db.WithContext(ctx).Create(column).Error
}

func (r *columnRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Column, error) {
	var column domain.Column
	if err := r.db.WithContext(ctx).First(&column, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &column, nil
}

func (r *columnRepositoryImpl) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]domain.Column, error) {
	var columns []domain.Column
	if err := r.db.WithContext(ctx).Where("board_id = ?", boardID).Order("position ASC").Find(&columns).Error; err != nil {
		return nil, err
	}
	return columns, nil
}

func (r *columnRepositoryImpl) CountByBoard(ctx context.Context, boardID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Column{}).Where("board_id = ?", boardID).Count(&count).Error
	return count, err
}

func (r *columnRepositoryImpl) Update(ctx context.Context, column *domain.Column) error {
	return r.db.WithContext(ctx).Save(column).Error
}

// Delete removes the column and every task inside it. Remaining
// columns are not renumbered: position is a ranking key, gaps are
// tolerated until the next full reorder.
func (r *columnRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taskIDs []uuid.UUID
		if err := tx.Model(&domain.Task{}).Where("column_id = ?", id).Pluck("id", &taskIDs).Error; err != nil {
			return err
		}
		if len(taskIDs) > 0 {
			if err := deleteTaskChildren(tx, taskIDs); err != nil {
				return err
			}
			if err := tx.Where("column_id = ?", id).Delete(&domain.Task{}).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&domain.Column{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// GetByIDs loads the given columns in no particular order
func (r *columnRepositoryImpl) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Column, error) {
	var columns []domain.Column
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&columns).Error; err != nil {
		return nil, err
	}
	return columns, nil
}

func (r *columnRepositoryImpl) Reorder(ctx context.Context, columnIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range columnIDs {
			if err := tx.Model(&domain.Column{}).Where("id = ?", id).
				UpdateColumn("position", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
