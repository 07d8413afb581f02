package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kanban-api/internal/domain"
)

// AttachmentRepository handles attachment persistence
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *domain.Attachment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]domain.Attachment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ListOrphaned returns attachments whose task no longer exists
	ListOrphaned(ctx context.Context) ([]domain.Attachment, error)
}

type attachmentRepositoryImpl struct {
	db *gorm.DB
}

// NewAttachmentRepository creates an attachment repository
func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepositoryImpl{db: db}
}

func (r *attachmentRepositoryImpl) Create(ctx context.Context, attachment *domain.Attachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

func (r *attachmentRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error) {
	var attachment domain.Attachment
	if err := r.db.WithContext(ctx).First(&attachment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (r *attachmentRepositoryImpl) ListByTask(ctx context.Context, taskID uuid.UUID) ([]domain.Attachment, error) {
	var attachments []domain.Attachment
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Order("created_at ASC").Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

func (r *attachmentRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Attachment{}, "id = ?", id).Error
}

func (r *attachmentRepositoryImpl) ListOrphaned(ctx context.Context) ([]domain.Attachment, error) {
	var attachments []domain.Attachment
	err := r.db.WithContext(ctx).
		Where("task_id NOT IN (?)", r.db.Model(&domain.Task{}).Select("id")).
		Find(&attachments).Error
	if err != nil {
		return nil, err
	}
	return attachments, nil
}
