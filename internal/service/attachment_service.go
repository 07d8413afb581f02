package service

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kanban-api/internal/client"
	"kanban-api/internal/domain"
	"kanban-api/internal/realtime"
	"kanban-api/internal/repository"
	"kanban-api/internal/response"
)

// maxAttachmentSize caps uploads at 10 MiB
const maxAttachmentSize = 10 << 20

// AttachmentService stores and removes task attachments
type AttachmentService interface {
	Upload(ctx context.Context, actor Actor, taskID uuid.UUID, fileName, contentType string, size int64, body io.Reader) (*domain.Attachment, error)
	// Delete removes the database row first and then the stored
	// bytes. A failed object deletion is logged and swept up later
	// rather than failing the request.
	Delete(ctx context.Context, actor Actor, attachmentID uuid.UUID) error
}

type attachmentServiceImpl struct {
	attachmentRepo repository.AttachmentRepository
	taskRepo       repository.TaskRepository
	columnRepo     repository.ColumnRepository
	boardRepo      repository.BoardRepository
	store          client.FileStore
	notifier       Notifier
	logger         *zap.Logger
}

// NewAttachmentService creates the attachment service
func NewAttachmentService(
	attachmentRepo repository.AttachmentRepository,
	taskRepo repository.TaskRepository,
	columnRepo repository.ColumnRepository,
	boardRepo repository.BoardRepository,
	store client.FileStore,
	notifier Notifier,
	logger *zap.Logger,
) AttachmentService {
	return &attachmentServiceImpl{
		attachmentRepo: attachmentRepo,
		taskRepo:       taskRepo,
		columnRepo:     columnRepo,
		boardRepo:      boardRepo,
		store:          store,
		notifier:       notifier,
		logger:         logger,
	}
}

func (s *attachmentServiceImpl) taskForActor(ctx context.Context, actor Actor, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("task not found")
		}
		return nil, err
	}
	column, err := s.columnRepo.GetByID(ctx, task.ColumnID)
	if err != nil {
		return nil, err
	}
	board, err := s.boardRepo.GetByID(ctx, column.BoardID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessBoard(board) {
		return nil, response.NewForbiddenError("board belongs to another user")
	}
	return task, nil
}

func (s *attachmentServiceImpl) Upload(ctx context.Context, actor Actor, taskID uuid.UUID, fileName, contentType string, size int64, body io.Reader) (*domain.Attachment, error) {
	task, err := s.taskForActor(ctx, actor, taskID)
	if err != nil {
		return nil, err
	}
	if size <= 0 || size > maxAttachmentSize {
		return nil, response.NewValidationError("file size must be between 1 byte and 10 MiB", "")
	}

	key := s.store.GenerateKey(fileName)
	if err := s.store.Upload(ctx, key, body, size, contentType); err != nil {
		s.logger.Error("attachment upload failed", zap.String("key", key), zap.Error(err))
		return nil, response.NewInternalError("could not store file")
	}

	attachment := &domain.Attachment{
		FileName:   fileName,
		StorageKey: key,
		Size:       size,
		MimeType:   contentType,
		TaskID:     task.ID,
	}
	if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
		// Roll the stored object back so it does not leak.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.logger.Warn("orphaned object after failed create", zap.String("key", key), zap.Error(delErr))
		}
		return nil, err
	}

	s.notifier.Broadcast(realtime.BoardEvent{Action: "updateTask", TaskID: task.ID.String()})
	return attachment, nil
}

func (s *attachmentServiceImpl) Delete(ctx context.Context, actor Actor, attachmentID uuid.UUID) error {
	attachment, err := s.attachmentRepo.GetByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("attachment not found")
		}
		return err
	}
	if _, err := s.taskForActor(ctx, actor, attachment.TaskID); err != nil {
		return err
	}

	if err := s.attachmentRepo.Delete(ctx, attachmentID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, attachment.StorageKey); err != nil {
		s.logger.Warn("stored object deletion failed, leaving for sweep",
			zap.String("key", attachment.StorageKey), zap.Error(err))
	}

	s.notifier.Broadcast(realtime.BoardEvent{Action: "updateTask", TaskID: attachment.TaskID.String()})
	return nil
}
