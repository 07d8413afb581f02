package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kanban-api/internal/domain"
	"kanban-api/internal/dto"
	"kanban-api/internal/realtime"
	"kanban-api/internal/repository"
	"kanban-api/internal/response"
)

const (
	defaultCommentLimit = 20
	maxCommentLimit     = 100
)

// CommentService manages comments on tasks
type CommentService interface {
	CreateComment(ctx context.Context, actor Actor, taskID uuid.UUID, req *dto.CreateCommentRequest) (*domain.Comment, error)
	// ListComments returns one page, newest first
	ListComments(ctx context.Context, actor Actor, taskID uuid.UUID, page, limit int) (*dto.CommentPage, error)
	// DeleteComment allows the author or an admin to remove a comment
	DeleteComment(ctx context.Context, actor Actor, commentID uuid.UUID) error
}

type commentServiceImpl struct {
	commentRepo repository.CommentRepository
	taskRepo    repository.TaskRepository
	columnRepo  repository.ColumnRepository
	boardRepo   repository.BoardRepository
	notifier    Notifier
	logger      *zap.Logger
}

// NewCommentService creates the comment service
func NewCommentService(
	commentRepo repository.CommentRepository,
	taskRepo repository.TaskRepository,
	columnRepo repository.ColumnRepository,
	boardRepo repository.BoardRepository,
	notifier Notifier,
	logger *zap.Logger,
) CommentService {
	return &commentServiceImpl{
		commentRepo: commentRepo,
		taskRepo:    taskRepo,
		columnRepo:  columnRepo,
		boardRepo:   boardRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

func (s *commentServiceImpl) taskForActor(ctx context.Context, actor Actor, taskID uuid.UUID) (*domain.Task, error) {
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

func (s *commentServiceImpl) CreateComment(ctx context.Context, actor Actor, taskID uuid.UUID, req *dto.CreateCommentRequest) (*domain.Comment, error) {
	task, err := s.taskForActor(ctx, actor, taskID)
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		Content:  req.Content,
		TaskID:   task.ID,
		AuthorID: actor.ID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.notifier.Broadcast(realtime.BoardEvent{Action: "updateTask", TaskID: task.ID.String()})
	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *commentServiceImpl) ListComments(ctx context.Context, actor Actor, taskID uuid.UUID, page, limit int) (*dto.CommentPage, error) {
	if _, err := s.taskForActor(ctx, actor, taskID); err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultCommentLimit
	}
	if limit > maxCommentLimit {
		limit = maxCommentLimit
	}

	comments, total, err := s.commentRepo.ListByTask(ctx, taskID, page, limit)
	if err != nil {
		return nil, err
	}
	return &dto.CommentPage{Comments: comments, Total: total, Page: page, Limit: limit}, nil
}

func (s *commentServiceImpl) DeleteComment(ctx context.Context, actor Actor, commentID uuid.UUID) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("comment not found")
		}
		return err
	}
	if comment.AuthorID != actor.ID && !actor.IsAdmin() {
		return response.NewForbiddenError("only the author or an admin can delete a comment")
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return err
	}

	s.notifier.Broadcast(realtime.BoardEvent{Action: "updateTask", TaskID: comment.TaskID.String()})
	return nil
}
