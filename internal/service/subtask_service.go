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

// SubtaskService manages checklist items on tasks
type SubtaskService interface {
	CreateSubtask(ctx context.Context, actor Actor, taskID uuid.UUID, req *dto.CreateSubtaskRequest) (*domain.Subtask, error)
	UpdateSubtask(ctx context.Context, actor Actor, subtaskID uuid.UUID, req *dto.UpdateSubtaskRequest) (*domain.Subtask, error)
	DeleteSubtask(ctx context.Context, actor Actor, subtaskID uuid.UUID) error
}

type subtaskServiceImpl struct {
	subtaskRepo repository.SubtaskRepository
	taskRepo    repository.TaskRepository
	columnRepo  repository.ColumnRepository
	boardRepo   repository.BoardRepository
	notifier    Notifier
	logger      *zap.Logger
}

// NewSubtaskService creates the subtask service
func NewSubtaskService(
	subtaskRepo repository.SubtaskRepository,
	taskRepo repository.TaskRepository,
	columnRepo repository.ColumnRepository,
	boardRepo repository.BoardRepository,
	notifier Notifier,
	logger *zap.Logger,
) SubtaskService {
	return &subtaskServiceImpl{
		subtaskRepo: subtaskRepo,
		taskRepo:    taskRepo,
		columnRepo:  columnRepo,
		boardRepo:   boardRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// taskForActor resolves a task and checks the actor may touch its board
func (s *subtaskServiceImpl) taskForActor(ctx context.Context, actor Actor, taskID uuid.UUID) (*domain.Task, error) {
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

func (s *subtaskServiceImpl) CreateSubtask(ctx context.Context, actor Actor, taskID uuid.UUID, req *dto.CreateSubtaskRequest) (*domain.Subtask, error) {
	task, err := s.taskForActor(ctx, actor, taskID)
	if err != nil {
		return nil, err
	}

	subtask := &domain.Subtask{
		Content: req.Content,
		TaskID: task.ID,
	}
	if err := s.subtaskRepo.Create(ctx, subtask); err != nil {
		return nil, err
	}

	s.notifier.Broadcast(realtime.BoardEvent{Action: "updateTask", TaskID: task.ID.String()})
	return subtask, nil
}

func (s *subtaskServiceImpl) UpdateSubtask(ctx context.Context, actor Actor, subtaskID uuid.UUID, req *dto.UpdateSubtaskRequest) (*domain.Subtask, error) {
	subtask, err := s.subtaskRepo.GetByID(ctx, subtaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("subtask not found")
		}
		return nil, err
	}
	if _, err := s.taskForActor(ctx, actor, subtask.TaskID); err != nil {
		return nil, err
	}

	if req.Content != nil {
		subtask.Content = *req.Content
	}
	if req.IsCompleted != nil {
		subtask.IsCompleted = *req.IsCompleted
	}
	if err := s.subtaskRepo.Update(ctx, subtask); err != nil {
		return nil, err
	}

	s.notifier.Broadcast(realtime.BoardEvent{Action: "updateTask", TaskID: subtask.TaskID.String()})
	return subtask, nil
}

func (s *subtaskServiceImpl) DeleteSubtask(ctx context.Context, actor Actor, subtaskID uuid.UUID) error {
	subtask, err := s.subtaskRepo.GetByID(ctx, subtaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("subtask not found")
		}
		return err
	}
	if _, err := s.taskForActor(ctx, actor, subtask.TaskID); err != nil {
		return err
	}

	if err := s.subtaskRepo.Delete(ctx, subtaskID); err != nil {
		return err
	}

	s.notifier.Broadcast(realtime.BoardEvent{Action: "updateTask", TaskID: subtask.TaskID.String()})
	return nil
}
