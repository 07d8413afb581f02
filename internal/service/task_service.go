package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kanban-api/internal/domain"
	"kanban-api/internal/dto"
	"kanban-api/internal/realtime"
	"kanban-api/internal/repository"
	"kanban-api/internal/response"
)

// TaskMetrics receives task counters
type TaskMetrics interface {
	RecordTaskCreated()
	RecordTaskMoved()
	RecordReorder(kind string)
	RecordReorderReject(kind string)
}

// TaskService manages tasks, their patch semantics and ordering
type TaskService interface {
	CreateTask(ctx context.Context, actor Actor, req *dto.CreateTaskRequest) (*domain.Task, error)
	GetTask(ctx context.Context, actor Actor, taskID uuid.UUID) (*domain.Task, error)
	// UpdateTask applies a partial update. Absent fields stay
	// untouched, an explicit dueDate null clears the date, and a
	// supplied tagIds list fully replaces the tag set. The audit
	// trail is derived by diffing the pre-image against the patch.
	UpdateTask(ctx context.Context, actor Actor, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*domain.Task, error)
	DeleteTask(ctx context.Context, actor Actor, taskID uuid.UUID) error
	// ReorderTasks accepts a permutation of the column's task IDs
	// and rewrites every position atomically.
	ReorderTasks(ctx context.Context, actor Actor, columnID uuid.UUID, req *dto.ReorderTasksRequest) error
	ListActivity(ctx context.Context, actor Actor, taskID uuid.UUID) ([]domain.ActivityLog, error)
}

type taskServiceImpl struct {
	taskRepo   repository.TaskRepository
	columnRepo repository.ColumnRepository
	boardRepo  repository.BoardRepository
	tagRepo    repository.TagRepository
	activity   ActivityService
	notifier   Notifier
	logger     *zap.Logger
	metrics    TaskMetrics
}

// NewTaskService creates the task service
func NewTaskService(
	taskRepo repository.TaskRepository,
	columnRepo repository.ColumnRepository,
	boardRepo repository.BoardRepository,
	tagRepo repository.TagRepository,
	activity ActivityService,
	notifier Notifier,
	logger *zap.Logger,
	metrics TaskMetrics,
) TaskService {
	return &taskServiceImpl{
		taskRepo:   taskRepo,
		columnRepo: columnRepo,
		boardRepo:  boardRepo,
		tagRepo:    tagRepo,
		activity:   activity,
		notifier:   notifier,
		logger:     logger,
		metrics:    metrics,
	}
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, actor Actor, req *dto.CreateTaskRequest) (*domain.Task, error) {
	column, err := s.columnRepo.GetByID(ctx, req.ColumnID)
	if err != nil {
		return nil, err
	}
	if _, err := s.accessBoard(ctx, actor, column.BoardID); err != nil {
		return nil, err
	}

	priority := domain.PriorityLow
	if req.Priority != "" {
		priority = domain.TaskPriority(req.Priority)
		if !domain.ValidPriority(priority) {
			return nil, response.NewValidationError("invalid priority", req.Priority)
		}
	}

	tags, err := s.resolveTags(ctx, req.TagIDs)
	if err != nil {
		return nil, err
	}

	count, err := s.taskRepo.CountByColumn(ctx, column.ID)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		Content:  req.Content,
		Priority: priority,
		Position: int(count),
		ColumnID: column.ID,
		Tags:     tags,
	}
	if req.DueDate.Set {
		task.DueDate = req.DueDate.Value
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.metrics.RecordTaskCreated()
	s.activity.Record(ctx, ActivityEntry{
		Action: "created task",
		TaskID: task.ID,
		UserID: actor.ID,
	})
	s.notifier.Broadcast(realtime.BoardEvent{Action: "createTask", TaskID: task.ID.String()})
	return task, nil
}

func (s *taskServiceImpl) GetTask(ctx context.Context, actor Actor, taskID uuid.UUID) (*domain.Task, error) {
	task, _, err := s.taskForActor(ctx, actor, taskID)
	return task, err
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, actor Actor, taskID uuid.UUID, req *dto.UpdateTaskRequest) (*domain.Task, error) {
	task, board, err := s.taskForActor(ctx, actor, taskID)
	if err != nil {
		return nil, err
	}

	if req.Priority != nil && !domain.ValidPriority(domain.TaskPriority(*req.Priority)) {
		return nil, response.NewValidationError("invalid priority", *req.Priority)
	}

	// Resolve the destination before diffing: the audit line carries
	// the destination column's title.
	var destColumn *domain.Column
	if req.ColumnID != nil && *req.ColumnID != task.ColumnID {
		destColumn, err = s.columnRepo.GetByID(ctx, *req.ColumnID)
		if err != nil {
			return nil, err
		}
		if destColumn.BoardID != board.ID {
			return nil, response.NewValidationError("cannot move task to another board", "")
		}
	}

	var destTitle string
	if destColumn != nil {
		destTitle = destColumn.Title
	}
	events := diffTask(task, req, destTitle)

	if req.Content != nil {
		task.Content = *req.Content
	}
	if req.Priority != nil {
		task.Priority = domain.TaskPriority(*req.Priority)
	}
	if req.DueDate.Set {
		task.DueDate = req.DueDate.Value
	}

	if destColumn != nil {
		// Moved tasks append at the end of the destination column.
		count, err := s.taskRepo.CountByColumn(ctx, destColumn.ID)
		if err != nil {
			return nil, err
		}
		if err := s.taskRepo.Move(ctx, task.ID, destColumn.ID, int(count)); err != nil {
			return nil, err
		}
		// Keep the in-memory copy consistent so the Save below does
		// not clobber what Move just wrote.
		task.ColumnID = destColumn.ID
		task.Position = int(count)
		s.metrics.RecordTaskMoved()
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	if req.TagIDs != nil {
		tags, err := s.resolveTags(ctx, dedupeIDs(*req.TagIDs))
		if err != nil {
			return nil, err
		}
		if err := s.taskRepo.ReplaceTags(ctx, task, tags); err != nil {
			return nil, err
		}
		task.Tags = tags
	}

	// Each audit condition fires independently, after the update
	// committed. A failed log write never fails the mutation.
	for _, event := range events {
		s.activity.Record(ctx, ActivityEntry{
			Action:  event.Action,
			Details: event.Details,
			TaskID:  task.ID,
			UserID:  actor.ID,
		})
	}
	s.notifier.Broadcast(realtime.BoardEvent{Action: "updateTask", TaskID: task.ID.String()})
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, actor Actor, taskID uuid.UUID) error {
	task, _, err := s.taskForActor(ctx, actor, taskID)
	if err != nil {
		return err
	}
	// No audit entry for the delete itself: the trail is keyed by the
	// task row, which is about to disappear.
	if err := s.taskRepo.Delete(ctx, task.ID); err != nil {
		return err
	}
	s.notifier.Broadcast(realtime.BoardEvent{Action: "deleteTask", TaskID: task.ID.String()})
	return nil
}

func (s *taskServiceImpl) ReorderTasks(ctx context.Context, actor Actor, columnID uuid.UUID, req *dto.ReorderTasksRequest) error {
	column, err := s.columnRepo.GetByID(ctx, columnID)
	if err != nil {
		return err
	}
	if _, err := s.accessBoard(ctx, actor, column.BoardID); err != nil {
		return err
	}

	existing, err := s.taskRepo.ListByColumn(ctx, column.ID)
	if err != nil {
		return err
	}
	existingIDs := make([]uuid.UUID, len(existing))
	for i, t := range existing {
		existingIDs[i] = t.ID
	}

	if mismatch := validateReorder(existingIDs, req.TaskIDs); mismatch != "" {
		s.metrics.RecordReorderReject("tasks")
		return response.NewInvalidOrderError(mismatch)
	}

	if err := s.taskRepo.Reorder(ctx, req.TaskIDs); err != nil {
		return err
	}
	s.metrics.RecordReorder("tasks")
	return nil
}

func (s *taskServiceImpl) ListActivity(ctx context.Context, actor Actor, taskID uuid.UUID) ([]domain.ActivityLog, error) {
	task, _, err := s.taskForActor(ctx, actor, taskID)
	if err != nil {
		return nil, err
	}
	return s.activity.ListByTask(ctx, task.ID)
}

// taskForActor loads a task with its relations and checks that the
// actor may touch the board it lives in.
func (s *taskServiceImpl) taskForActor(ctx context.Context, actor Actor, taskID uuid.UUID) (*domain.Task, *domain.Board, error) {
	task, err := s.taskRepo.GetWithRelations(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}
	column := task.Column
	if column == nil {
		column, err = s.columnRepo.GetByID(ctx, task.ColumnID)
		if err != nil {
			return nil, nil, err
		}
	}
	board, err := s.accessBoard(ctx, actor, column.BoardID)
	if err != nil {
		return nil, nil, err
	}
	return task, board, nil
}

func (s *taskServiceImpl) accessBoard(ctx context.Context, actor Actor, boardID uuid.UUID) (*domain.Board, error) {
	board, err := s.boardRepo.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessBoard(board) {
		return nil, response.NewForbiddenError("board belongs to another user")
	}
	return board, nil
}

// resolveTags validates that every requested tag exists
func (s *taskServiceImpl) resolveTags(ctx context.Context, ids []uuid.UUID) ([]domain.Tag, error) {
	if len(ids) == 0 {
		return []domain.Tag{}, nil
	}
	ids = dedupeIDs(ids)
	tags, err := s.tagRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, response.NewValidationError("one or more tags do not exist", "")
	}
	return tags, nil
}
