package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kanban-api/internal/domain"
	"kanban-api/internal/dto"
	"kanban-api/internal/repository"
	"kanban-api/internal/response"
)

// ColumnMetrics receives ordering counters
type ColumnMetrics interface {
	RecordReorder(kind string)
	RecordReorderReject(kind string)
}

// ColumnService manages columns and their ordering inside a board
type ColumnService interface {
	// CreateColumn appends a column at position = current count.
	// Existing columns are never renumbered by an insert.
	CreateColumn(ctx context.Context, actor Actor, boardID uuid.UUID, req *dto.CreateColumnRequest) (*domain.Column, error)
	UpdateColumn(ctx context.Context, actor Actor, columnID uuid.UUID, req *dto.UpdateColumnRequest) (*domain.Column, error)
	DeleteColumn(ctx context.Context, actor Actor, columnID uuid.UUID) error
	// ReorderColumns accepts the complete ordered ID list of one
	// board's columns and rewrites every position atomically. The
	// board is derived from the submitted IDs; any mismatch with the
	// board's current column set rejects the whole request.
	ReorderColumns(ctx context.Context, actor Actor, req *dto.ReorderColumnsRequest) error
}

type columnServiceImpl struct {
	columnRepo repository.ColumnRepository
	boardRepo  repository.BoardRepository
	logger     *zap.Logger
	metrics    ColumnMetrics
}

// NewColumnService creates the column service
func NewColumnService(
	columnRepo repository.ColumnRepository,
	boardRepo repository.BoardRepository,
	logger *zap.Logger,
	metrics ColumnMetrics,
) ColumnService {
	return &columnServiceImpl{
		columnRepo: columnRepo,
		boardRepo:  boardRepo,
		logger:     logger,
		metrics:    metrics,
	}
}

func (s *columnServiceImpl) CreateColumn(ctx context.Context, actor Actor, boardID uuid.UUID, req *dto.CreateColumnRequest) (*domain.Column, error) {
	board, err := s.accessBoard(ctx, actor, boardID)
	if err != nil {
		return nil, err
	}

	count, err := s.columnRepo.CountByBoard(ctx, board.ID)
	if err != nil {
		return nil, err
	}

	column := &domain.Column{
		Title:    req.Title,
		Position: int(count),
		BoardID:  board.ID,
	}
	if err := s.columnRepo.Create(ctx, column); err != nil {
		return nil, err
	}
	return column, nil
}

func (s *columnServiceImpl) UpdateColumn(ctx context.Context, actor Actor, columnID uuid.UUID, req *dto.UpdateColumnRequest) (*domain.Column, error) {
	column, err := s.columnRepo.GetByID(ctx, columnID)
	if err != nil {
		return nil, err
	}
	if _, err := s.accessBoard(ctx, actor, column.BoardID); err != nil {
		return nil, err
	}

	column.Title = req.Title
	if err := s.columnRepo.Update(ctx, column); err != nil {
		return nil, err
	}
	return column, nil
}

func (s *columnServiceImpl) DeleteColumn(ctx context.Context, actor Actor, columnID uuid.UUID) error {
	column, err := s.columnRepo.GetByID(ctx, columnID)
	if err != nil {
		return err
	}
	if _, err := s.accessBoard(ctx, actor, column.BoardID); err != nil {
		return err
	}
	return s.columnRepo.Delete(ctx, column.ID)
}

func (s *columnServiceImpl) ReorderColumns(ctx context.Context, actor Actor, req *dto.ReorderColumnsRequest) error {
	if len(req.ColumnIDs) == 0 {
		return response.NewValidationError("columnIds cannot be empty", "")
	}

	submitted, err := s.columnRepo.GetByIDs(ctx, req.ColumnIDs)
	if err != nil {
		return err
	}
	if len(submitted) == 0 {
		s.metrics.RecordReorderReject("columns")
		return response.NewInvalidOrderError("no matching columns")
	}

	// The board is whatever the first submitted column belongs to;
	// the set-equality check below flags IDs from any other board.
	board, err := s.accessBoard(ctx, actor, submitted[0].BoardID)
	if err != nil {
		return err
	}

	existing, err := s.columnRepo.ListByBoard(ctx, board.ID)
	if err != nil {
		return err
	}
	existingIDs := make([]uuid.UUID, len(existing))
	for i, c := range existing {
		existingIDs[i] = c.ID
	}

	if mismatch := validateReorder(existingIDs, req.ColumnIDs); mismatch != "" {
		s.metrics.RecordReorderReject("columns")
		return response.NewInvalidOrderError(mismatch)
	}

	if err := s.columnRepo.Reorder(ctx, req.ColumnIDs); err != nil {
		return err
	}
	s.metrics.RecordReorder("columns")
	return nil
}

func (s *columnServiceImpl) accessBoard(ctx context.Context, actor Actor, boardID uuid.UUID) (*domain.Board, error) {
	board, err := s.boardRepo.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessBoard(board) {
		return nil, response.NewForbiddenError("board belongs to another user")
	}
	return board, nil
}
