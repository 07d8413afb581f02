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

// BoardService assembles board aggregates and manages board records
type BoardService interface {
	// GetBoards returns every board of one owner as a full aggregate:
	// columns ordered by position, tasks ordered by position, each
	// task joined with its tags, subtasks and attachments. The
	// userID parameter selects another owner and is honored only for
	// an admin caller; everyone else gets their own boards.
	GetBoards(ctx context.Context, actor Actor, userID *uuid.UUID) ([]domain.Board, error)
	GetBoard(ctx context.Context, actor Actor, boardID uuid.UUID) (*domain.Board, error)
	// CreateBoard creates an empty board. Starter columns are seeded
	// only for the default board made at account provisioning.
	CreateBoard(ctx context.Context, actor Actor, req *dto.CreateBoardRequest) (*domain.Board, error)
	UpdateBoard(ctx context.Context, actor Actor, boardID uuid.UUID, req *dto.UpdateBoardRequest) (*domain.Board, error)
	DeleteBoard(ctx context.Context, actor Actor, boardID uuid.UUID) error
}

type boardServiceImpl struct {
	boardRepo repository.BoardRepository
	logger    *zap.Logger
}

// NewBoardService creates the board service
func NewBoardService(boardRepo repository.BoardRepository, logger *zap.Logger) BoardService {
	return &boardServiceImpl{boardRepo: boardRepo, logger: logger}
}

func (s *boardServiceImpl) GetBoards(ctx context.Context, actor Actor, userID *uuid.UUID) ([]domain.Board, error) {
	target := actor.ID
	if userID != nil && actor.IsAdmin() {
		target = *userID
	}
	return s.boardRepo.ListFullByOwner(ctx, target)
}

func (s *boardServiceImpl) GetBoard(ctx context.Context, actor Actor, boardID uuid.UUID) (*domain.Board, error) {
	board, err := s.boardRepo.GetFull(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessBoard(board) {
		return nil, response.NewForbiddenError("board belongs to another user")
	}
	return board, nil
}

func (s *boardServiceImpl) CreateBoard(ctx context.Context, actor Actor, req *dto.CreateBoardRequest) (*domain.Board, error) {
	board := &domain.Board{
		Title:   req.Title,
		OwnerID: actor.ID,
	}
	if err := s.boardRepo.Create(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

func (s *boardServiceImpl) UpdateBoard(ctx context.Context, actor Actor, boardID uuid.UUID, req *dto.UpdateBoardRequest) (*domain.Board, error) {
	board, err := s.boardRepo.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessBoard(board) {
		return nil, response.NewForbiddenError("board belongs to another user")
	}

	board.Title = req.Title
	if err := s.boardRepo.Update(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

func (s *boardServiceImpl) DeleteBoard(ctx context.Context, actor Actor, boardID uuid.UUID) error {
	board, err := s.boardRepo.GetByID(ctx, boardID)
	if err != nil {
		return err
	}
	if !actor.CanAccessBoard(board) {
		return response.NewForbiddenError("board belongs to another user")
	}
	return s.boardRepo.Delete(ctx, board.ID)
}

// defaultBoard builds the starter board every new account receives
func defaultBoard(owner *domain.User) *domain.Board {
	board := &domain.Board{
		Title:   "Tablero de " + owner.Name,
		OwnerID: owner.ID,
	}
	for i, title := range domain.DefaultColumnNames {
		board.Columns = append(board.Columns, domain.Column{Title: title, Position: i})
	}
	return board
}
