package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kanban-api/internal/client"
	"kanban-api/internal/domain"
	"kanban-api/internal/dto"
	"kanban-api/internal/repository"
	"kanban-api/internal/response"
)

// UserService manages accounts and the admin surface
type UserService interface {
	GetUser(ctx context.Context, actor Actor, userID uuid.UUID) (*domain.User, error)
	ListUsers(ctx context.Context, actor Actor) ([]domain.User, error)
	// CreateUser provisions an account on someone's behalf. Admin
	// only. The new user gets the same default board as self-service
	// registration.
	CreateUser(ctx context.Context, actor Actor, req *dto.CreateUserRequest) (*domain.User, error)
	// ResetPassword replaces a user's password. Admin only.
	ResetPassword(ctx context.Context, actor Actor, userID uuid.UUID, req *dto.ResetPasswordRequest) error
	// UpdateProfile renames the caller and optionally changes their
	// own password.
	UpdateProfile(ctx context.Context, actor Actor, req *dto.UpdateProfileRequest) (*domain.User, error)
	DeleteUser(ctx context.Context, actor Actor, userID uuid.UUID) error
	Stats(ctx context.Context, actor Actor) (*dto.AdminStats, error)
}

type userServiceImpl struct {
	userRepo  repository.UserRepository
	boardRepo repository.BoardRepository
	taskRepo  repository.TaskRepository
	verifier  client.CredentialVerifier
	logger    *zap.Logger
}

// NewUserService creates the user service
func NewUserService(
	userRepo repository.UserRepository,
	boardRepo repository.BoardRepository,
	taskRepo repository.TaskRepository,
	verifier client.CredentialVerifier,
	logger *zap.Logger,
) UserService {
	return &userServiceImpl{
		userRepo:  userRepo,
		boardRepo: boardRepo,
		taskRepo:  taskRepo,
		verifier:  verifier,
		logger:    logger,
	}
}

func (s *userServiceImpl) GetUser(ctx context.Context, actor Actor, userID uuid.UUID) (*domain.User, error) {
	if userID != actor.ID && !actor.IsAdmin() {
		return nil, response.NewForbiddenError("cannot view another user")
	}
	return s.userRepo.GetByID(ctx, userID)
}

func (s *userServiceImpl) ListUsers(ctx context.Context, actor Actor) ([]domain.User, error) {
	if !actor.IsAdmin() {
		return nil, response.NewForbiddenError("admin only")
	}
	return s.userRepo.List(ctx)
}

func (s *userServiceImpl) CreateUser(ctx context.Context, actor Actor, req *dto.CreateUserRequest) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, response.NewForbiddenError("admin only")
	}
	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, response.NewAppError(response.ErrCodeAlreadyExists, "email already registered", "")
	}

	hash, err := s.verifier.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	role := domain.RoleUser
	if req.Role != "" {
		role = domain.UserRole(req.Role)
	}
	user := &domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := s.boardRepo.Create(ctx, defaultBoard(user)); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userServiceImpl) ResetPassword(ctx context.Context, actor Actor, userID uuid.UUID, req *dto.ResetPasswordRequest) error {
	if !actor.IsAdmin() {
		return response.NewForbiddenError("admin only")
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	hash, err := s.verifier.Hash(req.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hash
	return s.userRepo.Update(ctx, user)
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, actor Actor, req *dto.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	if req.Password != nil {
		hash, err := s.verifier.Hash(*req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userServiceImpl) DeleteUser(ctx context.Context, actor Actor, userID uuid.UUID) error {
	if !actor.IsAdmin() {
		return response.NewForbiddenError("admin only")
	}
	if userID == actor.ID {
		return response.NewValidationError("cannot delete your own account", "")
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}

func (s *userServiceImpl) Stats(ctx context.Context, actor Actor) (*dto.AdminStats, error) {
	if !actor.IsAdmin() {
		return nil, response.NewForbiddenError("admin only")
	}

	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalBoards, err := s.boardRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalTasks, err := s.taskRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	byPriority, err := s.taskRepo.CountByPriority(ctx)
	if err != nil {
		return nil, err
	}
	priorities := make([]dto.PriorityCount, 0, len(byPriority))
	for _, p := range []domain.TaskPriority{domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh} {
		if n, ok := byPriority[p]; ok {
			priorities = append(priorities, dto.PriorityCount{Priority: string(p), Count: n})
		}
	}

	byOwner, err := s.taskRepo.CountByOwner(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	byUser := make([]dto.UserTaskCount, 0, len(byOwner))
	for _, u := range users {
		if n, ok := byOwner[u.ID]; ok {
			byUser = append(byUser, dto.UserTaskCount{UserID: u.ID, Name: u.Name, Count: n})
		}
	}

	return &dto.AdminStats{
		TotalUsers:      totalUsers,
		TotalBoards:     totalBoards,
		TotalTasks:      totalTasks,
		TasksByPriority: priorities,
		TasksByUser:     byUser,
	}, nil
}
