package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kanban-api/internal/client"
	"kanban-api/internal/domain"
	"kanban-api/internal/dto"
	"kanban-api/internal/repository"
	"kanban-api/internal/response"
)

// AuthService handles account registration and login
type AuthService interface {
	// Register creates an account and seeds its default board with
	// the starter columns.
	Register(ctx context.Context, req *dto.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authServiceImpl struct {
	userRepo  repository.UserRepository
	boardRepo repository.BoardRepository
	verifier  client.CredentialVerifier
	secret    string
	expiresIn time.Duration
	logger    *zap.Logger
}

// NewAuthService creates the auth service
func NewAuthService(
	userRepo repository.UserRepository,
	boardRepo repository.BoardRepository,
	verifier client.CredentialVerifier,
	secret string,
	expiresIn time.Duration,
	logger *zap.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:  userRepo,
		boardRepo: boardRepo,
		verifier:  verifier,
		secret:    secret,
		expiresIn: expiresIn,
		logger:    logger,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*domain.User, error) {
	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, response.NewAppError(response.ErrCodeAlreadyExists, "email already registered", "")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := s.verifier.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     domain.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.boardRepo.Create(ctx, defaultBoard(user)); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same answer for an unknown account and a wrong
			// password, so the response does not leak which
			// emails exist.
			return nil, response.NewUnauthorizedError("invalid credentials")
		}
		return nil, err
	}

	if !s.verifier.Verify(req.Password, user.Password) {
		return nil, response.NewUnauthorizedError("invalid credentials")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:  token,
		Name:   user.Name,
		Role:   string(user.Role),
		UserID: user.ID,
	}, nil
}

func (s *authServiceImpl) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    string(user.Role),
		"iat":     now.Unix(),
		"exp":     now.Add(s.expiresIn).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}
