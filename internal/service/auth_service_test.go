package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kanban-api/internal/client"
	"kanban-api/internal/domain"
	"kanban-api/internal/dto"
	"kanban-api/internal/response"
)

const testJWTSecret = "unit-test-secret"

func authFixture(users map[string]*domain.User) (AuthService, *[]domain.Board) {
	userRepo := &mockUserRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			if u, ok := users[email]; ok {
				return u, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		CreateFunc: func(ctx context.Context, user *domain.User) error {
			user.ID = uuid.New()
			users[user.Email] = user
			return nil
		},
	}
	boards := &[]domain.Board{}
	boardRepo := &mockBoardRepo{
		CreateFunc: func(ctx context.Context, board *domain.Board) error {
			*boards = append(*boards, *board)
			return nil
		},
	}
	verifier := client.NewHMACVerifier(testJWTSecret)
	return NewAuthService(userRepo, boardRepo, verifier, testJWTSecret, time.Hour, zap.NewNop()), boards
}

func TestRegisterAndLogin(t *testing.T) {
	users := map[string]*domain.User{}
	svc, _ := authFixture(users)

	registered, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Ana",
		Email:    "ana@test.local",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, registered.Role)
	assert.NotEqual(t, "secret123", users["ana@test.local"].Password, "password is never stored raw")

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ana@test.local",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", result.Name)
	assert.Equal(t, "user", result.Role)
	assert.Equal(t, registered.ID, result.UserID)

	token, err := jwt.Parse(result.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, registered.ID.String(), claims["user_id"])
	assert.Equal(t, "user", claims["role"])
}

func TestRegisterSeedsDefaultBoard(t *testing.T) {
	users := map[string]*domain.User{}
	svc, boards := authFixture(users)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Ana",
		Email:    "ana@test.local",
		Password: "secret123",
	})
	require.NoError(t, err)

	require.Len(t, *boards, 1)
	seeded := (*boards)[0]
	assert.Equal(t, "Tablero de Ana", seeded.Title)
	require.Len(t, seeded.Columns, 3)
	assert.Equal(t, "Pendiente", seeded.Columns[0].Title)
	assert.Equal(t, "En Proceso", seeded.Columns[1].Title)
	assert.Equal(t, "Terminado", seeded.Columns[2].Title)
}

func TestLoginWrongPassword(t *testing.T) {
	users := map[string]*domain.User{}
	svc, _ := authFixture(users)
	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name: "Ana", Email: "ana@test.local", Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email: "ana@test.local", Password: "wrong",
	})
	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeUnauthorized, appErr.Code)
}

func TestLoginUnknownAccountSameError(t *testing.T) {
	svc, _ := authFixture(map[string]*domain.User{})
	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email: "ghost@test.local", Password: "whatever",
	})
	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeUnauthorized, appErr.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := map[string]*domain.User{}
	svc, _ := authFixture(users)
	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name: "Ana", Email: "ana@test.local", Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &dto.RegisterRequest{
		Name: "Eve", Email: "ana@test.local", Password: "other456",
	})
	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeAlreadyExists, appErr.Code)
}
