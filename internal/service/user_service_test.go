package service

import (
	"context"
	"testing"

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

func userServiceFixture() (*userServiceImpl, *mockUserRepo, *mockBoardRepo, *mockTaskRepo) {
	userRepo := &mockUserRepo{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{BaseModel: domain.BaseModel{ID: id}, Name: "Ana", Role: domain.RoleUser}, nil
		},
		GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
		CreateFunc: func(ctx context.Context, user *domain.User) error {
			user.ID = uuid.New()
			return nil
		},
		UpdateFunc: func(ctx context.Context, user *domain.User) error { return nil },
		DeleteFunc: func(ctx context.Context, id uuid.UUID) error { return nil },
	}
	boardRepo := &mockBoardRepo{
		CreateFunc: func(ctx context.Context, board *domain.Board) error { return nil },
	}
	taskRepo := &mockTaskRepo{}
	verifier := client.NewHMACVerifier("unit-test")
	svc := NewUserService(userRepo, boardRepo, taskRepo, verifier, zap.NewNop()).(*userServiceImpl)
	return svc, userRepo, boardRepo, taskRepo
}

func TestCreateUserAdminOnly(t *testing.T) {
	svc, _, _, _ := userServiceFixture()

	req := &dto.CreateUserRequest{Name: "Eve", Email: "eve@test.local", Password: "secret123"}
	_, err := svc.CreateUser(context.Background(), Actor{ID: uuid.New(), Role: domain.RoleUser}, req)

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeForbidden, appErr.Code)
}

func TestCreateUserSeedsDefaultBoard(t *testing.T) {
	svc, _, boardRepo, _ := userServiceFixture()

	var seeded *domain.Board
	boardRepo.CreateFunc = func(ctx context.Context, board *domain.Board) error {
		seeded = board
		return nil
	}

	user, err := svc.CreateUser(context.Background(), Actor{ID: uuid.New(), Role: domain.RoleAdmin},
		&dto.CreateUserRequest{Name: "Eve", Email: "eve@test.local", Password: "secret123", Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.NotEqual(t, "secret123", user.Password)

	require.NotNil(t, seeded)
	assert.Equal(t, "Tablero de Eve", seeded.Title)
	assert.Len(t, seeded.Columns, 3)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc, userRepo, _, _ := userServiceFixture()
	userRepo.GetByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return &domain.User{BaseModel: domain.BaseModel{ID: uuid.New()}}, nil
	}

	_, err := svc.CreateUser(context.Background(), Actor{ID: uuid.New(), Role: domain.RoleAdmin},
		&dto.CreateUserRequest{Name: "Eve", Email: "eve@test.local", Password: "secret123"})

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeAlreadyExists, appErr.Code)
}

func TestResetPasswordHashesBeforeStoring(t *testing.T) {
	svc, userRepo, _, _ := userServiceFixture()

	var updated *domain.User
	userRepo.UpdateFunc = func(ctx context.Context, user *domain.User) error {
		updated = user
		return nil
	}

	err := svc.ResetPassword(context.Background(), Actor{ID: uuid.New(), Role: domain.RoleAdmin},
		uuid.New(), &dto.ResetPasswordRequest{NewPassword: "fresh-secret"})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.NotEqual(t, "fresh-secret", updated.Password)
	assert.NotEmpty(t, updated.Password)
}

func TestResetPasswordAdminOnly(t *testing.T) {
	svc, _, _, _ := userServiceFixture()

	err := svc.ResetPassword(context.Background(), Actor{ID: uuid.New(), Role: domain.RoleUser},
		uuid.New(), &dto.ResetPasswordRequest{NewPassword: "fresh-secret"})

	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeForbidden, appErr.Code)
}

func TestUpdateProfileRenamesAndOptionallyChangesPassword(t *testing.T) {
	svc, userRepo, _, _ := userServiceFixture()
	actorID := uuid.New()

	var updated *domain.User
	userRepo.UpdateFunc = func(ctx context.Context, user *domain.User) error {
		updated = user
		return nil
	}

	user, err := svc.UpdateProfile(context.Background(), Actor{ID: actorID, Role: domain.RoleUser},
		&dto.UpdateProfileRequest{Name: "Ana Maria"})
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", user.Name)
	assert.Empty(t, updated.Password, "absent password leaves the hash alone")

	pw := "new-secret"
	user, err = svc.UpdateProfile(context.Background(), Actor{ID: actorID, Role: domain.RoleUser},
		&dto.UpdateProfileRequest{Name: "Ana Maria", Password: &pw})
	require.NoError(t, err)
	assert.NotEqual(t, "new-secret", user.Password)
	assert.NotEmpty(t, user.Password)
}

func TestDeleteUserGuards(t *testing.T) {
	svc, userRepo, _, _ := userServiceFixture()
	adminID := uuid.New()
	victimID := uuid.New()

	deleted := false
	userRepo.DeleteFunc = func(ctx context.Context, id uuid.UUID) error {
		deleted = true
		return nil
	}

	t.Run("non-admin rejected", func(t *testing.T) {
		err := svc.DeleteUser(context.Background(), Actor{ID: uuid.New(), Role: domain.RoleUser}, victimID)
		var appErr *response.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, response.ErrCodeForbidden, appErr.Code)
	})

	t.Run("admin cannot delete own account", func(t *testing.T) {
		err := svc.DeleteUser(context.Background(), Actor{ID: adminID, Role: domain.RoleAdmin}, adminID)
		var appErr *response.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, response.ErrCodeValidation, appErr.Code)
		assert.False(t, deleted)
	})

	t.Run("admin deletes another user", func(t *testing.T) {
		err := svc.DeleteUser(context.Background(), Actor{ID: adminID, Role: domain.RoleAdmin}, victimID)
		require.NoError(t, err)
		assert.True(t, deleted)
	})
}

func TestStats(t *testing.T) {
	svc, userRepo, boardRepo, taskRepo := userServiceFixture()

	ana := domain.User{BaseModel: domain.BaseModel{ID: uuid.New()}, Name: "Ana"}
	bob := domain.User{BaseModel: domain.BaseModel{ID: uuid.New()}, Name: "Bob"}

	userRepo.CountFunc = func(ctx context.Context) (int64, error) { return 7, nil }
	userRepo.ListFunc = func(ctx context.Context) ([]domain.User, error) {
		return []domain.User{ana, bob}, nil
	}
	boardRepo.CountFunc = func(ctx context.Context) (int64, error) { return 3, nil }
	taskRepo.CountFunc = func(ctx context.Context) (int64, error) { return 42, nil }
	taskRepo.CountByPriorityFunc = func(ctx context.Context) (map[domain.TaskPriority]int64, error) {
		return map[domain.TaskPriority]int64{
			domain.PriorityLow:  30,
			domain.PriorityHigh: 12,
		}, nil
	}
	taskRepo.CountByOwnerFunc = func(ctx context.Context) (map[uuid.UUID]int64, error) {
		return map[uuid.UUID]int64{ana.ID: 40, bob.ID: 2}, nil
	}

	_, err := svc.Stats(context.Background(), Actor{ID: uuid.New(), Role: domain.RoleUser})
	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeForbidden, appErr.Code)

	stats, err := svc.Stats(context.Background(), Actor{ID: uuid.New(), Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, int64(7), stats.TotalUsers)
	assert.Equal(t, int64(3), stats.TotalBoards)
	assert.Equal(t, int64(42), stats.TotalTasks)

	require.Len(t, stats.TasksByPriority, 2)
	assert.Equal(t, dto.PriorityCount{Priority: "low", Count: 30}, stats.TasksByPriority[0])
	assert.Equal(t, dto.PriorityCount{Priority: "high", Count: 12}, stats.TasksByPriority[1])

	require.Len(t, stats.TasksByUser, 2)
	assert.Equal(t, dto.UserTaskCount{UserID: ana.ID, Name: "Ana", Count: 40}, stats.TasksByUser[0])
	assert.Equal(t, dto.UserTaskCount{UserID: bob.ID, Name: "Bob", Count: 2}, stats.TasksByUser[1])
}

func TestGetUserSelfOrAdmin(t *testing.T) {
	svc, _, _, _ := userServiceFixture()
	userID := uuid.New()

	_, err := svc.GetUser(context.Background(), Actor{ID: uuid.New(), Role: domain.RoleUser}, userID)
	var appErr *response.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, response.ErrCodeForbidden, appErr.Code)

	_, err = svc.GetUser(context.Background(), Actor{ID: userID, Role: domain.RoleUser}, userID)
	require.NoError(t, err)

	_, err = svc.GetUser(context.Background(), Actor{ID: uuid.New(), Role: domain.RoleAdmin}, userID)
	require.NoError(t, err)
}
