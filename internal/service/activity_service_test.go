package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kanban-api/internal/domain"
)

func TestActivityRecordSwallowsRepositoryFailure(t *testing.T) {
	repo := &mockActivityRepo{
		CreateFunc: func(ctx context.Context, entry *domain.ActivityLog) error {
			return errors.New("connection reset")
		},
	}
	metrics := newNoopMetrics()
	svc := NewActivityService(repo, zap.NewNop(), metrics)

	// Must not panic and has no error to return.
	svc.Record(context.Background(), ActivityEntry{
		Action: "updated due date",
		TaskID: uuid.New(),
		UserID: uuid.New(),
	})

	assert.Equal(t, []string{"failure"}, metrics.activityResults)
}

func TestActivityRecordPersistsEntry(t *testing.T) {
	var stored *domain.ActivityLog
	repo := &mockActivityRepo{
		CreateFunc: func(ctx context.Context, entry *domain.ActivityLog) error {
			stored = entry
			return nil
		},
	}
	metrics := newNoopMetrics()
	svc := NewActivityService(repo, zap.NewNop(), metrics)

	taskID := uuid.New()
	userID := uuid.New()
	svc.Record(context.Background(), ActivityEntry{
		Action:  "moved task to list: Terminado",
		Details: map[string]interface{}{"from": "a", "to": "b"},
		TaskID:  taskID,
		UserID:  userID,
	})

	require.NotNil(t, stored)
	assert.Equal(t, "moved task to list: Terminado", stored.Action)
	assert.Equal(t, taskID, stored.TaskID)
	assert.Equal(t, userID, stored.UserID)
	assert.JSONEq(t, `{"from":"a","to":"b"}`, string(stored.Details))
	assert.Equal(t, []string{"success"}, metrics.activityResults)
}

func TestActivityRecordUnserializableDetailsStillStored(t *testing.T) {
	var stored *domain.ActivityLog
	repo := &mockActivityRepo{
		CreateFunc: func(ctx context.Context, entry *domain.ActivityLog) error {
			stored = entry
			return nil
		},
	}
	svc := NewActivityService(repo, zap.NewNop(), newNoopMetrics())

	svc.Record(context.Background(), ActivityEntry{
		Action:  "updated tags",
		Details: make(chan int), // cannot be marshaled
		TaskID:  uuid.New(),
		UserID:  uuid.New(),
	})

	require.NotNil(t, stored)
	assert.Empty(t, stored.Details)
}

func TestActivityListByTaskPassesThrough(t *testing.T) {
	taskID := uuid.New()
	want := []domain.ActivityLog{
		{Action: "changed priority to: high", TaskID: taskID},
		{Action: "created task", TaskID: taskID},
	}
	repo := &mockActivityRepo{
		ListByTaskFunc: func(ctx context.Context, id uuid.UUID) ([]domain.ActivityLog, error) {
			assert.Equal(t, taskID, id)
			return want, nil
		},
	}
	svc := NewActivityService(repo, zap.NewNop(), newNoopMetrics())

	got, err := svc.ListByTask(context.Background(), taskID)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
