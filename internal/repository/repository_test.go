package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kanban-api/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Board{},
		&domain.Column{},
		&domain.Task{},
		&domain.Tag{},
		&domain.Subtask{},
		&domain.Attachment{},
		&domain.Comment{},
		&domain.ActivityLog{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB) *domain.User {
	t.Helper()
	user := &domain.User{Name: "tester", Email: uuid.New().String() + "@test.local", Password: "x"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedBoard(t *testing.T, db *gorm.DB, ownerID uuid.UUID) *domain.Board {
	t.Helper()
	board := &domain.Board{Title: "board", OwnerID: ownerID}
	require.NoError(t, db.Create(board).Error)
	return board
}

func seedColumn(t *testing.T, db *gorm.DB, boardID uuid.UUID, position int) *domain.Column {
	t.Helper()
	column := &domain.Column{Title: fmt.Sprintf("col-%d", position), Position: position, BoardID: boardID}
	require.NoError(t, db.Create(column).Error)
	return column
}

func seedTask(t *testing.T, db *gorm.DB, columnID uuid.UUID, position int) *domain.Task {
	t.Helper()
	task := &domain.Task{Content: fmt.Sprintf("task-%d", position), Position: position, ColumnID: columnID}
	require.NoError(t, db.Create(task).Error)
	return task
}

func TestColumnReorderWritesDensePositions(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewColumnRepository(db)

	user := seedUser(t, db)
	board := seedBoard(t, db, user.ID)
	c0 := seedColumn(t, db, board.ID, 0)
	c1 := seedColumn(t, db, board.ID, 1)
	c2 := seedColumn(t, db, board.ID, 2)

	require.NoError(t, repo.Reorder(ctx, []uuid.UUID{c2.ID, c0.ID, c1.ID}))

	columns, err := repo.ListByBoard(ctx, board.ID)
	require.NoError(t, err)
	require.Len(t, columns, 3)
	assert.Equal(t, c2.ID, columns[0].ID)
	assert.Equal(t, c0.ID, columns[1].ID)
	assert.Equal(t, c1.ID, columns[2].ID)
	for i, col := range columns {
		assert.Equal(t, i, col.Position)
	}
}

func TestColumnGetByIDs(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewColumnRepository(db)

	user := seedUser(t, db)
	board := seedBoard(t, db, user.ID)
	c0 := seedColumn(t, db, board.ID, 0)
	seedColumn(t, db, board.ID, 1)

	found, err := repo.GetByIDs(ctx, []uuid.UUID{c0.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, found, 1, "unknown ids are simply absent")
	assert.Equal(t, c0.ID, found[0].ID)
}

func TestTaskReorderWritesDensePositions(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewTaskRepository(db)

	user := seedUser(t, db)
	board := seedBoard(t, db, user.ID)
	column := seedColumn(t, db, board.ID, 0)
	t0 := seedTask(t, db, column.ID, 0)
	t1 := seedTask(t, db, column.ID, 1)
	t2 := seedTask(t, db, column.ID, 2)

	require.NoError(t, repo.Reorder(ctx, []uuid.UUID{t1.ID, t2.ID, t0.ID}))

	tasks, err := repo.ListByColumn(ctx, column.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, t1.ID, tasks[0].ID)
	assert.Equal(t, t2.ID, tasks[1].ID)
	assert.Equal(t, t0.ID, tasks[2].ID)
	for i, task := range tasks {
		assert.Equal(t, i, task.Position)
	}
}

func TestTaskDeleteLeavesGap(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewTaskRepository(db)

	user := seedUser(t, db)
	board := seedBoard(t, db, user.ID)
	column := seedColumn(t, db, board.ID, 0)
	seedTask(t, db, column.ID, 0)
	middle := seedTask(t, db, column.ID, 1)
	seedTask(t, db, column.ID, 2)

	require.NoError(t, repo.Delete(ctx, middle.ID))

	tasks, err := repo.ListByColumn(ctx, column.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	// Position is a ranking key, not an index: survivors keep theirs.
	assert.Equal(t, 0, tasks[0].Position)
	assert.Equal(t, 2, tasks[1].Position)
}

func TestTaskDeleteRemovesActivityTrail(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewTaskRepository(db)

	user := seedUser(t, db)
	board := seedBoard(t, db, user.ID)
	column := seedColumn(t, db, board.ID, 0)
	task := seedTask(t, db, column.ID, 0)
	require.NoError(t, db.Create(&domain.ActivityLog{
		Action: "created task", TaskID: task.ID, UserID: user.ID,
	}).Error)

	require.NoError(t, repo.Delete(ctx, task.ID))

	var count int64
	db.Model(&domain.ActivityLog{}).Count(&count)
	assert.Zero(t, count)
}

func TestTaskMoveDoesNotRenumberSource(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewTaskRepository(db)

	user := seedUser(t, db)
	board := seedBoard(t, db, user.ID)
	source := seedColumn(t, db, board.ID, 0)
	dest := seedColumn(t, db, board.ID, 1)
	moved := seedTask(t, db, source.ID, 0)
	stays := seedTask(t, db, source.ID, 1)

	require.NoError(t, repo.Move(ctx, moved.ID, dest.ID, 0))

	remaining, err := repo.ListByColumn(ctx, source.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, stays.ID, remaining[0].ID)
	assert.Equal(t, 1, remaining[0].Position, "the survivor keeps its position")

	landed, err := repo.ListByColumn(ctx, dest.ID)
	require.NoError(t, err)
	require.Len(t, landed, 1)
	assert.Equal(t, moved.ID, landed[0].ID)
	assert.Equal(t, 0, landed[0].Position)
}

func TestTaskCountByPriority(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewTaskRepository(db)

	user := seedUser(t, db)
	board := seedBoard(t, db, user.ID)
	column := seedColumn(t, db, board.ID, 0)
	for i, p := range []domain.TaskPriority{domain.PriorityLow, domain.PriorityLow, domain.PriorityHigh} {
		task := &domain.Task{Content: "t", Priority: p, Position: i, ColumnID: column.ID}
		require.NoError(t, db.Create(task).Error)
	}

	counts, err := repo.CountByPriority(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[domain.PriorityLow])
	assert.Equal(t, int64(1), counts[domain.PriorityHigh])
	_, ok := counts[domain.PriorityMedium]
	assert.False(t, ok)
}

func TestTaskCountByOwner(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewTaskRepository(db)

	ana := seedUser(t, db)
	bob := seedUser(t, db)
	anaBoard := seedBoard(t, db, ana.ID)
	bobBoard := seedBoard(t, db, bob.ID)
	anaCol := seedColumn(t, db, anaBoard.ID, 0)
	bobCol := seedColumn(t, db, bobBoard.ID, 0)
	seedTask(t, db, anaCol.ID, 0)
	seedTask(t, db, anaCol.ID, 1)
	seedTask(t, db, bobCol.ID, 0)

	counts, err := repo.CountByOwner(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[ana.ID])
	assert.Equal(t, int64(1), counts[bob.ID])
}

func TestColumnDeleteCascadesWithoutRenumbering(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	columnRepo := NewColumnRepository(db)

	user := seedUser(t, db)
	board := seedBoard(t, db, user.ID)
	first := seedColumn(t, db, board.ID, 0)
	last := seedColumn(t, db, board.ID, 1)
	task := seedTask(t, db, first.ID, 0)
	require.NoError(t, db.Create(&domain.Subtask{Content: "sub", TaskID: task.ID}).Error)
	require.NoError(t, db.Create(&domain.Comment{Content: "hi", TaskID: task.ID, AuthorID: user.ID}).Error)

	require.NoError(t, columnRepo.Delete(ctx, first.ID))

	var taskCount, subtaskCount, commentCount int64
	db.Model(&domain.Task{}).Count(&taskCount)
	db.Model(&domain.Subtask{}).Count(&subtaskCount)
	db.Model(&domain.Comment{}).Count(&commentCount)
	assert.Zero(t, taskCount)
	assert.Zero(t, subtaskCount)
	assert.Zero(t, commentCount)

	columns, err := columnRepo.ListByBoard(ctx, board.ID)
	require.NoError(t, err)
	require.Len(t, columns, 1)
	assert.Equal(t, last.ID, columns[0].ID)
	assert.Equal(t, 1, columns[0].Position, "survivors keep their positions")
}

func TestBoardDeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	boardRepo := NewBoardRepository(db)

	user := seedUser(t, db)
	board := seedBoard(t, db, user.ID)
	column := seedColumn(t, db, board.ID, 0)
	task := seedTask(t, db, column.ID, 0)
	require.NoError(t, db.Create(&domain.Attachment{FileName: "a.txt", StorageKey: "k", TaskID: task.ID}).Error)
	require.NoError(t, db.Create(&domain.ActivityLog{
		Action: "created task", TaskID: task.ID, UserID: user.ID,
	}).Error)

	require.NoError(t, boardRepo.Delete(ctx, board.ID))

	for _, model := range []interface{}{
		&domain.Board{}, &domain.Column{}, &domain.Task{},
		&domain.Attachment{}, &domain.ActivityLog{},
	} {
		var count int64
		db.Model(model).Count(&count)
		assert.Zero(t, count)
	}
}

func TestBoardGetFullReturnsPositionOrder(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	boardRepo := NewBoardRepository(db)

	user := seedUser(t, db)
	board := seedBoard(t, db, user.ID)
	// Create out of position order on purpose.
	colB := seedColumn(t, db, board.ID, 1)
	colA := seedColumn(t, db, board.ID, 0)
	taskLast := seedTask(t, db, colA.ID, 1)
	taskFirst := seedTask(t, db, colA.ID, 0)

	full, err := boardRepo.GetFull(ctx, board.ID)
	require.NoError(t, err)
	require.Len(t, full.Columns, 2)
	assert.Equal(t, colA.ID, full.Columns[0].ID)
	assert.Equal(t, colB.ID, full.Columns[1].ID)
	require.Len(t, full.Columns[0].Tasks, 2)
	assert.Equal(t, taskFirst.ID, full.Columns[0].Tasks[0].ID)
	assert.Equal(t, taskLast.ID, full.Columns[0].Tasks[1].ID)
}

func TestBoardListFullByOwner(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	boardRepo := NewBoardRepository(db)

	ana := seedUser(t, db)
	bob := seedUser(t, db)
	anaBoard := seedBoard(t, db, ana.ID)
	seedBoard(t, db, bob.ID)
	column := seedColumn(t, db, anaBoard.ID, 0)
	seedTask(t, db, column.ID, 0)

	boards, err := boardRepo.ListFullByOwner(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	assert.Equal(t, anaBoard.ID, boards[0].ID)
	require.Len(t, boards[0].Columns, 1)
	assert.Len(t, boards[0].Columns[0].Tasks, 1)
}

func TestActivityListByTaskNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewActivityRepository(db)

	user := seedUser(t, db)
	board := seedBoard(t, db, user.ID)
	column := seedColumn(t, db, board.ID, 0)
	task := seedTask(t, db, column.ID, 0)
	other := seedTask(t, db, column.ID, 1)

	now := time.Now()
	for i, action := range []string{"created task", "changed priority to: high", "updated tags"} {
		entry := &domain.ActivityLog{Action: action, TaskID: task.ID, UserID: user.ID}
		entry.CreatedAt = now.Add(time.Duration(i) * time.Second)
		require.NoError(t, db.Create(entry).Error)
	}
	require.NoError(t, db.Create(&domain.ActivityLog{
		Action: "created task", TaskID: other.ID, UserID: user.ID,
	}).Error)

	entries, err := repo.ListByTask(ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3, "other tasks' entries are excluded")
	assert.Equal(t, "updated tags", entries[0].Action)
	assert.Equal(t, "changed priority to: high", entries[1].Action)
	assert.Equal(t, "created task", entries[2].Action)

	require.NotNil(t, entries[0].User, "the acting user is joined in")
	assert.Equal(t, "tester", entries[0].User.Name)
}

func TestUserDeleteRemovesOwnedBoardsAndComments(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	userRepo := NewUserRepository(db)

	victim := seedUser(t, db)
	other := seedUser(t, db)
	board := seedBoard(t, db, victim.ID)
	column := seedColumn(t, db, board.ID, 0)
	task := seedTask(t, db, column.ID, 0)
	require.NoError(t, db.Create(&domain.Comment{Content: "mine", TaskID: task.ID, AuthorID: victim.ID}).Error)

	otherBoard := seedBoard(t, db, other.ID)

	require.NoError(t, userRepo.Delete(ctx, victim.ID))

	var boardCount int64
	db.Model(&domain.Board{}).Count(&boardCount)
	assert.Equal(t, int64(1), boardCount)

	var remaining domain.Board
	require.NoError(t, db.First(&remaining).Error)
	assert.Equal(t, otherBoard.ID, remaining.ID)

	var commentCount int64
	db.Model(&domain.Comment{}).Count(&commentCount)
	assert.Zero(t, commentCount)
}

func TestCommentPaginationNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewCommentRepository(db)

	user := seedUser(t, db)
	board := seedBoard(t, db, user.ID)
	column := seedColumn(t, db, board.ID, 0)
	task := seedTask(t, db, column.ID, 0)

	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&domain.Comment{
			Content: fmt.Sprintf("comment-%d", i), TaskID: task.ID, AuthorID: user.ID,
		}).Error)
	}

	page1, total, err := repo.ListByTask(ctx, task.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page1, 2)

	page3, _, err := repo.ListByTask(ctx, task.ID, 3, 2)
	require.NoError(t, err)
	assert.Len(t, page3, 1)
}

func TestTagDeleteDetachesFromTasks(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	tagRepo := NewTagRepository(db)

	user := seedUser(t, db)
	board := seedBoard(t, db, user.ID)
	column := seedColumn(t, db, board.ID, 0)
	task := seedTask(t, db, column.ID, 0)

	tag := &domain.Tag{Name: "urgent"}
	require.NoError(t, db.Create(tag).Error)
	require.NoError(t, db.Model(task).Association("Tags").Append(tag))

	require.NoError(t, tagRepo.Delete(ctx, tag.ID))

	var linkCount int64
	db.Table("task_tags").Count(&linkCount)
	assert.Zero(t, linkCount)

	var taskCount int64
	db.Model(&domain.Task{}).Count(&taskCount)
	assert.Equal(t, int64(1), taskCount, "task itself survives")
}

func TestAttachmentListOrphaned(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewAttachmentRepository(db)

	user := seedUser(t, db)
	board := seedBoard(t, db, user.ID)
	column := seedColumn(t, db, board.ID, 0)
	task := seedTask(t, db, column.ID, 0)

	require.NoError(t, db.Create(&domain.Attachment{FileName: "kept", StorageKey: "kept", TaskID: task.ID}).Error)
	require.NoError(t, db.Create(&domain.Attachment{FileName: "orphan", StorageKey: "orphan", TaskID: uuid.New()}).Error)

	orphans, err := repo.ListOrphaned(ctx)
	require.NoError(t, err)
	require.Len(t, orphans, 1)
	assert.Equal(t, "orphan", orphans[0].FileName)
}
