package service

import (
	"context"

	"github.com/google/uuid"

	"kanban-api/internal/domain"
	"kanban-api/internal/realtime"
)

// Function-field mocks so each test overrides only what it needs.

type mockBoardRepo struct {
	CreateFunc          func(ctx context.Context, board *domain.Board) error
	GetByIDFunc         func(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	GetFullFunc         func(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	ListFullByOwnerFunc func(ctx context.Context, ownerID uuid.UUID) ([]domain.Board, error)
	ListByOwnerFunc     func(ctx context.Context, ownerID uuid.UUID) ([]domain.Board, error)
	ListFunc            func(ctx context.Context) ([]domain.Board, error)
	UpdateFunc          func(ctx context.Context, board *domain.Board) error
	DeleteFunc          func(ctx context.Context, id uuid.UUID) error
	CountFunc           func(ctx context.Context) (int64, error)
}

func (m *mockBoardRepo) Create(ctx context.Context, board *domain.Board) error {
	return m.CreateFunc(ctx, board)
}
func (m *mockBoardRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockBoardRepo) GetFull(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	return m.GetFullFunc(ctx, id)
}
func (m *mockBoardRepo) ListFullByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Board, error) {
	return m.ListFullByOwnerFunc(ctx, ownerID)
}
func (m *mockBoardRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Board, error) {
	return m.ListByOwnerFunc(ctx, ownerID)
}
func (m *mockBoardRepo) List(ctx context.Context) ([]domain.Board, error) {
	return m.ListFunc(ctx)
}
func (m *mockBoardRepo) Update(ctx context.Context, board *domain.Board) error {
	return m.UpdateFunc(ctx, board)
}
func (m *mockBoardRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}
func (m *mockBoardRepo) Count(ctx context.Context) (int64, error) {
	return m.CountFunc(ctx)
}

type mockColumnRepo struct {
	CreateFunc       func(ctx context.Context, column *domain.Column) error
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.Column, error)
	GetByIDsFunc     func(ctx context.Context, ids []uuid.UUID) ([]domain.Column, error)
	ListByBoardFunc  func(ctx context.Context, boardID uuid.UUID) ([]domain.Column, error)
	CountByBoardFunc func(ctx context.Context, boardID uuid.UUID) (int64, error)
	UpdateFunc       func(ctx context.Context, column *domain.Column) error
	DeleteFunc       func(ctx context.Context, id uuid.UUID) error
	ReorderFunc      func(ctx context.Context, columnIDs []uuid.UUID) error
}

func (m *mockColumnRepo) Create(ctx context.Context, column *domain.Column) error {
	return m.CreateFunc(ctx, column)
}
func (m *mockColumnRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Column, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockColumnRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Column, error) {
	return m.GetByIDsFunc(ctx, ids)
}
func (m *mockColumnRepo) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]domain.Column, error) {
	return m.ListByBoardFunc(ctx, boardID)
}
func (m *mockColumnRepo) CountByBoard(ctx context.Context, boardID uuid.UUID) (int64, error) {
	return m.CountByBoardFunc(ctx, boardID)
}
func (m *mockColumnRepo) Update(ctx context.Context, column *domain.Column) error {
	return m.UpdateFunc(ctx, column)
}
func (m *mockColumnRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}
func (m *mockColumnRepo) Reorder(ctx context.Context, columnIDs []uuid.UUID) error {
	return m.ReorderFunc(ctx, columnIDs)
}

type mockTaskRepo struct {
	CreateFunc           func(ctx context.Context, task *domain.Task) error
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	GetWithRelationsFunc func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ListByColumnFunc     func(ctx context.Context, columnID uuid.UUID) ([]domain.Task, error)
	CountByColumnFunc    func(ctx context.Context, columnID uuid.UUID) (int64, error)
	UpdateFunc           func(ctx context.Context, task *domain.Task) error
	DeleteFunc           func(ctx context.Context, id uuid.UUID) error
	ReorderFunc          func(ctx context.Context, taskIDs []uuid.UUID) error
	MoveFunc             func(ctx context.Context, taskID, toColumnID uuid.UUID, position int) error
	ReplaceTagsFunc      func(ctx context.Context, task *domain.Task, tags []domain.Tag) error
	CountFunc            func(ctx context.Context) (int64, error)
	CountByPriorityFunc  func(ctx context.Context) (map[domain.TaskPriority]int64, error)
	CountByOwnerFunc     func(ctx context.Context) (map[uuid.UUID]int64, error)
}

func (m *mockTaskRepo) Create(ctx context.Context, task *domain.Task) error {
	return m.CreateFunc(ctx, task)
}
func (m *mockTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockTaskRepo) GetWithRelations(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return m.GetWithRelationsFunc(ctx, id)
}
func (m *mockTaskRepo) ListByColumn(ctx context.Context, columnID uuid.UUID) ([]domain.Task, error) {
	return m.ListByColumnFunc(ctx, columnID)
}
func (m *mockTaskRepo) CountByColumn(ctx context.Context, columnID uuid.UUID) (int64, error) {
	return m.CountByColumnFunc(ctx, columnID)
}
func (m *mockTaskRepo) Update(ctx context.Context, task *domain.Task) error {
	return m.UpdateFunc(ctx, task)
}
func (m *mockTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}
func (m *mockTaskRepo) Reorder(ctx context.Context, taskIDs []uuid.UUID) error {
	return m.ReorderFunc(ctx, taskIDs)
}
func (m *mockTaskRepo) Move(ctx context.Context, taskID, toColumnID uuid.UUID, position int) error {
	return m.MoveFunc(ctx, taskID, toColumnID, position)
}
func (m *mockTaskRepo) ReplaceTags(ctx context.Context, task *domain.Task, tags []domain.Tag) error {
	return m.ReplaceTagsFunc(ctx, task, tags)
}
func (m *mockTaskRepo) Count(ctx context.Context) (int64, error) {
	return m.CountFunc(ctx)
}
func (m *mockTaskRepo) CountByPriority(ctx context.Context) (map[domain.TaskPriority]int64, error) {
	return m.CountByPriorityFunc(ctx)
}
func (m *mockTaskRepo) CountByOwner(ctx context.Context) (map[uuid.UUID]int64, error) {
	return m.CountByOwnerFunc(ctx)
}

type mockTagRepo struct {
	CreateFunc   func(ctx context.Context, tag *domain.Tag) error
	GetByIDFunc  func(ctx context.Context, id uuid.UUID) (*domain.Tag, error)
	GetByIDsFunc func(ctx context.Context, ids []uuid.UUID) ([]domain.Tag, error)
	ListFunc     func(ctx context.Context) ([]domain.Tag, error)
	UpdateFunc   func(ctx context.Context, tag *domain.Tag) error
	DeleteFunc   func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTagRepo) Create(ctx context.Context, tag *domain.Tag) error {
	return m.CreateFunc(ctx, tag)
}
func (m *mockTagRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tag, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockTagRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Tag, error) {
	return m.GetByIDsFunc(ctx, ids)
}
func (m *mockTagRepo) List(ctx context.Context) ([]domain.Tag, error) {
	return m.ListFunc(ctx)
}
func (m *mockTagRepo) Update(ctx context.Context, tag *domain.Tag) error {
	return m.UpdateFunc(ctx, tag)
}
func (m *mockTagRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

type mockUserRepo struct {
	CreateFunc     func(ctx context.Context, user *domain.User) error
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	ListFunc       func(ctx context.Context) ([]domain.User, error)
	UpdateFunc     func(ctx context.Context, user *domain.User) error
	DeleteFunc     func(ctx context.Context, id uuid.UUID) error
	CountFunc      func(ctx context.Context) (int64, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.CreateFunc(ctx, user)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.GetByEmailFunc(ctx, email)
}
func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	return m.ListFunc(ctx)
}
func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.UpdateFunc(ctx, user)
}
func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}
func (m *mockUserRepo) Count(ctx context.Context) (int64, error) {
	return m.CountFunc(ctx)
}

type mockActivityRepo struct {
	CreateFunc     func(ctx context.Context, entry *domain.ActivityLog) error
	ListByTaskFunc func(ctx context.Context, taskID uuid.UUID) ([]domain.ActivityLog, error)
}

func (m *mockActivityRepo) Create(ctx context.Context, entry *domain.ActivityLog) error {
	return m.CreateFunc(ctx, entry)
}
func (m *mockActivityRepo) ListByTask(ctx context.Context, taskID uuid.UUID) ([]domain.ActivityLog, error) {
	return m.ListByTaskFunc(ctx, taskID)
}

// mockNotifier records broadcast events in order
type mockNotifier struct {
	events []realtime.BoardEvent
}

func (m *mockNotifier) Broadcast(event realtime.BoardEvent) {
	m.events = append(m.events, event)
}

// mockActivity records entries handed to Record
type mockActivity struct {
	entries []ActivityEntry
}

func (m *mockActivity) Record(ctx context.Context, entry ActivityEntry) {
	m.entries = append(m.entries, entry)
}
func (m *mockActivity) ListByTask(ctx context.Context, taskID uuid.UUID) ([]domain.ActivityLog, error) {
	return nil, nil
}

// noopMetrics satisfies every metrics interface the services take
type noopMetrics struct {
	reorders        map[string]int
	reorderRejects  map[string]int
	activityResults []string
}

func newNoopMetrics() *noopMetrics {
	return &noopMetrics{
		reorders:       map[string]int{},
		reorderRejects: map[string]int{},
	}
}

func (m *noopMetrics) RecordTaskCreated() {}
func (m *noopMetrics) RecordTaskMoved()   {}
func (m *noopMetrics) RecordReorder(kind string) {
	m.reorders[kind]++
}
func (m *noopMetrics) RecordReorderReject(kind string) {
	m.reorderRejects[kind]++
}
func (m *noopMetrics) RecordActivityWrite(result string) {
	m.activityResults = append(m.activityResults, result)
}
