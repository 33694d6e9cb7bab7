package service_test

import (
	"context"
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Tomlord1122/todo-dashboard/internal/domain"
	"github.com/Tomlord1122/todo-dashboard/internal/repository/mocks"
	"github.com/Tomlord1122/todo-dashboard/internal/service"
	"github.com/Tomlord1122/todo-dashboard/internal/validation"
)

func setupMockTodoRepository(t *testing.T) *mocks.MockTodoRepository {
	ctrl := gomock.NewController(t)
	return mocks.NewMockTodoRepository(ctrl)
}

// Helper functions to get pointers
func strPtr(s string) *string { return &s }
func timePtr(s string) *time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return &t
}

var owner = &domain.User{ID: "01JZ0000000000000000000001", Name: "Demo User", Role: domain.RoleUser}

func issuesOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	out := map[string]string{}
	for _, issue := range verr.Issues {
		out[issue.Field] = issue.Message
	}
	return out
}

func TestCreateTodo(t *testing.T) {
	mockRepo := setupMockTodoRepository(t)

	tests := []struct {
		name    string
		input   service.CreateTodoRequest
		arrange func()
		assert  func(t *testing.T, todo *service.TodoResponse, err error)
	}{
		{
			name: "Should create todo with defaults",
			input: service.CreateTodoRequest{
				Title:   "Prep weekly board",
				DueDate: strPtr("2025-07-01"),
			},
			arrange: func() {
				mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, todo *domain.Todo) error {
						todo.ID = "01JZ00000000000000000000T1"
						return nil
					})
			},
			assert: func(t *testing.T, todo *service.TodoResponse, err error) {
				require.NoError(t, err)
				assert.Equal(t, "01JZ00000000000000000000T1", todo.ID)
				assert.Equal(t, owner.ID, todo.OwnerID)
				assert.Equal(t, domain.StatusPending, todo.Status)
				assert.Equal(t, []string{}, todo.Tags)
				assert.Nil(t, todo.Description)
				require.NotNil(t, todo.DueDate)
				assert.Equal(t, "2025-07-01T00:00:00Z", *todo.DueDate)
			},
		},
		{
			name: "Should reject a short title, a bad status and a bad date together",
			input: service.CreateTodoRequest{
				Title:   "ab",
				Status:  "DONE",
				DueDate: strPtr("not a date"),
			},
			arrange: func() {},
			assert: func(t *testing.T, todo *service.TodoResponse, err error) {
				require.Nil(t, todo)
				issues := issuesOf(t, err)
				assert.Equal(t, "String must contain at least 3 character(s)", issues["title"])
				assert.Equal(t, "Invalid enum value. Expected 'BACKLOG' | 'PENDING' | 'IN_PROGRESS' | 'COMPLETED'", issues["status"])
				assert.Equal(t, validation.MsgInvalidDate, issues["dueDate"])
			},
		},
		{
			name:    "Should measure the title after trimming",
			input:   service.CreateTodoRequest{Title: "   a   "},
			arrange: func() {},
			assert: func(t *testing.T, todo *service.TodoResponse, err error) {
				require.Nil(t, todo)
				assert.Equal(t, "String must contain at least 3 character(s)", issuesOf(t, err)["title"])
			},
		},
		{
			name:  "Should store the trimmed title",
			input: service.CreateTodoRequest{Title: "  Prep weekly board  "},
			arrange: func() {
				mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, todo *domain.Todo) error {
						assert.Equal(t, "Prep weekly board", todo.Title)
						return nil
					})
			},
			assert: func(t *testing.T, todo *service.TodoResponse, err error) {
				require.NoError(t, err)
				assert.Equal(t, "Prep weekly board", todo.Title)
			},
		},
		{
			name:    "Should require a title",
			input:   service.CreateTodoRequest{},
			arrange: func() {},
			assert: func(t *testing.T, todo *service.TodoResponse, err error) {
				assert.Equal(t, validation.MsgRequired, issuesOf(t, err)["title"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			tt.arrange()
			uc := service.NewTodoService(mockRepo)

			// Act
			todo, err := uc.CreateTodo(context.Background(), owner, tt.input)

			// Assert
			tt.assert(t, todo, err)
		})
	}
}

func TestUpdateTodo(t *testing.T) {
	mockRepo := setupMockTodoRepository(t)
	existing := func() *domain.Todo {
		return &domain.Todo{
			ID:          "T1",
			OwnerID:     owner.ID,
			Title:       "Prep weekly board",
			Description: "old",
			Status:      domain.StatusPending,
			DueDate:     timePtr("2025-07-01T00:00:00Z"),
			Tags:        []string{"planning"},
		}
	}

	tests := []struct {
		name    string
		id      string
		input   service.UpdateTodoRequest
		arrange func()
		assert  func(t *testing.T, todo *service.TodoResponse, err error)
	}{
		{
			name:    "Should reject an id mismatch",
			id:      "T1",
			input:   service.UpdateTodoRequest{ID: "T2", Title: "Prep weekly board"},
			arrange: func() {},
			assert: func(t *testing.T, todo *service.TodoResponse, err error) {
				require.ErrorIs(t, err, domain.ErrIDMismatch)
				assert.EqualError(t, err, "Todo id mismatch")
			},
		},
		{
			name:    "Should reject a title that is short once trimmed",
			id:      "T1",
			input:   service.UpdateTodoRequest{ID: "T1", Title: "  ab  "},
			arrange: func() {},
			assert: func(t *testing.T, todo *service.TodoResponse, err error) {
				assert.Equal(t, "String must contain at least 3 character(s)", issuesOf(t, err)["title"])
			},
		},
		{
			name:  "Should return not found for someone else's todo",
			id:    "T1",
			input: service.UpdateTodoRequest{ID: "T1", Title: "Prep weekly board"},
			arrange: func() {
				mockRepo.EXPECT().FindByID(gomock.Any(), "T1", owner.ID).Return(nil, domain.NotFound("Todo"))
			},
			assert: func(t *testing.T, todo *service.TodoResponse, err error) {
				require.ErrorIs(t, err, domain.ErrNotFound)
				assert.EqualError(t, err, "Todo not found")
			},
		},
		{
			name:  "Should replace fields and keep tags when omitted",
			id:    "T1",
			input: service.UpdateTodoRequest{ID: "T1", Title: "Prep monthly board", Status: "IN_PROGRESS"},
			arrange: func() {
				mockRepo.EXPECT().FindByID(gomock.Any(), "T1", owner.ID).Return(existing(), nil)
				mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, todo *domain.Todo) error {
						assert.Equal(t, "Prep monthly board", todo.Title)
						assert.Empty(t, todo.Description)
						assert.Nil(t, todo.DueDate)
						assert.Equal(t, []string{"planning"}, []string(todo.Tags))
						return nil
					})
			},
			assert: func(t *testing.T, todo *service.TodoResponse, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.StatusInProgress, todo.Status)
				assert.Nil(t, todo.Description)
			},
		},
		{
			name:  "Should default status to PENDING and replace provided tags",
			id:    "T1",
			input: service.UpdateTodoRequest{ID: "T1", Title: "Prep weekly board", Tags: &[]string{" ui ", ""}},
			arrange: func() {
				todo := existing()
				todo.Status = domain.StatusCompleted
				mockRepo.EXPECT().FindByID(gomock.Any(), "T1", owner.ID).Return(todo, nil)
				mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
			},
			assert: func(t *testing.T, todo *service.TodoResponse, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.StatusPending, todo.Status)
				assert.Equal(t, []string{"ui"}, todo.Tags)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.arrange()
			uc := service.NewTodoService(mockRepo)

			todo, err := uc.UpdateTodo(context.Background(), owner, tt.id, tt.input)

			tt.assert(t, todo, err)
		})
	}
}

func TestListTodos(t *testing.T) {
	mockRepo := setupMockTodoRepository(t)

	tests := []struct {
		name    string
		query   service.ListTodosQuery
		arrange func()
		assert  func(t *testing.T, resp *service.TodoListResponse, err error)
	}{
		{
			name:  "Should scope to the caller and apply defaults",
			query: service.ListTodosQuery{OwnerID: "someone-else", Search: "  board "},
			arrange: func() {
				mockRepo.EXPECT().List(gomock.Any(), domain.TodoFilter{OwnerID: owner.ID, Search: "board", Page: 1, Limit: 5}).
					Return(domain.Page[domain.Todo]{
						Items: []domain.Todo{{ID: "T1", OwnerID: owner.ID, Title: "Prep weekly board", Status: domain.StatusPending}},
						Total: 6, Page: 1, Limit: 5,
					}, nil)
			},
			assert: func(t *testing.T, resp *service.TodoListResponse, err error) {
				require.NoError(t, err)
				require.Len(t, resp.Todos, 1)
				assert.EqualValues(t, 6, resp.Total)
				assert.Equal(t, 2, resp.TotalPages)
			},
		},
		{
			name:  "Should extend a date-only due end to the end of the day",
			query: service.ListTodosQuery{Status: "COMPLETED", DueEnd: "2025-07-03", Page: "2", Limit: "10"},
			arrange: func() {
				mockRepo.EXPECT().List(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, f domain.TodoFilter) (domain.Page[domain.Todo], error) {
						assert.Equal(t, domain.StatusCompleted, f.Status)
						assert.Equal(t, 2, f.Page)
						assert.Equal(t, 10, f.Limit)
						require.NotNil(t, f.DueEnd)
						assert.Equal(t, "2025-07-03T23:59:59Z", f.DueEnd.Format(time.RFC3339))
						return domain.Page[domain.Todo]{Page: 2, Limit: 10}, nil
					})
			},
			assert: func(t *testing.T, resp *service.TodoListResponse, err error) {
				require.NoError(t, err)
				assert.Empty(t, resp.Todos)
				assert.NotNil(t, resp.Todos)
				assert.Equal(t, 0, resp.TotalPages)
			},
		},
		{
			name:    "Should reject bad paging",
			query:   service.ListTodosQuery{Page: "0", Limit: "abc", Status: "DONE"},
			arrange: func() {},
			assert: func(t *testing.T, resp *service.TodoListResponse, err error) {
				issues := issuesOf(t, err)
				assert.Equal(t, "Number must be greater than or equal to 1", issues["page"])
				assert.Equal(t, validation.MsgExpectedNumber, issues["limit"])
				assert.Contains(t, issues["status"], "Invalid enum value")
			},
		},
		{
			name:    "Should reject a page whose offset would overflow",
			query:   service.ListTodosQuery{Page: strconv.Itoa(math.MaxInt64 / 4)},
			arrange: func() {},
			assert: func(t *testing.T, resp *service.TodoListResponse, err error) {
				require.Nil(t, resp)
				assert.Equal(t, validation.MaxNumber(domain.MaxPage(domain.DefaultLimit)), issuesOf(t, err)["page"])
			},
		},
		{
			name:  "Should accept the last reachable page",
			query: service.ListTodosQuery{Page: strconv.Itoa(domain.MaxPage(100)), Limit: "100"},
			arrange: func() {
				mockRepo.EXPECT().List(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, f domain.TodoFilter) (domain.Page[domain.Todo], error) {
						assert.GreaterOrEqual(t, f.Offset(), 0)
						return domain.Page[domain.Todo]{Page: f.Page, Limit: f.Limit}, nil
					})
			},
			assert: func(t *testing.T, resp *service.TodoListResponse, err error) {
				require.NoError(t, err)
			},
		},
		{
			name:    "Should cap the limit",
			query:   service.ListTodosQuery{Limit: "101"},
			arrange: func() {},
			assert: func(t *testing.T, resp *service.TodoListResponse, err error) {
				assert.Equal(t, "Number must be less than or equal to 100", issuesOf(t, err)["limit"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.arrange()
			uc := service.NewTodoService(mockRepo)

			resp, err := uc.ListTodos(context.Background(), owner, tt.query)

			tt.assert(t, resp, err)
		})
	}
}

func TestGetAndDeleteTodo(t *testing.T) {
	mockRepo := setupMockTodoRepository(t)
	uc := service.NewTodoService(mockRepo)
	ctx := context.Background()

	mockRepo.EXPECT().FindByID(ctx, "T1", owner.ID).
		Return(&domain.Todo{ID: "T1", OwnerID: owner.ID, Title: "Prep weekly board", Description: "weekly", Status: domain.StatusPending}, nil)
	todo, err := uc.GetTodoByID(ctx, owner, "T1")
	require.NoError(t, err)
	require.NotNil(t, todo.Description)
	assert.Equal(t, "weekly", *todo.Description)

	mockRepo.EXPECT().Delete(ctx, "T404", owner.ID).Return(domain.NotFound("Todo"))
	require.ErrorIs(t, uc.DeleteTodo(ctx, owner, "T404"), domain.ErrNotFound)

	mockRepo.EXPECT().Delete(ctx, "T1", owner.ID).Return(nil)
	require.NoError(t, uc.DeleteTodo(ctx, owner, "T1"))
}

func TestTodoStats(t *testing.T) {
	mockRepo := setupMockTodoRepository(t)
	uc := service.NewTodoService(mockRepo)

	mockRepo.EXPECT().ListByOwner(gomock.Any(), owner.ID).Return([]domain.Todo{
		{Status: domain.StatusPending, DueDate: timePtr("2020-01-02T10:00:00Z")},
		{Status: domain.StatusCompleted, DueDate: timePtr("2020-01-02T18:00:00Z")},
		{Status: domain.StatusCompleted, DueDate: timePtr("2020-01-01T09:00:00Z")},
		{Status: domain.StatusBacklog, DueDate: timePtr("2999-01-01T00:00:00Z")},
		{Status: domain.StatusInProgress},
	}, nil)

	stats, err := uc.Stats(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, map[domain.TodoStatus]int64{
		domain.StatusBacklog:    1,
		domain.StatusPending:    1,
		domain.StatusInProgress: 1,
		domain.StatusCompleted:  2,
	}, stats.ByStatus)
	assert.Equal(t, 1, stats.Overdue)
	assert.Equal(t, []service.WorkloadDay{
		{Date: "2020-01-01", Total: 1, Completed: 1},
		{Date: "2020-01-02", Total: 2, Completed: 1},
		{Date: "2999-01-01", Total: 1, Completed: 0},
	}, stats.Workload)
}
