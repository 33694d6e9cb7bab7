package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/Tomlord1122/todo-dashboard/internal/domain"
	"github.com/Tomlord1122/todo-dashboard/internal/repository"
	"github.com/Tomlord1122/todo-dashboard/internal/validation"
)

//go:generate mockgen -source=todo_service.go -destination=mocks/todo_service.go -package=mocks

// --- DTOs ---

// CreateTodoRequest is the body of POST /api/todos.
type CreateTodoRequest struct {
	Title       string   `json:"title" validate:"required,min=3"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Status      string   `json:"status" validate:"omitempty,todostatus"`
	DueDate     *string  `json:"dueDate"`
	Tags        []string `json:"tags" validate:"omitempty,dive,max=64"`
}

// UpdateTodoRequest is the body of PUT /api/todos/{id}. Title, description,
// status and due date are replaced; tags are kept when omitted.
type UpdateTodoRequest struct {
	ID          string    `json:"id" validate:"required"`
	Title       string    `json:"title" validate:"required,min=3"`
	Description *string   `json:"description" validate:"omitempty,max=2000"`
	Status      string    `json:"status" validate:"omitempty,todostatus"`
	DueDate     *string   `json:"dueDate"`
	Tags        *[]string `json:"tags" validate:"omitempty,dive,max=64"`
}

// ListTodosQuery carries the raw query string of a todo listing. OwnerID is
// only honoured on the admin listing.
type ListTodosQuery struct {
	Status   string
	Search   string
	DueStart string
	DueEnd   string
	Page     string
	Limit    string
	OwnerID  string
}

// TodoResponse is the standard representation of a Todo returned by the service.
type TodoResponse struct {
	ID          string            `json:"id"`
	OwnerID     string            `json:"ownerId"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Status      domain.TodoStatus `json:"status"`
	DueDate     *string           `json:"dueDate"`
	Tags        []string          `json:"tags"`
	CreatedAt   string            `json:"createdAt"`
	UpdatedAt   string            `json:"updatedAt"`
}

type TodoListResponse struct {
	Todos      []TodoResponse `json:"todos"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"totalPages"`
}

// WorkloadDay counts the todos due on one calendar day.
type WorkloadDay struct {
	Date      string `json:"date"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
}

type TodoStatsResponse struct {
	Total    int                         `json:"total"`
	ByStatus map[domain.TodoStatus]int64 `json:"byStatus"`
	Overdue  int                         `json:"overdue"`
	Workload []WorkloadDay               `json:"workload"`
}

// --- Service Interface ---

// TodoService holds the todo business rules. Every operation acts on behalf
// of the authenticated user and only sees that user's todos.
type TodoService interface {
	ListTodos(ctx context.Context, user *domain.User, query ListTodosQuery) (*TodoListResponse, error)
	CreateTodo(ctx context.Context, user *domain.User, req CreateTodoRequest) (*TodoResponse, error)
	GetTodoByID(ctx context.Context, user *domain.User, id string) (*TodoResponse, error)
	// UpdateTodo fails with domain.ErrIDMismatch when req.ID differs from id.
	UpdateTodo(ctx context.Context, user *domain.User, id string, req UpdateTodoRequest) (*TodoResponse, error)
	DeleteTodo(ctx context.Context, user *domain.User, id string) error
	// Stats summarises the user's board for the dashboard.
	Stats(ctx context.Context, user *domain.User) (*TodoStatsResponse, error)
}

// --- Service Implementation ---

type todoService struct {
	repo repository.TodoRepository
	now  func() time.Time
}

func NewTodoService(repo repository.TodoRepository) TodoService {
	return &todoService{repo: repo, now: time.Now}
}

func (s *todoService) ListTodos(ctx context.Context, user *domain.User, query ListTodosQuery) (*TodoListResponse, error) {
	query.OwnerID = user.ID
	return listTodos(ctx, s.repo, query)
}

func (s *todoService) CreateTodo(ctx context.Context, user *domain.User, req CreateTodoRequest) (*TodoResponse, error) {
	req.Title = strings.TrimSpace(req.Title)
	var issues validation.Collector
	if err := validation.Struct(req); err != nil && !issues.Merge(err) {
		return nil, err
	}
	dueDate := parseDueDate(&issues, req.DueDate)
	if err := issues.Err(); err != nil {
		return nil, err
	}

	todo := &domain.Todo{
		OwnerID:     user.ID,
		Title:       req.Title,
		Description: derefString(req.Description),
		Status:      statusOrDefault(req.Status),
		DueDate:     dueDate,
		Tags:        normalizeTags(req.Tags),
	}
	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, err
	}
	return toTodoResponse(todo), nil
}

func (s *todoService) GetTodoByID(ctx context.Context, user *domain.User, id string) (*TodoResponse, error) {
	todo, err := s.repo.FindByID(ctx, id, user.ID)
	if err != nil {
		return nil, err
	}
	return toTodoResponse(todo), nil
}

func (s *todoService) UpdateTodo(ctx context.Context, user *domain.User, id string, req UpdateTodoRequest) (*TodoResponse, error) {
	req.Title = strings.TrimSpace(req.Title)
	var issues validation.Collector
	if err := validation.Struct(req); err != nil && !issues.Merge(err) {
		return nil, err
	}
	dueDate := parseDueDate(&issues, req.DueDate)
	if err := issues.Err(); err != nil {
		return nil, err
	}
	if req.ID != id {
		return nil, errors.WithStack(domain.ErrIDMismatch)
	}

	todo, err := s.repo.FindByID(ctx, id, user.ID)
	if err != nil {
		return nil, err
	}
	todo.Title = req.Title
	todo.Description = derefString(req.Description)
	todo.Status = statusOrDefault(req.Status)
	todo.DueDate = dueDate
	if req.Tags != nil {
		todo.Tags = normalizeTags(*req.Tags)
	}
	if err := s.repo.Update(ctx, todo); err != nil {
		return nil, err
	}
	return toTodoResponse(todo), nil
}

func (s *todoService) DeleteTodo(ctx context.Context, user *domain.User, id string) error {
	return s.repo.Delete(ctx, id, user.ID)
}

func (s *todoService) Stats(ctx context.Context, user *domain.User) (*TodoStatsResponse, error) {
	todos, err := s.repo.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return buildStats(todos, s.now()), nil
}

func buildStats(todos []domain.Todo, now time.Time) *TodoStatsResponse {
	stats := &TodoStatsResponse{
		Total:    len(todos),
		ByStatus: zeroFilledCounts(nil),
		Workload: []WorkloadDay{},
	}
	days := map[string]*WorkloadDay{}
	for i := range todos {
		todo := &todos[i]
		stats.ByStatus[todo.Status]++
		if todo.Overdue(now) {
			stats.Overdue++
		}
		if todo.DueDate == nil {
			continue
		}
		key := todo.DueDate.UTC().Format(dateLayout)
		day, ok := days[key]
		if !ok {
			day = &WorkloadDay{Date: key}
			days[key] = day
		}
		day.Total++
		if todo.Status == domain.StatusCompleted {
			day.Completed++
		}
	}
	for _, day := range days {
		stats.Workload = append(stats.Workload, *day)
	}
	sort.Slice(stats.Workload, func(i, j int) bool {
		return stats.Workload[i].Date < stats.Workload[j].Date
	})
	return stats
}

// --- Helpers shared with the admin console ---

const dateLayout = "2006-01-02"

func listTodos(ctx context.Context, repo repository.TodoRepository, query ListTodosQuery) (*TodoListResponse, error) {
	filter, err := query.filter()
	if err != nil {
		return nil, err
	}
	page, err := repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &TodoListResponse{
		Todos:      make([]TodoResponse, 0, len(page.Items)),
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages(),
	}
	for i := range page.Items {
		resp.Todos = append(resp.Todos, *toTodoResponse(&page.Items[i]))
	}
	return resp, nil
}

func (q ListTodosQuery) filter() (domain.TodoFilter, error) {
	var issues validation.Collector
	limit := issues.Int("limit", q.Limit, domain.DefaultLimit, 1, domain.MaxLimit)
	filter := domain.TodoFilter{
		OwnerID:  strings.TrimSpace(q.OwnerID),
		Search:   strings.TrimSpace(q.Search),
		DueStart: issues.Date("dueStart", q.DueStart, false),
		DueEnd:   issues.Date("dueEnd", q.DueEnd, true),
		Page:     issues.Int("page", q.Page, domain.DefaultPage, 1, domain.MaxPage(limit)),
		Limit:    limit,
	}
	if status := domain.TodoStatus(strings.TrimSpace(q.Status)); status != "" {
		if status.Valid() {
			filter.Status = status
		} else {
			issues.Add("status", validation.EnumMessage(domain.TodoStatuses))
		}
	}
	return filter, issues.Err()
}

func parseDueDate(issues *validation.Collector, raw *string) *time.Time {
	if raw == nil {
		return nil
	}
	return issues.Date("dueDate", *raw, false)
}

func statusOrDefault(raw string) domain.TodoStatus {
	if raw == "" {
		return domain.StatusPending
	}
	return domain.TodoStatus(raw)
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func zeroFilledCounts(counts map[domain.TodoStatus]int64) map[domain.TodoStatus]int64 {
	out := make(map[domain.TodoStatus]int64, len(domain.TodoStatuses))
	for _, status := range domain.TodoStatuses {
		out[status] = counts[status]
	}
	return out
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func toTodoResponse(todo *domain.Todo) *TodoResponse {
	resp := &TodoResponse{
		ID:        todo.ID,
		OwnerID:   todo.OwnerID,
		Title:     todo.Title,
		Status:    todo.Status,
		Tags:      []string(todo.Tags),
		CreatedAt: todo.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: todo.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if todo.Description != "" {
		description := todo.Description
		resp.Description = &description
	}
	if todo.DueDate != nil {
		due := todo.DueDate.UTC().Format(time.RFC3339)
		resp.DueDate = &due
	}
	return resp
}
