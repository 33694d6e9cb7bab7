package service

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/Tomlord1122/todo-dashboard/internal/domain"
	"github.com/Tomlord1122/todo-dashboard/internal/repository"
	"github.com/Tomlord1122/todo-dashboard/internal/validation"
)

//go:generate mockgen -source=admin_service.go -destination=mocks/admin_service.go -package=mocks

// NotProvided stands in for a query parameter the admin user page was opened without.
const NotProvided = "Not provided"

type OverviewResponse struct {
	Users          int64                       `json:"users"`
	Todos          int64                       `json:"todos"`
	ByStatus       map[domain.TodoStatus]int64 `json:"byStatus"`
	ActiveSessions int64                       `json:"activeSessions"`
}

type ListUsersQuery struct {
	Page  string
	Limit string
}

type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"totalPages"`
}

type CreateUserRequest struct {
	Name     string      `json:"name" validate:"required,min=2,max=100"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"password"`
	Role     domain.Role `json:"role" validate:"omitempty,role"`
}

type SetRoleRequest struct {
	Role domain.Role `json:"role" validate:"required,role"`
}

type UserDetailQuery struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserDetailResponse echoes the admin user page's path and query back
// together with the resolved user, which is nil for an unknown id.
type UserDetailResponse struct {
	AdminID string          `json:"adminId"`
	UserID  string          `json:"userId"`
	Query   UserDetailQuery `json:"query"`
	User    *UserResponse   `json:"user"`
}

type SettingsResponse struct {
	InterWorkspaceEnabled bool `json:"interWorkspaceEnabled"`
}

type UpdateSettingsRequest struct {
	InterWorkspaceEnabled *bool `json:"interWorkspaceEnabled" validate:"required"`
}

// AdminService backs the admin console. Callers are expected to have
// checked the admin role already.
type AdminService interface {
	Overview(ctx context.Context) (*OverviewResponse, error)
	ListUsers(ctx context.Context, query ListUsersQuery) (*UserListResponse, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error)
	// SetRole changes a user's role and signs the user out of every session.
	// actorID is the acting admin, or empty for maintenance tooling; an admin
	// cannot demote themselves.
	SetRole(ctx context.Context, actorID, userID string, req SetRoleRequest) (*UserResponse, error)
	ListAllTodos(ctx context.Context, query ListTodosQuery) (*TodoListResponse, error)
	UserDetail(ctx context.Context, adminID, userID string, query url.Values) (*UserDetailResponse, error)
	Settings(ctx context.Context, admin *domain.User) (*SettingsResponse, error)
	UpdateSettings(ctx context.Context, admin *domain.User, req UpdateSettingsRequest) (*SettingsResponse, error)
}

type adminService struct {
	users    repository.UserRepository
	todos    repository.TodoRepository
	sessions repository.SessionRepository
	now      func() time.Time
}

func NewAdminService(users repository.UserRepository, todos repository.TodoRepository, sessions repository.SessionRepository) AdminService {
	return &adminService{users: users, todos: todos, sessions: sessions, now: time.Now}
}

func (s *adminService) Overview(ctx context.Context) (*OverviewResponse, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.todos.CountByStatus(ctx, "")
	if err != nil {
		return nil, err
	}
	active, err := s.sessions.CountActive(ctx, s.now())
	if err != nil {
		return nil, err
	}
	resp := &OverviewResponse{Users: users, ByStatus: zeroFilledCounts(counts), ActiveSessions: active}
	for _, n := range counts {
		resp.Todos += n
	}
	return resp, nil
}

func (s *adminService) ListUsers(ctx context.Context, query ListUsersQuery) (*UserListResponse, error) {
	var issues validation.Collector
	limit := issues.Int("limit", query.Limit, domain.DefaultLimit, 1, domain.MaxLimit)
	page := issues.Int("page", query.Page, domain.DefaultPage, 1, domain.MaxPage(limit))
	if err := issues.Err(); err != nil {
		return nil, err
	}

	result, err := s.users.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	resp := &UserListResponse{
		Users:      make([]UserResponse, 0, len(result.Items)),
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages(),
	}
	for i := range result.Items {
		resp.Users = append(resp.Users, toUserResponse(&result.Items[i]))
	}
	return resp, nil
}

func (s *adminService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	req.Email = normalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if req.Role == "" {
		req.Role = domain.RoleUser
	}
	user, err := createUser(ctx, s.users, req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *adminService) SetRole(ctx context.Context, actorID, userID string, req SetRoleRequest) (*UserResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if actorID != "" && actorID == userID && req.Role != domain.RoleAdmin {
		return nil, domain.BadRequest("Admins cannot demote themselves")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != req.Role {
		user.Role = req.Role
		if err := s.users.Update(ctx, user); err != nil {
			return nil, err
		}
		// a role change ends every open session
		if err := s.sessions.RevokeAllForUser(ctx, user.ID, s.now()); err != nil {
			return nil, errors.Wrap(err, "revoke sessions after role change")
		}
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *adminService) ListAllTodos(ctx context.Context, query ListTodosQuery) (*TodoListResponse, error) {
	return listTodos(ctx, s.todos, query)
}

func (s *adminService) UserDetail(ctx context.Context, adminID, userID string, query url.Values) (*UserDetailResponse, error) {
	resp := &UserDetailResponse{
		AdminID: adminID,
		UserID:  userID,
		Query: UserDetailQuery{
			ID:   joinedOrNotProvided(query["id"]),
			Name: joinedOrNotProvided(query["name"]),
		},
	}
	user, err := s.users.FindByID(ctx, userID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
	case err != nil:
		return nil, err
	default:
		found := toUserResponse(user)
		resp.User = &found
	}
	return resp, nil
}

func (s *adminService) Settings(ctx context.Context, admin *domain.User) (*SettingsResponse, error) {
	user, err := s.users.FindByID(ctx, admin.ID)
	if err != nil {
		return nil, err
	}
	return &SettingsResponse{InterWorkspaceEnabled: user.InterWorkspaceEnabled}, nil
}

func (s *adminService) UpdateSettings(ctx context.Context, admin *domain.User, req UpdateSettingsRequest) (*SettingsResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, admin.ID)
	if err != nil {
		return nil, err
	}
	user.InterWorkspaceEnabled = *req.InterWorkspaceEnabled
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return &SettingsResponse{InterWorkspaceEnabled: user.InterWorkspaceEnabled}, nil
}

func joinedOrNotProvided(values []string) string {
	if len(values) == 0 {
		return NotProvided
	}
	return strings.Join(values, ", ")
}
