package service

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Tomlord1122/todo-dashboard/internal/auth"
	"github.com/Tomlord1122/todo-dashboard/internal/domain"
	"github.com/Tomlord1122/todo-dashboard/internal/repository"
	"github.com/Tomlord1122/todo-dashboard/internal/validation"
)

//go:generate mockgen -source=auth_service.go -destination=mocks/auth_service.go -package=mocks

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type UserResponse struct {
	ID                    string      `json:"id"`
	Name                  string      `json:"name"`
	Email                 string      `json:"email"`
	Role                  domain.Role `json:"role"`
	InterWorkspaceEnabled bool        `json:"interWorkspaceEnabled"`
	CreatedAt             string      `json:"createdAt"`
}

type AuthResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

// InfoResponse backs the "<name> • <roleLabel>" line of the main page.
type InfoResponse struct {
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
	RoleLabel string      `json:"roleLabel"`
}

// AuthService owns accounts and the refresh-token sessions behind them.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest, userAgent string) (*AuthResponse, error)
	// Login fails with domain.ErrInvalidCredentials for an unknown email or a
	// wrong password alike.
	Login(ctx context.Context, req LoginRequest, userAgent string) (*AuthResponse, error)
	// Refresh rotates the session: the presented token stops working.
	Refresh(ctx context.Context, req RefreshRequest, userAgent string) (*AuthResponse, error)
	Logout(ctx context.Context, req RefreshRequest) error
	// Authenticate resolves an access token to the current user.
	Authenticate(ctx context.Context, accessToken string) (*domain.User, error)
	Profile(user *domain.User) UserResponse
	Info(user *domain.User) InfoResponse
}

type authService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	tokens   *auth.TokenManager
}

func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository, tokens *auth.TokenManager) AuthService {
	return &authService{users: users, sessions: sessions, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, req RegisterRequest, userAgent string) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	user, err := createUser(ctx, s.users, req.Name, req.Email, req.Password, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, user, userAgent)
}

func (s *authService) Login(ctx context.Context, req LoginRequest, userAgent string) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	user, err := s.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errors.WithStack(domain.ErrInvalidCredentials)
	}
	if err != nil {
		return nil, err
	}
	if err := auth.VerifyPassword(req.Password, user.PasswordHash); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, errors.WithStack(domain.ErrInvalidCredentials)
		}
		return nil, err
	}
	return s.issue(ctx, user, userAgent)
}

func (s *authService) Refresh(ctx context.Context, req RefreshRequest, userAgent string) (*AuthResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	claims, err := s.tokens.ParseRefresh(req.RefreshToken)
	if err != nil {
		return nil, err
	}
	session, err := s.sessions.FindByID(ctx, claims.ID)
	if err != nil {
		return nil, unauthorizedIfNotFound(err, "refresh session")
	}
	now := s.tokens.Now()
	if session.UserID != claims.Subject || !session.Active(now) {
		return nil, errors.Wrap(domain.ErrUnauthorized, "refresh session is no longer active")
	}
	// A concurrent refresh with the same token loses here.
	if err := s.sessions.Revoke(ctx, session.ID, now); err != nil {
		return nil, unauthorizedIfNotFound(err, "revoke refresh session")
	}
	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, unauthorizedIfNotFound(err, "refresh user")
	}
	return s.issue(ctx, user, userAgent)
}

// Logout is idempotent for a session that is already revoked.
func (s *authService) Logout(ctx context.Context, req RefreshRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}
	claims, err := s.tokens.ParseRefresh(req.RefreshToken)
	if err != nil {
		return err
	}
	err = s.sessions.Revoke(ctx, claims.ID, s.tokens.Now())
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

func (s *authService) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, err := s.tokens.ParseAccess(accessToken)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, unauthorizedIfNotFound(err, "access token subject")
	}
	return user, nil
}

func (s *authService) Profile(user *domain.User) UserResponse {
	return toUserResponse(user)
}

func (s *authService) Info(user *domain.User) InfoResponse {
	return InfoResponse{Name: user.Name, Role: user.Role, RoleLabel: RoleLabel(user.Role)}
}

func (s *authService) issue(ctx context.Context, user *domain.User, userAgent string) (*AuthResponse, error) {
	session := &domain.Session{
		UserID:    user.ID,
		UserAgent: userAgent,
		ExpiresAt: s.tokens.RefreshExpiry(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	access, err := s.tokens.IssueAccess(user)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefresh(user.ID, session.ID, session.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{AccessToken: access, RefreshToken: refresh, User: toUserResponse(user)}, nil
}

// RoleLabel is the title-cased role shown next to the user's name.
func RoleLabel(role domain.Role) string {
	return cases.Title(language.English).String(string(role))
}

func createUser(ctx context.Context, users repository.UserRepository, name, email, password string, role domain.Role) (*domain.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func unauthorizedIfNotFound(err error, what string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return errors.Wrap(domain.ErrUnauthorized, what+" not found")
	}
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:                    user.ID,
		Name:                  user.Name,
		Email:                 user.Email,
		Role:                  user.Role,
		InterWorkspaceEnabled: user.InterWorkspaceEnabled,
		CreatedAt:             user.CreatedAt.UTC().Format(time.RFC3339),
	}
}
