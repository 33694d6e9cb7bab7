package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Tomlord1122/todo-dashboard/internal/auth"
	"github.com/Tomlord1122/todo-dashboard/internal/config"
	"github.com/Tomlord1122/todo-dashboard/internal/domain"
	"github.com/Tomlord1122/todo-dashboard/internal/repository/mocks"
	"github.com/Tomlord1122/todo-dashboard/internal/service"
)

type authFixture struct {
	users    *mocks.MockUserRepository
	sessions *mocks.MockSessionRepository
	tokens   *auth.TokenManager
	svc      service.AuthService
}

func setupAuth(t *testing.T) *authFixture {
	ctrl := gomock.NewController(t)
	f := &authFixture{
		users:    mocks.NewMockUserRepository(ctrl),
		sessions: mocks.NewMockSessionRepository(ctrl),
		tokens: auth.NewTokenManager("todo-dashboard", config.Auth{
			AccessSecret:    "access-secret",
			RefreshSecret:   "refresh-secret",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: time.Hour,
		}),
	}
	f.svc = service.NewAuthService(f.users, f.sessions, f.tokens)
	return f
}

// expectSessionCreate records the created session in *got.
func (f *authFixture) expectSessionCreate(got **domain.Session) {
	f.sessions.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *domain.Session) error {
			s.ID = domain.NewID()
			*got = s
			return nil
		})
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name    string
		input   service.RegisterRequest
		arrange func(f *authFixture)
		assert  func(t *testing.T, resp *service.AuthResponse, err error)
	}{
		{
			name:  "Should create a user account and sign it in",
			input: service.RegisterRequest{Name: " Demo User ", Email: " Demo@Todo.dev ", Password: "ChangeMe123!"},
			arrange: func(f *authFixture) {
				f.users.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *domain.User) error {
						u.ID = "U1"
						return nil
					})
				var session *domain.Session
				f.expectSessionCreate(&session)
			},
			assert: func(t *testing.T, resp *service.AuthResponse, err error) {
				require.NoError(t, err)
				assert.Equal(t, "U1", resp.User.ID)
				assert.Equal(t, "Demo User", resp.User.Name)
				assert.Equal(t, "demo@todo.dev", resp.User.Email)
				assert.Equal(t, domain.RoleUser, resp.User.Role)
				assert.NotEmpty(t, resp.AccessToken)
				assert.NotEmpty(t, resp.RefreshToken)
			},
		},
		{
			name:  "Should report a taken email",
			input: service.RegisterRequest{Name: "Demo User", Email: "demo@todo.dev", Password: "ChangeMe123!"},
			arrange: func(f *authFixture) {
				f.users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.Conflict("Email already registered"))
			},
			assert: func(t *testing.T, resp *service.AuthResponse, err error) {
				require.ErrorIs(t, err, domain.ErrConflict)
			},
		},
		{
			name:    "Should validate the form",
			input:   service.RegisterRequest{Name: "D", Email: "nope", Password: "short"},
			arrange: func(f *authFixture) {},
			assert: func(t *testing.T, resp *service.AuthResponse, err error) {
				issues := issuesOf(t, err)
				assert.Equal(t, "String must contain at least 2 character(s)", issues["name"])
				assert.Equal(t, "Invalid email", issues["email"])
				assert.Equal(t, "Password must be at least 8 characters", issues["password"])
			},
		},
		{
			name:    "Should report the length rule for an empty password",
			input:   service.RegisterRequest{Name: "Demo User", Email: "demo@todo.dev"},
			arrange: func(f *authFixture) {},
			assert: func(t *testing.T, resp *service.AuthResponse, err error) {
				assert.Equal(t, "Password must be at least 8 characters", issuesOf(t, err)["password"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupAuth(t)
			tt.arrange(f)

			resp, err := f.svc.Register(context.Background(), tt.input, "go-test")

			tt.assert(t, resp, err)
		})
	}
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("ChangeMe123!")
	require.NoError(t, err)
	demo := &domain.User{ID: "U1", Name: "Demo User", Email: "demo@todo.dev", PasswordHash: hash, Role: domain.RoleAdmin}

	tests := []struct {
		name    string
		input   service.LoginRequest
		arrange func(f *authFixture)
		assert  func(t *testing.T, resp *service.AuthResponse, err error)
	}{
		{
			name:  "Should sign in with the right password",
			input: service.LoginRequest{Email: "DEMO@todo.dev", Password: "ChangeMe123!"},
			arrange: func(f *authFixture) {
				f.users.EXPECT().FindByEmail(gomock.Any(), "demo@todo.dev").Return(demo, nil)
				var session *domain.Session
				f.expectSessionCreate(&session)
			},
			assert: func(t *testing.T, resp *service.AuthResponse, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.RoleAdmin, resp.User.Role)
			},
		},
		{
			name:  "Should reject a wrong password",
			input: service.LoginRequest{Email: "demo@todo.dev", Password: "WrongPass1!"},
			arrange: func(f *authFixture) {
				f.users.EXPECT().FindByEmail(gomock.Any(), "demo@todo.dev").Return(demo, nil)
			},
			assert: func(t *testing.T, resp *service.AuthResponse, err error) {
				require.ErrorIs(t, err, domain.ErrInvalidCredentials)
				assert.EqualError(t, err, "Invalid credentials")
			},
		},
		{
			name:  "Should reject an unknown email the same way",
			input: service.LoginRequest{Email: "ghost@todo.dev", Password: "ChangeMe123!"},
			arrange: func(f *authFixture) {
				f.users.EXPECT().FindByEmail(gomock.Any(), "ghost@todo.dev").Return(nil, domain.NotFound("User"))
			},
			assert: func(t *testing.T, resp *service.AuthResponse, err error) {
				require.ErrorIs(t, err, domain.ErrInvalidCredentials)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupAuth(t)
			tt.arrange(f)

			resp, err := f.svc.Login(context.Background(), tt.input, "go-test")

			tt.assert(t, resp, err)
		})
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()
	user := &domain.User{ID: "U1", Name: "Demo User", Role: domain.RoleUser}
	old := &domain.Session{ID: domain.NewID(), UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)}
	token, err := f.tokens.IssueRefresh(user.ID, old.ID, old.ExpiresAt)
	require.NoError(t, err)

	var created *domain.Session
	gomock.InOrder(
		f.sessions.EXPECT().FindByID(ctx, old.ID).Return(old, nil),
		f.sessions.EXPECT().Revoke(ctx, old.ID, gomock.Any()).Return(nil),
		f.users.EXPECT().FindByID(ctx, user.ID).Return(user, nil),
	)
	f.expectSessionCreate(&created)

	resp, err := f.svc.Refresh(ctx, service.RefreshRequest{RefreshToken: token}, "go-test")
	require.NoError(t, err)

	claims, err := f.tokens.ParseRefresh(resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.ID)
	assert.NotEqual(t, old.ID, claims.ID)
	assert.Equal(t, "go-test", created.UserAgent)
}

func TestRefreshRejects(t *testing.T) {
	user := &domain.User{ID: "U1"}
	now := time.Now()

	tests := []struct {
		name    string
		session *domain.Session
		arrange func(f *authFixture, s *domain.Session)
	}{
		{
			name:    "Should reject a revoked session",
			session: &domain.Session{ID: "S1", UserID: user.ID, ExpiresAt: now.Add(time.Hour), RevokedAt: &now},
			arrange: func(f *authFixture, s *domain.Session) {
				f.sessions.EXPECT().FindByID(gomock.Any(), s.ID).Return(s, nil)
			},
		},
		{
			name:    "Should reject an unknown session",
			session: &domain.Session{ID: "S2", UserID: user.ID, ExpiresAt: now.Add(time.Hour)},
			arrange: func(f *authFixture, s *domain.Session) {
				f.sessions.EXPECT().FindByID(gomock.Any(), s.ID).Return(nil, domain.NotFound("Session"))
			},
		},
		{
			name:    "Should reject a session that lost a concurrent refresh",
			session: &domain.Session{ID: "S3", UserID: user.ID, ExpiresAt: now.Add(time.Hour)},
			arrange: func(f *authFixture, s *domain.Session) {
				f.sessions.EXPECT().FindByID(gomock.Any(), s.ID).Return(s, nil)
				f.sessions.EXPECT().Revoke(gomock.Any(), s.ID, gomock.Any()).Return(domain.NotFound("Session"))
			},
		},
		{
			name:    "Should reject a session owned by another user",
			session: &domain.Session{ID: "S4", UserID: "U2", ExpiresAt: now.Add(time.Hour)},
			arrange: func(f *authFixture, s *domain.Session) {
				f.sessions.EXPECT().FindByID(gomock.Any(), s.ID).Return(s, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupAuth(t)
			token, err := f.tokens.IssueRefresh(user.ID, tt.session.ID, now.Add(time.Hour))
			require.NoError(t, err)
			tt.arrange(f, tt.session)

			_, err = f.svc.Refresh(context.Background(), service.RefreshRequest{RefreshToken: token}, "")

			require.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}

func TestLogout(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()
	token, err := f.tokens.IssueRefresh("U1", "S1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	f.sessions.EXPECT().Revoke(ctx, "S1", gomock.Any()).Return(nil)
	require.NoError(t, f.svc.Logout(ctx, service.RefreshRequest{RefreshToken: token}))

	f.sessions.EXPECT().Revoke(ctx, "S1", gomock.Any()).Return(domain.NotFound("Session"))
	require.NoError(t, f.svc.Logout(ctx, service.RefreshRequest{RefreshToken: token}))

	err = f.svc.Logout(ctx, service.RefreshRequest{RefreshToken: "garbage"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthenticate(t *testing.T) {
	f := setupAuth(t)
	ctx := context.Background()
	user := &domain.User{ID: "U1", Name: "Demo User", Role: domain.RoleAdmin}
	token, err := f.tokens.IssueAccess(user)
	require.NoError(t, err)

	f.users.EXPECT().FindByID(ctx, "U1").Return(user, nil)
	got, err := f.svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	f.users.EXPECT().FindByID(ctx, "U1").Return(nil, domain.NotFound("User"))
	_, err = f.svc.Authenticate(ctx, token)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	refresh, err := f.tokens.IssueRefresh("U1", "S1", time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = f.svc.Authenticate(ctx, refresh)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestInfo(t *testing.T) {
	f := setupAuth(t)

	info := f.svc.Info(&domain.User{Name: "Demo User", Role: domain.RoleAdmin})
	assert.Equal(t, service.InfoResponse{Name: "Demo User", Role: domain.RoleAdmin, RoleLabel: "Admin"}, info)
	assert.Equal(t, "User", service.RoleLabel(domain.RoleUser))
}
