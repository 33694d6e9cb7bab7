package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tomlord1122/todo-dashboard/internal/domain"
)

func TestGormUserRepositories(t *testing.T) {
	testUserRepositories(t, func(t *testing.T) (UserRepository, SessionRepository) {
		db := postgresDB(t)
		return NewGormUserRepository(db), NewGormSessionRepository(db)
	})
}

func TestMongoUserRepositories(t *testing.T) {
	testUserRepositories(t, func(t *testing.T) (UserRepository, SessionRepository) {
		db := testMongoDB(t)
		return NewMongoUserRepository(db), NewMongoSessionRepository(db)
	})
}

func testUserRepositories(t *testing.T, newRepos func(t *testing.T) (UserRepository, SessionRepository)) {
	ctx := context.Background()

	t.Run("users", func(t *testing.T) {
		users, _ := newRepos(t)

		alice := &domain.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "hash", Role: domain.RoleUser}
		require.NoError(t, users.Create(ctx, alice))
		require.NotEmpty(t, alice.ID)

		dup := &domain.User{Name: "Alice Again", Email: "alice@example.com", PasswordHash: "hash", Role: domain.RoleUser}
		err := users.Create(ctx, dup)
		require.ErrorIs(t, err, domain.ErrConflict)
		assert.EqualError(t, err, "Email already registered")

		got, err := users.FindByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.ID)

		_, err = users.FindByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, domain.ErrNotFound)

		got.Role = domain.RoleAdmin
		got.InterWorkspaceEnabled = true
		require.NoError(t, users.Update(ctx, got))
		got, err = users.FindByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.True(t, got.IsAdmin())
		assert.True(t, got.InterWorkspaceEnabled)

		require.NoError(t, users.Create(ctx, &domain.User{Name: "Bob", Email: "bob@example.com", PasswordHash: "hash", Role: domain.RoleUser}))
		n, err := users.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)

		page, err := users.List(ctx, 1, 1)
		require.NoError(t, err)
		assert.EqualValues(t, 2, page.Total)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "Bob", page.Items[0].Name)
	})

	t.Run("sessions", func(t *testing.T) {
		_, sessions := newRepos(t)
		now := time.Now().UTC().Truncate(time.Second)
		userID := domain.NewID()

		live := &domain.Session{UserID: userID, UserAgent: "test", ExpiresAt: now.Add(time.Hour)}
		stale := &domain.Session{UserID: userID, ExpiresAt: now.Add(-time.Hour)}
		other := &domain.Session{UserID: domain.NewID(), ExpiresAt: now.Add(time.Hour)}
		for _, s := range []*domain.Session{live, stale, other} {
			require.NoError(t, sessions.Create(ctx, s))
		}

		active, err := sessions.CountActive(ctx, now)
		require.NoError(t, err)
		assert.EqualValues(t, 2, active)

		require.NoError(t, sessions.Revoke(ctx, live.ID, now))
		require.ErrorIs(t, sessions.Revoke(ctx, live.ID, now), domain.ErrNotFound)

		got, err := sessions.FindByID(ctx, live.ID)
		require.NoError(t, err)
		assert.False(t, got.Active(now))

		require.NoError(t, sessions.RevokeAllForUser(ctx, other.UserID, now))
		active, err = sessions.CountActive(ctx, now)
		require.NoError(t, err)
		assert.Zero(t, active)

		deleted, err := sessions.DeleteExpired(ctx, now)
		require.NoError(t, err)
		assert.EqualValues(t, 3, deleted)

		_, err = sessions.FindByID(ctx, stale.ID)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}
