package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khen08/todoapp/internal/auth/domain"
	repo "github.com/khen08/todoapp/internal/auth/repository/postgres"
	"github.com/khen08/todoapp/pkg/constant"
)

var userColumns = []string{
	"id", "name", "username", "password_hash", "role",
	"failed_attempts", "lockout_until", "created_at", "updated_at",
}

func userRow(id, username string, failedAttempts int, lockoutUntil *time.Time) *pgxmock.Rows {
	return pgxmock.NewRows(userColumns).
		AddRow(id, "Test User", username, "hash", constant.RoleUser,
			failedAttempts, lockoutUntil, time.Now(), time.Now())
}

// TestGetByUsername covers the GetByUsername repository method.
func TestGetByUsername(t *testing.T) {
	// --- Setup ---
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	username := "tester"

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, username").
			WithArgs(username).
			WillReturnRows(userRow("user-123", username, 3, nil))

		user, err := r.GetByUsername(ctx, username)
		require.NoError(t, err)
		assert.Equal(t, "user-123", user.ID)
		assert.Equal(t, 3, user.FailedAttempts)
		assert.Nil(t, user.LockoutUntil)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, username").
			WithArgs(username).
			WillReturnError(pgx.ErrNoRows)

		user, err := r.GetByUsername(ctx, username)
		require.NoError(t, err) // Should return nil user, nil error
		assert.Nil(t, user)
	})

	t.Run("locked user round-trips lockout_until", func(t *testing.T) {
		until := time.Now().Add(10 * time.Minute)
		mock.ExpectQuery("SELECT id, name, username").
			WithArgs(username).
			WillReturnRows(userRow("user-123", username, constant.MaxLoginAttempts, &until))

		user, err := r.GetByUsername(ctx, username)
		require.NoError(t, err)
		require.NotNil(t, user.LockoutUntil)
		assert.True(t, user.Locked(time.Now()))
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, username").
			WithArgs(username).
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.GetByUsername(ctx, username)
		assert.Error(t, err)
	})
}

// TestCreate covers the Create repository method.
func TestCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	ctx := context.Background()

	r := repo.NewPostgresRepository(mock)
	userToCreate := &domain.User{
		ID:           "user-123",
		Name:         "New User",
		Username:     "newuser",
		PasswordHash: "new-hash",
		Role:         constant.RoleUser,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs(userToCreate.ID, userToCreate.Name, userToCreate.Username,
				userToCreate.PasswordHash, userToCreate.Role,
				userToCreate.CreatedAt, userToCreate.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		err := r.Create(ctx, userToCreate)
		assert.NoError(t, err)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO users").
			WithArgs(userToCreate.ID, userToCreate.Name, userToCreate.Username,
				userToCreate.PasswordHash, userToCreate.Role,
				userToCreate.CreatedAt, userToCreate.UpdatedAt).
			WillReturnError(fmt.Errorf("db error"))

		err := r.Create(ctx, userToCreate)
		assert.Error(t, err)
	})
}

// TestResetLoginState verifies the success-path counter reset.
func TestResetLoginState(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)

	mock.ExpectExec("UPDATE users").
		WithArgs("user-123").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = r.ResetLoginState(context.Background(), "user-123")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestRecordFailedAttempt verifies the atomic increment-and-maybe-lock write.
func TestRecordFailedAttempt(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()

	t.Run("below threshold", func(t *testing.T) {
		mock.ExpectQuery("UPDATE users").
			WithArgs("user-123", constant.MaxLoginAttempts, constant.LockoutDuration).
			WillReturnRows(pgxmock.NewRows([]string{"failed_attempts", "lockout_until"}).
				AddRow(4, (*time.Time)(nil)))

		attempts, lockoutUntil, err := r.RecordFailedAttempt(ctx, "user-123",
			constant.MaxLoginAttempts, constant.LockoutDuration)
		require.NoError(t, err)
		assert.Equal(t, 4, attempts)
		assert.Nil(t, lockoutUntil)
	})

	t.Run("crossing the threshold returns the lockout stamp", func(t *testing.T) {
		until := time.Now().Add(constant.LockoutDuration)
		mock.ExpectQuery("UPDATE users").
			WithArgs("user-123", constant.MaxLoginAttempts, constant.LockoutDuration).
			WillReturnRows(pgxmock.NewRows([]string{"failed_attempts", "lockout_until"}).
				AddRow(constant.MaxLoginAttempts, &until))

		attempts, lockoutUntil, err := r.RecordFailedAttempt(ctx, "user-123",
			constant.MaxLoginAttempts, constant.LockoutDuration)
		require.NoError(t, err)
		assert.Equal(t, constant.MaxLoginAttempts, attempts)
		require.NotNil(t, lockoutUntil)
		assert.WithinDuration(t, until, *lockoutUntil, time.Second)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("UPDATE users").
			WithArgs("user-123", constant.MaxLoginAttempts, constant.LockoutDuration).
			WillReturnError(fmt.Errorf("db error"))

		_, _, err := r.RecordFailedAttempt(ctx, "user-123",
			constant.MaxLoginAttempts, constant.LockoutDuration)
		assert.Error(t, err)
	})
}

// TestRecordLoginAttempt covers the audit insert.
func TestRecordLoginAttempt(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)

	mock.ExpectExec("INSERT INTO login_attempts").
		WithArgs("tester", "127.0.0.1", false).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = r.RecordLoginAttempt(context.Background(), "tester", "127.0.0.1", false)
	assert.NoError(t, err)
}

// TestList covers filtering and pagination.
func TestList(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()

	t.Run("without role filter", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))
		mock.ExpectQuery("SELECT id, name, username").
			WithArgs(5, 0).
			WillReturnRows(userRow("user-1", "alice", 0, nil).
				AddRow("user-2", "Bob", "bob", "hash", constant.RoleUser, 0, nil, time.Now(), time.Now()))

		users, total, err := r.List(ctx, domain.UserFilter{
			OrderBy: "name", Order: "asc", Page: 1, PageSize: 5,
		})
		require.NoError(t, err)
		assert.Equal(t, 7, total)
		assert.Len(t, users, 2)
	})

	t.Run("with role filter", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT").
			WithArgs(constant.RoleAdmin).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("SELECT id, name, username").
			WithArgs(constant.RoleAdmin, 5, 0).
			WillReturnRows(userRow("user-1", "root", 0, nil))

		users, total, err := r.List(ctx, domain.UserFilter{
			Role: constant.RoleAdmin, OrderBy: "name", Order: "asc", Page: 1, PageSize: 5,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Len(t, users, 1)
	})
}

// TestUpdateAndDelete covers the remaining user writes.
func TestUpdateAndDelete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPostgresRepository(mock)
	ctx := context.Background()

	user := &domain.User{
		ID:           "user-123",
		Name:         "Renamed",
		Username:     "renamed",
		PasswordHash: "hash",
		Role:         constant.RoleAdmin,
		UpdatedAt:    time.Now(),
	}

	t.Run("update", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs(user.ID, user.Name, user.Username, user.PasswordHash, user.Role, user.UpdatedAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		assert.NoError(t, r.Update(ctx, user))
	})

	t.Run("delete", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM users").
			WithArgs(user.ID).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		assert.NoError(t, r.Delete(ctx, user.ID))
	})
}
