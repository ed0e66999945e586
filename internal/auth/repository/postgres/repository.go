package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/khen08/todoapp/internal/auth/domain"
)

// DB is the subset of pgxpool.Pool the repository needs; pgxmock satisfies
// it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, name, username, password_hash, role, failed_attempts, lockout_until, created_at, updated_at
		FROM users
		WHERE username = $1
		LIMIT 1;
	`
	user, err := r.scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, name, username, password_hash, role, failed_attempts, lockout_until, created_at, updated_at
		FROM users
		WHERE id = $1
		LIMIT 1;
	`
	user, err := r.scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Name, &user.Username, &user.PasswordHash, &user.Role,
		&user.FailedAttempts, &user.LockoutUntil, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO users (id, name, username, password_hash, role, failed_attempts, lockout_until, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, 0, NULL, $6, $7)
    `, user.ID, user.Name, user.Username, user.PasswordHash, user.Role, user.CreatedAt, user.UpdatedAt)

	return err
}

func (r *PostgresRepository) Update(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET name = $2, username = $3, password_hash = $4, role = $5, updated_at = $6
		WHERE id = $1
	`, user.ID, user.Name, user.Username, user.PasswordHash, user.Role, user.UpdatedAt)

	return err
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

func (r *PostgresRepository) List(ctx context.Context, f domain.UserFilter) ([]domain.User, int, error) {
	where := ""
	args := []any{}
	if f.Role != "" {
		where = "WHERE role = $1"
		args = append(args, f.Role)
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM users %s", where)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	// f.OrderBy and f.Order are whitelisted by the service before they
	// reach this query.
	query := fmt.Sprintf(`
		SELECT id, name, username, password_hash, role, failed_attempts, lockout_until, created_at, updated_at
		FROM users %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, where, f.OrderBy, f.Order, len(args)+1, len(args)+2)
	args = append(args, f.PageSize, (f.Page-1)*f.PageSize)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Username, &user.PasswordHash, &user.Role,
			&user.FailedAttempts, &user.LockoutUntil, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *PostgresRepository) ResetLoginState(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET failed_attempts = 0, lockout_until = NULL
		WHERE id = $1
	`, userID)
	return err
}

// RecordFailedAttempt increments the counter in a single statement so two
// concurrent wrong-password attempts cannot clobber each other's increment.
// The lockout stamp is set exactly when the incremented count crosses the
// threshold.
func (r *PostgresRepository) RecordFailedAttempt(ctx context.Context, userID string, threshold int, window time.Duration) (int, *time.Time, error) {
	query := `
		UPDATE users
		SET failed_attempts = failed_attempts + 1,
		    lockout_until = CASE
		        WHEN failed_attempts + 1 >= $2 THEN now() + $3
		        ELSE lockout_until
		    END
		WHERE id = $1
		RETURNING failed_attempts, lockout_until;
	`
	var attempts int
	var lockoutUntil *time.Time
	err := r.db.QueryRow(ctx, query, userID, threshold, window).Scan(&attempts, &lockoutUntil)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to record failed attempt: %w", err)
	}
	return attempts, lockoutUntil, nil
}

func (r *PostgresRepository) RecordLoginAttempt(ctx context.Context, username, ip string, success bool) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO login_attempts (id, username, ip_address, attempt_time, successful)
		VALUES (gen_random_uuid(), $1, $2, now(), $3)
	`, username, ip, success)
	return err
}
