package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/khen08/todoapp/internal/task/domain"
)

// DB is the subset of pgxpool.Pool the repository needs; pgxmock satisfies
// it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByAuthor(ctx context.Context, authorID string) ([]domain.Task, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, color, author_id, created_at, updated_at
		FROM tasks
		WHERE author_id = $1
		ORDER BY created_at
	`, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Color, &t.AuthorID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range tasks {
		items, err := r.listItems(ctx, tasks[i].ID)
		if err != nil {
			return nil, err
		}
		tags, err := r.listTaskTags(ctx, tasks[i].ID)
		if err != nil {
			return nil, err
		}
		tasks[i].Items = items
		tasks[i].Tags = tags
	}

	return tasks, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, taskID, authorID string) (*domain.Task, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, title, color, author_id, created_at, updated_at
		FROM tasks
		WHERE id = $1 AND author_id = $2
		LIMIT 1
	`, taskID, authorID)

	var t domain.Task
	err := row.Scan(&t.ID, &t.Title, &t.Color, &t.AuthorID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if t.Items, err = r.listItems(ctx, t.ID); err != nil {
		return nil, err
	}
	if t.Tags, err = r.listTaskTags(ctx, t.ID); err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *PostgresRepository) Create(ctx context.Context, task *domain.Task, tagIDs []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO tasks (id, title, color, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, task.ID, task.Title, task.Color, task.AuthorID, task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}

	if err := insertItems(ctx, tx, task); err != nil {
		return err
	}
	if err := insertTaskTags(ctx, tx, task.ID, tagIDs); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) Update(ctx context.Context, task *domain.Task, tagIDs []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE tasks
		SET title = $2, color = $3, updated_at = $4
		WHERE id = $1 AND author_id = $5
	`, task.ID, task.Title, task.Color, task.UpdatedAt, task.AuthorID)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	// Items are replaced wholesale on every update.
	if _, err := tx.Exec(ctx, `DELETE FROM task_items WHERE task_id = $1`, task.ID); err != nil {
		return fmt.Errorf("failed to delete task items: %w", err)
	}
	if err := insertItems(ctx, tx, task); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM task_tags WHERE task_id = $1`, task.ID); err != nil {
		return fmt.Errorf("failed to delete task tags: %w", err)
	}
	if err := insertTaskTags(ctx, tx, task.ID, tagIDs); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) Delete(ctx context.Context, taskID, authorID string) error {
	// task_items and task_tags cascade on delete.
	_, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND author_id = $2`, taskID, authorID)
	return err
}

func (r *PostgresRepository) ListTags(ctx context.Context, userID string) ([]domain.Tag, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, color, user_id
		FROM tags
		WHERE user_id = $1
		ORDER BY name ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	return scanTags(rows)
}

func (r *PostgresRepository) CreateTag(ctx context.Context, tag *domain.Tag) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO tags (id, name, color, user_id)
		VALUES ($1, $2, $3, $4)
	`, tag.ID, tag.Name, tag.Color, tag.UserID)
	return err
}

func (r *PostgresRepository) DeleteTags(ctx context.Context, userID string, tagIDs []string) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM tags WHERE id = ANY($1) AND user_id = $2
	`, tagIDs, userID)
	return err
}

func (r *PostgresRepository) listItems(ctx context.Context, taskID string) ([]domain.TaskItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, task_id, name, checked, position
		FROM task_items
		WHERE task_id = $1
		ORDER BY position
	`, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list task items: %w", err)
	}
	defer rows.Close()

	var items []domain.TaskItem
	for rows.Next() {
		var it domain.TaskItem
		if err := rows.Scan(&it.ID, &it.TaskID, &it.Name, &it.Checked, &it.Position); err != nil {
			return nil, fmt.Errorf("failed to scan task item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) listTaskTags(ctx context.Context, taskID string) ([]domain.Tag, error) {
	rows, err := r.db.Query(ctx, `
		SELECT t.id, t.name, t.color, t.user_id
		FROM tags t
		JOIN task_tags tt ON tt.tag_id = t.id
		WHERE tt.task_id = $1
		ORDER BY t.name ASC
	`, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list task tags: %w", err)
	}
	defer rows.Close()

	return scanTags(rows)
}

func scanTags(rows pgx.Rows) ([]domain.Tag, error) {
	var tags []domain.Tag
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Color, &tag.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func insertItems(ctx context.Context, tx pgx.Tx, task *domain.Task) error {
	for _, item := range task.Items {
		_, err := tx.Exec(ctx, `
			INSERT INTO task_items (id, task_id, name, checked, position)
			VALUES ($1, $2, $3, $4, $5)
		`, item.ID, item.TaskID, item.Name, item.Checked, item.Position)
		if err != nil {
			return fmt.Errorf("failed to insert task item: %w", err)
		}
	}
	return nil
}

func insertTaskTags(ctx context.Context, tx pgx.Tx, taskID string, tagIDs []string) error {
	for _, tagID := range tagIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO task_tags (task_id, tag_id)
			VALUES ($1, $2)
		`, taskID, tagID)
		if err != nil {
			return fmt.Errorf("failed to insert task tag: %w", err)
		}
	}
	return nil
}
