package repositories

import (
	"context"
	"database/sql"
	"errors"

	"todolist/internal/models"
)

type TodoTaskRepository interface {
	Create(ctx context.Context, task *models.TodoTask) error
	FindAllByUser(ctx context.Context, userID int64) ([]models.TodoTask, error)
	FindAllByUserAndStatus(ctx context.Context, userID int64, status models.TodoTaskStatus) ([]models.TodoTask, error)
	FindByName(ctx context.Context, name string) ([]models.TodoTask, error)
	FindByIDAndUser(ctx context.Context, id, userID int64) (*models.TodoTask, error)
	CountByIDAndUser(ctx context.Context, id, userID int64) (int, error)
	Update(ctx context.Context, task *models.TodoTask) error
	Delete(ctx context.Context, id, userID int64) (*models.TodoTask, error)
}

type todoTaskRepository struct {
	db DBTX
}

func NewTodoTaskRepository(db DBTX) TodoTaskRepository {
	return &todoTaskRepository{db: db}
}

const todoTaskColumns = `id, user_id, name, description, status, created_at, updated_at`

func scanTodoTask(row rowScanner) (models.TodoTask, error) {
	var t models.TodoTask
	err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.Description, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *todoTaskRepository) list(ctx context.Context, q string, args ...any) ([]models.TodoTask, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.TodoTask{}
	for rows.Next() {
		t, err := scanTodoTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *todoTaskRepository) Create(ctx context.Context, task *models.TodoTask) error {
	const q = `
		INSERT INTO todo_tasks (user_id, name, description, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	if task.Status == "" {
		task.Status = models.TodoTaskPending
	}
	return r.db.QueryRowContext(ctx, q, task.UserID, task.Name, task.Description, task.Status).
		Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (r *todoTaskRepository) FindAllByUser(ctx context.Context, userID int64) ([]models.TodoTask, error) {
	return r.list(ctx, `SELECT `+todoTaskColumns+` FROM todo_tasks WHERE user_id=$1 ORDER BY id`, userID)
}

func (r *todoTaskRepository) FindAllByUserAndStatus(ctx context.Context, userID int64, status models.TodoTaskStatus) ([]models.TodoTask, error) {
	return r.list(ctx, `SELECT `+todoTaskColumns+` FROM todo_tasks WHERE user_id=$1 AND status=$2 ORDER BY id`, userID, status)
}

// FindByName searches every user's tasks.
func (r *todoTaskRepository) FindByName(ctx context.Context, name string) ([]models.TodoTask, error) {
	return r.list(ctx, `SELECT `+todoTaskColumns+` FROM todo_tasks WHERE name=$1`, name)
}

func (r *todoTaskRepository) FindByIDAndUser(ctx context.Context, id, userID int64) (*models.TodoTask, error) {
	t, err := scanTodoTask(r.db.QueryRowContext(ctx,
		`SELECT `+todoTaskColumns+` FROM todo_tasks WHERE id=$1 AND user_id=$2`, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *todoTaskRepository) CountByIDAndUser(ctx context.Context, id, userID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM todo_tasks WHERE id=$1 AND user_id=$2`, id, userID).Scan(&n)
	return n, err
}

func (r *todoTaskRepository) Update(ctx context.Context, task *models.TodoTask) error {
	const q = `
		UPDATE todo_tasks
		SET name=$1, description=$2, status=$3, updated_at=NOW()
		WHERE id=$4 AND user_id=$5
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, q, task.Name, task.Description, task.Status, task.ID, task.UserID).
		Scan(&task.CreatedAt, &task.UpdatedAt)
}

func (r *todoTaskRepository) Delete(ctx context.Context, id, userID int64) (*models.TodoTask, error) {
	t, err := scanTodoTask(r.db.QueryRowContext(ctx,
		`DELETE FROM todo_tasks WHERE id=$1 AND user_id=$2 RETURNING `+todoTaskColumns, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
