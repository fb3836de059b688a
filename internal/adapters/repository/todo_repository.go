package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/todolist/core/internal/domain/entities"
	"github.com/todolist/core/internal/ports"
)

// TodoRepositoryImpl implements the TodoRepository interface
type TodoRepositoryImpl struct {
	db *sqlx.DB
}

// NewTodoRepository creates a new todo repository
func NewTodoRepository(db *sqlx.DB) ports.TodoRepository {
	return &TodoRepositoryImpl{db: db}
}

func (r *TodoRepositoryImpl) Create(ctx context.Context, todo *entities.Todo) error {
	query := `
		INSERT INTO todos (text, due, done, overdue, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		todo.Text, todo.Due, todo.Done, todo.Overdue, todo.UserID,
	).Scan(&todo.ID, &todo.CreatedAt, &todo.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return entities.ErrDuplicateTask
		}
		return fmt.Errorf("create todo: %w", err)
	}

	return nil
}

func (r *TodoRepositoryImpl) GetByID(ctx context.Context, id int64) (*entities.Todo, error) {
	query := `
		SELECT id, text, due, done, overdue, user_id, created_at, updated_at
		FROM todos
		WHERE id = $1`

	var todo entities.Todo
	err := r.db.GetContext(ctx, &todo, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get todo by id: %w", err)
	}

	return &todo, nil
}

func (r *TodoRepositoryImpl) Update(ctx context.Context, todo *entities.Todo) error {
	query := `
		UPDATE todos
		SET text = $2, due = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query, todo.ID, todo.Text, todo.Due).Scan(&todo.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.ErrTaskNotFound
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return entities.ErrDuplicateTask
		}
		return fmt.Errorf("update todo: %w", err)
	}

	return nil
}

func (r *TodoRepositoryImpl) SetDone(ctx context.Context, id int64, done bool) error {
	query := `UPDATE todos SET done = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $1`
	return r.exec(ctx, query, id, done)
}

func (r *TodoRepositoryImpl) SetOverdue(ctx context.Context, id int64, overdue bool) error {
	query := `UPDATE todos SET overdue = $2 WHERE id = $1`
	return r.exec(ctx, query, id, overdue)
}

func (r *TodoRepositoryImpl) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM todos WHERE id = $1`
	return r.exec(ctx, query, id)
}

func (r *TodoRepositoryImpl) ListAll(ctx context.Context) ([]*entities.Todo, error) {
	query := `
		SELECT id, text, due, done, overdue, user_id, created_at, updated_at
		FROM todos`

	var todos []*entities.Todo
	if err := r.db.SelectContext(ctx, &todos, query); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	return todos, nil
}

func (r *TodoRepositoryImpl) ListPending(ctx context.Context) ([]*entities.Todo, error) {
	// due is stored as text, so ORDER BY compares the raw strings.
	query := `
		SELECT id, text, due, done, overdue, user_id, created_at, updated_at
		FROM todos
		WHERE done = false
		ORDER BY due ASC, id ASC`

	var todos []*entities.Todo
	if err := r.db.SelectContext(ctx, &todos, query); err != nil {
		return nil, fmt.Errorf("list pending todos: %w", err)
	}

	return todos, nil
}

func (r *TodoRepositoryImpl) ListCompleted(ctx context.Context) ([]*entities.Todo, error) {
	query := `
		SELECT id, text, due, done, overdue, user_id, created_at, updated_at
		FROM todos
		WHERE done = true
		ORDER BY due DESC, id ASC`

	var todos []*entities.Todo
	if err := r.db.SelectContext(ctx, &todos, query); err != nil {
		return nil, fmt.Errorf("list completed todos: %w", err)
	}

	return todos, nil
}

func (r *TodoRepositoryImpl) exec(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("exec todo update: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}
