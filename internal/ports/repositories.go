package ports

import (
	"context"

	"github.com/todolist/core/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id int64) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
}

// TodoRepository defines the interface for todo data operations
type TodoRepository interface {
	Create(ctx context.Context, todo *entities.Todo) error
	GetByID(ctx context.Context, id int64) (*entities.Todo, error)
	Update(ctx context.Context, todo *entities.Todo) error
	SetDone(ctx context.Context, id int64, done bool) error
	SetOverdue(ctx context.Context, id int64, overdue bool) error
	Delete(ctx context.Context, id int64) error

	// ListAll returns every stored todo regardless of owner; the overdue
	// recompute pass walks this set.
	ListAll(ctx context.Context) ([]*entities.Todo, error)

	// ListPending returns not-done todos ordered ascending by the raw due
	// string; ListCompleted returns done todos ordered descending.
	ListPending(ctx context.Context) ([]*entities.Todo, error)
	ListCompleted(ctx context.Context) ([]*entities.Todo, error)
}
