package ports

import (
	"context"
	"time"

	"github.com/todolist/core/internal/domain/entities"
)

// RegisterRequest is the sign-up form payload.
type RegisterRequest struct {
	Email    string `form:"email" validate:"required,email"`
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// LoginRequest is the login form payload.
type LoginRequest struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// CreateTodoRequest is the task form payload. Time is optional; when it is
// absent the stored due string is date-only.
type CreateTodoRequest struct {
	Text string `form:"todo" validate:"required"`
	Date string `form:"date"`
	Time string `form:"time"`
}

// EditTodoRequest replaces a todo's text and due; the done flag is left
// untouched.
type EditTodoRequest struct {
	Text string `form:"todo" validate:"required"`
	Date string `form:"date"`
	Time string `form:"time"`
}

// AuthService defines authentication operations.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*entities.User, error)
	Authenticate(ctx context.Context, req LoginRequest) (*entities.User, error)
	IssueSession(user *entities.User) (string, error)
	CurrentIdentity(ctx context.Context, token string) entities.Identity
}

// TodoService defines task operations.
type TodoService interface {
	List(ctx context.Context, now time.Time) (pending, completed []*entities.Todo, err error)
	Get(ctx context.Context, actor entities.Identity, id int64) (*entities.Todo, error)
	Create(ctx context.Context, owner entities.Identity, req CreateTodoRequest) (*entities.Todo, error)
	Edit(ctx context.Context, actor entities.Identity, id int64, req EditTodoRequest) (*entities.Todo, error)
	MarkDone(ctx context.Context, actor entities.Identity, id int64) error
	Restore(ctx context.Context, actor entities.Identity, id int64) error
	Delete(ctx context.Context, actor entities.Identity, id int64) error
}
