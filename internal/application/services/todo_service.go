package services

import (
	"context"
	"fmt"
	"time"

	"github.com/todolist/core/internal/domain/entities"
	"github.com/todolist/core/internal/infrastructure/logger"
	"github.com/todolist/core/internal/ports"
)

// TodoService handles task CRUD and the overdue recompute pass.
type TodoService struct {
	todoRepo ports.TodoRepository
	logger   *logger.Logger
}

// NewTodoService creates a new todo service
func NewTodoService(todoRepo ports.TodoRepository, logger *logger.Logger) *TodoService {
	return &TodoService{
		todoRepo: todoRepo,
		logger:   logger,
	}
}

// List recomputes the overdue flag of every stored todo against now, then
// returns the pending view (ascending by due) and the completed view
// (descending by due). The recompute is eager so the persisted flags are
// always consistent with (due, done, now) after a list call.
func (s *TodoService) List(ctx context.Context, now time.Time) ([]*entities.Todo, []*entities.Todo, error) {
	todos, err := s.todoRepo.ListAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load todos: %w", err)
	}

	for _, todo := range todos {
		overdue := entities.IsOverdue(todo.Due, now)
		if overdue == todo.Overdue {
			continue
		}
		if err := s.todoRepo.SetOverdue(ctx, todo.ID, overdue); err != nil {
			return nil, nil, fmt.Errorf("failed to update overdue flag: %w", err)
		}
	}

	pending, err := s.todoRepo.ListPending(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list pending todos: %w", err)
	}

	completed, err := s.todoRepo.ListCompleted(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list completed todos: %w", err)
	}

	return pending, completed, nil
}

// Get loads a single todo for the edit form, gated on ownership.
func (s *TodoService) Get(ctx context.Context, actor entities.Identity, id int64) (*entities.Todo, error) {
	return s.ownedTodo(ctx, actor, id)
}

// Create stores a new todo owned by the caller. Anonymous callers are
// rejected and the store is left untouched.
func (s *TodoService) Create(ctx context.Context, owner entities.Identity, req ports.CreateTodoRequest) (*entities.Todo, error) {
	if owner.IsAnonymous() {
		return nil, entities.ErrAnonymous
	}

	todo := &entities.Todo{
		Text:   req.Text,
		Due:    entities.CombineDue(req.Date, req.Time),
		UserID: owner.User.ID,
	}

	if err := s.todoRepo.Create(ctx, todo); err != nil {
		return nil, err
	}

	s.logger.Info("Todo created", "todo_id", todo.ID, "user_id", todo.UserID)

	return todo, nil
}

// Edit replaces a todo's text and due using the same date/time combination
// rule as Create. The done flag is deliberately left as it was.
func (s *TodoService) Edit(ctx context.Context, actor entities.Identity, id int64, req ports.EditTodoRequest) (*entities.Todo, error) {
	todo, err := s.ownedTodo(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	todo.Text = req.Text
	todo.Due = entities.CombineDue(req.Date, req.Time)

	if err := s.todoRepo.Update(ctx, todo); err != nil {
		return nil, err
	}

	s.logger.Info("Todo edited", "todo_id", todo.ID, "user_id", todo.UserID)

	return todo, nil
}

// MarkDone sets the done flag.
func (s *TodoService) MarkDone(ctx context.Context, actor entities.Identity, id int64) error {
	return s.setDone(ctx, actor, id, true)
}

// Restore clears the done flag.
func (s *TodoService) Restore(ctx context.Context, actor entities.Identity, id int64) error {
	return s.setDone(ctx, actor, id, false)
}

// Delete removes a todo permanently.
func (s *TodoService) Delete(ctx context.Context, actor entities.Identity, id int64) error {
	todo, err := s.ownedTodo(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := s.todoRepo.Delete(ctx, todo.ID); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	s.logger.Info("Todo deleted", "todo_id", id, "user_id", todo.UserID)

	return nil
}

func (s *TodoService) setDone(ctx context.Context, actor entities.Identity, id int64, done bool) error {
	todo, err := s.ownedTodo(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := s.todoRepo.SetDone(ctx, todo.ID, done); err != nil {
		return fmt.Errorf("failed to update done flag: %w", err)
	}

	s.logger.Info("Todo done flag updated", "todo_id", id, "done", done)

	return nil
}

func (s *TodoService) ownedTodo(ctx context.Context, actor entities.Identity, id int64) (*entities.Todo, error) {
	if actor.IsAnonymous() {
		return nil, entities.ErrAnonymous
	}

	todo, err := s.todoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !todo.OwnedBy(actor.User) {
		s.logger.Warn("Todo access denied", "todo_id", id, "user_id", actor.User.ID, "owner_id", todo.UserID)
		return nil, entities.ErrNotOwner
	}

	return todo, nil
}
