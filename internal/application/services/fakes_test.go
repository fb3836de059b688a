package services

import (
	"context"
	"sort"

	"github.com/todolist/core/internal/domain/entities"
)

// In-memory repository fakes standing in for the sqlx adapters.

type fakeUserRepo struct {
	nextID int64
	users  map[int64]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entities.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entities.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return entities.ErrEmailTaken
		}
	}
	r.nextID++
	user.ID = r.nextID
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*entities.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

type fakeTodoRepo struct {
	nextID int64
	todos  map[int64]*entities.Todo
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{todos: make(map[int64]*entities.Todo)}
}

func (r *fakeTodoRepo) Create(ctx context.Context, todo *entities.Todo) error {
	for _, t := range r.todos {
		if t.Text == todo.Text {
			return entities.ErrDuplicateTask
		}
	}
	r.nextID++
	todo.ID = r.nextID
	stored := *todo
	r.todos[todo.ID] = &stored
	return nil
}

func (r *fakeTodoRepo) GetByID(ctx context.Context, id int64) (*entities.Todo, error) {
	t, ok := r.todos[id]
	if !ok {
		return nil, entities.ErrTaskNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTodoRepo) Update(ctx context.Context, todo *entities.Todo) error {
	t, ok := r.todos[todo.ID]
	if !ok {
		return entities.ErrTaskNotFound
	}
	for _, other := range r.todos {
		if other.ID != todo.ID && other.Text == todo.Text {
			return entities.ErrDuplicateTask
		}
	}
	t.Text = todo.Text
	t.Due = todo.Due
	return nil
}

func (r *fakeTodoRepo) SetDone(ctx context.Context, id int64, done bool) error {
	t, ok := r.todos[id]
	if !ok {
		return entities.ErrTaskNotFound
	}
	t.Done = done
	return nil
}

func (r *fakeTodoRepo) SetOverdue(ctx context.Context, id int64, overdue bool) error {
	t, ok := r.todos[id]
	if !ok {
		return entities.ErrTaskNotFound
	}
	t.Overdue = overdue
	return nil
}

func (r *fakeTodoRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.todos[id]; !ok {
		return entities.ErrTaskNotFound
	}
	delete(r.todos, id)
	return nil
}

func (r *fakeTodoRepo) ListAll(ctx context.Context) ([]*entities.Todo, error) {
	out := make([]*entities.Todo, 0, len(r.todos))
	for _, t := range r.todos {
		copied := *t
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTodoRepo) ListPending(ctx context.Context) ([]*entities.Todo, error) {
	return r.list(false, true), nil
}

func (r *fakeTodoRepo) ListCompleted(ctx context.Context) ([]*entities.Todo, error) {
	return r.list(true, false), nil
}

func (r *fakeTodoRepo) list(done, ascending bool) []*entities.Todo {
	var out []*entities.Todo
	for _, t := range r.todos {
		if t.Done == done {
			copied := *t
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Due != out[j].Due {
			if ascending {
				return out[i].Due < out[j].Due
			}
			return out[i].Due > out[j].Due
		}
		return out[i].ID < out[j].ID
	})
	return out
}
