package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/todolist/core/internal/domain/entities"
	"github.com/todolist/core/internal/infrastructure/logger"
	"github.com/todolist/core/internal/ports"
)

// TodoHandler serves the task list and its mutation endpoints.
type TodoHandler struct {
	todos  ports.TodoService
	logger *logger.Logger
}

// NewTodoHandler creates a new todo handler
func NewTodoHandler(todos ports.TodoService, logger *logger.Logger) *TodoHandler {
	return &TodoHandler{
		todos:  todos,
		logger: logger,
	}
}

type indexPage struct {
	Flash     string
	LoggedIn  bool
	Username  string
	Date      string
	Time      string
	Pending   []*entities.Todo
	Completed []*entities.Todo
}

type editPage struct {
	Flash    string
	Todo     *entities.Todo
	Date     string
	TimePart string
}

// Home renders the task list. A POST first creates a task for the current
// identity; anonymous submissions are bounced with an advisory and nothing
// is stored. The overdue pass runs inside List, before rendering.
func (h *TodoHandler) Home(c echo.Context) error {
	identity := identityFromContext(c)

	if c.Request().Method == http.MethodPost {
		if identity.IsAnonymous() {
			setFlash(c, "Please sign up or log in first.")
			return c.Redirect(http.StatusFound, "/")
		}

		var req ports.CreateTodoRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
		}

		if err := c.Validate(&req); err != nil {
			setFlash(c, "Please enter a task.")
			return c.Redirect(http.StatusFound, "/")
		}

		if _, err := h.todos.Create(c.Request().Context(), identity, req); err != nil {
			if msg := advisoryFor(err); msg != "" {
				setFlash(c, msg)
				return c.Redirect(http.StatusFound, "/")
			}
			h.logger.Error("Todo create failed", "error", err, "user_id", identity.User.ID)
			return err
		}
	}

	now := time.Now()
	pending, completed, err := h.todos.List(c.Request().Context(), now)
	if err != nil {
		h.logger.Error("Todo list failed", "error", err)
		return err
	}

	page := indexPage{
		Flash:     popFlash(c),
		LoggedIn:  !identity.IsAnonymous(),
		Date:      now.Format("2006-01-02"),
		Time:      now.Format("15:04"),
		Pending:   pending,
		Completed: completed,
	}
	if page.LoggedIn {
		page.Username = identity.User.Username
	}

	return c.Render(http.StatusOK, "index.html", page)
}

// Done marks a task done and redirects home.
func (h *TodoHandler) Done(c echo.Context) error {
	return h.mutate(c, h.todos.MarkDone)
}

// Restore clears a task's done flag and redirects home.
func (h *TodoHandler) Restore(c echo.Context) error {
	return h.mutate(c, h.todos.Restore)
}

// Delete removes a task and redirects home.
func (h *TodoHandler) Delete(c echo.Context) error {
	return h.mutate(c, h.todos.Delete)
}

// EditPage renders the edit form pre-filled with the split date and time
// parts of the stored due string.
func (h *TodoHandler) EditPage(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	identity := identityFromContext(c)

	todo, err := h.todos.Get(c.Request().Context(), identity, id)
	if err != nil {
		if msg := advisoryFor(err); msg != "" {
			setFlash(c, msg)
			return c.Redirect(http.StatusFound, "/")
		}
		h.logger.Error("Todo load failed", "error", err, "todo_id", id)
		return err
	}

	date, timePart := entities.SplitDue(todo.Due)

	return c.Render(http.StatusOK, "edit.html", editPage{
		Flash:    popFlash(c),
		Todo:     todo,
		Date:     date,
		TimePart: timePart,
	})
}

// Edit applies the edit form and redirects home. The done flag survives the
// edit untouched.
func (h *TodoHandler) Edit(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	identity := identityFromContext(c)

	var req ports.EditTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		setFlash(c, "Please enter a task.")
		return c.Redirect(http.StatusFound, "/")
	}

	if _, err := h.todos.Edit(c.Request().Context(), identity, id, req); err != nil {
		if msg := advisoryFor(err); msg != "" {
			setFlash(c, msg)
			return c.Redirect(http.StatusFound, "/")
		}
		h.logger.Error("Todo edit failed", "error", err, "todo_id", id)
		return err
	}

	return c.Redirect(http.StatusFound, "/")
}

func (h *TodoHandler) mutate(c echo.Context, op func(ctx context.Context, actor entities.Identity, id int64) error) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	identity := identityFromContext(c)

	if err := op(c.Request().Context(), identity, id); err != nil {
		if msg := advisoryFor(err); msg != "" {
			setFlash(c, msg)
		} else {
			h.logger.Error("Todo mutation failed", "error", err, "todo_id", id)
			return err
		}
	}

	return c.Redirect(http.StatusFound, "/")
}

func taskID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound, "Task not found")
	}
	return id, nil
}

// advisoryFor maps expected domain errors to the user-facing flash message;
// anything unexpected returns "" and propagates as a server error.
func advisoryFor(err error) string {
	switch {
	case errors.Is(err, entities.ErrAnonymous):
		return "Please sign up or log in first."
	case errors.Is(err, entities.ErrTaskNotFound):
		return "Task not found."
	case errors.Is(err, entities.ErrNotOwner):
		return "You can only change your own tasks."
	case errors.Is(err, entities.ErrDuplicateTask):
		return "A task with that text already exists."
	default:
		return ""
	}
}
