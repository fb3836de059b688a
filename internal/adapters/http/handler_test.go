package http

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/todolist/core/internal/domain/entities"
	"github.com/todolist/core/internal/infrastructure/config"
	"github.com/todolist/core/internal/infrastructure/logger"
	"github.com/todolist/core/internal/ports"
)

const testToken = "session-token"

type stubValidator struct {
	validate *validator.Validate
}

func (v *stubValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// stubAuth implements ports.AuthService for handler tests.
type stubAuth struct {
	user        *entities.User
	authErr     error
	registerErr error
}

func (s *stubAuth) Register(ctx context.Context, req ports.RegisterRequest) (*entities.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return s.user, nil
}

func (s *stubAuth) Authenticate(ctx context.Context, req ports.LoginRequest) (*entities.User, error) {
	if s.authErr != nil {
		return nil, s.authErr
	}
	return s.user, nil
}

func (s *stubAuth) IssueSession(user *entities.User) (string, error) {
	return testToken, nil
}

func (s *stubAuth) CurrentIdentity(ctx context.Context, token string) entities.Identity {
	if token == testToken && s.user != nil {
		return entities.Identity{User: s.user}
	}
	return entities.Anonymous
}

// stubTodos records mutations; reads return empty lists.
type stubTodos struct {
	created  int
	doneIDs  []int64
	mutErr   error
	lastUser int64
}

func (s *stubTodos) List(ctx context.Context, now time.Time) ([]*entities.Todo, []*entities.Todo, error) {
	return nil, nil, nil
}

func (s *stubTodos) Get(ctx context.Context, actor entities.Identity, id int64) (*entities.Todo, error) {
	return nil, entities.ErrTaskNotFound
}

func (s *stubTodos) Create(ctx context.Context, owner entities.Identity, req ports.CreateTodoRequest) (*entities.Todo, error) {
	if owner.IsAnonymous() {
		return nil, entities.ErrAnonymous
	}
	s.created++
	s.lastUser = owner.User.ID
	return &entities.Todo{ID: 1, Text: req.Text}, nil
}

func (s *stubTodos) Edit(ctx context.Context, actor entities.Identity, id int64, req ports.EditTodoRequest) (*entities.Todo, error) {
	return nil, s.mutErr
}

func (s *stubTodos) MarkDone(ctx context.Context, actor entities.Identity, id int64) error {
	if s.mutErr != nil {
		return s.mutErr
	}
	s.doneIDs = append(s.doneIDs, id)
	return nil
}

func (s *stubTodos) Restore(ctx context.Context, actor entities.Identity, id int64) error {
	return s.mutErr
}

func (s *stubTodos) Delete(ctx context.Context, actor entities.Identity, id int64) error {
	return s.mutErr
}

func testSession() config.SessionConfig {
	return config.SessionConfig{CookieName: "todo_session", TTL: time.Hour}
}

func newTestEcho(auth ports.AuthService) *echo.Echo {
	e := echo.New()
	e.Validator = &stubValidator{validate: validator.New()}
	e.Use(IdentityMiddleware(auth, "todo_session"))
	return e
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func flashMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == flashCookieName && cookie.MaxAge >= 0 {
			decoded, err := base64.RawURLEncoding.DecodeString(cookie.Value)
			if err != nil {
				t.Fatalf("bad flash encoding: %v", err)
			}
			return string(decoded)
		}
	}
	return ""
}

func TestHomePostAnonymousRedirectsWithAdvisory(t *testing.T) {
	todos := &stubTodos{}
	auth := &stubAuth{}
	e := newTestEcho(auth)
	h := NewTodoHandler(todos, logger.NewNop())
	e.POST("/", h.Home)

	form := url.Values{"todo": {"walk the dog"}, "date": {"2024-01-01"}}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, formRequest(http.MethodPost, "/", form))

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("redirect = %q, want /", loc)
	}
	if todos.created != 0 {
		t.Fatalf("created = %d, want 0", todos.created)
	}
	if msg := flashMessage(t, rec); msg != "Please sign up or log in first." {
		t.Fatalf("flash = %q", msg)
	}
}

func TestLoginSetsSessionCookie(t *testing.T) {
	auth := &stubAuth{user: &entities.User{ID: 7, Email: "ann@example.com", Username: "ann"}}
	e := newTestEcho(auth)
	h := NewAuthHandler(auth, testSession(), logger.NewNop())
	e.POST("/login", h.Login)

	form := url.Values{"email": {"ann@example.com"}, "password": {"pw"}}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, formRequest(http.MethodPost, "/login", form))

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("redirect = %q, want /", loc)
	}

	var session *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "todo_session" {
			session = cookie
		}
	}
	if session == nil || session.Value != testToken {
		t.Fatal("session cookie not set")
	}
	if !session.HttpOnly {
		t.Fatal("session cookie must be HTTP-only")
	}
}

func TestLoginFailuresRedirectBack(t *testing.T) {
	tests := []struct {
		name      string
		authErr   error
		wantFlash string
	}{
		{"wrong password", entities.ErrWrongPassword, "Password incorrect. Please try again."},
		{"unknown email", entities.ErrUnknownEmail, "The email does not exist. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &stubAuth{authErr: tt.authErr}
			e := newTestEcho(auth)
			h := NewAuthHandler(auth, testSession(), logger.NewNop())
			e.POST("/login", h.Login)

			form := url.Values{"email": {"ann@example.com"}, "password": {"pw"}}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, formRequest(http.MethodPost, "/login", form))

			if rec.Code != http.StatusFound {
				t.Fatalf("status = %d, want 302", rec.Code)
			}
			if loc := rec.Header().Get("Location"); loc != "/login" {
				t.Fatalf("redirect = %q, want /login", loc)
			}
			for _, cookie := range rec.Result().Cookies() {
				if cookie.Name == "todo_session" {
					t.Fatal("failed login must not establish a session")
				}
			}
			if msg := flashMessage(t, rec); msg != tt.wantFlash {
				t.Fatalf("flash = %q, want %q", msg, tt.wantFlash)
			}
		})
	}
}

func TestSignUpDuplicateEmailFlashes(t *testing.T) {
	auth := &stubAuth{registerErr: entities.ErrEmailTaken}
	e := newTestEcho(auth)
	h := NewAuthHandler(auth, testSession(), logger.NewNop())
	e.POST("/sign_up", h.SignUp)

	form := url.Values{"email": {"ann@example.com"}, "username": {"ann"}, "password": {"pw"}}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, formRequest(http.MethodPost, "/sign_up", form))

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/sign_up" {
		t.Fatalf("redirect = %q, want /sign_up", loc)
	}
	if msg := flashMessage(t, rec); msg != "The email is already used. Please try again." {
		t.Fatalf("flash = %q", msg)
	}
}

func TestDoneMutatesAndRedirects(t *testing.T) {
	user := &entities.User{ID: 7, Username: "ann"}
	auth := &stubAuth{user: user}
	todos := &stubTodos{}
	e := newTestEcho(auth)
	h := NewTodoHandler(todos, logger.NewNop())
	e.POST("/done/:id", h.Done)

	req := formRequest(http.MethodPost, "/done/42", url.Values{})
	req.AddCookie(&http.Cookie{Name: "todo_session", Value: testToken})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if len(todos.doneIDs) != 1 || todos.doneIDs[0] != 42 {
		t.Fatalf("doneIDs = %v, want [42]", todos.doneIDs)
	}
}

func TestDoneMissingTaskFlashesNotFound(t *testing.T) {
	user := &entities.User{ID: 7, Username: "ann"}
	auth := &stubAuth{user: user}
	todos := &stubTodos{mutErr: entities.ErrTaskNotFound}
	e := newTestEcho(auth)
	h := NewTodoHandler(todos, logger.NewNop())
	e.POST("/done/:id", h.Done)

	req := formRequest(http.MethodPost, "/done/42", url.Values{})
	req.AddCookie(&http.Cookie{Name: "todo_session", Value: testToken})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if msg := flashMessage(t, rec); msg != "Task not found." {
		t.Fatalf("flash = %q", msg)
	}
}

func TestDoneBadIDIsNotFound(t *testing.T) {
	auth := &stubAuth{}
	e := newTestEcho(auth)
	h := NewTodoHandler(&stubTodos{}, logger.NewNop())
	e.POST("/done/:id", h.Done)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, formRequest(http.MethodPost, "/done/abc", url.Values{}))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
