package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/todolist/core/internal/domain/entities"
	"github.com/todolist/core/internal/infrastructure/config"
	"github.com/todolist/core/internal/infrastructure/logger"
	"github.com/todolist/core/internal/ports"
)

// AuthHandler serves the sign-up, login and logout pages.
type AuthHandler struct {
	auth    ports.AuthService
	session config.SessionConfig
	logger  *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth ports.AuthService, session config.SessionConfig, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		auth:    auth,
		session: session,
		logger:  logger,
	}
}

type authPage struct {
	Flash string
	Error string
}

// SignUpPage renders the registration form.
func (h *AuthHandler) SignUpPage(c echo.Context) error {
	return c.Render(http.StatusOK, "sign_up.html", authPage{Flash: popFlash(c)})
}

// SignUp processes the registration form. A duplicate email flashes an
// advisory and sends the user back to retry; success redirects home without
// logging the new account in.
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req ports.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return c.Render(http.StatusOK, "sign_up.html", authPage{Error: "Please fill in all fields with a valid email."})
	}

	if _, err := h.auth.Register(c.Request().Context(), req); err != nil {
		if errors.Is(err, entities.ErrEmailTaken) {
			setFlash(c, "The email is already used. Please try again.")
			return c.Redirect(http.StatusFound, "/sign_up")
		}
		h.logger.Error("Registration failed", "error", err, "email", req.Email)
		return err
	}

	return c.Redirect(http.StatusFound, "/")
}

// LoginPage renders the login form.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", authPage{Flash: popFlash(c)})
}

// Login processes the login form and establishes the session cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return c.Render(http.StatusOK, "login.html", authPage{Error: "Please fill in all fields with a valid email."})
	}

	user, err := h.auth.Authenticate(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrUnknownEmail):
			setFlash(c, "The email does not exist. Please try again.")
		case errors.Is(err, entities.ErrWrongPassword):
			setFlash(c, "Password incorrect. Please try again.")
		default:
			h.logger.Error("Login failed", "error", err, "email", req.Email)
			return err
		}
		return c.Redirect(http.StatusFound, "/login")
	}

	token, err := h.auth.IssueSession(user)
	if err != nil {
		h.logger.Error("Session issue failed", "error", err, "user_id", user.ID)
		return err
	}

	setSessionCookie(c, h.session.CookieName, token, h.session.TTL, h.session.Secure)

	return c.Redirect(http.StatusFound, "/")
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	clearSessionCookie(c, h.session.CookieName)
	return c.Redirect(http.StatusFound, "/")
}
