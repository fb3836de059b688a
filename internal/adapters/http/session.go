package http

import (
	"encoding/base64"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/todolist/core/internal/domain/entities"
	"github.com/todolist/core/internal/ports"
)

const (
	identityContextKey = "identity"
	flashCookieName    = "todo_flash"
)

// IdentityMiddleware resolves the caller's identity from the session cookie
// and stores it in the request context. A missing or invalid cookie resolves
// to the anonymous identity; it never blocks the request.
func IdentityMiddleware(auth ports.AuthService, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ""
			if cookie, err := c.Cookie(cookieName); err == nil {
				token = cookie.Value
			}

			identity := auth.CurrentIdentity(c.Request().Context(), token)
			c.Set(identityContextKey, identity)

			return next(c)
		}
	}
}

func identityFromContext(c echo.Context) entities.Identity {
	identity, ok := c.Get(identityContextKey).(entities.Identity)
	if !ok {
		return entities.Anonymous
	}
	return identity
}

func setSessionCookie(c echo.Context, name, token string, ttl time.Duration, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// setFlash stores a one-shot advisory message shown on the next render.
func setFlash(c echo.Context, message string) {
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(message)),
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
	})
}

// popFlash reads and clears the pending advisory message, if any.
func popFlash(c echo.Context) string {
	cookie, err := c.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}

	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	decoded, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return ""
	}

	return string(decoded)
}
