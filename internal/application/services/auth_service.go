package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/todolist/core/internal/domain/entities"
	"github.com/todolist/core/internal/infrastructure/config"
	"github.com/todolist/core/internal/infrastructure/logger"
	"github.com/todolist/core/internal/ports"
)

// SessionClaims is the JWT payload carried in the session cookie.
type SessionClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// AuthService handles registration, login and session resolution.
type AuthService struct {
	userRepo      ports.UserRepository
	sessionConfig config.SessionConfig
	logger        *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo ports.UserRepository, sessionConfig config.SessionConfig, logger *logger.Logger) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		sessionConfig: sessionConfig,
		logger:        logger,
	}
}

// Register creates a new account. It does not log the new user in.
func (s *AuthService) Register(ctx context.Context, req ports.RegisterRequest) (*entities.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err == nil && existing != nil {
		return nil, entities.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		return nil, fmt.Errorf("check existing email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, entities.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", "user_id", user.ID, "email", user.Email)

	return user, nil
}

// Authenticate checks an email/password pair. Unknown email and wrong
// password fail with distinct errors; callers surface both with the same
// advisory tone.
func (s *AuthService) Authenticate(ctx context.Context, req ports.LoginRequest) (*entities.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			s.logger.Warn("Login attempt with unknown email", "email", req.Email)
			return nil, entities.ErrUnknownEmail
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login attempt with invalid password", "email", req.Email, "user_id", user.ID)
		return nil, entities.ErrWrongPassword
	}

	s.logger.Info("User logged in", "user_id", user.ID, "email", user.Email)

	return user, nil
}

// IssueSession signs a session token for the user. The token rides in an
// HTTP-only cookie; invalidation is clearing the cookie.
func (s *AuthService) IssueSession(user *entities.User) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionConfig.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.sessionConfig.Issuer,
			Subject:   fmt.Sprintf("%d", user.ID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.sessionConfig.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, nil
}

// CurrentIdentity resolves the caller from a session token. Any failure,
// including an empty or stale token, yields the anonymous identity.
func (s *AuthService) CurrentIdentity(ctx context.Context, token string) entities.Identity {
	if token == "" {
		return entities.Anonymous
	}

	userID, err := s.resolveSession(token)
	if err != nil {
		s.logger.Debug("Session token rejected", "error", err)
		return entities.Anonymous
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Warn("Session references missing user", "user_id", userID, "error", err)
		return entities.Anonymous
	}

	return entities.Identity{User: user}
}

func (s *AuthService) resolveSession(tokenString string) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.sessionConfig.Secret), nil
	})
	if err != nil {
		return 0, fmt.Errorf("invalid session token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("invalid session claims")
	}

	return claims.UserID, nil
}
