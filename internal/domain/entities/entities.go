package entities

import (
	"errors"
	"time"
)

// Common errors
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrTaskNotFound  = errors.New("task not found")
	ErrEmailTaken    = errors.New("email is already used")
	ErrDuplicateTask = errors.New("task with the same text already exists")
	ErrUnknownEmail  = errors.New("no account with that email")
	ErrWrongPassword = errors.New("password incorrect")
	ErrNotOwner      = errors.New("task belongs to another user")
	ErrAnonymous     = errors.New("sign up or log in first")
)

// User represents a registered account. Users are created at sign-up and
// never mutated or deleted afterwards.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Todo represents a single to-do item owned by a user.
//
// Due is kept as the raw form string, either "YYYY-MM-DD" or
// "YYYY-MM-DD HH:MM", possibly empty. Overdue is derived from Due and is
// recomputed on every list pass; it is never authoritative on its own.
type Todo struct {
	ID        int64     `json:"id" db:"id"`
	Text      string    `json:"text" db:"text"`
	Due       string    `json:"due" db:"due"`
	Done      bool      `json:"done" db:"done"`
	Overdue   bool      `json:"overdue" db:"overdue"`
	UserID    int64     `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// OwnedBy reports whether the todo belongs to the given user.
func (t *Todo) OwnedBy(u *User) bool {
	return u != nil && t.UserID == u.ID
}

// Identity is the resolved caller of a request: either a concrete User or
// the anonymous placeholder, which carries no privileges.
type Identity struct {
	User *User
}

// Anonymous is the identity of an unauthenticated caller.
var Anonymous = Identity{}

// IsAnonymous reports whether the identity has no user attached.
func (i Identity) IsAnonymous() bool {
	return i.User == nil
}
