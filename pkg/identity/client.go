package identity

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrEmailTaken         = errors.New("a user with this email address has already been registered")
	ErrNotFound           = errors.New("user not found")
)

// Identity is the auth-side record; its ID keys the profile row.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Session struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        Identity  `json:"user"`
}

type NewUser struct {
	Email        string
	Password     string
	EmailConfirm bool // skip the verification mail
}

// Provider is the identity store. CreateUser and DeleteUser need the
// privileged credential and must only be reached from server code.
type Provider interface {
	Resolve(ctx context.Context, token string) (*Identity, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	CreateUser(ctx context.Context, in NewUser) (*Identity, error)
	DeleteUser(ctx context.Context, id string) error
}

// APIError carries the remote message so callers can show it verbatim.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string { return e.Message }
func (e *APIError) Unwrap() error { return e.Err }
