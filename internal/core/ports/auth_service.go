package ports

import (
	"context"

	"github.com/mkx/community/internal/core/domain"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// AuthService manages accounts and the active session.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Logout(ctx context.Context) error
	CurrentSession(ctx context.Context) (*domain.Session, error)
}

// PasswordHasher turns a password into its stored form and checks it back.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(stored, password string) bool
}

// IDGenerator hands out creation-time derived identifiers.
type IDGenerator interface {
	Next() string
}
