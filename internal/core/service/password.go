package service

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mkx/community/internal/core/ports"
)

// Password storage modes.
const (
	PasswordPlain  = "plain"
	PasswordBcrypt = "bcrypt"
)

// PlainPasswords stores and compares passwords verbatim. This is how the
// existing users record was written; keep it only for compatibility.
type PlainPasswords struct{}

func (PlainPasswords) Hash(password string) (string, error) {
	return password, nil
}

func (PlainPasswords) Verify(stored, password string) bool {
	return stored == password
}

// BcryptPasswords stores bcrypt hashes. Entries that are not bcrypt hashes
// are legacy plaintext and are still compared verbatim.
type BcryptPasswords struct {
	Cost int
}

func (b BcryptPasswords) Hash(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (BcryptPasswords) Verify(stored, password string) bool {
	if !isBcryptHash(stored) {
		return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// NewPasswordHasher returns the hasher for a configured mode.
func NewPasswordHasher(mode string, cost int) (ports.PasswordHasher, error) {
	switch mode {
	case "", PasswordPlain:
		return PlainPasswords{}, nil
	case PasswordBcrypt:
		if cost != 0 && (cost < bcrypt.MinCost || cost > bcrypt.MaxCost) {
			return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
		}
		return BcryptPasswords{Cost: cost}, nil
	default:
		return nil, fmt.Errorf("unknown password hashing mode %q", mode)
	}
}
