package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mkx/community/internal/core/domain"
	"github.com/mkx/community/internal/core/ports"
	"github.com/mkx/community/internal/pkg/metrics"
)

// AuthService implements registration, login and the session lifecycle.
type AuthService struct {
	accounts     ports.AccountRepository
	sessions     ports.SessionRepository
	hasher       ports.PasswordHasher
	ids          ports.IDGenerator
	emailDomains []string
	domainErr    error
	now          func() time.Time
	logger       zerolog.Logger
}

func NewAuthService(
	accounts ports.AccountRepository,
	sessions ports.SessionRepository,
	hasher ports.PasswordHasher,
	ids ports.IDGenerator,
	emailDomains []string,
	logger zerolog.Logger,
) *AuthService {
	if hasher == nil {
		hasher = PlainPasswords{}
	}
	if len(emailDomains) == 0 {
		emailDomains = domain.DefaultEmailDomains
	}
	return &AuthService{
		accounts:     accounts,
		sessions:     sessions,
		hasher:       hasher,
		ids:          ids,
		emailDomains: emailDomains,
		domainErr:    domain.EmailDomainError(emailDomains),
		now:          time.Now,
		logger:       logger,
	}
}

// Register validates the form and appends a new account. Checks run in a
// fixed order and stop at the first failure; nothing is written on failure.
// No session is created: the caller logs in afterwards.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
	if err := s.validateForm(in); err != nil {
		s.reject(err, in)
		return nil, err
	}

	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	for _, a := range accounts {
		if a.Username == in.Username {
			s.reject(domain.ErrUsernameTaken, in)
			return nil, domain.ErrUsernameTaken
		}
	}
	for _, a := range accounts {
		if a.Email == in.Email {
			s.reject(domain.ErrEmailTaken, in)
			return nil, domain.ErrEmailTaken
		}
	}

	stored, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	acc := domain.Account{
		ID:        s.ids.Next(),
		Username:  in.Username,
		Email:     in.Email,
		Password:  stored,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}
	if err := s.accounts.SaveAll(ctx, append(accounts, acc)); err != nil {
		s.logger.Error().Err(err).Str("email", in.Email).Msg("failed to save account")
		return nil, fmt.Errorf("register: %w", err)
	}

	metrics.AccountsRegisteredTotal.Inc()
	s.logger.Info().Str("account_id", acc.ID).Str("username", acc.Username).Msg("account registered")
	return &acc, nil
}

func (s *AuthService) validateForm(in ports.RegisterInput) error {
	switch {
	case in.Username == "" || in.Email == "" || in.Password == "" || in.ConfirmPassword == "":
		return domain.ErrMissingFields
	case !domain.ValidUsername(in.Username):
		return domain.ErrInvalidUsername
	case in.Password != in.ConfirmPassword:
		return domain.ErrPasswordMismatch
	case !domain.AllowedEmail(in.Email, s.emailDomains):
		return s.domainErr
	}
	return nil
}

func (s *AuthService) reject(err error, in ports.RegisterInput) {
	metrics.RegistrationsRejectedTotal.WithLabelValues(rejectReason(err)).Inc()
	s.logger.Debug().Str("email", in.Email).Str("reason", err.Error()).Msg("registration rejected")
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return "missing_fields"
	case errors.Is(err, domain.ErrInvalidUsername):
		return "invalid_username"
	case errors.Is(err, domain.ErrPasswordMismatch):
		return "password_mismatch"
	case errors.Is(err, domain.ErrEmailDomain):
		return "email_domain"
	case errors.Is(err, domain.ErrUsernameTaken):
		return "username_taken"
	case errors.Is(err, domain.ErrEmailTaken):
		return "email_taken"
	default:
		return "other"
	}
}

// Login makes a copy of the first account matching email and password the
// active session. A miss never tells whether the email exists.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	if email == "" || password == "" {
		return nil, domain.ErrMissingFields
	}

	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	for _, a := range accounts {
		if a.Email != email || !s.hasher.Verify(a.Password, password) {
			continue
		}
		session := domain.NewSession(a)
		if err := s.sessions.Save(ctx, session); err != nil {
			return nil, fmt.Errorf("login: %w", err)
		}
		metrics.LoginsTotal.WithLabelValues("success").Inc()
		s.logger.Info().Str("account_id", a.ID).Msg("logged in")
		return session, nil
	}

	metrics.LoginsTotal.WithLabelValues("failure").Inc()
	return nil, domain.ErrInvalidCredentials
}

// Logout clears the session. Logging out while anonymous is a no-op.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// CurrentSession returns the session copy, or nil when anonymous.
func (s *AuthService) CurrentSession(ctx context.Context) (*domain.Session, error) {
	session, err := s.sessions.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("current session: %w", err)
	}
	return session, nil
}
