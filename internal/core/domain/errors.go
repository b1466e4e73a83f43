package domain

import (
	"errors"
	"strings"
)

// Failure classes. Every specific error below unwraps to exactly one of them,
// so callers may match either the reason or the class with errors.Is.
var (
	ErrValidation     = errors.New("validation failed")
	ErrAuthentication = errors.New("authentication failed")
	ErrAuthorization  = errors.New("not authorized")
	ErrNotFound       = errors.New("not found")
)

// Error is a user-facing failure: its message is shown as-is, its class
// decides how it is reported.
type Error struct {
	class  error
	reason *Error
	msg    string
}

func newError(class error, msg string) *Error {
	return &Error{class: class, msg: msg}
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() []error {
	if e.reason != nil {
		return []error{e.reason, e.class}
	}
	return []error{e.class}
}

// Registration and login.
var (
	ErrMissingFields    = newError(ErrValidation, "please fill in all required fields")
	ErrInvalidUsername  = newError(ErrValidation, "username may only contain Chinese characters, no symbols or Latin letters")
	ErrPasswordMismatch = newError(ErrValidation, "the two passwords do not match")
	ErrEmailDomain      = newError(ErrValidation, "please register with an allowed email domain")
	ErrUsernameTaken    = newError(ErrValidation, "username is already registered")
	ErrEmailTaken       = newError(ErrValidation, "email is already registered")

	ErrInvalidCredentials = newError(ErrAuthentication, "incorrect email or password")
	ErrNotAuthenticated   = newError(ErrAuthentication, "please log in first")
)

// Content and avatar.
var (
	ErrMissingPostFields = newError(ErrValidation, "please fill in the title, category and content")
	ErrMissingAvatar     = newError(ErrValidation, "please choose an image")
	ErrPostNotFound      = newError(ErrNotFound, "post does not exist")
	ErrForbidden         = newError(ErrAuthorization, "you can only delete your own posts")
)

// EmailDomainError is ErrEmailDomain with the accepted suffixes spelled out.
func EmailDomainError(domains []string) error {
	if len(domains) == 0 {
		return ErrEmailDomain
	}
	return &Error{
		class:  ErrValidation,
		reason: ErrEmailDomain,
		msg:    "please register with an email ending in " + strings.Join(domains, ", "),
	}
}
