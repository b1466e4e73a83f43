package domain

import (
	"regexp"
	"strings"
	"time"
)

// DefaultEmailDomains is the registration allow-list of mailbox suffixes.
var DefaultEmailDomains = []string{"@163.com", "@126.com", "@yeah.net"}

// usernamePattern accepts CJK unified ideographs only: no Latin letters,
// digits, spaces or symbols.
var usernamePattern = regexp.MustCompile(`^[\x{4e00}-\x{9fa5}]+$`)

// Account models a registered user as it is persisted in the users record.
type Account struct {
	ID        string    `json:"id" yaml:"id"`
	Username  string    `json:"username" yaml:"username"`
	Email     string    `json:"email" yaml:"email"`
	Password  string    `json:"password" yaml:"password"`
	Avatar    string    `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// ValidUsername reports whether name is made only of permitted characters.
func ValidUsername(name string) bool {
	return usernamePattern.MatchString(name)
}

// AllowedEmail reports whether email ends with one of the given suffixes.
func AllowedEmail(email string, domains []string) bool {
	for _, d := range domains {
		if d != "" && strings.HasSuffix(email, d) {
			return true
		}
	}
	return false
}

// Session is the active login. It is a copy of the account taken when the
// user logged in and is persisted on its own; later changes to the stored
// account do not show up here unless the session is rewritten.
//
// A nil *Session is the anonymous visitor.
type Session struct {
	Account
}

// NewSession snapshots acc into a session value.
func NewSession(acc Account) *Session {
	return &Session{Account: acc}
}

// Anonymous reports whether nobody is logged in.
func (s *Session) Anonymous() bool {
	return s == nil
}

// Author returns the snapshot embedded in posts created by this session.
func (s *Session) Author() Author {
	return Author{ID: s.ID, Username: s.Username, Avatar: s.Avatar}
}
