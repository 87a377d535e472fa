// Package session wires the per-session state into one explicitly
// constructed store: the bearer token, the school context, the server's
// reference date, and the daily record cache. Components receive the session
// by reference; there are no package-level singletons.
package session

import (
	"github.com/greenplate/mealops/internal/auth"
	"github.com/greenplate/mealops/internal/records"
)

// SchoolInfo is the school the signed-in operator records for.
type SchoolInfo struct {
	ID   int64
	Name string
}

// Session is the application-session state. Records persists across month
// navigation; Today is captured at sign-in and treated as the authority on
// which days are still in the future.
type Session struct {
	Tokens  *auth.TokenStore
	School  SchoolInfo
	Today   string // YYYY-MM-DD, server-supplied
	Records *records.Store
}

func New() *Session {
	return &Session{
		Tokens:  auth.NewTokenStore(),
		Records: records.NewStore(),
	}
}

// SignedIn reports whether a bearer token is present.
func (s *Session) SignedIn() bool {
	return s.Tokens.Token() != ""
}
