package token

import (
	"time"

	"github.com/google/uuid"
)

// Type identifies how a token is presented in the Authorization header
type Type string

const (
	Bearer = Type("BEARER")
	Basic  = Type("BASIC")
)

// Scheme returns the Authorization header scheme, e.g. "Bearer"
func (t Type) Scheme() string {
	switch t {
	case Basic:
		return "Basic"
	default:
		return "Bearer"
	}
}

// Token is an access token held client-side for a subject (user or account).
type Token struct {
	// ID is the lookup key
	ID string
	// Subject identifies the principal the token was issued for
	Subject string
	// Value is the raw token, already encoded for Basic
	Value string
	Type  Type

	CreatedAt time.Time
	// ExpiresAt is zero for tokens that never expire
	ExpiresAt time.Time
}

// Expired reports whether the token is expired at now
func (t *Token) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}

// NewToken creates a token with a generated id
func NewToken(subject, value string, kind Type) *Token {
	if kind == "" {
		kind = Bearer
	}
	return &Token{
		ID:        uuid.New().String(),
		Subject:   subject,
		Value:     value,
		Type:      kind,
		CreatedAt: time.Now(),
	}
}
