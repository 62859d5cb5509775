package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the bearer token payload. The registered subject carries the session id.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// SessionID returns the session the token was issued for.
func (c *SessionClaims) SessionID() string {
	if c == nil {
		return ""
	}
	return c.Subject
}
