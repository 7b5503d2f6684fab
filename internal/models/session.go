package models

import (
	"time"

	"github.com/golang-jwt/jwt"
)

// Session is the authenticated state carried by the client. It replaces the
// browser-local key-value storage of the original UI: whoever needs auth gets
// this value passed in, nothing reads it from a global.
type Session struct {
	Token     string    `json:"token"`
	UserID    int       `json:"user_id"`
	Role      string    `json:"role"`
	Name      string    `json:"name,omitempty"`
	City      string    `json:"city,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session token is past its expiry.
func (s Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && s.ExpiresAt.Before(time.Now())
}

// Claims mirrors the token payload the directory issues. The signature is the
// backend's business; the client only reads the public claims.
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

type SignInRequest struct {
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

type SignUpRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
	City     string `json:"city,omitempty"`
	Role     string `json:"role,omitempty"`
}
