package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"tamirciBul/internal/models"
)

// WithClaims fills the session's identity fields from the token's public
// claims. The signature is not checked here: the directory issued the token
// and verifies it on every call, the client only needs the expiry and role.
func WithClaims(sess models.Session) (models.Session, error) {
	claims := &models.Claims{}
	parser := &jwt.Parser{}
	if _, _, err := parser.ParseUnverified(sess.Token, claims); err != nil {
		return models.Session{}, fmt.Errorf("session: parse token: %w", err)
	}
	if sess.UserID == 0 {
		sess.UserID = int(claims.UserID)
	}
	if sess.Role == "" {
		sess.Role = claims.Role
	}
	if claims.ExpiresAt > 0 {
		sess.ExpiresAt = time.Unix(claims.ExpiresAt, 0)
	}
	return sess, nil
}
