// Package auth is responsible for authentication: signup, login, session
// token issuance and verification, the cookie transport, and the middleware
// that gates protected routes.
//
// Session tokens are stateless. Validity is purely a function of the server
// secret, the token string, and the clock; no server-side session table
// exists, and consequently a token cannot be revoked before its natural
// expiry. Logout only overwrites the client's cookie.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/user/taskdeck-go/apperror"
	"github.com/user/taskdeck-go/users"
)

// SessionClaims is the payload of a session token: the user's identity plus
// the registered issued-at/expiry claims.
type SessionClaims struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	jwt.RegisteredClaims
}

// IssueToken produces a signed session token embedding the user's id,
// username, and email, expiring TokenDuration from now.
func (s *Service) IssueToken(user *users.User) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   user.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// VerifyToken parses and validates a session token string.
//
// A bad signature, a malformed payload, and a past expiry all collapse into
// the same AuthError: callers cannot distinguish an expired token from a
// forged one, and neither can clients.
func (s *Service) VerifyToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, apperror.NewAuthError("Invalid token", err)
	}
	if !token.Valid {
		return nil, apperror.NewAuthError("Invalid token", nil)
	}
	if claims.UserID == uuid.Nil {
		return nil, apperror.NewAuthError("Invalid token", errors.New("user_id claim is missing"))
	}
	return claims, nil
}
