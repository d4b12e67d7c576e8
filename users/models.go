// Package users implements the credential store: it persists user records
// (username, email, salted password hash) and resolves them by id or email.
// The auth package consumes it for signup, login, and per-request identity
// resolution. Users are immutable after signup and are never deleted by any
// operation in this service.
package users

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user record as stored in the database.
// The `json:"-"` tag on HashedPassword keeps the hash out of every API
// response regardless of which struct ends up being serialized.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}
