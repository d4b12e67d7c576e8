// This file defines the request and response payloads for the auth endpoints.
package auth

import (
	"github.com/google/uuid"

	"github.com/user/taskdeck-go/users"
)

// SignupRequest represents the signup request payload.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserPayload carries the public user fields returned by the auth endpoints.
// The password hash has no representation here at all.
type UserPayload struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// AuthResponse is the success envelope for the auth endpoints.
type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *UserPayload `json:"user,omitempty"`
}

// publicUser maps a stored user record to its public payload.
func publicUser(u *users.User) *UserPayload {
	return &UserPayload{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}
