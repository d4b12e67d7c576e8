// HTTP handlers for the auth endpoints: signup, login, logout, and the
// session check.
package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/user/taskdeck-go/apperror"
	"github.com/user/taskdeck-go/config"
)

// Handlers wraps the auth Service to provide HTTP handlers.
type Handlers struct {
	service *Service
	cfg     config.AuthConfig
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *Service, cfg config.AuthConfig) *Handlers {
	return &Handlers{service: service, cfg: cfg}
}

// HandleSignup registers a new user, sets the session cookie, and returns the
// public user fields with 201.
func (h *Handlers) HandleSignup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apperror.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
			return
		}
		defer r.Body.Close()

		user, token, err := h.service.Signup(r.Context(), req)
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}

		h.setSessionCookie(w, token)
		apperror.WriteJSON(w, http.StatusCreated, AuthResponse{
			Success: true,
			Message: "User signed up successfully",
			User:    publicUser(user),
		})
	}
}

// HandleLogin authenticates a user, sets the session cookie, and returns the
// public user fields with 201. Every failure mode yields the same 401 body.
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apperror.WriteError(w, r, apperror.NewCredentialsError("invalid email or password", err))
			return
		}
		defer r.Body.Close()

		user, token, err := h.service.Login(r.Context(), req)
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}

		h.setSessionCookie(w, token)
		apperror.WriteJSON(w, http.StatusCreated, AuthResponse{
			Success: true,
			Message: "User logged in successfully",
			User:    publicUser(user),
		})
	}
}

// HandleLogout clears the session cookie. Stateless tokens cannot be revoked
// server-side, so a copy of the token taken before logout stays valid until
// its natural expiry.
func (h *Handlers) HandleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.clearSessionCookie(w)
		apperror.WriteJSON(w, http.StatusCreated, AuthResponse{
			Success: true,
			Message: "User logout successful",
		})
	}
}

// HandleCheck reports the identity resolved by the auth middleware.
func (h *Handlers) HandleCheck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			apperror.WriteError(w, r, apperror.NewAuthError("Token is not present", nil))
			return
		}
		apperror.WriteJSON(w, http.StatusCreated, AuthResponse{
			Success: true,
			Message: "valid user",
			User:    publicUser(user),
		})
	}
}

// setSessionCookie attaches the session token to the response. The cookie
// lives for CookieMaxAge (7 days by default) even though the token inside
// expires after TokenDuration; verification rejects the stale remainder.
func (h *Handlers) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.CookieMaxAge / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie overwrites the session cookie with an expired empty value.
func (h *Handlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
