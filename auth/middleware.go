package auth

import (
	"net/http"

	"github.com/user/taskdeck-go/apperror"
)

// SessionCookieName is the name of the cookie carrying the session token.
const SessionCookieName = "token"

// RequireAuth returns middleware that authenticates the request from its
// session cookie. The token is verified once per request, never retried, and
// the claims' user id is re-resolved against the credential store so that a
// token for a deleted account does not pass. On success the resolved user is
// attached to the request context; every failure short-circuits with 401.
func RequireAuth(svc *Service) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				apperror.WriteError(w, r, apperror.NewAuthError("Token is not present", nil))
				return
			}

			claims, err := svc.VerifyToken(cookie.Value)
			if err != nil {
				apperror.WriteError(w, r, err)
				return
			}

			user, err := svc.store.GetByID(r.Context(), claims.UserID)
			if err != nil {
				if apperror.IsNotFound(err) {
					// Stale token: the account it references no longer exists.
					apperror.WriteError(w, r, apperror.NewAuthError("User does not exist", nil))
					return
				}
				apperror.WriteError(w, r, err)
				return
			}

			ctx := NewContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
