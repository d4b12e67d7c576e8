// Package apperror defines a centralized system for application-specific errors.
// Every handler boundary converts failures through this package so that API
// clients always receive the same `{"success": false, "message": ...}` envelope
// with a status code derived from the error's type.
package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
)

// ErrorType defines the type of application error.
type ErrorType int

const (
	// UnknownError is for unspecified errors
	UnknownError ErrorType = iota
	// DatabaseError represents an error originating from the database
	DatabaseError
	// ConfigError represents an error related to application configuration
	ConfigError
	// AuthError represents a failed authentication check: missing, invalid or
	// expired session token, or a token referencing a user that no longer exists
	AuthError
	// CredentialsError represents a failed login attempt
	CredentialsError
	// DuplicateUserError represents a signup with an email that is already taken
	DuplicateUserError
	// NotFoundError represents a resource not found error
	NotFoundError
	// ValidationError represents an input validation error
	ValidationError
	// BadRequestError represents a generic bad request
	BadRequestError
	// InternalError represents a generic internal server error
	InternalError
	// MigrationError represents an error during database migrations
	MigrationError
)

// AppError is a custom error type for the application.
// It wraps an optional underlying error (`Err`) for debugging; only the
// user-facing Message ever reaches API clients.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error // Underlying error
}

// Error returns the string representation of the error, satisfying the `error` interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error so that `errors.Is` and `errors.As`
// can inspect the chain of wrapped errors.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code appropriate for the error type.
//
// All authentication failures map to 401, whether the token was missing,
// invalid, expired, or referenced a deleted account. DuplicateUserError maps
// to 400, matching the observable signup contract.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case DatabaseError:
		return http.StatusInternalServerError
	case ConfigError:
		return http.StatusInternalServerError
	case AuthError:
		return http.StatusUnauthorized
	case CredentialsError:
		return http.StatusUnauthorized
	case DuplicateUserError:
		return http.StatusBadRequest
	case NotFoundError:
		return http.StatusNotFound
	case ValidationError:
		return http.StatusBadRequest
	case BadRequestError:
		return http.StatusBadRequest
	case InternalError:
		return http.StatusInternalServerError
	case MigrationError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// NewAppError creates a new AppError. This is the generic constructor; the
// typed constructors below are preferred at call sites.
func NewAppError(errType ErrorType, message string, underlyingError error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     underlyingError,
	}
}

// NewDatabaseError creates a new DatabaseError
func NewDatabaseError(message string, underlyingError error) *AppError {
	return NewAppError(DatabaseError, message, underlyingError)
}

// NewConfigError creates a new ConfigError
func NewConfigError(message string, underlyingError error) *AppError {
	return NewAppError(ConfigError, message, underlyingError)
}

// NewAuthError creates a new AuthError
func NewAuthError(message string, underlyingError error) *AppError {
	return NewAppError(AuthError, message, underlyingError)
}

// NewCredentialsError creates a new CredentialsError
func NewCredentialsError(message string, underlyingError error) *AppError {
	return NewAppError(CredentialsError, message, underlyingError)
}

// NewDuplicateUserError creates a new DuplicateUserError
func NewDuplicateUserError(message string, underlyingError error) *AppError {
	return NewAppError(DuplicateUserError, message, underlyingError)
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(message string, underlyingError error) *AppError {
	return NewAppError(NotFoundError, message, underlyingError)
}

// NewValidationError creates a new ValidationError
func NewValidationError(message string, underlyingError error) *AppError {
	return NewAppError(ValidationError, message, underlyingError)
}

// NewBadRequestError creates a new BadRequestError
func NewBadRequestError(message string, underlyingError error) *AppError {
	return NewAppError(BadRequestError, message, underlyingError)
}

// NewInternalError creates a new InternalError
func NewInternalError(message string, underlyingError error) *AppError {
	return NewAppError(InternalError, message, underlyingError)
}

// NewMigrationError creates a new MigrationError
func NewMigrationError(message string, underlyingError error) *AppError {
	return NewAppError(MigrationError, message, underlyingError)
}

// ErrorResponse represents the error response payload for API clients.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ToResponse converts an AppError to an ErrorResponse suitable for API
// responses. If debug is true, the underlying error detail is appended to the
// message; otherwise only the user-facing Message is included.
func (e *AppError) ToResponse(debug bool) ErrorResponse {
	msg := e.Message
	if debug && e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return ErrorResponse{Success: false, Message: msg}
}

// FromError attempts to convert a generic error to an *AppError.
// It returns the *AppError and true if successful, otherwise nil and false.
func FromError(err error) (*AppError, bool) {
	if err == nil {
		return nil, false
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// debugMode controls whether 5xx responses carry the underlying error detail.
// It is set once at startup from configuration.
var debugMode bool

// SetDebug toggles inclusion of internal error detail in error responses.
func SetDebug(enabled bool) {
	debugMode = enabled
}

// WriteJSON serializes data to JSON and writes it with the given status.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"success":false,"message":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}

// WriteError writes a standardized error response. Errors that are not
// already an *AppError are treated as unexpected and wrapped in a generic
// InternalError; server-side failures are logged with their full detail, which
// never reaches the client unless debug mode is enabled.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := FromError(err)
	if !ok {
		appErr = NewInternalError("Internal server error", err)
	}
	if appErr.StatusCode() >= http.StatusInternalServerError {
		log.Printf("Error processing request %s %s: %v", r.Method, r.URL.Path, appErr)
	}
	WriteJSON(w, appErr.StatusCode(), appErr.ToResponse(debugMode))
}

// Helper functions to check error types.
// These use `errors.As`, which is robust when errors are wrapped.

// IsNotFound checks if an error is a NotFound error
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == NotFoundError
}

// IsAuthError checks if an error is an AuthError
func IsAuthError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == AuthError
}

// IsCredentialsError checks if an error is a CredentialsError
func IsCredentialsError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == CredentialsError
}

// IsDuplicateUser checks if an error is a DuplicateUserError
func IsDuplicateUser(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == DuplicateUserError
}

// IsValidationError checks if an error is a Validation error
func IsValidationError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ValidationError
}
