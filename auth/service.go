package auth

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/taskdeck-go/apperror"
	"github.com/user/taskdeck-go/config"
	"github.com/user/taskdeck-go/users"
)

// invalidCredentialsMessage is the single message returned for every login
// failure. A missing field, an unknown email, and a wrong password are
// indistinguishable from the outside, so responses carry no user-enumeration
// signal.
const invalidCredentialsMessage = "invalid email or password"

var (
	validate        = validator.New()
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_ ]+$`)
)

// Service provides authentication services over the credential store.
type Service struct {
	store users.Store
	cfg   config.AuthConfig
}

// NewService creates a new auth Service.
func NewService(store users.Store, cfg config.AuthConfig) *Service {
	return &Service{store: store, cfg: cfg}
}

// Signup validates the request, creates the user, and issues a session token.
// The returned user carries only a hash of the password; the plain text is
// never persisted anywhere.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*users.User, string, error) {
	if err := validateSignup(req); err != nil {
		return nil, "", err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, "", apperror.NewInternalError("failed to hash password", err)
	}

	user := &users.User{
		Username:       req.Username,
		Email:          strings.ToLower(req.Email),
		HashedPassword: string(hashedPassword),
	}

	created, err := s.store.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.IssueToken(created)
	if err != nil {
		return nil, "", apperror.NewInternalError("failed to issue session token", err)
	}
	return created, token, nil
}

// Login authenticates a user by email and password and issues a session
// token. All failure modes collapse to one CredentialsError.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*users.User, string, error) {
	if req.Email == "" || req.Password == "" {
		return nil, "", apperror.NewCredentialsError(invalidCredentialsMessage, nil)
	}

	user, err := s.store.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, "", apperror.NewCredentialsError(invalidCredentialsMessage, nil)
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return nil, "", apperror.NewCredentialsError(invalidCredentialsMessage, nil)
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", apperror.NewInternalError("failed to issue session token", err)
	}
	return user, token, nil
}

// validateSignup checks the signup fields in a fixed order; the first failure
// wins and is reported alone.
func validateSignup(req SignupRequest) error {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return apperror.NewValidationError("All fields are required", nil)
	}
	if err := validate.Var(req.Email, "required,email"); err != nil {
		return apperror.NewValidationError("Invalid email format", nil)
	}
	if !isStrongPassword(req.Password) {
		return apperror.NewValidationError("Weak password", nil)
	}
	if len(req.Username) < 3 {
		return apperror.NewValidationError("Username must be at least 3 characters", nil)
	}
	if len(req.Username) > 20 {
		return apperror.NewValidationError("Username cannot exceed 20 characters", nil)
	}
	if !usernamePattern.MatchString(req.Username) {
		return apperror.NewValidationError("Username may only contain letters, numbers, underscores and spaces", nil)
	}
	if len(req.Password) < 6 {
		return apperror.NewValidationError("Password must be at least 6 characters", nil)
	}
	return nil
}

// isStrongPassword requires at least 8 characters with at least one lowercase
// letter, one uppercase letter, one digit, and one symbol.
func isStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}
