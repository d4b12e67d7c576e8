package auth

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/taskdeck-go/apperror"
	"github.com/user/taskdeck-go/config"
	"github.com/user/taskdeck-go/users"
)

// fakeUserStore is an in-memory users.Store for tests.
type fakeUserStore struct {
	byID map[uuid.UUID]*users.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byID: make(map[uuid.UUID]*users.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, user *users.User) (*users.User, error) {
	for _, existing := range f.byID {
		if existing.Email == strings.ToLower(user.Email) {
			return nil, apperror.NewDuplicateUserError("User already exists", nil)
		}
	}
	user.ID = uuid.New()
	user.Email = strings.ToLower(user.Email)
	user.CreatedAt = time.Now()
	f.byID[user.ID] = user
	return user, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	for _, u := range f.byID {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, apperror.NewNotFoundError("user not found", nil)
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*users.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, apperror.NewNotFoundError("user not found", nil)
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenDuration: 2 * time.Hour,
		CookieMaxAge:  168 * time.Hour,
		BcryptCost:    4, // keep hashing fast in tests
	}
}

func validSignup() SignupRequest {
	return SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Str0ng!pass",
	}
}

func TestSignup_Success(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeUserStore(), testAuthConfig())
	user, token, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "Str0ng!pass", user.HashedPassword, "password must not be stored in clear text")

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestSignup_NeverSerializesPassword(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeUserStore(), testAuthConfig())
	user, _, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	// Neither the stored model nor the public payload may leak the hash.
	for _, v := range []interface{}{user, publicUser(user)} {
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "password")
		assert.NotContains(t, string(raw), user.HashedPassword)
	}
}

func TestSignup_ValidationOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*SignupRequest)
		message string
	}{
		{"missing username", func(r *SignupRequest) { r.Username = "" }, "All fields are required"},
		{"missing email", func(r *SignupRequest) { r.Email = "" }, "All fields are required"},
		{"missing password", func(r *SignupRequest) { r.Password = "" }, "All fields are required"},
		{"bad email", func(r *SignupRequest) { r.Email = "not-an-email" }, "Invalid email format"},
		// A bad email on a weak password reports the email first.
		{"bad email wins over weak password", func(r *SignupRequest) { r.Email = "nope"; r.Password = "weak" }, "Invalid email format"},
		{"weak password", func(r *SignupRequest) { r.Password = "alllowercase" }, "Weak password"},
		{"short username", func(r *SignupRequest) { r.Username = "ab" }, "Username must be at least 3 characters"},
		{"long username", func(r *SignupRequest) { r.Username = strings.Repeat("a", 21) }, "Username cannot exceed 20 characters"},
		{"bad username chars", func(r *SignupRequest) { r.Username = "al!ce" }, "Username may only contain letters, numbers, underscores and spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := validSignup()
			tt.mutate(&req)

			svc := NewService(newFakeUserStore(), testAuthConfig())
			_, _, err := svc.Signup(context.Background(), req)
			require.Error(t, err)
			require.True(t, apperror.IsValidationError(err), "want ValidationError, got %v", err)

			appErr, _ := apperror.FromError(err)
			assert.Equal(t, tt.message, appErr.Message)
		})
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	svc := NewService(store, testAuthConfig())

	_, _, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	second := validSignup()
	second.Username = "alice again"
	_, _, err = svc.Signup(context.Background(), second)
	require.Error(t, err)
	assert.True(t, apperror.IsDuplicateUser(err), "want DuplicateUserError, got %v", err)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	svc := NewService(store, testAuthConfig())
	_, _, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	attempts := []LoginRequest{
		{Email: "", Password: "Str0ng!pass"},               // missing email
		{Email: "alice@example.com", Password: ""},         // missing password
		{Email: "nobody@example.com", Password: "Whatever1!"}, // unknown email
		{Email: "alice@example.com", Password: "Wr0ng!pass"},  // wrong password
	}

	var messages []string
	for _, req := range attempts {
		_, _, err := svc.Login(context.Background(), req)
		require.Error(t, err)
		require.True(t, apperror.IsCredentialsError(err), "want CredentialsError, got %v", err)
		appErr, _ := apperror.FromError(err)
		messages = append(messages, appErr.Message)
	}

	for _, msg := range messages {
		// No failure mode reveals whether the email existed.
		assert.Equal(t, messages[0], msg)
	}
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	svc := NewService(store, testAuthConfig())
	created, _, err := svc.Signup(context.Background(), validSignup())
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Alice@Example.com", // case-insensitive lookup
		Password: "Str0ng!pass",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID)
}

func TestIsStrongPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		password string
		want     bool
	}{
		{"Str0ng!pass", true},
		{"short1!A", true},
		{"alllowercase1!", false}, // no uppercase
		{"ALLUPPERCASE1!", false}, // no lowercase
		{"NoDigits!!", false},
		{"NoSymbols11", false},
		{"Ab1!x", false}, // too short
	}
	for _, tt := range tests {
		if got := isStrongPassword(tt.password); got != tt.want {
			t.Fatalf("isStrongPassword(%q) = %v, want %v", tt.password, got, tt.want)
		}
	}
}
