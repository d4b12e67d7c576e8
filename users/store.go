package users

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/taskdeck-go/apperror"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// Store defines the credential-store operations the rest of the application
// depends on. Handlers and middleware are written against this interface so
// tests can substitute an in-memory implementation.
type Store interface {
	// Create inserts a new user record and returns it with its generated id
	// and creation time filled in. A taken email yields a DuplicateUserError.
	Create(ctx context.Context, user *User) (*User, error)
	// GetByEmail resolves a user by email, case-insensitively.
	GetByEmail(ctx context.Context, email string) (*User, error)
	// GetByID resolves a user by id.
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}

// PGStore is the PostgreSQL-backed implementation of Store.
type PGStore struct {
	db *pgxpool.Pool
}

// NewPGStore creates a new PGStore.
func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Create(ctx context.Context, user *User) (*User, error) {
	query := `INSERT INTO users (username, email, password)
              VALUES ($1, $2, $3)
              RETURNING id, created_at`
	// Emails are stored lowercased so the uniqueness check and lookups agree.
	user.Email = strings.ToLower(user.Email)
	err := s.db.QueryRow(ctx, query, user.Username, user.Email, user.HashedPassword).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.NewDuplicateUserError("User already exists", nil)
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}
	return user, nil
}

func (s *PGStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	query := `SELECT id, username, email, password, created_at FROM users WHERE email = $1`
	err := s.db.QueryRow(ctx, query, strings.ToLower(email)).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.HashedPassword,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("user not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user by email", err)
	}
	return &user, nil
}

func (s *PGStore) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	query := `SELECT id, username, email, password, created_at FROM users WHERE id = $1`
	err := s.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.HashedPassword,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("user not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user by id", err)
	}
	return &user, nil
}
