package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ericfisherdev/jobtracker/internal/domain/model"
	"github.com/ericfisherdev/jobtracker/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.UserStore = (*UserRepo)(nil)

// UserRepo is the SQLite implementation of the UserStore port interface.
// It stores password hashes only; hashing happens in the application layer.
type UserRepo struct {
	db *DB
}

// NewUserRepo creates a new UserRepo backed by the given DB.
func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a credential. Returns ErrUserAlreadyExists if the username is taken.
func (r *UserRepo) Create(ctx context.Context, user model.User) (int64, error) {
	const query = `INSERT INTO users (username, password_hash) VALUES (?, ?)`

	result, err := r.db.Writer.ExecContext(ctx, query, user.Username, user.PasswordHash)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return 0, fmt.Errorf("create user %q: %w", user.Username, driven.ErrUserAlreadyExists)
		}
		return 0, fmt.Errorf("create user %q: %w", user.Username, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted user id: %w", err)
	}

	return id, nil
}

// GetByUsername looks up a credential by exact, case-sensitive username.
// Returns ErrUserNotFound if none exists.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	// SQLite's default BINARY collation makes '=' case-sensitive.
	const query = `SELECT id, username, password_hash FROM users WHERE username = ?`

	var user model.User
	err := r.db.Reader.QueryRowContext(ctx, query, username).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user %q: %w", username, driven.ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user %q: %w", username, err)
	}

	return &user, nil
}
