package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/jobtracker/internal/domain/model"
)

// Sentinel errors returned by UserStore implementations.
var (
	// ErrUserNotFound indicates no credential exists for the username.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates the username is already taken.
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserStore defines the driven port for credential persistence.
// Username lookups are exact and case-sensitive.
type UserStore interface {
	Create(ctx context.Context, user model.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}
