package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/jobtracker/internal/domain/model"
)

// ErrApplicationNotFound indicates the referenced application id does not exist.
var ErrApplicationNotFound = errors.New("application not found")

// ImportFailure describes one legacy row that could not be imported.
type ImportFailure struct {
	CompanyName string
	Reason      string
}

// ImportResult summarizes a batch import.
type ImportResult struct {
	Imported int
	Failures []ImportFailure
}

// ApplicationStore defines the driven port for job-application persistence.
// Update and Delete return ErrApplicationNotFound when the id does not exist;
// Get returns it when no record matches. List orders by id descending.
type ApplicationStore interface {
	Create(ctx context.Context, app model.Application) (int64, error)
	Update(ctx context.Context, app model.Application) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*model.Application, error)
	List(ctx context.Context) ([]model.Application, error)

	// Import inserts apps in a single transaction, preserving their
	// LastUpdated values. Rows that fail are skipped and reported; any other
	// error rolls the whole batch back.
	Import(ctx context.Context, apps []model.Application) (ImportResult, error)
}
