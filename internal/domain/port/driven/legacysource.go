package driven

import (
	"context"

	"github.com/ericfisherdev/jobtracker/internal/domain/model"
)

// LegacySource reads application rows from a pre-web database schema.
// Rows from schemas without a match-rating column come back with a nil JobMatch.
type LegacySource interface {
	ReadApplications(ctx context.Context) ([]model.Application, error)
}
