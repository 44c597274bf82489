package driven

import (
	"context"

	"github.com/BIC-DevSphere/devsphere-backend/internal/domain/model"
)

// ContributorStore defines the driven port for contributor persistence.
// Contributors are unique by username; Upsert inserts or refreshes the
// profile fields and returns the stored record with its identifier.
// Link is idempotent: linking an already-linked pair is not an error.
type ContributorStore interface {
	Upsert(ctx context.Context, contributor model.Contributor) (*model.Contributor, error)
	Link(ctx context.Context, projectID, contributorID string) error
	ListByProject(ctx context.Context, projectID string) ([]model.Contributor, error)
}
