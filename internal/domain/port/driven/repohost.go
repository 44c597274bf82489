package driven

import (
	"context"
	"errors"

	"github.com/BIC-DevSphere/devsphere-backend/internal/domain/model"
)

// ErrHostRepoNotFound indicates the repository does not exist on the
// hosting service (or is not visible with the configured credentials).
var ErrHostRepoNotFound = errors.New("repository not found on host")

// RepoHost defines the driven port for querying the repository hosting API.
// ListContributors returns every contributor of owner/repo with profile
// fields populated and the ID left empty; persistence assigns identifiers.
type RepoHost interface {
	ListContributors(ctx context.Context, owner, repo string) ([]model.Contributor, error)
}
