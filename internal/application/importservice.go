package application

import (
	"context"
	"fmt"

	"github.com/BIC-DevSphere/devsphere-backend/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ ContributorImporter = (*ContributorImportService)(nil)

// ContributorImportService imports the contributor list of a repository and
// links each contributor to a project. The owner is fixed at construction:
// projects in the catalog live under a single organization.
type ContributorImportService struct {
	host  driven.RepoHost
	store driven.ContributorStore
	owner string
}

// NewContributorImportService creates a ContributorImportService that
// resolves repository names under the given owner.
func NewContributorImportService(host driven.RepoHost, store driven.ContributorStore, owner string) *ContributorImportService {
	return &ContributorImportService{
		host:  host,
		store: store,
		owner: owner,
	}
}

// Import fetches contributors of owner/repoName from the hosting API,
// upserts each by username, and links them to the project. Returns the
// number of contributors linked. A repository that does not resolve on the
// host is an ordinary failure here; the caller decides whether that is
// fatal.
func (s *ContributorImportService) Import(ctx context.Context, repoName, projectID string) (int, error) {
	contributors, err := s.host.ListContributors(ctx, s.owner, repoName)
	if err != nil {
		return 0, importFailure(
			fmt.Sprintf("failed to list contributors for %s/%s", s.owner, repoName), err)
	}

	linked := 0
	for _, c := range contributors {
		stored, err := s.store.Upsert(ctx, c)
		if err != nil {
			return linked, importFailure(
				fmt.Sprintf("failed to store contributor %s", c.Username), err)
		}

		if err := s.store.Link(ctx, projectID, stored.ID); err != nil {
			return linked, importFailure(
				fmt.Sprintf("failed to link contributor %s", c.Username), err)
		}
		linked++
	}

	return linked, nil
}
