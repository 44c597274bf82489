package application_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BIC-DevSphere/devsphere-backend/internal/application"
	"github.com/BIC-DevSphere/devsphere-backend/internal/domain/model"
	"github.com/BIC-DevSphere/devsphere-backend/internal/domain/port/driven"
)

type listCall struct {
	Owner string
	Repo  string
}

type mockRepoHost struct {
	calls        []listCall
	contributors []model.Contributor
	err          error
}

func (m *mockRepoHost) ListContributors(_ context.Context, owner, repo string) ([]model.Contributor, error) {
	m.calls = append(m.calls, listCall{Owner: owner, Repo: repo})
	if m.err != nil {
		return nil, m.err
	}
	return m.contributors, nil
}

type linkCall struct {
	ProjectID     string
	ContributorID string
}

type recordingContributorStore struct {
	mu        sync.Mutex
	byName    map[string]model.Contributor
	links     []linkCall
	upsertErr error
}

func (m *recordingContributorStore) Upsert(_ context.Context, c model.Contributor) (*model.Contributor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.upsertErr != nil {
		return nil, m.upsertErr
	}

	if m.byName == nil {
		m.byName = map[string]model.Contributor{}
	}
	if existing, ok := m.byName[c.Username]; ok {
		c.ID = existing.ID
	} else {
		c.ID = fmt.Sprintf("contrib-%d", len(m.byName)+1)
	}
	m.byName[c.Username] = c

	return &c, nil
}

func (m *recordingContributorStore) Link(_ context.Context, projectID, contributorID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, l := range m.links {
		if l.ProjectID == projectID && l.ContributorID == contributorID {
			return nil // idempotent
		}
	}
	m.links = append(m.links, linkCall{ProjectID: projectID, ContributorID: contributorID})
	return nil
}

func (m *recordingContributorStore) ListByProject(_ context.Context, _ string) ([]model.Contributor, error) {
	return nil, nil
}

func TestImport_LinksAllContributors(t *testing.T) {
	host := &mockRepoHost{
		contributors: []model.Contributor{
			{Username: "alice", AvatarURL: "https://a/alice.png", ProfileURL: "https://github.com/alice"},
			{Username: "bob", AvatarURL: "https://a/bob.png", ProfileURL: "https://github.com/bob"},
		},
	}
	store := &recordingContributorStore{}
	svc := application.NewContributorImportService(host, store, "BIC-DevSphere")

	count, err := svc.Import(context.Background(), "devsphere-frontend", "proj-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.Len(t, host.calls, 1)
	assert.Equal(t, "BIC-DevSphere", host.calls[0].Owner)
	assert.Equal(t, "devsphere-frontend", host.calls[0].Repo)

	assert.Len(t, store.links, 2)
}

func TestImport_ReimportCreatesNoDuplicateLinks(t *testing.T) {
	host := &mockRepoHost{
		contributors: []model.Contributor{{Username: "alice"}},
	}
	store := &recordingContributorStore{}
	svc := application.NewContributorImportService(host, store, "BIC-DevSphere")

	_, err := svc.Import(context.Background(), "repo", "proj-1")
	require.NoError(t, err)
	_, err = svc.Import(context.Background(), "repo", "proj-1")
	require.NoError(t, err)

	assert.Len(t, store.links, 1)
	assert.Len(t, store.byName, 1)
}

func TestImport_HostNotFound(t *testing.T) {
	host := &mockRepoHost{err: driven.ErrHostRepoNotFound}
	store := &recordingContributorStore{}
	svc := application.NewContributorImportService(host, store, "BIC-DevSphere")

	count, err := svc.Import(context.Background(), "ghost", "proj-1")
	require.Error(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, application.KindImportFailure, application.KindOf(err))
	assert.ErrorIs(t, err, driven.ErrHostRepoNotFound)
	assert.Empty(t, store.links)
}

func TestImport_UpsertFailureStopsEarly(t *testing.T) {
	host := &mockRepoHost{
		contributors: []model.Contributor{{Username: "alice"}, {Username: "bob"}},
	}
	store := &recordingContributorStore{upsertErr: errors.New("db closed")}
	svc := application.NewContributorImportService(host, store, "BIC-DevSphere")

	count, err := svc.Import(context.Background(), "repo", "proj-1")
	require.Error(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, application.KindImportFailure, application.KindOf(err))
}
