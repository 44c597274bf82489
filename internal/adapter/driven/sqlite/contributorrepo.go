package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/BIC-DevSphere/devsphere-backend/internal/domain/model"
	"github.com/BIC-DevSphere/devsphere-backend/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ContributorStore = (*ContributorRepo)(nil)

// ContributorRepo is the SQLite implementation of the ContributorStore port.
// It owns the contributors table and the project_contributors association
// table.
type ContributorRepo struct {
	db *DB
}

// NewContributorRepo creates a new ContributorRepo backed by the given DB.
func NewContributorRepo(db *DB) *ContributorRepo {
	return &ContributorRepo{db: db}
}

// Upsert inserts a contributor or refreshes the profile fields of an
// existing one, keyed by username. The returned record carries the stored
// identifier, which survives re-imports.
func (r *ContributorRepo) Upsert(ctx context.Context, contributor model.Contributor) (*model.Contributor, error) {
	const insert = `INSERT INTO contributors (id, username, avatar_url, profile_url)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (username) DO UPDATE SET
			avatar_url = excluded.avatar_url,
			profile_url = excluded.profile_url`

	const get = `SELECT id, username, avatar_url, profile_url FROM contributors WHERE username = ?`

	_, err := r.db.Writer.ExecContext(ctx, insert,
		uuid.NewString(),
		contributor.Username,
		contributor.AvatarURL,
		contributor.ProfileURL,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert contributor %s: %w", contributor.Username, err)
	}

	// Re-read to get the identifier: on conflict the original id is kept,
	// not the freshly generated one.
	var stored model.Contributor
	err = r.db.Writer.QueryRowContext(ctx, get, contributor.Username).Scan(
		&stored.ID,
		&stored.Username,
		&stored.AvatarURL,
		&stored.ProfileURL,
	)
	if err != nil {
		return nil, fmt.Errorf("read back contributor %s: %w", contributor.Username, err)
	}

	return &stored, nil
}

// Link associates a contributor with a project. Linking an already-linked
// pair is a no-op, so re-imports never create duplicates.
func (r *ContributorRepo) Link(ctx context.Context, projectID, contributorID string) error {
	const query = `INSERT OR IGNORE INTO project_contributors (project_id, contributor_id) VALUES (?, ?)`

	if _, err := r.db.Writer.ExecContext(ctx, query, projectID, contributorID); err != nil {
		return fmt.Errorf("link contributor %s to project %s: %w", contributorID, projectID, err)
	}

	return nil
}

// ListByProject returns the contributors linked to a project, ordered by
// username.
func (r *ContributorRepo) ListByProject(ctx context.Context, projectID string) ([]model.Contributor, error) {
	const query = `SELECT c.id, c.username, c.avatar_url, c.profile_url FROM contributors c
		JOIN project_contributors pc ON pc.contributor_id = c.id
		WHERE pc.project_id = ?
		ORDER BY c.username`

	rows, err := r.db.Reader.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list contributors for project %s: %w", projectID, err)
	}
	defer rows.Close()

	contributors := []model.Contributor{}
	for rows.Next() {
		var c model.Contributor
		if err := rows.Scan(&c.ID, &c.Username, &c.AvatarURL, &c.ProfileURL); err != nil {
			return nil, fmt.Errorf("scan contributor: %w", err)
		}
		contributors = append(contributors, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contributors: %w", err)
	}

	return contributors, nil
}
