package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/BIC-DevSphere/devsphere-backend/internal/domain/model"
	"github.com/BIC-DevSphere/devsphere-backend/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.TagStore = (*TagRepo)(nil)

// TagRepo is the SQLite implementation of the TagStore port. It owns both
// the tags table and the project_tags association table.
type TagRepo struct {
	db *DB
}

// NewTagRepo creates a new TagRepo backed by the given DB.
func NewTagRepo(db *DB) *TagRepo {
	return &TagRepo{db: db}
}

// Create inserts a new tag with a generated identifier. Returns
// ErrTagAlreadyExists if a tag with the same name exists.
func (r *TagRepo) Create(ctx context.Context, tag model.Tag) (*model.Tag, error) {
	const query = `INSERT INTO tags (id, name) VALUES (?, ?)`

	tag.ID = uuid.NewString()

	_, err := r.db.Writer.ExecContext(ctx, query, tag.ID, tag.Name)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil, fmt.Errorf("create tag %s: %w", tag.Name, driven.ErrTagAlreadyExists)
		}
		return nil, fmt.Errorf("create tag %s: %w", tag.Name, err)
	}

	return &tag, nil
}

// ListAll returns all tags ordered by name.
func (r *TagRepo) ListAll(ctx context.Context) ([]model.Tag, error) {
	const query = `SELECT id, name FROM tags ORDER BY name`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		var tag model.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}

	return tags, nil
}

// Delete removes a tag. Association rows cascade via foreign keys. Returns
// ErrTagNotFound if the tag does not exist.
func (r *TagRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tags WHERE id = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete tag %s: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete tag %s: %w", id, driven.ErrTagNotFound)
	}

	return nil
}

// Associate creates one association row per tag inside a single transaction,
// so a partial failure leaves no association rows behind. A tag id that does
// not exist fails the whole call with ErrTagNotFound.
func (r *TagRepo) Associate(ctx context.Context, projectID string, tagIDs []string) (int, error) {
	const query = `INSERT INTO project_tags (project_id, tag_id) VALUES (?, ?)`

	tx, err := r.db.Writer.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin associate tags: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx, query, projectID, tagID); err != nil {
			if strings.Contains(err.Error(), "FOREIGN KEY constraint") {
				return 0, fmt.Errorf("associate tag %s with project %s: %w", tagID, projectID, driven.ErrTagNotFound)
			}
			return 0, fmt.Errorf("associate tag %s with project %s: %w", tagID, projectID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit associate tags: %w", err)
	}

	return len(tagIDs), nil
}

// DisassociateAll removes every tag association for the given project.
func (r *TagRepo) DisassociateAll(ctx context.Context, projectID string) error {
	const query = `DELETE FROM project_tags WHERE project_id = ?`

	if _, err := r.db.Writer.ExecContext(ctx, query, projectID); err != nil {
		return fmt.Errorf("disassociate tags for project %s: %w", projectID, err)
	}

	return nil
}

// ListByProject returns the tags associated with a project, ordered by name.
func (r *TagRepo) ListByProject(ctx context.Context, projectID string) ([]model.Tag, error) {
	const query = `SELECT t.id, t.name FROM tags t
		JOIN project_tags pt ON pt.tag_id = t.id
		WHERE pt.project_id = ?
		ORDER BY t.name`

	rows, err := r.db.Reader.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list tags for project %s: %w", projectID, err)
	}
	defer rows.Close()

	tags := []model.Tag{}
	for rows.Next() {
		var tag model.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}

	return tags, nil
}
