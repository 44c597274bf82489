package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BIC-DevSphere/devsphere-backend/internal/domain/model"
	"github.com/BIC-DevSphere/devsphere-backend/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ProjectStore = (*ProjectRepo)(nil)

// ProjectRepo is the SQLite implementation of the ProjectStore port.
type ProjectRepo struct {
	db *DB
}

// NewProjectRepo creates a new ProjectRepo backed by the given DB.
func NewProjectRepo(db *DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

// Create inserts a new project. The identifier is generated here, exactly
// once; any identifier set on the input is ignored.
func (r *ProjectRepo) Create(ctx context.Context, project model.Project) (*model.Project, error) {
	const query = `INSERT INTO projects (id, name, description, repo_link, demo_link, tech_stack, image_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	project.ID = uuid.NewString()
	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now

	techStack, err := marshalTechStack(project.TechStack)
	if err != nil {
		return nil, fmt.Errorf("create project %s: %w", project.Name, err)
	}

	_, err = r.db.Writer.ExecContext(ctx, query,
		project.ID,
		project.Name,
		project.Description,
		project.RepoLink,
		project.DemoLink,
		techStack,
		project.ImageURL,
		now.Format(time.RFC3339),
		now.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("create project %s: %w", project.Name, err)
	}

	return &project, nil
}

// GetByID retrieves a project by its identifier. Returns nil, nil if the
// project does not exist.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*model.Project, error) {
	const query = `SELECT id, name, description, repo_link, demo_link, tech_stack, image_url, created_at, updated_at
		FROM projects WHERE id = ?`

	project, err := scanProject(r.db.Reader.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get project %s: %w", id, err)
	}

	return project, nil
}

// ListAll returns all projects, newest first.
func (r *ProjectRepo) ListAll(ctx context.Context) ([]model.Project, error) {
	const query = `SELECT id, name, description, repo_link, demo_link, tech_stack, image_url, created_at, updated_at
		FROM projects ORDER BY created_at DESC, name`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	return projects, nil
}

// Update replaces a project's mutable fields. Returns ErrProjectNotFound if
// the project does not exist. The identifier and created_at never change.
func (r *ProjectRepo) Update(ctx context.Context, project model.Project) error {
	const query = `UPDATE projects
		SET name = ?, description = ?, repo_link = ?, demo_link = ?, tech_stack = ?, image_url = ?, updated_at = ?
		WHERE id = ?`

	techStack, err := marshalTechStack(project.TechStack)
	if err != nil {
		return fmt.Errorf("update project %s: %w", project.ID, err)
	}

	result, err := r.db.Writer.ExecContext(ctx, query,
		project.Name,
		project.Description,
		project.RepoLink,
		project.DemoLink,
		techStack,
		project.ImageURL,
		time.Now().UTC().Format(time.RFC3339),
		project.ID,
	)
	if err != nil {
		return fmt.Errorf("update project %s: %w", project.ID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update project %s: %w", project.ID, driven.ErrProjectNotFound)
	}

	return nil
}

// Delete removes a project. Association rows cascade via foreign keys.
// Returns ErrProjectNotFound if the project does not exist.
func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM projects WHERE id = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete project %s: %w", id, driven.ErrProjectNotFound)
	}

	return nil
}

func scanProject(s scanner) (*model.Project, error) {
	var project model.Project
	var techStack, createdAt, updatedAt string

	err := s.Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.RepoLink,
		&project.DemoLink,
		&techStack,
		&project.ImageURL,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(techStack), &project.TechStack); err != nil {
		return nil, fmt.Errorf("parse tech_stack: %w", err)
	}

	project.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}

	project.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	return &project, nil
}

// marshalTechStack stores the label list as a JSON array; nil becomes [].
func marshalTechStack(labels []string) (string, error) {
	if labels == nil {
		labels = []string{}
	}

	data, err := json.Marshal(labels)
	if err != nil {
		return "", fmt.Errorf("marshal tech_stack: %w", err)
	}

	return string(data), nil
}

// parseTime tries multiple SQLite datetime formats.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05.000",
		time.RFC3339,
		time.RFC3339Nano,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}
