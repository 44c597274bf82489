// Package application contains use-case orchestration services.
package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/BIC-DevSphere/devsphere-backend/internal/domain/model"
	"github.com/BIC-DevSphere/devsphere-backend/internal/domain/port/driven"
)

// projectImageFolder is the destination group for uploaded thumbnails.
const projectImageFolder = "projects"

// ContributorImporter is the collaborator the orchestrator consumes for
// best-effort contributor import. Implemented by ContributorImportService.
type ContributorImporter interface {
	Import(ctx context.Context, repoName, projectID string) (int, error)
}

// CreateProjectInput holds the already-validated fields for a new project.
type CreateProjectInput struct {
	Name        string
	Description string
	RepoLink    string
	DemoLink    string
	TechStack   []string
	TagIDs      []string
}

// UpdateProjectInput holds the replacement fields for an existing project.
// TagIDs replaces the full tag set; an empty slice clears it.
type UpdateProjectInput struct {
	Name        string
	Description string
	RepoLink    string
	DemoLink    string
	TechStack   []string
	TagIDs      []string
}

// ProjectService orchestrates the project lifecycle. Create is the
// interesting operation: it sequences image upload, record creation, tag
// association, and contributor import with an asymmetric failure policy.
// The service holds no mutable state, so concurrent calls are safe.
type ProjectService struct {
	projects     driven.ProjectStore
	tags         driven.TagStore
	contributors driven.ContributorStore
	images       driven.ImageStore
	importer     ContributorImporter
	logger       *slog.Logger
}

// NewProjectService creates a ProjectService with all required dependencies.
func NewProjectService(
	projects driven.ProjectStore,
	tags driven.TagStore,
	contributors driven.ContributorStore,
	images driven.ImageStore,
	importer ContributorImporter,
	logger *slog.Logger,
) *ProjectService {
	return &ProjectService{
		projects:     projects,
		tags:         tags,
		contributors: contributors,
		images:       images,
		importer:     importer,
		logger:       logger,
	}
}

// Create runs the create-project workflow:
//
//  1. Derive a repository short-name from the repo link (never fails).
//  2. Upload the thumbnail, if one was supplied. Fatal on failure; the
//     record is never created after a failed upload.
//  3. Create the project record. Fatal on failure.
//  4. Associate tags, if any were supplied. Fatal on failure, but the
//     project row from step 3 is left in place; the operation reports
//     failure without rolling back.
//  5. Import contributors, if a short-name was derived. Best-effort: any
//     failure is logged and swallowed.
//
// The steps run strictly in sequence; each later step needs the identifier
// produced in step 3. No step is retried here.
func (s *ProjectService) Create(ctx context.Context, in CreateProjectInput, image *driven.ImageUpload) (*model.Project, error) {
	repoName := RepoShortName(in.RepoLink)

	var imageURL string
	if image != nil {
		url, err := s.images.Save(ctx, *image, projectImageFolder)
		if err != nil {
			return nil, storeFailure("failed to upload project image", err)
		}
		imageURL = url
	}

	project, err := s.projects.Create(ctx, model.Project{
		Name:        in.Name,
		Description: in.Description,
		RepoLink:    in.RepoLink,
		DemoLink:    in.DemoLink,
		TechStack:   in.TechStack,
		ImageURL:    imageURL,
	})
	if err != nil {
		return nil, storeFailure("failed to create project", err)
	}

	if len(in.TagIDs) > 0 {
		if _, err := s.tags.Associate(ctx, project.ID, in.TagIDs); err != nil {
			// The project row from the previous step stays in place.
			return nil, associationFailure("failed to associate tags", err)
		}
	}

	if repoName != "" {
		count, err := s.importer.Import(ctx, repoName, project.ID)
		if err != nil {
			s.logger.Error("contributor import failed",
				"project_id", project.ID,
				"repo", repoName,
				"error", err,
			)
		} else {
			s.logger.Info("contributors imported",
				"project_id", project.ID,
				"repo", repoName,
				"count", count,
			)
		}
	}

	return project, nil
}

// List returns all projects, each hydrated with its tags and contributors.
func (s *ProjectService) List(ctx context.Context) ([]model.Project, error) {
	projects, err := s.projects.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	for i := range projects {
		if err := s.hydrate(ctx, &projects[i]); err != nil {
			return nil, err
		}
	}

	return projects, nil
}

// Get returns a single project hydrated with its tags and contributors.
// Returns driven.ErrProjectNotFound if no project has the given id.
func (s *ProjectService) Get(ctx context.Context, id string) (*model.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get project %s: %w", id, err)
	}
	if project == nil {
		return nil, fmt.Errorf("get project %s: %w", id, driven.ErrProjectNotFound)
	}

	if err := s.hydrate(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

// Update replaces a project's fields and tag set. A supplied image replaces
// the stored thumbnail; upload failure aborts the update with the same
// fatal policy as Create. Returns driven.ErrProjectNotFound if no project
// has the given id.
func (s *ProjectService) Update(ctx context.Context, id string, in UpdateProjectInput, image *driven.ImageUpload) (*model.Project, error) {
	existing, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get project %s: %w", id, err)
	}
	if existing == nil {
		return nil, fmt.Errorf("get project %s: %w", id, driven.ErrProjectNotFound)
	}

	imageURL := existing.ImageURL
	if image != nil {
		url, err := s.images.Save(ctx, *image, projectImageFolder)
		if err != nil {
			return nil, storeFailure("failed to upload project image", err)
		}
		imageURL = url
	}

	updated := model.Project{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		RepoLink:    in.RepoLink,
		DemoLink:    in.DemoLink,
		TechStack:   in.TechStack,
		ImageURL:    imageURL,
	}

	if err := s.projects.Update(ctx, updated); err != nil {
		return nil, storeFailure("failed to update project", err)
	}

	if err := s.tags.DisassociateAll(ctx, id); err != nil {
		return nil, associationFailure("failed to replace tags", err)
	}
	if len(in.TagIDs) > 0 {
		if _, err := s.tags.Associate(ctx, id, in.TagIDs); err != nil {
			return nil, associationFailure("failed to replace tags", err)
		}
	}

	return s.Get(ctx, id)
}

// Delete removes a project. Association rows cascade in the store.
// Returns driven.ErrProjectNotFound if no project has the given id.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	return nil
}

// hydrate fills a project's tag and contributor relations.
func (s *ProjectService) hydrate(ctx context.Context, project *model.Project) error {
	tags, err := s.tags.ListByProject(ctx, project.ID)
	if err != nil {
		return fmt.Errorf("list tags for project %s: %w", project.ID, err)
	}
	project.Tags = tags

	contributors, err := s.contributors.ListByProject(ctx, project.ID)
	if err != nil {
		return fmt.Errorf("list contributors for project %s: %w", project.ID, err)
	}
	project.Contributors = contributors

	return nil
}
