package driven

import (
	"context"
	"errors"

	"github.com/BIC-DevSphere/devsphere-backend/internal/domain/model"
)

// Sentinel errors returned by TagStore implementations.
var (
	// ErrTagNotFound indicates a referenced tag does not exist.
	ErrTagNotFound = errors.New("tag not found")

	// ErrTagAlreadyExists indicates a tag with the same name already exists.
	ErrTagAlreadyExists = errors.New("tag already exists")
)

// TagStore defines the driven port for tag persistence and the
// project-tag association records.
// Associate creates one association row per tag and returns the number
// created; it fails if any tag does not exist or is already associated.
// DisassociateAll removes every association for the given project.
type TagStore interface {
	Create(ctx context.Context, tag model.Tag) (*model.Tag, error)
	ListAll(ctx context.Context) ([]model.Tag, error)
	Delete(ctx context.Context, id string) error

	Associate(ctx context.Context, projectID string, tagIDs []string) (int, error)
	DisassociateAll(ctx context.Context, projectID string) error
	ListByProject(ctx context.Context, projectID string) ([]model.Tag, error)
}
