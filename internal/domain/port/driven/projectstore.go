package driven

import (
	"context"
	"errors"

	"github.com/BIC-DevSphere/devsphere-backend/internal/domain/model"
)

// ErrProjectNotFound indicates the requested project does not exist.
var ErrProjectNotFound = errors.New("project not found")

// ProjectStore defines the driven port for project persistence.
// Create assigns the project its identifier; callers must not set one.
// GetByID returns nil, nil when the project does not exist.
// Update and Delete return ErrProjectNotFound if the project does not exist.
type ProjectStore interface {
	Create(ctx context.Context, project model.Project) (*model.Project, error)
	GetByID(ctx context.Context, id string) (*model.Project, error)
	ListAll(ctx context.Context) ([]model.Project, error)
	Update(ctx context.Context, project model.Project) error
	Delete(ctx context.Context, id string) error
}
