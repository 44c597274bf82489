package application

import (
	"context"
	"fmt"

	"github.com/BIC-DevSphere/devsphere-backend/internal/domain/model"
	"github.com/BIC-DevSphere/devsphere-backend/internal/domain/port/driven"
)

// TagService manages the tag catalog. Tags must exist before project
// creation can attach them, so admins maintain them independently.
type TagService struct {
	tags driven.TagStore
}

// NewTagService creates a TagService backed by the given store.
func NewTagService(tags driven.TagStore) *TagService {
	return &TagService{tags: tags}
}

// Create adds a new tag. Returns driven.ErrTagAlreadyExists if a tag with
// the same name exists.
func (s *TagService) Create(ctx context.Context, name string) (*model.Tag, error) {
	tag, err := s.tags.Create(ctx, model.Tag{Name: name})
	if err != nil {
		return nil, fmt.Errorf("create tag %s: %w", name, err)
	}
	return tag, nil
}

// List returns all tags ordered by name.
func (s *TagService) List(ctx context.Context) ([]model.Tag, error) {
	tags, err := s.tags.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

// Delete removes a tag. Returns driven.ErrTagNotFound if no tag has the
// given id.
func (s *TagService) Delete(ctx context.Context, id string) error {
	if err := s.tags.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete tag %s: %w", id, err)
	}
	return nil
}
