package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BIC-DevSphere/devsphere-backend/internal/application"
	"github.com/BIC-DevSphere/devsphere-backend/internal/domain/port/driven"
)

func TestTagService_Create(t *testing.T) {
	svc := application.NewTagService(&mockTagStore{})

	tag, err := svc.Create(context.Background(), "web")
	require.NoError(t, err)
	assert.Equal(t, "web", tag.Name)
}

func TestTagService_Create_Duplicate(t *testing.T) {
	store := &mockTagStore{createErr: driven.ErrTagAlreadyExists}
	svc := application.NewTagService(store)

	_, err := svc.Create(context.Background(), "web")
	assert.ErrorIs(t, err, driven.ErrTagAlreadyExists)
}

func TestTagService_Delete_NotFound(t *testing.T) {
	store := &mockTagStore{deleteErr: driven.ErrTagNotFound}
	svc := application.NewTagService(store)

	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, driven.ErrTagNotFound)
}
