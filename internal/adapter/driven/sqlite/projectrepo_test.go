package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BIC-DevSphere/devsphere-backend/internal/domain/model"
	"github.com/BIC-DevSphere/devsphere-backend/internal/domain/port/driven"
)

func makeProject(name string) model.Project {
	return model.Project{
		Name:        name,
		Description: "A **markdown** description",
		RepoLink:    "https://github.com/BIC-DevSphere/" + name,
		DemoLink:    "https://" + name + ".example.com",
		TechStack:   []string{"go", "sqlite"},
		ImageURL:    "/media/projects/" + name + ".png",
	}
}

func TestProjectRepo_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepo(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, makeProject("devsphere-frontend"))
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.False(t, created.UpdatedAt.IsZero())

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "devsphere-frontend", got.Name)
	assert.Equal(t, "A **markdown** description", got.Description)
	assert.Equal(t, []string{"go", "sqlite"}, got.TechStack)
	assert.Equal(t, "/media/projects/devsphere-frontend.png", got.ImageURL)
}

func TestProjectRepo_Create_IgnoresCallerID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepo(db)
	ctx := context.Background()

	p := makeProject("sneaky")
	p.ID = "caller-chosen-id"

	created, err := repo.Create(ctx, p)
	require.NoError(t, err)
	assert.NotEqual(t, "caller-chosen-id", created.ID)
}

func TestProjectRepo_Create_EmptyTechStack(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepo(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, model.Project{Name: "bare"})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{}, got.TechStack)
}

func TestProjectRepo_GetByID_Missing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepo(db)

	got, err := repo.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProjectRepo_ListAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepo(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, makeProject("one"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, makeProject("two"))
	require.NoError(t, err)

	projects, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 2)
}

func TestProjectRepo_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepo(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, makeProject("original"))
	require.NoError(t, err)

	created.Name = "renamed"
	created.TechStack = []string{"rust"}
	require.NoError(t, repo.Update(ctx, *created))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)
	assert.Equal(t, []string{"rust"}, got.TechStack)
	assert.Equal(t, created.CreatedAt.Unix(), got.CreatedAt.Unix())
}

func TestProjectRepo_Update_Missing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepo(db)

	err := repo.Update(context.Background(), model.Project{ID: "nope", Name: "x"})
	assert.ErrorIs(t, err, driven.ErrProjectNotFound)
}

func TestProjectRepo_Delete_CascadesAssociations(t *testing.T) {
	db := setupTestDB(t)
	projects := NewProjectRepo(db)
	tags := NewTagRepo(db)
	ctx := context.Background()

	created, err := projects.Create(ctx, makeProject("doomed"))
	require.NoError(t, err)

	tag, err := tags.Create(ctx, model.Tag{Name: "web"})
	require.NoError(t, err)

	_, err = tags.Associate(ctx, created.ID, []string{tag.ID})
	require.NoError(t, err)

	require.NoError(t, projects.Delete(ctx, created.ID))

	// The tag survives; only the association row is gone.
	remaining, err := tags.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)

	assoc, err := tags.ListByProject(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, assoc)
}

func TestProjectRepo_Delete_Missing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepo(db)

	err := repo.Delete(context.Background(), "nope")
	assert.ErrorIs(t, err, driven.ErrProjectNotFound)
}
