package media_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BIC-DevSphere/devsphere-backend/internal/adapter/driven/media"
	"github.com/BIC-DevSphere/devsphere-backend/internal/domain/port/driven"
)

func TestStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := media.NewStore(dir, "/media")
	require.NoError(t, err)

	upload := driven.ImageUpload{
		Filename: "Thumbnail.PNG",
		Content:  strings.NewReader("fake-png-bytes"),
	}

	url, err := store.Save(context.Background(), upload, "projects")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/media/projects/"), "url %q should live under the base path", url)
	assert.True(t, strings.HasSuffix(url, ".png"), "url %q should keep the lowercased extension", url)

	// The served path maps onto the directory layout.
	rel := strings.TrimPrefix(url, "/media/")
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, "fake-png-bytes", string(data))
}

func TestStore_Save_GeneratedNamesAreUnique(t *testing.T) {
	store, err := media.NewStore(t.TempDir(), "/media")
	require.NoError(t, err)

	first, err := store.Save(context.Background(), driven.ImageUpload{
		Filename: "a.png", Content: strings.NewReader("one"),
	}, "projects")
	require.NoError(t, err)

	second, err := store.Save(context.Background(), driven.ImageUpload{
		Filename: "a.png", Content: strings.NewReader("two"),
	}, "projects")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestStore_Save_NoExtension(t *testing.T) {
	store, err := media.NewStore(t.TempDir(), "/media")
	require.NoError(t, err)

	url, err := store.Save(context.Background(), driven.ImageUpload{
		Filename: "raw", Content: strings.NewReader("bytes"),
	}, "projects")
	require.NoError(t, err)
	assert.NotContains(t, filepath.Base(url), ".")
}

func TestStore_Save_CanceledContext(t *testing.T) {
	store, err := media.NewStore(t.TempDir(), "/media")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Save(ctx, driven.ImageUpload{
		Filename: "a.png", Content: strings.NewReader("one"),
	}, "projects")
	assert.ErrorIs(t, err, context.Canceled)
}
