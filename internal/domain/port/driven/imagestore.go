package driven

import (
	"context"
	"io"
)

// ImageUpload is a raw image accepted from a caller, not yet stored.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// ImageStore defines the driven port for thumbnail storage. Save places the
// image under the given destination folder and returns the public URL it
// will be served from. The orchestrator calls Save at most once per
// operation.
type ImageStore interface {
	Save(ctx context.Context, image ImageUpload, folder string) (string, error)
}
