package model

// Tag is a classification label. Projects and tags are many-to-many;
// the association is keyed by (project, tag) and unique per pair.
type Tag struct {
	ID   string
	Name string
}
