package model

import "time"

// Project is a catalog entry for a showcased project. The ID is a UUID
// assigned by the store at creation and never changes afterwards.
type Project struct {
	ID          string
	Name        string
	Description string
	RepoLink    string // optional; empty when no repository is linked
	DemoLink    string // optional
	TechStack   []string
	ImageURL    string // optional; set when a thumbnail was uploaded
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Hydrated relations. Nil when the project was loaded without them.
	Tags         []Tag
	Contributors []Contributor
}
