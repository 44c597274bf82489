package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/BIC-DevSphere/devsphere-backend/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// ProjectResponse is the JSON representation of a project.
type ProjectResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	RepoLink    string   `json:"repo_link"`
	DemoLink    string   `json:"demo_link"`
	TechStack   []string `json:"tech_stack"`
	ImageURL    string   `json:"image_url"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`

	Tags         []TagResponse         `json:"tags"`
	Contributors []ContributorResponse `json:"contributors"`

	// Rendered markdown -- populated only on the single project endpoint.
	DescriptionHTML string `json:"description_html,omitempty"`
}

// TagResponse is the JSON representation of a tag.
type TagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ContributorResponse is the JSON representation of a contributor.
type ContributorResponse struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	AvatarURL  string `json:"avatar_url"`
	ProfileURL string `json:"profile_url"`
}

// CreateTagRequest is the JSON body for the create tag endpoint.
type CreateTagRequest struct {
	Name string `json:"name"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// toProjectResponse converts a domain Project to its JSON representation.
func toProjectResponse(p model.Project) ProjectResponse {
	techStack := p.TechStack
	if techStack == nil {
		techStack = []string{}
	}

	tags := make([]TagResponse, 0, len(p.Tags))
	for _, t := range p.Tags {
		tags = append(tags, toTagResponse(t))
	}

	contributors := make([]ContributorResponse, 0, len(p.Contributors))
	for _, c := range p.Contributors {
		contributors = append(contributors, toContributorResponse(c))
	}

	return ProjectResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		RepoLink:     p.RepoLink,
		DemoLink:     p.DemoLink,
		TechStack:    techStack,
		ImageURL:     p.ImageURL,
		CreatedAt:    p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    p.UpdatedAt.UTC().Format(time.RFC3339),
		Tags:         tags,
		Contributors: contributors,
	}
}

// toTagResponse converts a domain Tag to its JSON representation.
func toTagResponse(t model.Tag) TagResponse {
	return TagResponse{
		ID:   t.ID,
		Name: t.Name,
	}
}

// toContributorResponse converts a domain Contributor to its JSON representation.
func toContributorResponse(c model.Contributor) ContributorResponse {
	return ContributorResponse{
		ID:         c.ID,
		Username:   c.Username,
		AvatarURL:  c.AvatarURL,
		ProfileURL: c.ProfileURL,
	}
}
