// Package httphandler is the HTTP driving adapter that serves the REST API.
package httphandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/BIC-DevSphere/devsphere-backend/internal/application"
	"github.com/BIC-DevSphere/devsphere-backend/internal/domain/port/driven"
)

// maxUploadBytes bounds the in-memory portion of a multipart upload.
const maxUploadBytes = 10 << 20

// Handler serves the catalog REST API.
type Handler struct {
	projects *application.ProjectService
	tags     *application.TagService
	logger   *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(projects *application.ProjectService, tags *application.TagService, logger *slog.Logger) *Handler {
	return &Handler{
		projects: projects,
		tags:     tags,
		logger:   logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with logging and recovery middleware. Uploaded media under mediaDir is
// served at mediaBaseURL.
func NewServeMux(h *Handler, mediaDir, mediaBaseURL string, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/projects", h.ListProjects)
	mux.HandleFunc("POST /api/v1/projects", h.CreateProject)
	mux.HandleFunc("GET /api/v1/projects/{id}", h.GetProject)
	mux.HandleFunc("PUT /api/v1/projects/{id}", h.UpdateProject)
	mux.HandleFunc("DELETE /api/v1/projects/{id}", h.DeleteProject)
	mux.HandleFunc("GET /api/v1/projects/{id}/contributors", h.ListProjectContributors)
	mux.HandleFunc("GET /api/v1/tags", h.ListTags)
	mux.HandleFunc("POST /api/v1/tags", h.CreateTag)
	mux.HandleFunc("DELETE /api/v1/tags/{id}", h.DeleteTag)
	mux.HandleFunc("GET /api/v1/health", h.Health)

	prefix := strings.TrimSuffix(mediaBaseURL, "/") + "/"
	mux.Handle("GET "+prefix, http.StripPrefix(prefix, http.FileServer(http.Dir(mediaDir))))

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// projectForm is a parsed multipart project payload.
type projectForm struct {
	input application.CreateProjectInput
	image *driven.ImageUpload
	file  multipart.File
}

func (f *projectForm) close() {
	if f.file != nil {
		_ = f.file.Close()
	}
}

// parseProjectForm reads the multipart form fields shared by create and
// update. The image part is optional.
func parseProjectForm(r *http.Request) (*projectForm, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, fmt.Errorf("parse multipart form: %w", err)
	}

	form := &projectForm{
		input: application.CreateProjectInput{
			Name:        strings.TrimSpace(r.FormValue("name")),
			Description: r.FormValue("description"),
			RepoLink:    strings.TrimSpace(r.FormValue("repo_link")),
			DemoLink:    strings.TrimSpace(r.FormValue("demo_link")),
			TechStack:   splitCSV(r.FormValue("tech_stack")),
			TagIDs:      splitCSV(r.FormValue("tag_ids")),
		},
	}

	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		form.file = file
		form.image = &driven.ImageUpload{Filename: header.Filename, Content: file}
	case errors.Is(err, http.ErrMissingFile):
		// No thumbnail supplied.
	default:
		return nil, fmt.Errorf("read image part: %w", err)
	}

	return form, nil
}

// splitCSV splits a comma-separated form value, trimming whitespace and
// dropping empty entries. Returns an empty slice for empty input.
func splitCSV(v string) []string {
	out := []string{}
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ListProjects returns all projects with their tags and contributors.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list projects", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, toProjectResponse(p))
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetProject returns a single project, including its rendered description.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	project, err := h.projects.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, driven.ErrProjectNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		h.logger.Error("failed to get project", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := toProjectResponse(*project)
	resp.DescriptionHTML = renderMarkdown(project.Description)

	writeJSON(w, http.StatusOK, resp)
}

// CreateProject runs the create-project workflow. A fatal step failure
// (image upload, record creation, tag association) maps to a 400 with the
// step's message; a contributor import failure is invisible here.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	form, err := parseProjectForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}
	defer form.close()

	if form.input.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	project, err := h.projects.Create(r.Context(), form.input, form.image)
	if err != nil {
		var opErr *application.OperationError
		if errors.As(err, &opErr) {
			h.logger.Error("create project failed", "kind", opErr.Kind, "error", err)
			writeError(w, http.StatusBadRequest, opErr.Message)
			return
		}
		h.logger.Error("create project failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, toProjectResponse(*project))
}

// UpdateProject replaces a project's fields, tag set, and optionally its
// thumbnail.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	form, err := parseProjectForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}
	defer form.close()

	if form.input.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	input := application.UpdateProjectInput{
		Name:        form.input.Name,
		Description: form.input.Description,
		RepoLink:    form.input.RepoLink,
		DemoLink:    form.input.DemoLink,
		TechStack:   form.input.TechStack,
		TagIDs:      form.input.TagIDs,
	}

	project, err := h.projects.Update(r.Context(), id, input, form.image)
	if err != nil {
		if errors.Is(err, driven.ErrProjectNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		var opErr *application.OperationError
		if errors.As(err, &opErr) {
			h.logger.Error("update project failed", "id", id, "kind", opErr.Kind, "error", err)
			writeError(w, http.StatusBadRequest, opErr.Message)
			return
		}
		h.logger.Error("update project failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toProjectResponse(*project))
}

// DeleteProject removes a project and, via cascade, its association rows.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.projects.Delete(r.Context(), id); err != nil {
		if errors.Is(err, driven.ErrProjectNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		h.logger.Error("failed to delete project", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListProjectContributors returns the contributors linked to a project.
func (h *Handler) ListProjectContributors(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	project, err := h.projects.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, driven.ErrProjectNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		h.logger.Error("failed to get project", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]ContributorResponse, 0, len(project.Contributors))
	for _, c := range project.Contributors {
		resp = append(resp, toContributorResponse(c))
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListTags returns all tags.
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tags.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list tags", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		resp = append(resp, toTagResponse(t))
	}

	writeJSON(w, http.StatusOK, resp)
}

// CreateTag adds a new tag.
func (h *Handler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req CreateTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	tag, err := h.tags.Create(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, driven.ErrTagAlreadyExists) {
			writeError(w, http.StatusConflict, "tag already exists")
			return
		}
		h.logger.Error("failed to create tag", "name", req.Name, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, toTagResponse(*tag))
}

// DeleteTag removes a tag and its associations.
func (h *Handler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.tags.Delete(r.Context(), id); err != nil {
		if errors.Is(err, driven.ErrTagNotFound) {
			writeError(w, http.StatusNotFound, "tag not found")
			return
		}
		h.logger.Error("failed to delete tag", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Health reports service liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}
