// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr   string
	DBPath       string
	MediaDir     string
	MediaBaseURL string
	GitHubToken  string
	GitHubOwner  string
}

// Load reads configuration from environment variables and returns a validated
// Config. DEVSPHERE_GITHUB_TOKEN is optional; without it contributor import
// runs against the unauthenticated GitHub API. Optional variables with
// defaults: DEVSPHERE_LISTEN_ADDR (127.0.0.1:8080), DEVSPHERE_DB_PATH
// (devsphere.db), DEVSPHERE_MEDIA_DIR (media), DEVSPHERE_MEDIA_BASE_URL
// (/media), DEVSPHERE_GITHUB_OWNER (BIC-DevSphere).
func Load() (*Config, error) {
	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("DEVSPHERE_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "devsphere.db"
	if v, ok := os.LookupEnv("DEVSPHERE_DB_PATH"); ok {
		dbPath = v
	}

	mediaDir := "media"
	if v, ok := os.LookupEnv("DEVSPHERE_MEDIA_DIR"); ok {
		mediaDir = v
	}

	mediaBaseURL := "/media"
	if v, ok := os.LookupEnv("DEVSPHERE_MEDIA_BASE_URL"); ok {
		mediaBaseURL = v
	}
	if !strings.HasPrefix(mediaBaseURL, "/") {
		return nil, fmt.Errorf("DEVSPHERE_MEDIA_BASE_URL must be an absolute path, got %q", mediaBaseURL)
	}

	owner := "BIC-DevSphere"
	if v, ok := os.LookupEnv("DEVSPHERE_GITHUB_OWNER"); ok && v != "" {
		owner = v
	}

	return &Config{
		ListenAddr:   listenAddr,
		DBPath:       dbPath,
		MediaDir:     mediaDir,
		MediaBaseURL: mediaBaseURL,
		GitHubToken:  os.Getenv("DEVSPHERE_GITHUB_TOKEN"),
		GitHubOwner:  owner,
	}, nil
}
