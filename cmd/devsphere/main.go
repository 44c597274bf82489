package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	githubadapter "github.com/BIC-DevSphere/devsphere-backend/internal/adapter/driven/github"
	"github.com/BIC-DevSphere/devsphere-backend/internal/adapter/driven/media"
	sqliteadapter "github.com/BIC-DevSphere/devsphere-backend/internal/adapter/driven/sqlite"
	httphandler "github.com/BIC-DevSphere/devsphere-backend/internal/adapter/driving/http"
	"github.com/BIC-DevSphere/devsphere-backend/internal/application"
	"github.com/BIC-DevSphere/devsphere-backend/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on invalid env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"media_dir", cfg.MediaDir,
		"github_owner", cfg.GitHubOwner,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire driven adapters.
	projectStore := sqliteadapter.NewProjectRepo(db)
	tagStore := sqliteadapter.NewTagRepo(db)
	contributorStore := sqliteadapter.NewContributorRepo(db)

	imageStore, err := media.NewStore(cfg.MediaDir, cfg.MediaBaseURL)
	if err != nil {
		return err
	}

	ghClient := githubadapter.NewClient(cfg.GitHubToken)
	if cfg.GitHubToken == "" {
		slog.Info("no github token configured, contributor import uses the unauthenticated API")
	}

	// 6. Create application services.
	importer := application.NewContributorImportService(ghClient, contributorStore, cfg.GitHubOwner)
	projectSvc := application.NewProjectService(projectStore, tagStore, contributorStore, imageStore, importer, slog.Default())
	tagSvc := application.NewTagService(tagStore)

	// 7. Create HTTP handler and server.
	handler := httphandler.NewHandler(projectSvc, tagSvc, slog.Default())
	mux := httphandler.NewServeMux(handler, cfg.MediaDir, cfg.MediaBaseURL, slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	slog.Info("devsphere started", "listen_addr", cfg.ListenAddr)

	// 8. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 9. Graceful shutdown with 10s timeout for HTTP server drain.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
