package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/kdgblogteam/blogapplication/internal/config"
	"github.com/kdgblogteam/blogapplication/internal/database"
	"github.com/kdgblogteam/blogapplication/internal/telemetry"
)

type app struct {
	logger         *slog.Logger
	templates      map[string]*template.Template
	staticFS       fs.FS
	Database       *database.Database
	PostService    *database.PostService
	CommentService *database.CommentService
}

// Options tunes the HTTP layer.
type Options struct {
	HTMLDir     string // read templates from disk instead of the embedded copy
	ServiceName string // span name of the root HTTP span
}

// NewHandler wires the services on db into the blog's HTTP handler.
func NewHandler(logger *slog.Logger, db *database.Database, opts Options) (http.Handler, error) {
	htmlFS, err := fs.Sub(uiFS, "ui/html")
	if err != nil {
		return nil, err
	}
	if opts.HTMLDir != "" {
		htmlFS = os.DirFS(opts.HTMLDir)
	}

	templates, err := newTemplateCache(htmlFS)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	staticFS, err := fs.Sub(uiFS, "ui/static")
	if err != nil {
		return nil, err
	}

	if opts.ServiceName == "" {
		opts.ServiceName = "blog"
	}

	app := &app{
		logger:         logger,
		templates:      templates,
		staticFS:       staticFS,
		Database:       db,
		PostService:    database.NewPostService(db),
		CommentService: database.NewCommentService(db),
	}

	return app.routes(opts.ServiceName), nil
}

// RunApp serves the blog until ctx is cancelled, then shuts down gracefully.
func RunApp(ctx context.Context, cfg config.Config, logger *slog.Logger, debugSQL bool) error {
	shutdownTracer, err := telemetry.InitTracer(ctx, telemetry.Options{
		Endpoint:    cfg.OtelEndpoint,
		ServiceName: cfg.ServiceName,
		Env:         cfg.Env,
	})
	if err != nil {
		logger.Error("failed to init tracer", "error", err)
	} else {
		defer func() { _ = shutdownTracer(context.Background()) }()
	}

	db, err := database.NewDatabase(database.Config{
		Driver: cfg.DBDriver,
		DSN:    cfg.DSN,
		Debug:  debugSQL,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	logger.Info("database connected", "driver", cfg.DBDriver, "dsn", database.RedactDSN(cfg.DBDriver, cfg.DSN))

	handler, err := NewHandler(logger, db, Options{
		HTMLDir:     cfg.HTMLDir,
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:     cfg.Addr,
		ErrorLog: slog.NewLogLogger(logger.Handler(), slog.LevelError),
		Handler:  handler,

		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}
