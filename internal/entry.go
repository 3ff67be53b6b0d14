// Package internal wires configuration, the corpus, and the transports
// into a running application.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/evidencemed/atlas/internal/api"
	"github.com/evidencemed/atlas/internal/corpus"
	"github.com/evidencemed/atlas/internal/mcpserver"
	"github.com/evidencemed/atlas/internal/searchservice"
	"github.com/evidencemed/atlas/internal/sse"
)

// Run starts the application with the given options and blocks until
// shutdown.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := app.config

	// In MCP mode stdout carries the protocol, so logs go to stderr.
	logOut := os.Stdout
	if app.mcpMode {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	// Load the corpus snapshot. A corpus that fails validation is fatal:
	// serving a partial dataset would silently hide records.
	c, err := corpus.Load(cfg.Corpus.Path)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}
	logger.Info("corpus loaded",
		slog.String("version", c.Version()),
		slog.String("source", c.Source()),
		slog.String("checksum", c.Checksum()),
		slog.Int("conditions", len(c.Conditions())),
		slog.Int("compounds", len(c.Compounds())),
		slog.Int("therapies", len(c.Therapies())),
		slog.Int("studies", len(c.Studies())))

	svc := searchservice.NewService(c)

	if app.mcpMode {
		logger.Info("serving MCP on stdio")
		return mcpserver.New(svc, c).ServeStdio()
	}

	broker := sse.NewBroker()
	defer broker.Close()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health endpoints stay outside the auth group.
	r.Get("/health/live", healthHandler(func() string { return "ok" }))
	r.Get("/health/ready", healthHandler(func() string {
		if c.Stale() {
			return "stale"
		}
		return "ok"
	}))

	r.Mount("/api", api.NewRouter(svc, c, cfg.Auth.AuthEnabled(), cfg.Auth.Token, http.HandlerFunc(broker.ServeHTTP)))

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Watch the corpus file when one is configured. The embedded corpus
	// cannot change under us, so no watcher in that case.
	if cfg.Corpus.Path != "" {
		g.Go(func() error {
			err := corpus.Watch(gCtx, c, cfg.Corpus.Path, logger, func(path, newChecksum string) {
				broker.PublishCorpusStale(path, newChecksum)
			})
			if err != nil {
				logger.Warn("corpus watcher stopped", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	g.Go(func() error {
		logger.Info("http server listening", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("context cancelled, shutting down")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown error", slog.String("error", err.Error()))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("server stopped")
	return nil
}

func healthHandler(status func() string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":%q}`, status())
	}
}
