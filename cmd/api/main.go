// Package main implements the GearGraph API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/WessleyAI/geargraph/engine/graph"
	"github.com/WessleyAI/geargraph/engine/schema"
	"github.com/WessleyAI/geargraph/pkg/auth"
	"github.com/WessleyAI/geargraph/pkg/metrics"
	"github.com/WessleyAI/geargraph/pkg/mid"
	"github.com/WessleyAI/geargraph/pkg/repo"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := loadConfig()

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

// backend is what the routes need from the store.
type backend interface {
	Pinger
	schema.Catalog
}

func run(cfg Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.APIKey == defaultAPIKey {
		logger.Warn("API_KEY is the development placeholder; set a real key before exposing this server")
	}

	// --- Connect to Memgraph ---
	client, err := repo.Open(cfg.Store)
	if err != nil {
		return fmt.Errorf("memgraph driver: %w", err)
	}
	defer client.Close(context.Background())

	if err := client.Verify(ctx); err != nil {
		// The driver reconnects on demand; /health reports the outage.
		logger.Warn("memgraph not reachable at startup", "uri", cfg.Store.URI(), "err", err)
	}

	m := metrics.New()
	handler, err := newHandler(cfg, &store{Client: client, Store: graph.New(client)}, m, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// --- Graceful shutdown ---
	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server starting", "port", cfg.Port, "memgraph", cfg.Store.URI())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutCtx)
}

// store joins the ping from the client with the catalog queries.
type store struct {
	*repo.Client
	*graph.Store
}

// newHandler builds the routes and middleware stack.
func newHandler(cfg Config, db backend, m *metrics.Metrics, logger *slog.Logger) (http.Handler, error) {
	s, err := schema.New(db, m)
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	gql := schema.NewHandler(s, "/graphql", logger)
	gate := mid.RequireAPIKey(auth.NewVerifier(cfg.APIKey))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handleHealth(db, logger))
	mux.HandleFunc("GET /stats", handleStats(db, logger))
	mux.Handle("GET /graphql", gql)
	mux.Handle("POST /graphql", gate(gql))
	mux.Handle("GET /metrics", m.Handler())

	// Logger and Instrument read r.Pattern, so they sit inside every
	// middleware that replaces the request.
	return mid.Chain(mux,
		mid.RequestID(),
		mid.Recover(logger),
		mid.OTel(cfg.ServiceName),
		mid.Logger(logger),
		mid.CORS(mid.ParseOrigins(cfg.CORSOrigins)),
		mid.Instrument(m),
	), nil
}
