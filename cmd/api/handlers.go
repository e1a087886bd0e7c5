package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/WessleyAI/geargraph/engine/domain"
)

// Pinger checks that the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StatsSource reports catalog counts.
type StatsSource interface {
	Stats(ctx context.Context) (domain.Stats, error)
}

func handleHealth(db Pinger, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			logger.Warn("health check failed", "err", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":   "unhealthy",
				"database": err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"status":   "healthy",
			"database": "connected",
		})
	}
}

func handleStats(src StatsSource, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := src.Stats(r.Context())
		if err != nil {
			logger.Error("stats query failed", "err", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
