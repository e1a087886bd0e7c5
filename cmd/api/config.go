package main

import (
	"os"

	"github.com/WessleyAI/geargraph/pkg/repo"
)

// defaultAPIKey is a development placeholder. run warns when it is in use.
const defaultAPIKey = "development-key"

// Config holds all environment-based configuration.
type Config struct {
	Port        string
	Store       repo.Config
	APIKey      string
	CORSOrigins string
	ServiceName string
}

func loadConfig() Config {
	return Config{
		Port: envOr("PORT", "8000"),
		Store: repo.Config{
			Host:     envOr("MEMGRAPH_HOST", "localhost"),
			Port:     envOr("MEMGRAPH_PORT", "7687"),
			User:     os.Getenv("MEMGRAPH_USER"),
			Password: os.Getenv("MEMGRAPH_PASSWORD"),
		},
		APIKey:      envOr("API_KEY", defaultAPIKey),
		CORSOrigins: envOr("CORS_ORIGINS", "http://localhost:3000"),
		ServiceName: envOr("OTEL_SERVICE_NAME", "geargraph-api"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
