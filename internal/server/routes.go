package server

import (
	"log/slog"
	"net/http"
)

// Config contains server configuration options.
type Config struct {
	// AllowedOrigins is the list of allowed CORS origins.
	AllowedOrigins []string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		AllowedOrigins: []string{"*"},
	}
}

// NewConfig returns DefaultConfig with AllowedOrigins replaced when
// allowedOrigins is not empty.
func NewConfig(allowedOrigins []string) Config {
	cfg := DefaultConfig()
	if len(allowedOrigins) > 0 {
		cfg.AllowedOrigins = allowedOrigins
	}
	return cfg
}

// NewRouter creates a new HTTP router with all routes configured.
// It uses Go 1.22+ ServeMux with method-based routing.
func NewRouter(h *Handlers, logger *slog.Logger, cfg Config) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health)

	// Form page
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("POST /{$}", h.SubmitForm)
	mux.HandleFunc("POST /again", h.Again)

	// JSON API
	mux.HandleFunc("POST /generate", h.Generate)
	mux.HandleFunc("GET /download/{filename}", h.Download)
	mux.HandleFunc("GET /decks", h.ListDecks)
	mux.HandleFunc("GET /decks/{id}", h.GetDeck)

	// Apply middleware chain
	chain := ChainMiddleware(
		RequestIDMiddleware(),
		RecoveryMiddleware(logger),
		LoggingMiddleware(logger),
		CORSMiddleware(cfg.AllowedOrigins),
	)

	return chain(mux)
}
