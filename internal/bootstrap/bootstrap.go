// Package bootstrap provides dependency initialization for the deckgen server.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maauso/deckgen/internal/config"
	"github.com/maauso/deckgen/internal/deck"
	"github.com/maauso/deckgen/internal/generator"
	"github.com/maauso/deckgen/internal/layout"
	"github.com/maauso/deckgen/internal/storage"
)

// Dependencies holds all initialized dependencies for the HTTP server.
type Dependencies struct {
	DeckService *deck.Service
}

// NewDependencies creates and initializes all dependencies for the application.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	meta, err := initLayouts(cfg, logger)
	if err != nil {
		return nil, err
	}

	store, err := initStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	planner, err := initPlanner(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	svc := deck.NewService(
		planner,
		meta,
		store,
		deck.NewMemoryRepository(),
		deck.WithLogger(logger),
		deck.WithPublish(cfg.S3Enabled()),
	)

	return &Dependencies{
		DeckService: svc,
	}, nil
}

// initLayouts loads the layout document from LAYOUT_METADATA, or the embedded one.
func initLayouts(cfg *config.Config, logger *slog.Logger) (*layout.Metadata, error) {
	if cfg.LayoutMetadata == "" {
		logger.Info("using embedded layout metadata")
		return layout.Default(), nil
	}

	meta, err := layout.Load(cfg.LayoutMetadata)
	if err != nil {
		return nil, fmt.Errorf("load layout metadata: %w", err)
	}
	logger.Info("layout metadata loaded",
		slog.String("path", cfg.LayoutMetadata),
		slog.Int("layouts", len(meta.Layouts)),
	)
	return meta, nil
}

// initStorage creates the appropriate storage backend based on configuration.
func initStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
	if cfg.S3Enabled() {
		s3Cfg := storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		}
		s3Store, err := storage.NewS3Storage(ctx, cfg.OutputDir, s3Cfg)
		if err != nil {
			return nil, fmt.Errorf("create S3 storage: %w", err)
		}
		logger.Info("S3 storage configured",
			slog.String("bucket", cfg.S3Bucket),
			slog.String("region", cfg.S3Region),
		)
		return s3Store, nil
	}

	localStore, err := storage.NewLocalStorage(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}
	logger.Info("local storage configured",
		slog.String("output_dir", localStore.Dir()),
	)
	return localStore, nil
}

// initPlanner returns the Gemini planner when an API key is set, the stub otherwise.
func initPlanner(ctx context.Context, cfg *config.Config, logger *slog.Logger) (generator.Planner, error) {
	if !cfg.GeminiEnabled() {
		logger.Info("GEMINI_API_KEY not set, using stub planner")
		return generator.StubPlanner{}, nil
	}

	planner, err := generator.NewGeminiPlanner(ctx, cfg.GeminiAPIKey,
		generator.WithModel(cfg.GeminiModel),
		generator.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("create Gemini planner: %w", err)
	}
	logger.Info("Gemini planner configured",
		slog.String("model", cfg.GeminiModel),
	)
	return planner, nil
}
