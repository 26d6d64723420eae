package deck

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"time"

	"github.com/maauso/deckgen/internal/generator"
	"github.com/maauso/deckgen/internal/layout"
	"github.com/maauso/deckgen/internal/pptx"
	"github.com/maauso/deckgen/internal/storage"
)

// DownloadPrefix is the path under which stored decks are served.
const DownloadPrefix = "/download/"

// maxNameAttempts bounds the numeric suffixes tried for one file name.
const maxNameAttempts = 100

// BuildError wraps every failure after planning: rendering, storing or
// publishing the file.
type BuildError struct {
	Err error
}

func (e *BuildError) Error() string { return "failed to build PPTX: " + e.Err.Error() }

func (e *BuildError) Unwrap() error { return e.Err }

// Result describes a stored deck.
type Result struct {
	DeckID      string
	Filename    string
	DownloadURL string
}

// Service plans, renders and stores decks.
type Service struct {
	planner generator.Planner
	meta    *layout.Metadata
	store   storage.Storage
	repo    Repository
	logger  *slog.Logger
	publish bool
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithPublish makes Generate upload every deck with Storage.Publish and
// return the published URL.
func WithPublish(publish bool) Option {
	return func(s *Service) {
		s.publish = publish
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for file names.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a Service. A nil planner means the stub plan is always used.
func NewService(planner generator.Planner, meta *layout.Metadata, store storage.Storage, repo Repository, opts ...Option) *Service {
	if planner == nil {
		planner = generator.StubPlanner{}
	}
	s := &Service{
		planner: planner,
		meta:    meta,
		store:   store,
		repo:    repo,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate builds a deck for topic and stores it.
// Planner failures fall back to the stub plan and never fail the request.
func (s *Service) Generate(ctx context.Context, topic string) (*Result, error) {
	d := New(topic)
	s.logger.Info("generating deck",
		slog.String("deck_id", d.ID),
		slog.String("topic", topic),
	)
	s.save(ctx, d)

	plan, source := s.plan(ctx, d.ID, topic)
	plan = s.meta.Enforce(plan)

	created := s.now()
	base := fmt.Sprintf("%s-%s", layout.Slug(topic), created.Format("20060102-150405"))
	if err := d.StartBuilding(source); err != nil {
		return nil, err
	}
	s.save(ctx, d)

	filename, downloadURL, slides, err := s.build(ctx, topic, plan, base, created)
	if err != nil {
		s.logger.Error("deck build failed",
			slog.String("deck_id", d.ID),
			slog.String("error", err.Error()),
		)
		_ = d.Fail(err.Error())
		s.save(ctx, d)
		return nil, &BuildError{Err: err}
	}

	if err := d.MarkReady(filename, slides, downloadURL); err != nil {
		return nil, err
	}
	s.save(ctx, d)

	s.logger.Info("deck ready",
		slog.String("deck_id", d.ID),
		slog.String("filename", filename),
		slog.Int("slides", slides),
		slog.String("source", string(source)),
	)

	return &Result{DeckID: d.ID, Filename: filename, DownloadURL: downloadURL}, nil
}

func (s *Service) plan(ctx context.Context, deckID, topic string) (layout.Plan, PlanSource) {
	if _, stub := s.planner.(generator.StubPlanner); stub {
		return layout.StubPlan(topic), SourceStub
	}

	plan, err := s.planner.Plan(ctx, topic, s.meta)
	switch {
	case err != nil:
		s.logger.Warn("planner failed, using stub plan",
			slog.String("deck_id", deckID),
			slog.String("error", err.Error()),
		)
	case plan.Empty():
		s.logger.Warn("planner returned no slides, using stub plan",
			slog.String("deck_id", deckID),
		)
	default:
		return plan, SourceModel
	}
	return layout.StubPlan(topic), SourceStub
}

// build renders the deck and stores it as base.pptx, or base-2.pptx and so on
// when the name is taken. It returns the stored name and its download URL.
func (s *Service) build(ctx context.Context, topic string, plan layout.Plan, base string, created time.Time) (string, string, int, error) {
	presentation := Build(topic, plan, s.meta, created)

	var buf bytes.Buffer
	if err := pptx.Write(&buf, presentation); err != nil {
		return "", "", 0, err
	}

	filename, err := s.saveUnique(ctx, base, buf.Bytes())
	if err != nil {
		return "", "", 0, err
	}

	downloadURL := DownloadPrefix + url.PathEscape(filename)
	if s.publish {
		published, err := s.store.Publish(ctx, filename)
		if err != nil {
			if rmErr := s.store.Remove(ctx, filename); rmErr != nil {
				s.logger.Warn("failed to remove unpublished deck",
					slog.String("filename", filename),
					slog.String("error", rmErr.Error()),
				)
			}
			return "", "", 0, err
		}
		downloadURL = published
	}

	return filename, downloadURL, len(presentation.Slides), nil
}

// saveUnique stores data under the first free name derived from base.
func (s *Service) saveUnique(ctx context.Context, base string, data []byte) (string, error) {
	for n := 1; n <= maxNameAttempts; n++ {
		filename := base + ".pptx"
		if n > 1 {
			filename = fmt.Sprintf("%s-%d.pptx", base, n)
		}

		err := s.store.Save(ctx, filename, bytes.NewReader(data))
		if err == nil {
			return filename, nil
		}
		if !errors.Is(err, storage.ErrExists) {
			return "", err
		}
		s.logger.Debug("file name taken, trying next",
			slog.String("filename", filename),
		)
	}
	return "", fmt.Errorf("no free file name for %s after %d attempts: %w", base, maxNameAttempts, storage.ErrExists)
}

// save persists d. Repository errors are logged and do not fail generation.
func (s *Service) save(ctx context.Context, d *Deck) {
	if err := s.repo.Save(ctx, d); err != nil {
		s.logger.Error("failed to save deck",
			slog.String("deck_id", d.ID),
			slog.String("error", err.Error()),
		)
	}
}

// Open returns the stored file for filename. The caller closes it.
func (s *Service) Open(ctx context.Context, filename string) (io.ReadCloser, error) {
	return s.store.Open(ctx, filename)
}

// GetDeck retrieves a deck record by ID.
func (s *Service) GetDeck(ctx context.Context, id string) (*Deck, error) {
	return s.repo.FindByID(ctx, id)
}

// ListDecks returns all deck records, newest first.
func (s *Service) ListDecks(ctx context.Context) ([]*Deck, error) {
	return s.repo.List(ctx)
}
