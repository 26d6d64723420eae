package form

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
)

// Static errors returned by Submit when no request is issued.
var (
	// ErrEmptyTopic is returned when the trimmed topic is empty. The state is unchanged.
	ErrEmptyTopic = errors.New("form: topic is empty")
	// ErrInFlight is returned when a submission is already pending.
	ErrInFlight = errors.New("form: submission already in flight")
)

// Generator performs one generation call for a topic.
type Generator interface {
	Generate(ctx context.Context, topic string) (Result, error)
}

// GenerationError is a failure reported by the server.
// An empty Message falls back to FallbackServerMessage.
type GenerationError struct {
	Message string
}

func (e *GenerationError) Error() string {
	if e.Message == "" {
		return FallbackServerMessage
	}
	return e.Message
}

// Snapshot is everything a view needs to draw the form.
type Snapshot struct {
	State           State
	Topic           string
	TopicFocused    bool
	TriggerDisabled bool
	Panels          Panels
	// Filename and DownloadURL are set while the result panel is shown.
	Filename    string
	DownloadURL string
	// ErrorMessage is set while the error panel is shown.
	ErrorMessage string
}

// View receives a snapshot after every state change.
// Render is called with the controller lock held and must not call back into the controller.
type View interface {
	Render(Snapshot)
}

// ViewFunc adapts a function to View.
type ViewFunc func(Snapshot)

// Render calls f(s).
func (f ViewFunc) Render(s Snapshot) { f(s) }

// Controller binds the submit and reset actions to a Generator and a View.
// It is safe for concurrent use.
type Controller struct {
	gen    Generator
	view   View
	logger *slog.Logger

	mu      sync.Mutex
	topic   string
	focused bool
	state   State
}

// Option configures a Controller.
type Option func(*Controller)

// WithView sets the view that receives snapshots.
func WithView(v View) Option {
	return func(c *Controller) {
		c.view = v
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithState starts the controller in s instead of Idle. A server-rendered
// page uses it to rebuild the form it previously drew. Pending is ignored.
func WithState(s State) Option {
	return func(c *Controller) {
		if s.Phase() != PhasePending {
			c.state = s
		}
	}
}

// NewController creates an idle controller.
func NewController(gen Generator, opts ...Option) *Controller {
	c := &Controller{
		gen:    gen,
		view:   ViewFunc(func(Snapshot) {}),
		logger: slog.Default(),
		state:  Idle(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetTopic replaces the topic field value, as typing would.
func (c *Controller) SetTopic(topic string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topic = topic
}

// Snapshot returns the current form snapshot.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// State returns the current UI state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit sends the trimmed topic to the generator and records the outcome.
// It returns ErrEmptyTopic or ErrInFlight without touching state or issuing a request.
// Generation failures are not returned; they end in the Failure state.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	topic := strings.TrimSpace(c.topic)
	if topic == "" {
		c.mu.Unlock()
		return ErrEmptyTopic
	}
	if c.state.Phase() == PhasePending {
		c.mu.Unlock()
		c.logger.Debug("submission ignored, request in flight")
		return ErrInFlight
	}
	c.setStateLocked(Pending())
	c.mu.Unlock()

	c.logger.Debug("submitting topic", slog.String("topic", topic))
	result, err := c.gen.Generate(ctx, topic)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		msg := failureMessage(err)
		c.logger.Warn("generation failed", slog.String("topic", topic), slog.String("error", msg))
		c.setStateLocked(Failed(msg))
		return nil
	}
	c.logger.Debug("generation succeeded",
		slog.String("topic", topic),
		slog.String("filename", result.Filename),
	)
	c.setStateLocked(Succeeded(result))
	return nil
}

// Reset clears the topic, hides the result panel and focuses the topic field.
// An error panel stays visible and a pending submission keeps running.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topic = ""
	c.focused = true
	if c.state.Phase() == PhaseSuccess {
		c.setStateLocked(Idle())
		return
	}
	c.view.Render(c.snapshotLocked())
}

func (c *Controller) setStateLocked(s State) {
	c.state = s
	c.view.Render(c.snapshotLocked())
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:           c.state,
		Topic:           c.topic,
		TopicFocused:    c.focused,
		TriggerDisabled: c.state.TriggerDisabled(),
		Panels:          c.state.Panels(),
	}
	if r, ok := c.state.Result(); ok {
		snap.Filename = r.Filename
		snap.DownloadURL = r.DownloadURL
	}
	if msg, ok := c.state.Message(); ok {
		snap.ErrorMessage = msg
	}
	return snap
}

// failureMessage picks the text for the error panel.
func failureMessage(err error) string {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Error()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return FallbackMessage
}
