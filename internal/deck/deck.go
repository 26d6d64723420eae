// Package deck turns topics into stored presentation files and keeps a
// record of every deck it builds.
package deck

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/maauso/deckgen/internal/deck/id"
)

// Status is the lifecycle state of a Deck.
type Status string

const (
	// StatusPlanning indicates the slide plan is being produced.
	StatusPlanning Status = "PLANNING"
	// StatusBuilding indicates the presentation file is being written.
	StatusBuilding Status = "BUILDING"
	// StatusReady indicates the file is stored and downloadable.
	StatusReady Status = "READY"
	// StatusFailed indicates the deck could not be produced.
	StatusFailed Status = "FAILED"
)

// PlanSource records which planner produced a deck's slides.
type PlanSource string

const (
	// SourceModel means the configured language model planned the deck.
	SourceModel PlanSource = "model"
	// SourceStub means the fixed fallback plan was used.
	SourceStub PlanSource = "stub"
)

// ErrInvalidTransition is returned when an invalid state transition is attempted.
var ErrInvalidTransition = errors.New("invalid state transition")

var validTransitions = map[Status][]Status{
	StatusPlanning: {StatusBuilding, StatusFailed},
	StatusBuilding: {StatusReady, StatusFailed},
	StatusReady:    {},
	StatusFailed:   {},
}

func canTransition(from, to Status) bool {
	return slices.Contains(validTransitions[from], to)
}

// Deck is the record of one generation request.
type Deck struct {
	mu sync.RWMutex

	ID     string
	Topic  string
	Status Status
	// Source is set once planning finishes.
	Source PlanSource
	// Slides is the number of slides in the written file.
	Slides int
	// Filename is the stored file name, set when building starts.
	Filename    string
	DownloadURL string
	Error       string

	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt time.Time
}

// New creates a Deck in PLANNING state with a generated ID.
func New(topic string) *Deck {
	return NewWithID(id.Generate(), topic)
}

// NewWithID creates a Deck in PLANNING state with the given ID.
func NewWithID(deckID, topic string) *Deck {
	now := time.Now()
	return &Deck{
		ID:        deckID,
		Topic:     topic,
		Status:    StatusPlanning,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TransitionTo changes the status or returns ErrInvalidTransition.
func (d *Deck) TransitionTo(status Status) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.transitionLocked(status)
}

func (d *Deck) transitionLocked(status Status) error {
	if !canTransition(d.Status, status) {
		return ErrInvalidTransition
	}

	d.Status = status
	d.UpdatedAt = time.Now()
	if status == StatusReady || status == StatusFailed {
		d.CompletedAt = d.UpdatedAt
	}
	return nil
}

// StartBuilding records the plan outcome and moves the deck to BUILDING.
func (d *Deck) StartBuilding(source PlanSource) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.transitionLocked(StatusBuilding); err != nil {
		return err
	}
	d.Source = source
	return nil
}

// MarkReady records the written file and moves the deck to READY.
func (d *Deck) MarkReady(filename string, slides int, downloadURL string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.transitionLocked(StatusReady); err != nil {
		return err
	}
	d.Filename = filename
	d.Slides = slides
	d.DownloadURL = downloadURL
	return nil
}

// Fail moves the deck to FAILED with an error message.
func (d *Deck) Fail(errMsg string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.transitionLocked(StatusFailed); err != nil {
		return err
	}
	d.Error = errMsg
	return nil
}

// GetStatus returns the current status (thread-safe).
func (d *Deck) GetStatus() Status {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.Status
}

// IsTerminal returns true if the deck is READY or FAILED.
func (d *Deck) IsTerminal() bool {
	s := d.GetStatus()
	return s == StatusReady || s == StatusFailed
}

// Clone creates a copy of the deck for safe reads.
func (d *Deck) Clone() *Deck {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return &Deck{
		ID:          d.ID,
		Topic:       d.Topic,
		Status:      d.Status,
		Source:      d.Source,
		Slides:      d.Slides,
		Filename:    d.Filename,
		DownloadURL: d.DownloadURL,
		Error:       d.Error,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
		CompletedAt: d.CompletedAt,
	}
}
