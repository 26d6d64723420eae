// Package generator plans slide decks for a topic.
// A Gemini-backed planner and a deterministic stub implement the same interface.
package generator

import (
	"context"
	"errors"

	"github.com/maauso/deckgen/internal/layout"
)

// Static errors returned by planners.
var (
	// ErrEmptyResponse is returned when the model answers with no text.
	ErrEmptyResponse = errors.New("generator: empty response")
	// ErrNoJSON is returned when the reply does not contain a JSON object.
	ErrNoJSON = errors.New("generator: no JSON object in response")
	// ErrAPIKeyRequired is returned by NewGeminiPlanner without an API key.
	ErrAPIKeyRequired = errors.New("generator: API key is required")
)

// Planner turns a topic into a slide plan that uses the given layouts.
type Planner interface {
	Plan(ctx context.Context, topic string, meta *layout.Metadata) (layout.Plan, error)
}

// StubPlanner returns the fixed stub plan for every topic.
type StubPlanner struct{}

// Plan implements Planner.
func (StubPlanner) Plan(_ context.Context, topic string, _ *layout.Metadata) (layout.Plan, error) {
	return layout.StubPlan(topic), nil
}

// Compile-time check that StubPlanner implements Planner.
var _ Planner = StubPlanner{}
