package deck

import (
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	d := New("Volcanoes")

	if !strings.HasPrefix(d.ID, "deck-") {
		t.Errorf("expected deck- prefix, got %s", d.ID)
	}
	if d.Topic != "Volcanoes" {
		t.Errorf("expected topic Volcanoes, got %s", d.Topic)
	}
	if d.Status != StatusPlanning {
		t.Errorf("expected status %s, got %s", StatusPlanning, d.Status)
	}
	if d.CreatedAt.IsZero() || d.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestDeck_ValidTransitions(t *testing.T) {
	tests := []struct {
		name string
		path []Status
	}{
		{"planning to failed", []Status{StatusFailed}},
		{"building to ready", []Status{StatusBuilding, StatusReady}},
		{"building to failed", []Status{StatusBuilding, StatusFailed}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewWithID("deck-1", "t")
			for _, s := range tt.path {
				if err := d.TransitionTo(s); err != nil {
					t.Fatalf("transition to %s: %v", s, err)
				}
			}
			if !d.IsTerminal() {
				t.Error("expected terminal state")
			}
			if d.CompletedAt.IsZero() {
				t.Error("expected CompletedAt to be set")
			}
		})
	}
}

func TestDeck_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name string
		from []Status
		to   Status
	}{
		{"planning to ready", nil, StatusReady},
		{"planning to planning", nil, StatusPlanning},
		{"ready to failed", []Status{StatusBuilding, StatusReady}, StatusFailed},
		{"failed to building", []Status{StatusFailed}, StatusBuilding},
		{"building to planning", []Status{StatusBuilding}, StatusPlanning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewWithID("deck-1", "t")
			for _, s := range tt.from {
				if err := d.TransitionTo(s); err != nil {
					t.Fatalf("setup transition to %s: %v", s, err)
				}
			}
			if err := d.TransitionTo(tt.to); !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("expected ErrInvalidTransition, got %v", err)
			}
		})
	}
}

func TestDeck_Lifecycle(t *testing.T) {
	d := NewWithID("deck-1", "Tides")

	if err := d.StartBuilding(SourceStub); err != nil {
		t.Fatalf("StartBuilding: %v", err)
	}
	if d.GetStatus() != StatusBuilding || d.Source != SourceStub {
		t.Errorf("unexpected deck after StartBuilding: %+v", d.Clone())
	}

	if err := d.MarkReady("tides.pptx", 4, "/download/tides.pptx"); err != nil {
		t.Fatalf("MarkReady: %v", err)
	}
	if d.GetStatus() != StatusReady || d.Filename != "tides.pptx" || d.Slides != 4 || d.DownloadURL != "/download/tides.pptx" {
		t.Errorf("unexpected deck after MarkReady: %+v", d.Clone())
	}

	if err := d.Fail("late"); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
	if d.Error != "" {
		t.Errorf("rejected Fail must not set Error, got %q", d.Error)
	}
}

func TestDeck_Fail(t *testing.T) {
	d := NewWithID("deck-1", "t")
	if err := d.Fail("disk full"); err != nil {
		t.Fatalf("Fail: %v", err)
	}
	if d.Status != StatusFailed || d.Error != "disk full" {
		t.Errorf("unexpected deck: %+v", d.Clone())
	}
}

func TestDeck_Clone(t *testing.T) {
	d := NewWithID("deck-1", "t")
	_ = d.StartBuilding(SourceModel)
	_ = d.MarkReady("f.pptx", 1, "/download/f.pptx")

	c := d.Clone()
	c.Filename = "other.pptx"

	if d.Filename != "f.pptx" {
		t.Error("clone mutation leaked into original")
	}
	if c.Status != StatusBuilding || c.Source != SourceModel {
		t.Errorf("clone lost fields: %+v", c)
	}
}
