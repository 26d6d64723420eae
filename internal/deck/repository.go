package deck

import (
	"context"
	"errors"
)

// ErrDeckNotFound is returned when a deck cannot be found by ID.
var ErrDeckNotFound = errors.New("deck not found")

// Repository persists deck records.
type Repository interface {
	// Save stores a deck, replacing any record with the same ID.
	Save(ctx context.Context, d *Deck) error

	// FindByID returns ErrDeckNotFound if the deck does not exist.
	FindByID(ctx context.Context, id string) (*Deck, error)

	// List returns all decks, newest first.
	List(ctx context.Context) ([]*Deck, error)
}
