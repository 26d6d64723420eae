package deck

import (
	"context"
	"sort"
	"sync"
)

// Compile-time check that MemoryRepository implements Repository.
var _ Repository = (*MemoryRepository)(nil)

// MemoryRepository is an in-memory Repository.
// Records are cloned on the way in and out.
type MemoryRepository struct {
	mu    sync.RWMutex
	decks map[string]*Deck
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		decks: make(map[string]*Deck),
	}
}

// Save implements Repository.
func (r *MemoryRepository) Save(_ context.Context, d *Deck) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decks[d.ID] = d.Clone()
	return nil
}

// FindByID implements Repository.
func (r *MemoryRepository) FindByID(_ context.Context, id string) (*Deck, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.decks[id]
	if !ok {
		return nil, ErrDeckNotFound
	}
	return d.Clone(), nil
}

// List implements Repository.
func (r *MemoryRepository) List(_ context.Context) ([]*Deck, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*Deck, 0, len(r.decks))
	for _, d := range r.decks {
		result = append(result, d.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}
