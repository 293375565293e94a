package themes

import (
	"fmt"
	"sort"

	"github.com/palettelabs/shade/internal/models"
)

// DefaultPairID is the pair selected when no valid preference exists.
const DefaultPairID = "catppuccin"

// Registry holds the known pairs, fixed for the process lifetime.
type Registry struct {
	pairs map[string]*Pair
	ids   []string
}

// NewRegistry builds a registry from the given pairs.
func NewRegistry(pairs []*Pair) (*Registry, error) {
	if len(pairs) == 0 {
		return nil, fmt.Errorf("at least one pair is required")
	}

	byID := make(map[string]*Pair, len(pairs))
	ids := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		if err := pair.Validate(); err != nil {
			return nil, err
		}
		if _, exists := byID[pair.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePair, pair.ID)
		}
		byID[pair.ID] = pair
		ids = append(ids, pair.ID)
	}
	sort.Strings(ids)

	return &Registry{pairs: byID, ids: ids}, nil
}

// Load builds a registry from the search paths and builtin definitions.
func Load() (*Registry, error) {
	pairs, err := LoadFromSearchPaths()
	if err != nil {
		return nil, err
	}
	return NewRegistry(pairs)
}

// Get returns the pair with the given id.
func (r *Registry) Get(id string) (*Pair, error) {
	pair, ok := r.pairs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPairNotFound, id)
	}
	return pair, nil
}

// Lookup returns the pair with the given id, with an existence flag.
func (r *Registry) Lookup(id string) (*Pair, bool) {
	pair, ok := r.pairs[id]
	return pair, ok
}

// Valid reports whether the id names a known pair.
func (r *Registry) Valid(id string) bool {
	_, ok := r.pairs[id]
	return ok
}

// IDs returns the known pair ids in sorted order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

// List returns the known pairs in id order.
func (r *Registry) List() []*Pair {
	out := make([]*Pair, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.pairs[id])
	}
	return out
}

// Default returns the fallback pair.
func (r *Registry) Default() *Pair {
	if pair, ok := r.pairs[DefaultPairID]; ok {
		return pair
	}
	return r.pairs[r.ids[0]]
}

// Len returns the number of known pairs.
func (r *Registry) Len() int {
	return len(r.ids)
}

// VariantFor resolves the host variant name for a pair id and mode.
func (r *Registry) VariantFor(id string, mode models.Mode) (string, error) {
	pair, err := r.Get(id)
	if err != nil {
		return "", err
	}
	return pair.Variant(mode), nil
}
