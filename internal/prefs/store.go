// Package prefs persists the selected pair id across sessions.
package prefs

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/palettelabs/shade/internal/config"
)

// ErrPairRequired is returned when saving an empty pair id.
var ErrPairRequired = errors.New("pair id is required")

// PreferenceFileName is the preference document name under the config dir.
const PreferenceFileName = "preference.json"

// Document is the on-disk preference format.
type Document struct {
	Pair string `json:"pair"`
}

// Validator reports whether a pair id is known.
type Validator interface {
	Valid(id string) bool
}

// Store reads and writes the persisted preference document.
type Store struct {
	path      string
	validator Validator
	logger    zerolog.Logger
}

// NewStore returns a store for the given document path. The validator may be
// nil, in which case any non-empty pair id loads.
func NewStore(path string, validator Validator, logger zerolog.Logger) *Store {
	return &Store{
		path:      path,
		validator: validator,
		logger:    logger.With().Str("component", "prefs").Logger(),
	}
}

// DefaultPath returns the per-user preference document location.
func DefaultPath() string {
	return filepath.Join(config.Dir(), PreferenceFileName)
}

// Load returns the persisted pair id. ok is false when the document is
// missing, unreadable, malformed, or references an unknown pair.
func (s *Store) Load() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Debug().Err(err).Str("path", s.path).Msg("preference unreadable")
		}
		return "", false
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Debug().Err(err).Str("path", s.path).Msg("preference malformed")
		return "", false
	}

	pair := strings.TrimSpace(doc.Pair)
	if pair == "" {
		return "", false
	}
	if s.validator != nil && !s.validator.Valid(pair) {
		s.logger.Debug().Str("pair", pair).Msg("preference references unknown pair")
		return "", false
	}

	return pair, true
}

// Save writes the pair id, creating the containing directory if needed.
// Last write wins.
func (s *Store) Save(pairID string) error {
	pairID = strings.TrimSpace(pairID)
	if pairID == "" {
		return ErrPairRequired
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(Document{Pair: pairID}, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0600)
}

// Path returns the document location.
func (s *Store) Path() string {
	return s.path
}
