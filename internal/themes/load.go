package themes

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadPair reads a single pair definition from disk.
func LoadPair(path string) (*Pair, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("pair path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pair %s: %w", path, err)
	}

	pair, err := parsePair(data)
	if err != nil {
		return nil, fmt.Errorf("parse pair %s: %w", path, err)
	}
	pair.Source = path
	return pair, nil
}

// LoadPairsFromDir loads all pair definitions from a directory.
func LoadPairsFromDir(dir string) ([]*Pair, error) {
	if strings.TrimSpace(dir) == "" {
		return []*Pair{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*Pair{}, nil
		}
		return nil, fmt.Errorf("read themes dir %s: %w", dir, err)
	}

	pairs := make([]*Pair, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(dir, name)
		pair, err := LoadPair(path)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair)
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].ID < pairs[j].ID
	})

	return pairs, nil
}

func parsePair(data []byte) (*Pair, error) {
	var pair Pair
	if err := yaml.Unmarshal(data, &pair); err != nil {
		return nil, err
	}

	pair.ID = strings.TrimSpace(pair.ID)
	if err := pair.Validate(); err != nil {
		return nil, err
	}

	return &pair, nil
}
