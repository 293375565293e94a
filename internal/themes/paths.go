package themes

import (
	"path/filepath"

	"github.com/palettelabs/shade/internal/config"
)

// SearchPaths returns theme directories in precedence order: the user
// overlay first, then the system-wide directory. Builtins always load
// last.
func SearchPaths() []string {
	return []string{
		filepath.Join(config.Dir(), "themes"),
		filepath.Join(string(filepath.Separator), "usr", "share", "shade", "themes"),
	}
}

// LoadFromSearchPaths loads pairs from search paths with first-hit precedence,
// builtins last.
func LoadFromSearchPaths() ([]*Pair, error) {
	return loadMerged(SearchPaths())
}

func loadMerged(paths []string) ([]*Pair, error) {
	seen := make(map[string]*Pair)
	order := make([]string, 0)

	for _, path := range paths {
		pairs, err := LoadPairsFromDir(path)
		if err != nil {
			return nil, err
		}
		for _, pair := range pairs {
			if _, exists := seen[pair.ID]; exists {
				continue
			}
			seen[pair.ID] = pair
			order = append(order, pair.ID)
		}
	}

	builtins, err := LoadBuiltinPairs()
	if err != nil {
		return nil, err
	}
	for _, pair := range builtins {
		if _, exists := seen[pair.ID]; exists {
			continue
		}
		seen[pair.ID] = pair
		order = append(order, pair.ID)
	}

	resolved := make([]*Pair, 0, len(order))
	for _, id := range order {
		resolved = append(resolved, seen[id])
	}

	return resolved, nil
}
