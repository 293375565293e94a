package themes

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// LoadBuiltinPairs returns the pair definitions bundled with shade.
func LoadBuiltinPairs() ([]*Pair, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("read builtin themes: %w", err)
	}

	pairs := make([]*Pair, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := "builtin/" + entry.Name()
		data, err := builtinFS.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read builtin theme %s: %w", entry.Name(), err)
		}
		pair, err := parsePair(data)
		if err != nil {
			return nil, fmt.Errorf("parse builtin theme %s: %w", entry.Name(), err)
		}
		pair.Source = "builtin"
		pairs = append(pairs, pair)
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].ID < pairs[j].ID
	})

	return pairs, nil
}
