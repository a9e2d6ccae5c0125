// Package presets registers the built-in scenarios. Import it for its side
// effects:
//
//	import _ "github.com/vovakirdan/gridsim/internal/presets"
package presets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/vovakirdan/gridsim/internal/registry"
	"github.com/vovakirdan/gridsim/internal/scenario"
	"github.com/vovakirdan/gridsim/internal/scenario/formats"
)

//go:embed maps/*.yaml
var maps embed.FS

func init() {
	all, err := Load()
	if err != nil {
		panic(err)
	}
	for _, s := range all {
		s := s
		registry.Register(s.ID, func() scenario.Scenario { return s })
	}
}

// Load parses every embedded preset.
func Load() ([]scenario.Scenario, error) {
	entries, err := fs.ReadDir(maps, "maps")
	if err != nil {
		return nil, fmt.Errorf("presets: %w", err)
	}

	out := make([]scenario.Scenario, 0, len(entries))
	for _, e := range entries {
		name := path.Join("maps", e.Name())
		data, err := maps.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("presets: reading %s: %w", name, err)
		}
		parsed, err := formats.ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("presets: parsing %s: %w", name, err)
		}
		out = append(out, scenario.FromFormat(parsed, ""))
	}
	return out, nil
}
