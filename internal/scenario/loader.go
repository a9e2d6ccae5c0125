package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/gridsim/internal/scenario/formats"
)

// Loader handles loading scenarios from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new scenario loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all scenario files.
// Returns scenarios sorted by ID for deterministic ordering. Files that fail
// to parse are skipped and reported in the second return value.
func (l *Loader) LoadAll() ([]Scenario, []error, error) {
	var (
		scenarios []Scenario
		skipped   []error
	)

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !IsScenarioFile(path) {
			return nil
		}

		s, err := l.LoadFile(path)
		if err != nil {
			skipped = append(skipped, err)
			return nil
		}
		scenarios = append(scenarios, s)
		return nil
	})
	if err != nil {
		return nil, skipped, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(scenarios, func(i, j int) bool {
		return scenarios[i].ID < scenarios[j].ID
	})
	return scenarios, skipped, nil
}

// LoadFile loads a single scenario file. Text maps take their ID from the
// file name, as do YAML files that leave id empty.
func (l *Loader) LoadFile(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Scenario{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	if parsed.ID == "" {
		parsed.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return FromFormat(parsed, path), nil
}

// LoadByID loads a specific scenario by ID.
func (l *Loader) LoadByID(id string) (Scenario, error) {
	scenarios, _, err := l.LoadAll()
	if err != nil {
		return Scenario{}, err
	}
	for _, s := range scenarios {
		if s.ID == id {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("scenario not found: %s", id)
}

// IsScenarioFile reports whether path has a supported extension.
func IsScenarioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Scenario, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	case ".txt", ".map", "":
		return formats.ParseText(data)
	default:
		return formats.Scenario{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
