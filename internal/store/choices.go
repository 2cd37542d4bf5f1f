// Package store loads and saves the on-disk records: choice and
// reference YAML files under the data directory, and profile JSON files.
// Loads are all-or-nothing: the first malformed file fails the batch.
package store

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vitalctl/vital/internal/model"
	"gopkg.in/yaml.v3"
)

// LoadChoices returns every choice record under <dataDir>/choices,
// optionally restricted to one domain subdirectory, ordered
// lexicographically by file path. Ordering has no semantic meaning; it
// keeps output deterministic.
func LoadChoices(dataDir, domain string) ([]model.Choice, error) {
	root := filepath.Join(dataDir, "choices")
	if domain != "" {
		root = filepath.Join(root, domain)
	}

	paths, err := yamlPaths(root)
	if err != nil {
		return nil, err
	}

	choices := make([]model.Choice, 0, len(paths))
	for _, path := range paths {
		c, err := LoadChoice(path)
		if err != nil {
			return nil, err
		}
		choices = append(choices, *c)
	}
	return choices, nil
}

// LoadChoice reads and parses a single choice record
func LoadChoice(path string) (*model.Choice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var c model.Choice
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &c, nil
}

// SaveChoice rewrites the choice's whole record file at its canonical
// path under dataDir
func SaveChoice(dataDir string, c model.Choice) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal choice %q: %w", c.Name, err)
	}
	if err := writeFileAtomic(c.Path(dataDir), data, 0644); err != nil {
		return fmt.Errorf("save choice %q: %w", c.Name, err)
	}
	return nil
}

// yamlPaths collects every *.yaml file under root, sorted by path. A
// missing root is an empty catalog, not an error.
func yamlPaths(root string) ([]string, error) {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".yaml") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	sort.Strings(paths)
	return paths, nil
}
