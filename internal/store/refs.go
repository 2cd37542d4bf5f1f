package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vitalctl/vital/internal/model"
	"gopkg.in/yaml.v3"
)

// LoadReferences returns every reference record under <dataDir>/refs,
// ordered lexicographically by file path. Legacy schema generations are
// migrated at load; warn receives migration notices (nil to discard).
func LoadReferences(dataDir string, warn model.WarnFunc) ([]model.Reference, error) {
	paths, err := yamlPaths(filepath.Join(dataDir, "refs"))
	if err != nil {
		return nil, err
	}

	refs := make([]model.Reference, 0, len(paths))
	for _, path := range paths {
		ref, err := LoadReference(path, warn)
		if err != nil {
			return nil, err
		}
		refs = append(refs, *ref)
	}
	return refs, nil
}

// LoadReference reads and migrates a single reference record. The id
// defaults to the filename stem when the record omits it.
func LoadReference(path string, warn model.WarnFunc) (*model.Reference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	ref, err := model.DecodeReference(data, warn)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	if ref.ID == "" {
		ref.ID = strings.TrimSuffix(filepath.Base(path), ".yaml")
	}
	return ref, nil
}

// SaveReference validates the reference and rewrites its record at
// <dataDir>/refs/<id>.yaml in the current schema
func SaveReference(dataDir string, ref model.Reference) error {
	if err := ref.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(ref)
	if err != nil {
		return fmt.Errorf("marshal reference %q: %w", ref.ID, err)
	}

	path := filepath.Join(dataDir, "refs", ref.ID+".yaml")
	if err := writeFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("save reference %q: %w", ref.ID, err)
	}
	return nil
}
