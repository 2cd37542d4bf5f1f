package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vitalctl/vital/internal/model"
)

// ProfileStore manages user profiles as one JSON file per profile
type ProfileStore struct {
	dir string
}

// NewProfileStore creates the profiles directory if needed
func NewProfileStore(dir string) (*ProfileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create profiles dir: %w", err)
	}
	return &ProfileStore{dir: dir}, nil
}

// Path returns the file path for a profile name
func (s *ProfileStore) Path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Create saves a new profile, failing if it already exists
func (s *ProfileStore) Create(name string, profile model.UserProfile) error {
	if _, err := os.Stat(s.Path(name)); err == nil {
		return fmt.Errorf("profile %q already exists", name)
	}
	return s.write(name, profile)
}

// Read loads a profile, failing if it does not exist
func (s *ProfileStore) Read(name string) (*model.UserProfile, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("profile %q not found", name)
		}
		return nil, fmt.Errorf("read profile %q: %w", name, err)
	}

	var profile model.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parse profile %q: %w", name, err)
	}
	return &profile, nil
}

// Update overwrites an existing profile, failing if it does not exist
func (s *ProfileStore) Update(name string, profile model.UserProfile) error {
	if _, err := os.Stat(s.Path(name)); err != nil {
		return fmt.Errorf("profile %q not found", name)
	}
	return s.write(name, profile)
}

// Delete removes a profile, failing if it does not exist
func (s *ProfileStore) Delete(name string) error {
	if err := os.Remove(s.Path(name)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("profile %q not found", name)
		}
		return fmt.Errorf("delete profile %q: %w", name, err)
	}
	return nil
}

// List returns the sorted names of all stored profiles
func (s *ProfileStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

func (s *ProfileStore) write(name string, profile model.UserProfile) error {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal profile %q: %w", name, err)
	}
	if err := writeFileAtomic(s.Path(name), data, 0644); err != nil {
		return fmt.Errorf("save profile %q: %w", name, err)
	}
	return nil
}
