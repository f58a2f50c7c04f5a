// Package profile persists named line configurations so frequently
// used device setups can be recalled from the CLI.
package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"serial-monitor/pkg/serial"
)

// storageVersion tags the on-disk format.
const storageVersion = "1.0"

// Profile is a named line configuration with usage metadata.
type Profile struct {
	Name       string            `json:"name"`
	Config     serial.PortConfig `json:"config"`
	CreatedAt  time.Time         `json:"created_at"`
	LastUsedAt time.Time         `json:"last_used_at"`
}

// storage is the on-disk format: one JSON file holding every profile.
type storage struct {
	Version  string             `json:"version"`
	Profiles map[string]Profile `json:"profiles"`
}

// Store reads and writes profiles under a single directory.
type Store struct {
	dir  string
	file string
}

// NewStore creates a store rooted at dir. An empty dir selects the
// per-user default location.
func NewStore(dir string) *Store {
	if dir == "" {
		if base, err := os.UserConfigDir(); err == nil {
			dir = filepath.Join(base, "serial-monitor")
		} else {
			dir = ".serial-monitor"
		}
	}
	return &Store{dir: dir, file: "profiles.json"}
}

// Save stores config under name, overwriting an existing profile of
// the same name while preserving its creation time.
func (s *Store) Save(name string, config serial.PortConfig) error {
	if name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	st, err := s.load()
	if err != nil {
		return err
	}

	now := time.Now()
	p := Profile{Name: name, Config: config, CreatedAt: now, LastUsedAt: now}
	if existing, ok := st.Profiles[name]; ok {
		p.CreatedAt = existing.CreatedAt
	}
	st.Profiles[name] = p

	return s.save(st)
}

// Load returns the named line configuration and records the use.
func (s *Store) Load(name string) (serial.PortConfig, error) {
	p, err := s.Get(name)
	if err != nil {
		return serial.PortConfig{}, err
	}

	st, err := s.load()
	if err == nil {
		p.LastUsedAt = time.Now()
		st.Profiles[name] = p
		// Best effort; a failed timestamp update is not worth an error.
		s.save(st)
	}

	return p.Config, nil
}

// Get returns the named profile without touching its metadata.
func (s *Store) Get(name string) (Profile, error) {
	if name == "" {
		return Profile{}, fmt.Errorf("profile name cannot be empty")
	}

	st, err := s.load()
	if err != nil {
		return Profile{}, err
	}

	p, ok := st.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("profile '%s' not found", name)
	}
	return p, nil
}

// List returns all profiles sorted by name.
func (s *Store) List() ([]Profile, error) {
	st, err := s.load()
	if err != nil {
		return nil, err
	}

	profiles := make([]Profile, 0, len(st.Profiles))
	for _, p := range st.Profiles {
		profiles = append(profiles, p)
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })
	return profiles, nil
}

// Delete removes the named profile.
func (s *Store) Delete(name string) error {
	if name == "" {
		return fmt.Errorf("profile name cannot be empty")
	}

	st, err := s.load()
	if err != nil {
		return err
	}

	if _, ok := st.Profiles[name]; !ok {
		return fmt.Errorf("profile '%s' not found", name)
	}
	delete(st.Profiles, name)

	return s.save(st)
}

// Exists reports whether a profile with the given name is stored.
func (s *Store) Exists(name string) bool {
	st, err := s.load()
	if err != nil {
		return false
	}
	_, ok := st.Profiles[name]
	return ok
}

// Path returns the full path of the profile file.
func (s *Store) Path() string {
	return filepath.Join(s.dir, s.file)
}

func (s *Store) load() (storage, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return storage{Version: storageVersion, Profiles: make(map[string]Profile)}, nil
		}
		return storage{}, fmt.Errorf("failed to read profile file: %w", err)
	}

	var st storage
	if err := json.Unmarshal(data, &st); err != nil {
		return storage{}, fmt.Errorf("failed to parse profile file: %w", err)
	}
	if st.Profiles == nil {
		st.Profiles = make(map[string]Profile)
	}
	return st, nil
}

// save writes via a temporary file and rename so a crash never leaves
// a half-written profile file behind.
func (s *Store) save(st storage) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profiles: %w", err)
	}

	path := s.Path()
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary profile file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temporary profile file: %w", err)
	}
	return nil
}
