// Package store persists named settings profiles. Profiles are handed out
// as copies: edits go through Save/Update and produce a new stored value,
// never a mutation of a record some layout call is still reading.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/labelforge/sheet-engine/pkg/sheetformat"
)

// Store manages settings profiles backed by a JSON file
type Store struct {
	filePath string
	data     map[string]*Profile
	mu       sync.RWMutex
}

// Profile is one named settings record
type Profile struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Settings  sheetformat.Settings `json:"settings"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// New creates a Store backed by the given file
func New(filePath string) (*Store, error) {
	s := &Store{
		filePath: filePath,
		data:     make(map[string]*Profile),
	}

	if err := s.load(); err != nil {
		// A missing file is fine - it is created on first save
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load profile store: %w", err)
		}
	}

	return s, nil
}

// Save stores a new profile and returns a copy of it
func (s *Store) Save(name string, settings sheetformat.Settings) (*Profile, error) {
	if name == "" {
		return nil, fmt.Errorf("profile name is required")
	}
	if err := sheetformat.ValidateSettings(&settings); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	profile := &Profile{
		ID:        uuid.New().String(),
		Name:      name,
		Settings:  settings,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.data[profile.ID] = profile

	if err := s.save(); err != nil {
		delete(s.data, profile.ID)
		return nil, fmt.Errorf("failed to persist profile: %w", err)
	}

	profileCopy := *profile
	return &profileCopy, nil
}

// Update replaces the settings of an existing profile
func (s *Store) Update(id string, settings sheetformat.Settings) (*Profile, error) {
	if err := sheetformat.ValidateSettings(&settings); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	profile, exists := s.data[id]
	if !exists {
		return nil, fmt.Errorf("profile not found: %s", id)
	}

	previous := *profile
	profile.Settings = settings
	profile.UpdatedAt = time.Now()

	if err := s.save(); err != nil {
		*profile = previous
		return nil, fmt.Errorf("failed to persist profile: %w", err)
	}

	profileCopy := *profile
	return &profileCopy, nil
}

// Get returns a copy of a profile, or nil when it does not exist
func (s *Store) Get(id string) *Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, exists := s.data[id]
	if !exists {
		return nil
	}

	profileCopy := *profile
	return &profileCopy
}

// GetAll returns copies of all profiles sorted by name
func (s *Store) GetAll() []*Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profiles := make([]*Profile, 0, len(s.data))
	for _, profile := range s.data {
		profileCopy := *profile
		profiles = append(profiles, &profileCopy)
	}

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].Name < profiles[j].Name
	})

	return profiles
}

// Remove deletes a profile, reporting whether it existed
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[id]; !exists {
		return false
	}

	delete(s.data, id)
	if err := s.save(); err != nil {
		// Removal stays effective in memory; the next successful save
		// reconciles the file.
		return true
	}

	return true
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, &s.data)
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.filePath, data, 0644)
}
