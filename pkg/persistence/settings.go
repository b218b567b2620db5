package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/meshsense/meshsense-go/pkg/version"
)

// StateVersion is the current version of the state file format.
const StateVersion = 1

// NodeState is the persisted runtime state of a node.
type NodeState struct {
	// Version is the state file format version.
	Version int `json:"version"`

	// SavedAt is when the state was last saved.
	SavedAt time.Time `json:"saved_at"`

	// BootCount is incremented on every successful Init.
	BootCount uint32 `json:"boot_count"`

	// LastBootAt is when Init last ran.
	LastBootAt time.Time `json:"last_boot_at,omitempty"`

	// Firmware is the firmware version that last booted.
	Firmware string `json:"firmware,omitempty"`
}

// SettingsStore persists NodeState to a JSON file.
type SettingsStore struct {
	mu    sync.Mutex
	path  string
	state *NodeState

	// now is replaceable in tests.
	now func() time.Time
}

// NewSettingsStore creates a store backed by path.
func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{path: path, now: time.Now}
}

// Path returns the backing file path.
func (s *SettingsStore) Path() string {
	return s.path
}

// Init loads the state file (starting fresh if there is none), records a
// boot and writes it back.
func (s *SettingsStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return err
	}
	if state == nil {
		state = &NodeState{}
	}

	state.BootCount++
	state.LastBootAt = s.now()
	state.Firmware = version.Current
	state.SavedAt = time.Time{}

	if err := s.save(state); err != nil {
		return err
	}
	s.state = state
	return nil
}

// State returns a copy of the state loaded by Init, or nil before Init.
func (s *SettingsStore) State() *NodeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return nil
	}
	cp := *s.state
	return &cp
}

// Save persists state to disk.
func (s *SettingsStore) Save(state *NodeState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(state)
}

// Load reads the state from disk.
// Returns nil, nil if the file doesn't exist.
func (s *SettingsStore) Load() (*NodeState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Clear removes the state file.
func (s *SettingsStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = nil
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *SettingsStore) save(state *NodeState) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	state.Version = StateVersion
	if state.SavedAt.IsZero() {
		state.SavedAt = s.now()
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

func (s *SettingsStore) load() (*NodeState, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	state := &NodeState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, err
	}
	return state, nil
}
