package combatlog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
)

// ErrNoState is returned by Load when nothing has been persisted yet.
var ErrNoState = errors.New("no saved combat log")

// Storage persists the combat log State.
type Storage interface {
	Save(s *State) error
	Load() (*State, error) // returns ErrNoState if none exists
}

// DiskStorage writes the State as JSON to a single file.
type DiskStorage struct {
	path string
}

// NewDiskStorage returns a DiskStorage under dir, or under the hollowlog XDG
// data directory when dir is empty.
// Path: $XDG_DATA_HOME/hollowlog/state.json or ~/.local/share/hollowlog/state.json
func NewDiskStorage(dir string) (*DiskStorage, error) {
	if dir == "" {
		d, err := DataDir()
		if err != nil {
			return nil, fmt.Errorf("resolving data directory: %w", err)
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &DiskStorage{path: filepath.Join(dir, "state.json")}, nil
}

// DataDir returns the hollowlog-specific XDG data directory.
func DataDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "hollowlog"), nil
}

// Path is the state file location.
func (d *DiskStorage) Path() string {
	return d.path
}

// Save marshals s and writes it atomically via a temp file + os.Rename.
func (d *DiskStorage) Save(s *State) (err error) {
	data, err := sonic.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to persist combat log: %w", err)
	}

	// Temp file in the same directory so os.Rename is atomic.
	tmp, err := os.CreateTemp(filepath.Dir(d.path), "state-*.json.tmp")
	if err != nil {
		return fmt.Errorf("failed to persist combat log: %w", err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to persist combat log: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to persist combat log: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to persist combat log: %w", err)
	}
	if err = os.Rename(tmpName, d.path); err != nil {
		return fmt.Errorf("failed to persist combat log: %w", err)
	}
	return nil
}

// Load reads and unmarshals the state file.
// Returns ErrNoState if the file does not exist.
func (d *DiskStorage) Load() (*State, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoState
		}
		return nil, fmt.Errorf("failed to read combat log: %w", err)
	}

	var s State
	if err := sonic.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse combat log: %w", err)
	}
	return &s, nil
}

// MemoryStorage keeps the State in memory. Saved states are deep-copied so
// callers observe the same isolation a file gives them.
type MemoryStorage struct {
	mu    sync.Mutex
	state *State
	// SaveErr, when set, is returned by every Save.
	SaveErr error
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Save stores a deep copy of s, or returns SaveErr when it is set.
func (m *MemoryStorage) Save(s *State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.state = cloneState(s)
	return nil
}

// Load returns a deep copy of the last saved state, or ErrNoState.
func (m *MemoryStorage) Load() (*State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return nil, ErrNoState
	}
	return cloneState(m.state), nil
}

func cloneState(s *State) *State {
	out := &State{
		Version:      s.Version,
		ActiveTarget: s.ActiveTarget,
		NextSeq:      s.NextSeq,
		Histories:    make(map[string][]Event, len(s.Histories)),
	}
	for id, events := range s.Histories {
		cp := make([]Event, len(events))
		copy(cp, events)
		out.Histories[id] = cp
	}
	return out
}
