package settings

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"
)

// Store persists the settings record
type Store interface {
	Load() (map[string]any, error)
	Save(record map[string]any) error
}

// FileStore keeps the record as a JSON object in a single file
type FileStore struct {
	path string
}

// NewFileStore creates a store at path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns settings.json under the user config directory
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "bloglabs", "settings.json"), nil
}

// Path returns the backing file path
func (f *FileStore) Path() string {
	return f.path
}

// Load reads the record. A missing file is an empty record, not an error.
func (f *FileStore) Load() (map[string]any, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}
	return decodeRecord(data)
}

// Save writes the record atomically
func (f *FileStore) Save(record map[string]any) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".settings-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close settings: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}

// legacyEntry is the older array form: [{"key": ..., "currentValue": ...}]
type legacyEntry struct {
	Key          string `json:"key"`
	CurrentValue any    `json:"currentValue"`
}

func decodeRecord(data []byte) (map[string]any, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return map[string]any{}, nil
	}
	if data[0] == '[' {
		var entries []legacyEntry
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("decode legacy settings: %w", err)
		}
		rec := make(map[string]any, len(entries))
		for _, e := range entries {
			if e.Key != "" {
				rec[e.Key] = e.CurrentValue
			}
		}
		return rec, nil
	}
	rec := map[string]any{}
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return rec, nil
}

// MemoryStore is an in-process Store, used by tests and --no-persist
type MemoryStore struct {
	mu      sync.Mutex
	record  map[string]any
	saves   int
	LoadErr error
	SaveErr error
}

// NewMemoryStore creates a store seeded with record (may be nil)
func NewMemoryStore(record map[string]any) *MemoryStore {
	m := &MemoryStore{record: map[string]any{}}
	for k, v := range record {
		m.record[k] = v
	}
	return m
}

func (m *MemoryStore) Load() (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	out := make(map[string]any, len(m.record))
	for k, v := range m.record {
		out[k] = v
	}
	return out, nil
}

func (m *MemoryStore) Save(record map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.record = make(map[string]any, len(record))
	for k, v := range record {
		m.record[k] = v
	}
	m.saves++
	return nil
}

// Saves returns how many successful saves happened
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
