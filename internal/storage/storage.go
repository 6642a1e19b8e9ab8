package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Local persists each collection as a pretty-printed JSON document under a
// base directory, one file per collection key. Writes are best-effort with
// no transactions; the in-memory store stays authoritative.
type Local struct {
	basePath string
}

// NewLocal creates a Local store and ensures the base directory exists.
func NewLocal(basePath string) (*Local, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &Local{basePath: basePath}, nil
}

func (l *Local) path(key string) string {
	return filepath.Join(l.basePath, key+".json")
}

// SaveCollection writes one collection snapshot. The write goes through a
// temp file and rename so a crash never leaves a half-written document.
func (l *Local) SaveCollection(key string, data []byte) error {
	out, err := json.MarshalIndent(json.RawMessage(data), "", "  ")
	if err != nil {
		// Not valid JSON; store the snapshot as-is rather than losing it.
		out = data
	}

	tmp := l.path(key) + ".tmp"
	if err := os.WriteFile(tmp, out, 0644); err != nil {
		return fmt.Errorf("failed to write %s snapshot: %w", key, err)
	}
	if err := os.Rename(tmp, l.path(key)); err != nil {
		return fmt.Errorf("failed to commit %s snapshot: %w", key, err)
	}
	return nil
}

// LoadCollection reads one collection document. Returns (nil, nil) when the
// collection has never been saved.
func (l *Local) LoadCollection(key string) ([]byte, error) {
	data, err := os.ReadFile(l.path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s snapshot: %w", key, err)
	}
	return data, nil
}
