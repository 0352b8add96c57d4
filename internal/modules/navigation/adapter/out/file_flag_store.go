package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	navout "pulse/internal/modules/navigation/port/out"
)

// FileFlagStore keeps flags in a small JSON object. Writes go through a
// temp file and rename so a crash never leaves a torn file behind.
type FileFlagStore struct {
	mu   sync.Mutex
	path string
}

func NewFileFlagStore(path string) navout.FlagStore {
	return &FileFlagStore{path: path}
}

func (s *FileFlagStore) ReadFlag(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	flags, err := s.load()
	if err != nil {
		return false, err
	}
	return flags[key], nil
}

func (s *FileFlagStore) WriteFlag(_ context.Context, key string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	flags, err := s.load()
	if err != nil {
		return err
	}
	flags[key] = value

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create flag dir: %w", err)
	}
	payload, err := json.MarshalIndent(flags, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal flags: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write flags: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace flags: %w", err)
	}
	return nil
}

func (s *FileFlagStore) load() (map[string]bool, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]bool{}, nil
		}
		return nil, fmt.Errorf("read flags: %w", err)
	}
	flags := map[string]bool{}
	if err := json.Unmarshal(payload, &flags); err != nil {
		return nil, fmt.Errorf("decode flags: %w", err)
	}
	return flags, nil
}
