package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/matzehuels/chartkit/pkg/errors"
)

// FileStore is a file-based chart store for CLI applications.
// Charts are stored as JSON files in a config directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
	now     func() time.Time
}

// NewFileStore creates a new file-based chart store.
// If baseDir is empty, defaults to ~/.config/chartkit/charts/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		baseDir = dir
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}
	return &FileStore{baseDir: baseDir, now: time.Now}, nil
}

// DefaultDir returns ~/.config/chartkit/charts.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "chartkit", "charts"), nil
}

func (s *FileStore) chartPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Save(_ context.Context, c *Chart) (*Chart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var created time.Time
	if c.ID != "" && errors.ValidateChartID(c.ID) == nil {
		if prev, err := s.read(s.chartPath(c.ID)); err == nil {
			created = prev.CreatedAt
		}
	}
	out, err := prepare(c, created, s.now())
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal chart: %w", err)
	}
	tmp := s.chartPath(out.ID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return nil, fmt.Errorf("write chart file: %w", err)
	}
	if err := os.Rename(tmp, s.chartPath(out.ID)); err != nil {
		os.Remove(tmp)
		return nil, fmt.Errorf("write chart file: %w", err)
	}
	return out, nil
}

func (s *FileStore) Get(_ context.Context, id string) (*Chart, error) {
	if errors.ValidateChartID(id) != nil {
		return nil, notFound(id)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, err := s.read(s.chartPath(id))
	if os.IsNotExist(err) {
		return nil, notFound(id)
	}
	return c, err
}

func (s *FileStore) List(_ context.Context, opts ListOptions) ([]*Chart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read chart dir: %w", err)
	}

	var out []*Chart
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		c, err := s.read(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		if opts.Chart != "" && c.Chart != opts.Chart {
			continue
		}
		out = append(out, c)
	}
	return sortAndLimit(out, opts), nil
}

func (s *FileStore) Delete(_ context.Context, id string) error {
	if errors.ValidateChartID(id) != nil {
		return notFound(id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.chartPath(id))
	if os.IsNotExist(err) {
		return notFound(id)
	}
	if err != nil {
		return fmt.Errorf("remove chart file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for chart files.
func (s *FileStore) Path() string {
	return s.baseDir
}

func (s *FileStore) read(path string) (*Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Chart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse chart %s: %w", filepath.Base(path), err)
	}
	return &c, nil
}

var _ Store = (*FileStore)(nil)
