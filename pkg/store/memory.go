package store

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps charts in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	charts map[string]*Chart
	now    func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{charts: make(map[string]*Chart), now: time.Now}
}

func (s *MemoryStore) Save(_ context.Context, c *Chart) (*Chart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var created time.Time
	if prev, ok := s.charts[c.ID]; ok && c.ID != "" {
		created = prev.CreatedAt
	}
	out, err := prepare(c, created, s.now())
	if err != nil {
		return nil, err
	}
	s.charts[out.ID] = out
	cp := *out
	return &cp, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Chart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.charts[id]
	if !ok {
		return nil, notFound(id)
	}
	cp := *c
	return &cp, nil
}

func (s *MemoryStore) List(_ context.Context, opts ListOptions) ([]*Chart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Chart, 0, len(s.charts))
	for _, c := range s.charts {
		if opts.Chart != "" && c.Chart != opts.Chart {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return sortAndLimit(out, opts), nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.charts[id]; !ok {
		return notFound(id)
	}
	delete(s.charts, id)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
