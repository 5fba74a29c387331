// Package store persists saved charts.
//
// A saved chart is a chart document (chart type, props, data, theme) with an
// id, a name and timestamps. Saved charts can be rendered again at any time
// through the pipeline, which is how the API serves /v1/charts/{id}/render.
//
// Implementations for different backends:
//   - memory: In-memory storage for development/testing
//   - file: JSON files in a config directory, for CLI applications
//   - mongo: MongoDB collection for multi-instance API deployments
//
// # Usage
//
//	// Development
//	s := store.NewMemoryStore()
//
//	// Production
//	s, err := store.NewMongoStore(ctx, "mongodb://localhost:27017", "chartkit")
//
//	saved, err := s.Save(ctx, &store.Chart{Name: "budget", Chart: "sunburst", Data: data})
//	got, err := s.Get(ctx, saved.ID)
package store

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/chartkit/pkg/errors"
)

// Chart is a saved chart document.
type Chart struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Chart     string          `json:"chart"`
	Props     json.RawMessage `json:"props,omitempty"`
	Data      json.RawMessage `json:"data"`
	Theme     json.RawMessage `json:"theme,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Validate checks the fields a chart needs before it can be saved.
func (c *Chart) Validate() error {
	if err := errors.ValidateName(c.Name); err != nil {
		return err
	}
	if err := errors.ValidateChart(c.Chart); err != nil {
		return err
	}
	if len(c.Data) == 0 {
		return errors.New(errors.ErrCodeInvalidData, "data is required")
	}
	if !json.Valid(c.Data) {
		return errors.New(errors.ErrCodeInvalidData, "data is not valid JSON")
	}
	for name, raw := range map[string]json.RawMessage{"props": c.Props, "theme": c.Theme} {
		if len(raw) > 0 && !json.Valid(raw) {
			return errors.New(errors.ErrCodeInvalidData, "%s is not valid JSON", name)
		}
	}
	return nil
}

// ListOptions filters and bounds List results.
type ListOptions struct {
	// Chart restricts results to one chart type.
	Chart string
	// Limit caps the number of results. Zero means DefaultListLimit.
	Limit int
}

// DefaultListLimit is the number of charts List returns by default.
const DefaultListLimit = 100

func (o ListOptions) limit() int {
	if o.Limit <= 0 {
		return DefaultListLimit
	}
	return o.Limit
}

// Store is the interface for saved chart backends. Implementations are
// safe for concurrent use.
type Store interface {
	// Save validates and stores c. A chart without an id gets a new one;
	// an existing id is overwritten and keeps its creation time.
	// The stored chart is returned.
	Save(ctx context.Context, c *Chart) (*Chart, error)

	// Get returns the chart with the given id, or a CHART_NOT_FOUND error.
	Get(ctx context.Context, id string) (*Chart, error)

	// List returns saved charts, most recently updated first.
	List(ctx context.Context, opts ListOptions) ([]*Chart, error)

	// Delete removes a chart. Deleting a missing chart is a CHART_NOT_FOUND error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// NewID creates a chart identifier.
func NewID() string {
	return uuid.NewString()
}

// prepare validates c and returns a copy with id and timestamps set.
// created is the creation time of the chart being replaced, if any.
func prepare(c *Chart, created time.Time, now time.Time) (*Chart, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	out := *c
	if out.ID == "" {
		out.ID = NewID()
	} else if err := errors.ValidateChartID(out.ID); err != nil {
		return nil, err
	}
	out.CreatedAt = created
	if out.CreatedAt.IsZero() {
		out.CreatedAt = now
	}
	out.UpdatedAt = now
	return &out, nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeChartNotFound, "chart %s not found", id)
}

// sortAndLimit orders charts most recently updated first, then by id.
func sortAndLimit(charts []*Chart, opts ListOptions) []*Chart {
	sort.Slice(charts, func(i, j int) bool {
		if !charts[i].UpdatedAt.Equal(charts[j].UpdatedAt) {
			return charts[i].UpdatedAt.After(charts[j].UpdatedAt)
		}
		return charts[i].ID < charts[j].ID
	})
	if n := opts.limit(); len(charts) > n {
		charts = charts[:n]
	}
	return charts
}
