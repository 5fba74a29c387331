package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/chartkit/pkg/errors"
)

// clock returns increasing timestamps one second apart.
func clock() func() time.Time {
	t := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func sampleChart(name, chart string) *Chart {
	data := `{"id":"root","children":[{"id":"a","value":1}]}`
	if chart == "waffle" {
		data = `[{"id":"a","value":1}]`
	}
	return &Chart{Name: name, Chart: chart, Data: json.RawMessage(data)}
}

// testStore runs the behavior every Store implementation shares.
func testStore(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("save assigns id", func(t *testing.T) {
		in := sampleChart("first", "sunburst")
		saved, err := s.Save(ctx, in)
		if err != nil {
			t.Fatalf("Save: %v", err)
		}
		if errors.ValidateChartID(saved.ID) != nil {
			t.Errorf("ID = %q, want a uuid", saved.ID)
		}
		if in.ID != "" {
			t.Error("Save must not modify its argument")
		}
		if saved.CreatedAt.IsZero() || !saved.CreatedAt.Equal(saved.UpdatedAt) {
			t.Errorf("timestamps = %v / %v", saved.CreatedAt, saved.UpdatedAt)
		}

		got, err := s.Get(ctx, saved.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.Name != "first" || got.Chart != "sunburst" || string(got.Data) != string(in.Data) {
			t.Errorf("Get = %+v", got)
		}
	})

	t.Run("update keeps created time", func(t *testing.T) {
		saved, err := s.Save(ctx, sampleChart("draft", "waffle"))
		if err != nil {
			t.Fatal(err)
		}
		update := *saved
		update.Name = "final"
		update.Props = json.RawMessage(`{"rows":5}`)
		updated, err := s.Save(ctx, &update)
		if err != nil {
			t.Fatalf("Save update: %v", err)
		}
		if updated.ID != saved.ID {
			t.Errorf("ID changed: %s -> %s", saved.ID, updated.ID)
		}
		if !updated.CreatedAt.Equal(saved.CreatedAt) {
			t.Errorf("CreatedAt = %v, want %v", updated.CreatedAt, saved.CreatedAt)
		}
		if !updated.UpdatedAt.After(saved.UpdatedAt) {
			t.Errorf("UpdatedAt = %v, want after %v", updated.UpdatedAt, saved.UpdatedAt)
		}
		got, err := s.Get(ctx, saved.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.Name != "final" || string(got.Props) != `{"rows":5}` {
			t.Errorf("Get after update = %+v", got)
		}
	})

	t.Run("list newest first with filter and limit", func(t *testing.T) {
		all, err := s.List(ctx, ListOptions{})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(all) != 2 {
			t.Fatalf("List returned %d charts, want 2", len(all))
		}
		if all[0].Name != "final" || all[1].Name != "first" {
			t.Errorf("order = %s, %s; want final, first", all[0].Name, all[1].Name)
		}

		waffles, err := s.List(ctx, ListOptions{Chart: "waffle"})
		if err != nil {
			t.Fatal(err)
		}
		if len(waffles) != 1 || waffles[0].Chart != "waffle" {
			t.Errorf("filtered list = %+v", waffles)
		}

		limited, err := s.List(ctx, ListOptions{Limit: 1})
		if err != nil {
			t.Fatal(err)
		}
		if len(limited) != 1 {
			t.Errorf("limited list has %d charts, want 1", len(limited))
		}
	})

	t.Run("delete", func(t *testing.T) {
		saved, err := s.Save(ctx, sampleChart("temp", "sunburst"))
		if err != nil {
			t.Fatal(err)
		}
		if err := s.Delete(ctx, saved.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := s.Get(ctx, saved.ID); !errors.Is(err, errors.ErrCodeChartNotFound) {
			t.Errorf("Get after delete error = %v, want CHART_NOT_FOUND", err)
		}
		if err := s.Delete(ctx, saved.ID); !errors.Is(err, errors.ErrCodeChartNotFound) {
			t.Errorf("second Delete error = %v, want CHART_NOT_FOUND", err)
		}
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name  string
			chart *Chart
			code  errors.Code
		}{
			{"empty name", &Chart{Chart: "waffle", Data: json.RawMessage(`[]`)}, errors.ErrCodeInvalidInput},
			{"unknown chart", &Chart{Name: "x", Chart: "pie", Data: json.RawMessage(`[]`)}, errors.ErrCodeInvalidChart},
			{"no data", &Chart{Name: "x", Chart: "waffle"}, errors.ErrCodeInvalidData},
			{"bad data", &Chart{Name: "x", Chart: "waffle", Data: json.RawMessage(`[`)}, errors.ErrCodeInvalidData},
			{"bad props", &Chart{Name: "x", Chart: "waffle", Data: json.RawMessage(`[]`), Props: json.RawMessage(`{`)}, errors.ErrCodeInvalidData},
			{"bad id", &Chart{ID: "../etc", Name: "x", Chart: "waffle", Data: json.RawMessage(`[]`)}, errors.ErrCodeInvalidInput},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if _, err := s.Save(ctx, tt.chart); !errors.Is(err, tt.code) {
					t.Errorf("Save error = %v, want %s", err, tt.code)
				}
			})
		}
	})

	t.Run("missing chart", func(t *testing.T) {
		if _, err := s.Get(ctx, NewID()); !errors.Is(err, errors.ErrCodeChartNotFound) {
			t.Errorf("Get error = %v, want CHART_NOT_FOUND", err)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	s.now = clock()
	testStore(t, s)
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s.now = clock()
	testStore(t, s)
}

func TestFileStoreSkipsCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save(context.Background(), sampleChart("ok", "waffle")); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}

	charts, err := s.List(context.Background(), ListOptions{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(charts) != 1 || charts[0].Name != "ok" {
		t.Errorf("List = %+v, want only the valid chart", charts)
	}
	if s.Path() != dir {
		t.Errorf("Path() = %q, want %q", s.Path(), dir)
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	saved, err := s.Save(context.Background(), sampleChart("a", "sunburst"))
	if err != nil {
		t.Fatal(err)
	}
	saved.Name = "mutated"

	got, err := s.Get(context.Background(), saved.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "a" {
		t.Errorf("stored chart was mutated through the returned pointer: %q", got.Name)
	}
}
