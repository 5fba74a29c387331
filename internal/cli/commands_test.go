package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/chartkit/pkg/cache"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/pipeline"
	"github.com/matzehuels/chartkit/pkg/store"
)

// testConfig writes a config file that keeps the store and cache under
// temp dirs and returns its path with the two dirs.
func testConfig(t *testing.T) (path, storeDir, cacheDir string) {
	t.Helper()
	dir := t.TempDir()
	storeDir = filepath.Join(dir, "charts")
	cacheDir = filepath.Join(dir, "cache")
	content := fmt.Sprintf("[store]\nbackend = \"file\"\ndir = %q\n\n[cache]\nbackend = \"file\"\ndir = %q\n", storeDir, cacheDir)
	path = filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path, storeDir, cacheDir
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	root := newTestCLI().RootCommand()
	root.SetArgs(args)
	root.SetOut(&strings.Builder{})
	root.SetErr(&strings.Builder{})
	return root.ExecuteContext(context.Background())
}

func TestChartsCommandFlow(t *testing.T) {
	cfgPath, storeDir, _ := testConfig(t)
	input := writeFile(t, "pets.json", waffleDoc)

	if err := execute(t, "--config", cfgPath, "charts", "save", input); err != nil {
		t.Fatalf("save: %v", err)
	}

	fs, err := store.NewFileStore(storeDir)
	if err != nil {
		t.Fatal(err)
	}
	charts, err := fs.List(context.Background(), store.ListOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(charts) != 1 {
		t.Fatalf("stored %d charts, want 1", len(charts))
	}
	saved := charts[0]
	if saved.Name != "pets" || saved.Chart != "waffle" {
		t.Errorf("saved name=%q chart=%q, want pets/waffle", saved.Name, saved.Chart)
	}

	for _, args := range [][]string{
		{"charts", "list"},
		{"charts", "list", "--type", "waffle"},
		{"charts", "show", saved.ID},
	} {
		if err := execute(t, append([]string{"--config", cfgPath}, args...)...); err != nil {
			t.Errorf("%v: %v", args, err)
		}
	}

	out := filepath.Join(t.TempDir(), "pets.json")
	if err := execute(t, "--config", cfgPath, "charts", "render", saved.ID, "-f", "json", "-o", out, "--no-cache"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if data, err := os.ReadFile(out); err != nil || !strings.Contains(string(data), `"cats"`) {
		t.Errorf("rendered layout = %q, %v", data, err)
	}

	if err := execute(t, "--config", cfgPath, "charts", "delete", saved.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := fs.Get(context.Background(), saved.ID); !errors.Is(err, errors.ErrCodeChartNotFound) {
		t.Errorf("Get after delete err = %v, want CHART_NOT_FOUND", err)
	}
}

func TestChartsCommandErrors(t *testing.T) {
	cfgPath, _, _ := testConfig(t)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"show missing", []string{"charts", "show", store.NewID()}, errors.ErrCodeChartNotFound},
		{"delete missing", []string{"charts", "delete", store.NewID()}, errors.ErrCodeChartNotFound},
		{"list unknown type", []string{"charts", "list", "--type", "pie"}, errors.ErrCodeInvalidChart},
		{"save without chart type", []string{"charts", "save", writeFile(t, "data.json", bareData)}, errors.ErrCodeInvalidChart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(t, append([]string{"--config", cfgPath}, tt.args...)...)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestCacheClearCommand(t *testing.T) {
	cfgPath, _, dir := testConfig(t)

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := fc.Set(ctx, "artifact", []byte("<svg/>"), 0); err != nil {
		t.Fatal(err)
	}

	if err := execute(t, "--config", cfgPath, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if _, ok, _ := fc.Get(ctx, "artifact"); ok {
		t.Error("entry survived cache clear")
	}
	if err := execute(t, "--config", cfgPath, "cache", "path"); err != nil {
		t.Errorf("cache path: %v", err)
	}
}

func TestInspectTables(t *testing.T) {
	tree := `{"id": "root", "children": [{"id": "a", "children": [{"id": "a1", "value": 2}, {"id": "a2", "value": 1}]}, {"id": "b", "value": 1}]}`
	chart, err := pipeline.Decode(pipeline.Options{Chart: "sunburst", Data: []byte(tree)})
	if err != nil {
		t.Fatal(err)
	}
	l := chart.Layout().(pipeline.SunburstLayout)

	all := sunburstTable(l, 0)
	for _, want := range []string{"a1", "a2", "75.0%", "25.0%", "270.0°"} {
		if !strings.Contains(all, want) {
			t.Errorf("sunburst table missing %q:\n%s", want, all)
		}
	}
	if shallow := sunburstTable(l, 1); strings.Contains(shallow, "a1") {
		t.Errorf("depth 1 table shows depth 2 nodes:\n%s", shallow)
	}

	chart, err = pipeline.Decode(pipeline.Options{Chart: "waffle", Data: []byte(bareData)})
	if err != nil {
		t.Fatal(err)
	}
	table := waffleTable(chart.Layout().(pipeline.WaffleLayout))
	for _, want := range []string{"cats", "dogs", "0–29", "30–99"} {
		if !strings.Contains(table, want) {
			t.Errorf("waffle table missing %q:\n%s", want, table)
		}
	}
}

func TestInspectCommand(t *testing.T) {
	cfgPath, _, _ := testConfig(t)
	for _, doc := range []string{sunburstDoc, waffleDoc} {
		if err := execute(t, "--config", cfgPath, "inspect", writeFile(t, "doc.json", doc)); err != nil {
			t.Errorf("inspect: %v", err)
		}
	}
}

func TestChartsTable(t *testing.T) {
	id := store.NewID()
	out := chartsTable([]*store.Chart{{ID: id, Name: "budget", Chart: "sunburst", UpdatedAt: time.Now()}})
	for _, want := range []string{"ID", "Updated", id, "budget", "sunburst", "just now"} {
		if !strings.Contains(out, want) {
			t.Errorf("charts table missing %q:\n%s", want, out)
		}
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Now()
	tests := []struct {
		t    time.Time
		want string
	}{
		{now, "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-50 * time.Hour), "2d ago"},
		{time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC), "Mar 9, 2024"},
	}

	for _, tt := range tests {
		if got := formatRelativeTime(tt.t); got != tt.want {
			t.Errorf("formatRelativeTime(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestServerURL(t *testing.T) {
	tests := []struct{ addr, want string }{
		{":8080", "http://localhost:8080"},
		{"0.0.0.0:9000", "http://localhost:9000"},
		{"127.0.0.1:9000", "http://127.0.0.1:9000"},
		{"[::1]:9000", "http://[::1]:9000"},
		{"example.com", "http://example.com"},
	}

	for _, tt := range tests {
		if got := serverURL(tt.addr); got != tt.want {
			t.Errorf("serverURL(%q) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1536, "1.5 KiB"},
		{3 << 20, "3.0 MiB"},
	}

	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	cfgPath, _, _ := testConfig(t)

	for _, shell := range completionShells {
		t.Run(shell, func(t *testing.T) {
			root := newTestCLI().RootCommand()
			var out strings.Builder
			root.SetOut(&out)
			root.SetErr(&strings.Builder{})
			root.SetArgs([]string{"--config", cfgPath, "completion", shell})
			if err := root.ExecuteContext(context.Background()); err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if !strings.Contains(out.String(), "chartkit") {
				t.Errorf("%s script does not mention chartkit", shell)
			}
		})
	}

	if err := execute(t, "--config", cfgPath, "completion", "tcsh"); err == nil {
		t.Error("unsupported shell accepted")
	}
}
