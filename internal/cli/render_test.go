package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/chartkit/pkg/errors"
)

const (
	sunburstDoc = `{"chart": "sunburst", "data": {"id": "root", "children": [{"id": "a", "value": 3}, {"id": "b", "value": 1}]}}`
	waffleDoc   = `{"chart": "waffle", "data": [{"id": "cats", "value": 30}, {"id": "dogs", "value": 70}]}`
	bareData    = `[{"id": "cats", "value": 30}, {"id": "dogs", "value": 70}]`
)

// writeFile writes content under a fresh temp dir and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestCLI() *CLI {
	return New(&strings.Builder{}, LogInfo)
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		chart string
		want  []string
	}{
		{"empty sunburst defaults to svg", "", "sunburst", []string{"svg"}},
		{"empty waffle defaults to html", "", "waffle", []string{"html"}},
		{"single format", "png", "sunburst", []string{"png"}},
		{"multiple formats", "svg,pdf,png", "sunburst", []string{"svg", "pdf", "png"}},
		{"normalized", " SVG , Json,", "waffle", []string{"svg", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input, tt.chart)
			if !slices.Equal(got, tt.want) {
				t.Errorf("parseFormats(%q, %q) = %v, want %v", tt.input, tt.chart, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "budget.json", "budget"},
		{"", "dir/budget.yaml", "dir/budget"},
		{"out.svg", "budget.json", "out"},
		{"out/chart.html", "budget.json", "out/chart"},
		{"out/chart", "budget.json", "out/chart"},
		{"chart.v2", "budget.json", "chart.v2"},
	}

	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		format string
		count  int
		want   string
	}{
		{"single format uses output verbatim", "chart.out", "svg", 1, "chart.out"},
		{"single format without output", "", "svg", 1, "budget.svg"},
		{"multiple formats append extension", "chart.svg", "png", 2, "chart.png"},
		{"multiple formats without output", "", "pdf", 3, "budget.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.output, "budget.json", tt.format, tt.count); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderOptions(t *testing.T) {
	c := newTestCLI()

	t.Run("chart from document", func(t *testing.T) {
		popts, err := c.renderOptions(writeFile(t, "doc.json", sunburstDoc), renderOpts{})
		if err != nil {
			t.Fatal(err)
		}
		if popts.Chart != "sunburst" {
			t.Errorf("Chart = %q, want sunburst", popts.Chart)
		}
		if !slices.Equal(popts.Formats, []string{"svg"}) {
			t.Errorf("Formats = %v, want [svg]", popts.Formats)
		}
		if popts.Scale != 2 {
			t.Errorf("Scale = %v, want config default 2", popts.Scale)
		}
	})

	t.Run("type flag names bare data", func(t *testing.T) {
		popts, err := c.renderOptions(writeFile(t, "data.json", bareData), renderOpts{chart: "waffle", scale: 3, native: true})
		if err != nil {
			t.Fatal(err)
		}
		if popts.Chart != "waffle" || popts.Scale != 3 || !popts.NativeRaster {
			t.Errorf("got chart=%q scale=%v native=%v", popts.Chart, popts.Scale, popts.NativeRaster)
		}
	})

	t.Run("missing chart type", func(t *testing.T) {
		_, err := c.renderOptions(writeFile(t, "data.json", bareData), renderOpts{})
		if !errors.Is(err, errors.ErrCodeInvalidChart) {
			t.Errorf("err = %v, want INVALID_CHART", err)
		}
	})

	t.Run("props file replaces document props", func(t *testing.T) {
		props := writeFile(t, "props.toml", "rows = 4\ncolumns = 25\n")
		popts, err := c.renderOptions(writeFile(t, "doc.json", waffleDoc), renderOpts{propsFile: props})
		if err != nil {
			t.Fatal(err)
		}
		var got map[string]int
		if err := json.Unmarshal(popts.Props, &got); err != nil {
			t.Fatal(err)
		}
		if got["rows"] != 4 || got["columns"] != 25 {
			t.Errorf("Props = %s", popts.Props)
		}
	})

	t.Run("theme file becomes fallback theme", func(t *testing.T) {
		theme := writeFile(t, "theme.toml", "background = \"#123456\"\n")
		popts, err := c.renderOptions(writeFile(t, "doc.json", sunburstDoc), renderOpts{themeFile: theme})
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(popts.FallbackTheme), "#123456") {
			t.Errorf("FallbackTheme = %s", popts.FallbackTheme)
		}
		if len(popts.Theme) != 0 {
			t.Errorf("Theme = %s, want empty", popts.Theme)
		}
	})
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{"svg": []byte("<svg/>"), "json": []byte("{}")}

	paths, err := writeArtifacts(artifacts, []string{"svg", "png", "json"}, filepath.Join(dir, "out", "chart"), "budget.json")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "out", "chart.svg"), filepath.Join(dir, "out", "chart.json")}
	if !slices.Equal(paths, want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	data, err := os.ReadFile(want[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("svg content = %q", data)
	}
}

func TestRunRender(t *testing.T) {
	c := newTestCLI()
	input := writeFile(t, "budget.json", sunburstDoc)
	output := filepath.Join(filepath.Dir(input), "layout.json")

	err := c.runRender(context.Background(), input, renderOpts{formats: "json", output: output, noCache: true})
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	var layout struct {
		Chart string            `json:"chart"`
		Nodes []json.RawMessage `json:"nodes"`
	}
	if err := json.Unmarshal(data, &layout); err != nil {
		t.Fatalf("layout is not JSON: %v", err)
	}
	if layout.Chart != "sunburst" || len(layout.Nodes) != 3 {
		t.Errorf("layout chart=%q nodes=%d, want sunburst with 3 nodes", layout.Chart, len(layout.Nodes))
	}
}

func TestRunRenderRejectsUnsupportedFormat(t *testing.T) {
	c := newTestCLI()
	input := writeFile(t, "budget.json", sunburstDoc)

	err := c.runRender(context.Background(), input, renderOpts{formats: "html", noCache: true})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}

func TestSupportedFormats(t *testing.T) {
	want := []string{"html", "json", "pdf", "png", "svg"}
	if got := supportedFormats(); !slices.Equal(got, want) {
		t.Errorf("supportedFormats() = %v, want %v", got, want)
	}
}
