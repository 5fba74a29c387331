package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/chartkit/pkg/pipeline"
)

func captureStdout(t *testing.T) *strings.Builder {
	t.Helper()
	var buf strings.Builder
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

func TestStatsLine(t *testing.T) {
	tests := []struct {
		name   string
		result pipeline.Result
		want   []string
		reject []string
	}{
		{
			name:   "fresh",
			result: pipeline.Result{Stats: pipeline.Stats{Items: 7, RenderTime: 12 * time.Millisecond}},
			want:   []string{"7 items", "fresh 12ms"},
		},
		{
			name: "all cached",
			result: pipeline.Result{
				Stats:     pipeline.Stats{Items: 3},
				CacheInfo: pipeline.CacheInfo{RenderHit: true, Hits: []string{"svg"}},
			},
			want:   []string{"3 items", "cached"},
			reject: []string{"fresh"},
		},
		{
			name: "partly cached",
			result: pipeline.Result{
				Stats:     pipeline.Stats{RenderTime: 5 * time.Millisecond},
				CacheInfo: pipeline.CacheInfo{Hits: []string{"svg", "json"}},
			},
			want:   []string{"cached json,svg", "5ms"},
			reject: []string{"items"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := statsLine(&tt.result)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("statsLine() = %q, missing %q", got, w)
				}
			}
			for _, r := range tt.reject {
				if strings.Contains(got, r) {
					t.Errorf("statsLine() = %q, should not contain %q", got, r)
				}
			}
		})
	}
}

func TestPrinters(t *testing.T) {
	buf := captureStdout(t)

	printSuccess("Saved %s chart %q", "waffle", "pets")
	printWarning("Caching is disabled")
	printKeyValue("Chart", "sunburst")
	printFile("out/budget.svg")
	printNextStep("Render it", "chartkit charts render 42")

	out := buf.String()
	for _, want := range []string{
		markOK + ` Saved waffle chart "pets"`,
		markWarn + " Caching is disabled",
		"sunburst",
		markFile + " out/budget.svg",
		"Render it: chartkit charts render 42",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSwatch(t *testing.T) {
	if got := swatch("nivo"); got != "nivo" {
		t.Errorf("swatch(nivo) = %q", got)
	}
	if got := swatch("#e8c1a0"); !strings.HasSuffix(got, markSwatch+" #e8c1a0") {
		t.Errorf("swatch(#e8c1a0) = %q", got)
	}
}
