package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&buf, log.DebugLevel))
	h := logHooks{}

	h.OnDecodeStart(ctx, "sunburst")
	h.OnDecodeComplete(ctx, "sunburst", 3, time.Millisecond, nil)
	h.OnRenderStart(ctx, "sunburst", []string{"svg"})
	h.OnRenderComplete(ctx, "sunburst", []string{"svg"}, time.Millisecond, context.Canceled)
	h.OnCacheHit(ctx, "sunburst", "svg")
	h.OnCacheSet(ctx, "sunburst", "svg", 42)

	out := buf.String()
	for _, want := range []string{"decode started", "decode finished", "items=3", "render failed", "cache hit", "format=svg", "bytes=42"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksQuietAtInfo(t *testing.T) {
	var buf bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&buf, log.InfoLevel))

	logHooks{}.OnCacheMiss(ctx, "waffle", "html")
	if buf.Len() != 0 {
		t.Errorf("debug hook logged at info level: %q", buf.String())
	}
}
