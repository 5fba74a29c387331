package cli

import (
	"context"
	"time"

	"github.com/matzehuels/chartkit/pkg/observability"
)

// logHooks reports pipeline and cache events at debug level through the
// logger attached to the event's context.
type logHooks struct{}

// RegisterLogHooks installs logging hooks for the pipeline and the cache.
// main calls it when --verbose is set.
func RegisterLogHooks() {
	observability.SetPipelineHooks(logHooks{})
	observability.SetCacheHooks(logHooks{})
}

func (logHooks) OnDecodeStart(ctx context.Context, chart string) {
	loggerFromContext(ctx).Debug("decode started", "chart", chart)
}

func (logHooks) OnDecodeComplete(ctx context.Context, chart string, items int, d time.Duration, err error) {
	l := loggerFromContext(ctx)
	if err != nil {
		l.Debug("decode failed", "chart", chart, "error", err)
		return
	}
	l.Debug("decode finished", "chart", chart, "items", items, "duration", d)
}

func (logHooks) OnRenderStart(ctx context.Context, chart string, formats []string) {
	loggerFromContext(ctx).Debug("render started", "chart", chart, "formats", formats)
}

func (logHooks) OnRenderComplete(ctx context.Context, chart string, formats []string, d time.Duration, err error) {
	l := loggerFromContext(ctx)
	if err != nil {
		l.Debug("render failed", "chart", chart, "error", err)
		return
	}
	l.Debug("render finished", "chart", chart, "formats", formats, "duration", d)
}

func (logHooks) OnConvert(ctx context.Context, format string, d time.Duration, err error) {
	loggerFromContext(ctx).Debug("converted", "format", format, "duration", d, "error", err)
}

func (logHooks) OnCacheHit(ctx context.Context, chart, format string) {
	loggerFromContext(ctx).Debug("cache hit", "chart", chart, "format", format)
}

func (logHooks) OnCacheMiss(ctx context.Context, chart, format string) {
	loggerFromContext(ctx).Debug("cache miss", "chart", chart, "format", format)
}

func (logHooks) OnCacheSet(ctx context.Context, chart, format string, size int) {
	loggerFromContext(ctx).Debug("cache set", "chart", chart, "format", format, "bytes", size)
}
