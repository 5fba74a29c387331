package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartkit/pkg/cache"
	"github.com/matzehuels/chartkit/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete decode → render → convert pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	// Serve what the cache has before decoding anything.
	missing := r.lookup(ctx, opts, result)
	if len(missing) == 0 {
		result.CacheInfo.RenderHit = true
		r.Logger.Debug("served from cache", "chart", opts.Chart, "formats", opts.Formats)
		return result, nil
	}

	// Stage 1: Decode
	decodeStart := time.Now()
	observability.Pipeline().OnDecodeStart(ctx, opts.Chart)
	c, err := Decode(opts)
	items := 0
	if err == nil {
		items = c.Items()
	}
	result.Stats.DecodeTime = time.Since(decodeStart)
	observability.Pipeline().OnDecodeComplete(ctx, opts.Chart, items, result.Stats.DecodeTime, err)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	result.Stats.Items = items

	r.Logger.Info("decoded chart",
		"chart", opts.Chart,
		"items", items,
		"duration", result.Stats.DecodeTime)

	// Stage 2 and 3: Render and convert
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Chart, missing)
	renderOpts := opts
	renderOpts.Formats = missing
	artifacts, err := Render(ctx, c, renderOpts)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Chart, missing, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}

	for format, data := range artifacts {
		result.Artifacts[format] = data
		r.store(ctx, opts, format, data)
	}

	r.Logger.Info("rendered outputs",
		"formats", missing,
		"cached", result.CacheInfo.Hits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// lookup fills result with cached artifacts and returns the formats still
// to render.
func (r *Runner) lookup(ctx context.Context, opts Options, result *Result) []string {
	var missing []string
	for _, format := range opts.Formats {
		if !opts.Refresh {
			key := r.Keyer.ArtifactKey(opts.Chart, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, opts.Chart, format)
				result.Artifacts[format] = data
				result.CacheInfo.Hits = append(result.CacheInfo.Hits, format)
				continue
			} else if err != nil {
				r.Logger.Warn("cache read failed", "format", format, "error", err)
			}
			observability.Cache().OnCacheMiss(ctx, opts.Chart, format)
		}
		missing = append(missing, format)
	}
	return missing
}

func (r *Runner) store(ctx context.Context, opts Options, format string, data []byte) {
	key := r.Keyer.ArtifactKey(opts.Chart, opts.ArtifactKeyOpts(format))
	if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err != nil {
		r.Logger.Warn("cache write failed", "format", format, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, opts.Chart, format, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
