// Package observability lets the binary observe render pipelines, the
// artifact cache and API requests without the libraries depending on a
// metrics or tracing backend.
//
// Libraries emit events through [Pipeline], [Cache] and [Server]. Only main
// (or a test) installs implementations, for example the CLI's --verbose
// debug logging:
//
//	observability.SetPipelineHooks(myHooks{})
//	defer observability.Reset()
//
// Implementations embed the Noop types and override the events they need.
// Hooks are called synchronously on the request path and must not block.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives render pipeline events.
type PipelineHooks interface {
	// OnDecodeStart and OnDecodeComplete bracket parsing of props and data.
	// items is the number of arcs or cells in the computed layout.
	OnDecodeStart(ctx context.Context, chart string)
	OnDecodeComplete(ctx context.Context, chart string, items int, duration time.Duration, err error)

	// OnRenderStart and OnRenderComplete bracket the formats not served
	// from the cache.
	OnRenderStart(ctx context.Context, chart string, formats []string)
	OnRenderComplete(ctx context.Context, chart string, formats []string, duration time.Duration, err error)

	// OnConvert reports one SVG to PNG or PDF conversion.
	OnConvert(ctx context.Context, format string, duration time.Duration, err error)
}

// CacheHooks receives artifact cache events.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, chart, format string)
	OnCacheMiss(ctx context.Context, chart, format string)
	OnCacheSet(ctx context.Context, chart, format string, size int)
}

// ServerHooks receives HTTP API events. route is the matched chi pattern,
// such as "/v1/charts/{id}", so cardinality stays bounded.
type ServerHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnDecodeStart(context.Context, string)                                    {}
func (NoopPipelineHooks) OnDecodeComplete(context.Context, string, int, time.Duration, error)      {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, []string, time.Duration, error) {}
func (NoopPipelineHooks) OnConvert(context.Context, string, time.Duration, error)                  {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, string, int) {}

type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string)                      {}
func (NoopServerHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// slot holds one installed hook set. Loads are lock-free since every
// render and request reads it.
type slot[T any] struct {
	p    atomic.Pointer[T]
	noop T
}

func (s *slot[T]) get() T {
	if h := s.p.Load(); h != nil {
		return *h
	}
	return s.noop
}

func (s *slot[T]) set(h T) { s.p.Store(&h) }
func (s *slot[T]) reset()  { s.p.Store(nil) }

var (
	pipelineHooks = slot[PipelineHooks]{noop: NoopPipelineHooks{}}
	cacheHooks    = slot[CacheHooks]{noop: NoopCacheHooks{}}
	serverHooks   = slot[ServerHooks]{noop: NoopServerHooks{}}
)

// SetPipelineHooks installs h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineHooks.set(h)
	}
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheHooks.set(h)
	}
}

// SetServerHooks installs h. A nil h is ignored.
func SetServerHooks(h ServerHooks) {
	if h != nil {
		serverHooks.set(h)
	}
}

func Pipeline() PipelineHooks { return pipelineHooks.get() }
func Cache() CacheHooks       { return cacheHooks.get() }
func Server() ServerHooks     { return serverHooks.get() }

// Reset restores the no-op hooks.
func Reset() {
	pipelineHooks.reset()
	cacheHooks.reset()
	serverHooks.reset()
}
