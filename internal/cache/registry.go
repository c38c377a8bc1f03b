package cache

import (
	"context"
	"log/slog"
	"sync"
)

// Invalidator drops whatever is cached for a route path.
type Invalidator interface {
	Invalidate(ctx context.Context, path string)
}

type flusher interface {
	Invalidate()
}

// Registry maps route paths to the caches that back them.
type Registry struct {
	mu     sync.RWMutex
	byPath map[string][]flusher
	logger *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		byPath: make(map[string][]flusher),
		logger: logger,
	}
}

func (r *Registry) Register(path string, c flusher) {
	r.mu.Lock()
	r.byPath[path] = append(r.byPath[path], c)
	r.mu.Unlock()
}

func (r *Registry) Invalidate(_ context.Context, path string) {
	r.mu.RLock()
	caches := r.byPath[path]
	r.mu.RUnlock()

	for _, c := range caches {
		c.Invalidate()
	}
	r.logger.Debug("cache invalidated", "path", path, "caches", len(caches))
}

var _ Invalidator = (*Registry)(nil)

// Nop ignores invalidations.
type Nop struct{}

func (Nop) Invalidate(context.Context, string) {}
