// Package health tracks the health of the playground's collaborators. The
// terminal UI polls the registry to decorate its status line when the engine
// circuit breaker is open.
package health

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/jsamuelsen11/riverplay/internal/ports"
)

// Compile-time interface check.
var _ ports.HealthRegistry = (*Registry)(nil)

// Registry is a thread-safe implementation of [ports.HealthRegistry].
type Registry struct {
	mu       sync.RWMutex
	checkers []ports.HealthChecker
}

// New creates an empty health check registry.
func New() *Registry {
	return &Registry{}
}

// Register adds a health checker to the registry. Safe for concurrent use.
func (r *Registry) Register(checker ports.HealthChecker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers = append(r.checkers, checker)
}

// CheckAll executes all registered health checks and returns results keyed by
// checker name. Nil values indicate healthy components. Checks run without
// holding the lock.
func (r *Registry) CheckAll(ctx context.Context) map[string]error {
	r.mu.RLock()
	checkers := slices.Clone(r.checkers)
	r.mu.RUnlock()

	results := make(map[string]error, len(checkers))
	for _, c := range checkers {
		results[c.Name()] = c.HealthCheck(ctx)
	}
	return results
}

// Summary renders the degraded components as "name: reason" pairs sorted by
// name and joined with "; ". It returns "" when everything is healthy.
func Summary(results map[string]error) string {
	names := make([]string, 0, len(results))
	for name, err := range results {
		if err != nil {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+results[name].Error())
	}
	return strings.Join(parts, "; ")
}
