package ports

import "context"

// HealthChecker is implemented by any component that can report its health.
// The engine adapter reports the state of its circuit breaker.
type HealthChecker interface {
	// Name returns a human-readable identifier for this component
	// (e.g., "river-engine").
	Name() string

	// HealthCheck returns nil if healthy, or an error describing why the
	// component is degraded.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry manages registration and execution of health checkers.
// The status line of the terminal UI reads it on every refresh.
type HealthRegistry interface {
	// Register adds a HealthChecker to the registry.
	Register(checker HealthChecker)

	// CheckAll executes all registered health checks and returns results
	// keyed by checker name. Nil values indicate healthy components.
	CheckAll(ctx context.Context) map[string]error
}
