package engine

import (
	"context"
	"fmt"

	"github.com/sony/gobreaker/v2"
)

// Name returns the identifier used when this component is registered with a
// [ports.HealthRegistry].
func (a *Adapter) Name() string {
	return Name
}

// HealthCheck reports the engine's availability from the circuit breaker
// state. The engine itself is not called.
func (a *Adapter) HealthCheck(_ context.Context) error {
	state := a.breaker.State()
	switch state {
	case gobreaker.StateClosed:
		return nil
	case gobreaker.StateHalfOpen:
		return fmt.Errorf("%s: degraded (circuit breaker half-open)", Name)
	case gobreaker.StateOpen:
		return fmt.Errorf("%s: failing (circuit breaker open)", Name)
	default:
		return fmt.Errorf("%s: unknown circuit breaker state %v", Name, state)
	}
}
