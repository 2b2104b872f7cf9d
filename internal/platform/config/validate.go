package config

import (
	"errors"
	"fmt"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Log.validate(),
		c.Pipeline.validate(),
		c.Engine.validate(),
		c.Graph.validate(),
		c.Telemetry.validate(),
	)
}

// ValidateTerminal checks the settings that conflict with a full-screen
// terminal UI. Commands that do not take over the terminal skip it.
func (c *Config) ValidateTerminal() error {
	var errs []error

	if c.Log.Output == "stderr" {
		errs = append(errs, errors.New("log.output must not be stderr while the terminal UI is running; use a file or discard"))
	}
	if c.Telemetry.Enabled && c.Telemetry.Output == "stderr" {
		errs = append(errs, errors.New("telemetry.output must not be stderr while the terminal UI is running; use a file or discard"))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
		// Valid levels.
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
		// Valid formats.
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (p *PipelineConfig) validate() error {
	var errs []error

	switch p.OnError {
	case "preserve-output", "clear-graph-and-report":
		// Valid policies.
	default:
		errs = append(errs, fmt.Errorf("pipeline.on_error must be one of: preserve-output, clear-graph-and-report; got %q",
			p.OnError))
	}
	if p.Debounce < 0 {
		errs = append(errs, fmt.Errorf("pipeline.debounce must not be negative, got %s", p.Debounce))
	}

	return errors.Join(errs...)
}

func (e *EngineConfig) validate() error {
	var errs []error

	if e.ErrorMarker == "" {
		errs = append(errs, errors.New("engine.error_marker must not be empty"))
	}
	if e.CircuitBreaker.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("engine.circuit_breaker.max_failures must be >= 1, got %d",
			e.CircuitBreaker.MaxFailures))
	}
	if e.CircuitBreaker.Timeout <= 0 {
		errs = append(errs, errors.New("engine.circuit_breaker.timeout must be positive"))
	}
	if e.CircuitBreaker.HalfOpenLimit < 1 {
		errs = append(errs, fmt.Errorf("engine.circuit_breaker.half_open_limit must be >= 1, got %d",
			e.CircuitBreaker.HalfOpenLimit))
	}

	return errors.Join(errs...)
}

func (g *GraphConfig) validate() error {
	var errs []error

	if g.Zoom < 1 || g.Zoom > defaultMaxZoom {
		errs = append(errs, fmt.Errorf("graph.zoom must be between 1 and %d, got %d", defaultMaxZoom, g.Zoom))
	}

	switch g.Fallback {
	case "last-good", "empty":
		// Valid fallbacks.
	default:
		errs = append(errs, fmt.Errorf("graph.fallback must be one of: last-good, empty; got %q", g.Fallback))
	}

	return errors.Join(errs...)
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}
	if t.Output == "" {
		return errors.New("telemetry.output must not be empty when telemetry is enabled")
	}
	return nil
}
