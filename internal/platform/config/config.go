// Package config provides configuration loading and validation for the
// playground. Configuration is layered: built-in defaults -> built-in profile
// ("minimal" or "hardened") -> optional YAML file -> RIVERPLAY_ environment
// variables -> explicitly set command-line flags.
package config

import "time"

// Config holds all configuration for the playground.
type Config struct {
	Profile   string          `koanf:"profile"`
	Log       LogConfig       `koanf:"log"`
	Pipeline  PipelineConfig  `koanf:"pipeline"`
	Engine    EngineConfig    `koanf:"engine"`
	Graph     GraphConfig     `koanf:"graph"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Output string `koanf:"output"`
}

// PipelineConfig holds sync controller settings.
type PipelineConfig struct {
	Seed     string        `koanf:"seed"`
	OnError  string        `koanf:"on_error"`
	Debounce time.Duration `koanf:"debounce"`
	Async    bool          `koanf:"async"`
}

// EngineConfig holds settings for the engine adapter.
type EngineConfig struct {
	ErrorMarker    string               `koanf:"error_marker"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// GraphConfig holds graph view settings.
type GraphConfig struct {
	ZoomEnabled bool   `koanf:"zoom_enabled"`
	Zoom        int    `koanf:"zoom"`
	Fallback    string `koanf:"fallback"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Output      string `koanf:"output"`
	ServiceName string `koanf:"service_name"`
}
