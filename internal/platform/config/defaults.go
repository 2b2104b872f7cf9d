package config

const (
	// DefaultProfile is used when no profile is requested.
	DefaultProfile = "minimal"

	// DefaultSeed is the expression the source document starts with.
	DefaultSeed = "Bits<1>"

	defaultZoom    = 1
	defaultMaxZoom = 4

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1
)

// defaults returns the default configuration values. They are loaded first
// and can be overridden by the profile, the config file, env vars and flags.
func defaults() map[string]any {
	return map[string]any{
		"profile": DefaultProfile,

		"log.level":  "info",
		"log.format": "json",
		"log.output": "discard",

		"pipeline.seed":     DefaultSeed,
		"pipeline.on_error": "preserve-output",
		"pipeline.debounce": "0s",
		"pipeline.async":    false,

		"engine.error_marker":                    "Error",
		"engine.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"engine.circuit_breaker.timeout":         "10s",
		"engine.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,

		"graph.zoom_enabled": true,
		"graph.zoom":         defaultZoom,
		"graph.fallback":     "last-good",

		"telemetry.enabled":      false,
		"telemetry.output":       "riverplay-telemetry.log",
		"telemetry.service_name": "riverplay",
	}
}

// profiles maps each built-in profile to the keys it overrides. "minimal"
// freezes derived views on invalid input and syncs on every keystroke;
// "hardened" blanks the graph, reports the diagnostic and debounces bursts.
func profiles() map[string]map[string]any {
	return map[string]map[string]any{
		"minimal": {},
		"hardened": {
			"pipeline.on_error": "clear-graph-and-report",
			"pipeline.debounce": "100ms",
			"pipeline.async":    true,
			"graph.fallback":    "empty",
		},
	}
}

// Profiles returns the names of the built-in profiles.
func Profiles() []string {
	return []string{"minimal", "hardened"}
}
