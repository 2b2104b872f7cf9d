package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const envPrefix = "RIVERPLAY_"

// flagKeys maps command-line flag names to koanf keys. Flags not listed here
// are not configuration (e.g. --config, --profile).
var flagKeys = map[string]string{
	"seed":      "pipeline.seed",
	"on-error":  "pipeline.on_error",
	"debounce":  "pipeline.debounce",
	"async":     "pipeline.async",
	"log-level": "log.level",
	"log-file":  "log.output",
	"zoom":      "graph.zoom",
	"no-zoom":   "graph.zoom_enabled",
	"telemetry": "telemetry.enabled",
}

// Option configures the Load function.
type Option func(*loadOptions)

type loadOptions struct {
	configFile string
	flags      *pflag.FlagSet
}

// WithConfigFile layers the YAML file at path over the profile.
func WithConfigFile(path string) Option {
	return func(o *loadOptions) {
		o.configFile = path
	}
}

// WithFlags layers the explicitly set flags of fs over everything else.
func WithFlags(fs *pflag.FlagSet) Option {
	return func(o *loadOptions) {
		o.flags = fs
	}
}

// Load reads configuration using a 5-layer hierarchy (highest precedence last):
//
//  1. Built-in defaults
//  2. Built-in profile overrides ("minimal" or "hardened")
//  3. Config file (WithConfigFile), if given
//  4. Environment variables (RIVERPLAY_ prefix)
//  5. Explicitly set flags (WithFlags)
//
// Environment variable mapping uses key matching against loaded config keys
// to resolve ambiguity between nesting separators and field-internal underscores:
//
//	RIVERPLAY_PIPELINE_ON_ERROR                    -> pipeline.on_error
//	RIVERPLAY_ENGINE_CIRCUIT_BREAKER_MAX_FAILURES  -> engine.circuit_breaker.max_failures
func Load(profile string, opts ...Option) (*Config, error) {
	if profile == "" {
		profile = DefaultProfile
	}
	overrides, ok := profiles()[profile]
	if !ok {
		return nil, fmt.Errorf("unknown profile %q, want one of: %s", profile, strings.Join(Profiles(), ", "))
	}

	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	k := koanf.New(".")

	// Layer 1: Defaults.
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// Layer 2: Profile overrides.
	if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
		return nil, fmt.Errorf("loading profile %s: %w", profile, err)
	}

	// Layer 3: Config file.
	if o.configFile != "" {
		if err := k.Load(file.Provider(o.configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", o.configFile, err)
		}
	}

	// Layer 4: Environment variables with RIVERPLAY_ prefix.
	envLookup := buildEnvLookup(k.Keys())

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.TrimPrefix(key, envPrefix)
			key = strings.ToLower(key)

			if koanfKey, ok := envLookup[key]; ok {
				return koanfKey, value
			}

			// Fallback: simple underscore-to-dot replacement.
			return strings.ReplaceAll(key, "_", "."), value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	// Layer 5: Flags the user actually set.
	if o.flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(o.flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			val := posflag.FlagVal(o.flags, f)
			if f.Name == "no-zoom" {
				if b, ok := val.(bool); ok {
					val = !b
				}
			}
			return key, val
		}), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// The profile is chosen by the caller; later layers cannot rename it.
	cfg.Profile = profile

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// buildEnvLookup creates a reverse mapping from env-style keys to koanf dotted keys.
// For each koanf key like "pipeline.on_error", the env form "pipeline_on_error"
// is computed by replacing dots with underscores.
func buildEnvLookup(keys []string) map[string]string {
	lookup := make(map[string]string, len(keys))
	for _, key := range keys {
		envKey := strings.ReplaceAll(key, ".", "_")
		lookup[envKey] = key
	}
	return lookup
}
