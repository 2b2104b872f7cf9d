package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/jsamuelsen11/riverplay/internal/platform/config"
)

func TestLoad_MinimalProfile(t *testing.T) {
	cfg, err := config.Load("minimal")
	if err != nil {
		t.Fatalf("Load(\"minimal\") error: %v", err)
	}

	if cfg.Profile != "minimal" {
		t.Errorf("Profile = %q, want \"minimal\"", cfg.Profile)
	}
	if cfg.Pipeline.OnError != "preserve-output" {
		t.Errorf("Pipeline.OnError = %q, want \"preserve-output\"", cfg.Pipeline.OnError)
	}
	if cfg.Pipeline.Debounce != 0 {
		t.Errorf("Pipeline.Debounce = %v, want 0", cfg.Pipeline.Debounce)
	}
	if cfg.Pipeline.Async {
		t.Error("Pipeline.Async = true, want false for minimal")
	}
	if cfg.Pipeline.Seed != "Bits<1>" {
		t.Errorf("Pipeline.Seed = %q, want \"Bits<1>\"", cfg.Pipeline.Seed)
	}
	if cfg.Engine.ErrorMarker != "Error" {
		t.Errorf("Engine.ErrorMarker = %q, want \"Error\"", cfg.Engine.ErrorMarker)
	}
}

func TestLoad_HardenedProfile(t *testing.T) {
	cfg, err := config.Load("hardened")
	if err != nil {
		t.Fatalf("Load(\"hardened\") error: %v", err)
	}

	if cfg.Pipeline.OnError != "clear-graph-and-report" {
		t.Errorf("Pipeline.OnError = %q, want \"clear-graph-and-report\"", cfg.Pipeline.OnError)
	}
	if cfg.Pipeline.Debounce != 100*time.Millisecond {
		t.Errorf("Pipeline.Debounce = %v, want 100ms", cfg.Pipeline.Debounce)
	}
	if !cfg.Pipeline.Async {
		t.Error("Pipeline.Async = false, want true for hardened")
	}
	if cfg.Graph.Fallback != "empty" {
		t.Errorf("Graph.Fallback = %q, want \"empty\"", cfg.Graph.Fallback)
	}
	// Inherited from defaults.
	if cfg.Engine.CircuitBreaker.MaxFailures != 5 {
		t.Errorf("Engine.CircuitBreaker.MaxFailures = %d, want 5 (from defaults)", cfg.Engine.CircuitBreaker.MaxFailures)
	}
}

func TestLoad_EmptyProfileUsesDefault(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.Profile != config.DefaultProfile {
		t.Errorf("Profile = %q, want %q", cfg.Profile, config.DefaultProfile)
	}
}

func TestLoad_UnknownProfile(t *testing.T) {
	if _, err := config.Load("nonexistent"); err == nil {
		t.Fatal("Load(\"nonexistent\") returned nil error, want error")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "riverplay.yaml")
	content := "pipeline:\n  seed: \"Group<Bits<4>, Bits<8>>\"\n  debounce: 75ms\ngraph:\n  zoom: 2\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	cfg, err := config.Load("minimal", config.WithConfigFile(path))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Pipeline.Seed != "Group<Bits<4>, Bits<8>>" {
		t.Errorf("Pipeline.Seed = %q, want the file value", cfg.Pipeline.Seed)
	}
	if cfg.Pipeline.Debounce != 75*time.Millisecond {
		t.Errorf("Pipeline.Debounce = %v, want 75ms", cfg.Pipeline.Debounce)
	}
	if cfg.Graph.Zoom != 2 {
		t.Errorf("Graph.Zoom = %d, want 2", cfg.Graph.Zoom)
	}
}

func TestLoad_TelemetryEnabledFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "riverplay.yaml")
	out := filepath.Join(dir, "otel.json")
	content := "telemetry:\n  enabled: true\n  output: " + out + "\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	// The stdout exporter is implied; no exporter key is needed.
	cfg, err := config.Load("minimal", config.WithConfigFile(path))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !cfg.Telemetry.Enabled || cfg.Telemetry.Output != out {
		t.Errorf("Telemetry = %+v, want enabled with output %q", cfg.Telemetry, out)
	}
	if err := cfg.ValidateTerminal(); err != nil {
		t.Errorf("ValidateTerminal() error = %v, want nil for a file output", err)
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := config.Load("minimal", config.WithConfigFile(filepath.Join(t.TempDir(), "missing.yaml")))
	if err == nil {
		t.Fatal("Load with missing config file returned nil error, want error")
	}
}

func TestLoad_EnvOverrideSnakeCaseKey(t *testing.T) {
	t.Setenv("RIVERPLAY_PIPELINE_ON_ERROR", "clear-graph-and-report")

	cfg, err := config.Load("minimal")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Pipeline.OnError != "clear-graph-and-report" {
		t.Errorf("Pipeline.OnError = %q, want env override", cfg.Pipeline.OnError)
	}
}

func TestLoad_EnvOverrideDeeplyNestedKey(t *testing.T) {
	t.Setenv("RIVERPLAY_ENGINE_CIRCUIT_BREAKER_MAX_FAILURES", "9")

	cfg, err := config.Load("minimal")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Engine.CircuitBreaker.MaxFailures != 9 {
		t.Errorf("Engine.CircuitBreaker.MaxFailures = %d, want 9 (env override)", cfg.Engine.CircuitBreaker.MaxFailures)
	}
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("RIVERPLAY_PIPELINE_DEBOUNCE", "20ms")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Duration("debounce", 0, "")
	fs.Bool("no-zoom", false, "")
	fs.String("seed", "", "")
	if err := fs.Parse([]string{"--debounce=250ms", "--no-zoom"}); err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	cfg, err := config.Load("minimal", config.WithFlags(fs))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Pipeline.Debounce != 250*time.Millisecond {
		t.Errorf("Pipeline.Debounce = %v, want 250ms (flag beats env)", cfg.Pipeline.Debounce)
	}
	if cfg.Graph.ZoomEnabled {
		t.Error("Graph.ZoomEnabled = true, want false after --no-zoom")
	}
	if cfg.Pipeline.Seed != "Bits<1>" {
		t.Errorf("Pipeline.Seed = %q, want default when flag not set", cfg.Pipeline.Seed)
	}
}

func TestValidate_InvalidPolicy(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Pipeline.OnError = "ignore"

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for unknown policy")
	}
}

func TestValidate_NegativeDebounce(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Pipeline.Debounce = -time.Millisecond

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for negative debounce")
	}
}

func TestValidateTerminal_StderrOutputs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*config.Config)
		wantErr string
	}{
		{
			name:   "discard",
			modify: func(*config.Config) {},
		},
		{
			name:    "log to stderr",
			modify:  func(c *config.Config) { c.Log.Output = "stderr" },
			wantErr: "log.output",
		},
		{
			name: "telemetry to stderr",
			modify: func(c *config.Config) {
				c.Telemetry.Enabled = true
				c.Telemetry.Output = "stderr"
			},
			wantErr: "telemetry.output",
		},
		{
			name: "disabled telemetry ignored",
			modify: func(c *config.Config) {
				c.Telemetry.Output = "stderr"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validBaseConfig()
			tt.modify(cfg)

			// Commands without a terminal UI may log to stderr.
			if err := cfg.Validate(); err != nil {
				t.Fatalf("Validate() error = %v, want nil", err)
			}

			err := cfg.ValidateTerminal()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateTerminal() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateTerminal() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ZoomOutOfRange(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Graph.Zoom = 9

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for zoom=9")
	}
}

func TestValidate_EmptyErrorMarker(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Engine.ErrorMarker = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for empty marker")
	}
}

func TestValidate_TelemetryWithoutOutput(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	cfg.Telemetry.Enabled = true
	cfg.Telemetry.Output = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for telemetry without output")
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	t.Parallel()

	cfg := validBaseConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned error for valid config: %v", err)
	}
}

// validBaseConfig returns a Config with all fields set to valid values.
func validBaseConfig() *config.Config {
	return &config.Config{
		Profile: "minimal",
		Log: config.LogConfig{
			Level:  "info",
			Format: "json",
			Output: "discard",
		},
		Pipeline: config.PipelineConfig{
			Seed:    "Bits<1>",
			OnError: "preserve-output",
		},
		Engine: config.EngineConfig{
			ErrorMarker: "Error",
			CircuitBreaker: config.CircuitBreakerConfig{
				MaxFailures:   5,
				Timeout:       10 * time.Second,
				HalfOpenLimit: 1,
			},
		},
		Graph: config.GraphConfig{
			ZoomEnabled: true,
			Zoom:        1,
			Fallback:    "last-good",
		},
		Telemetry: config.TelemetryConfig{
			Enabled: false,
		},
	}
}
