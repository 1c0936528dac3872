// Package config provides configuration management for relaunch.
package config

import (
	"crypto/sha256"
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hostruntime/relaunch/envedit"
	"github.com/hostruntime/relaunch/observability"
)

// Config is the main configuration for relaunch.
type Config struct {
	// Preload names the dynamic-linker preload variable and its backup
	// counterpart.
	Preload PreloadConfig `yaml:"preload"`

	// Restart configures the in-place restart orchestrator.
	Restart RestartConfig `yaml:"restart"`

	// Runner configures external command execution.
	Runner RunnerConfig `yaml:"runner"`

	// Cleanup lists filename patterns for result file removal.
	Cleanup CleanupConfig `yaml:"cleanup"`

	// Telemetry configures OpenTelemetry integration.
	Telemetry observability.TelemetryConfig `yaml:"telemetry"`

	// Audit configures the audit log.
	Audit observability.AuditConfig `yaml:"audit"`
}

// PreloadConfig names the preload variable pair.
type PreloadConfig struct {
	Var       string `yaml:"var"`
	BackupVar string `yaml:"backup_var"`
}

// RestartConfig configures the restart orchestrator.
type RestartConfig struct {
	// ExtensionExpr is the interpreter expression invoking the
	// extension entry point in the relaunched image.
	ExtensionExpr string `yaml:"extension_expr"`

	// DebugLoggerExpr is the interpreter expression switching the
	// relaunched image to a debug-level console logger.
	DebugLoggerExpr string `yaml:"debug_logger_expr"`
}

// RunnerConfig configures command execution.
type RunnerConfig struct {
	DefaultTimeout Duration `yaml:"default_timeout"`
	RateLimit      float64  `yaml:"rate_limit"`
	RateBurst      int      `yaml:"rate_burst"`
}

// Duration is a time.Duration that unmarshals from YAML strings such as
// "30s" or "2m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("config: duration must be a string: %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("config: bad duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// CleanupConfig configures result file cleanup.
type CleanupConfig struct {
	Patterns []string `yaml:"patterns"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Preload: PreloadConfig{
			Var:       envedit.DefaultPreloadVar,
			BackupVar: envedit.DefaultPreloadBackupVar,
		},
		Runner: RunnerConfig{
			DefaultTimeout: Duration(30 * time.Second),
		},
		Cleanup: CleanupConfig{
			Patterns: []string{"*.tmp"},
		},
		Telemetry: observability.DefaultTelemetryConfig(),
		Audit:     observability.DefaultAuditConfig(),
	}
}

// Validate fills in zero values with defaults.
func (c *Config) Validate() error {
	if c.Preload.Var == "" {
		c.Preload.Var = envedit.DefaultPreloadVar
	}
	if c.Preload.BackupVar == "" {
		c.Preload.BackupVar = envedit.DefaultPreloadBackupVar
	}
	if c.Preload.Var == c.Preload.BackupVar {
		return fmt.Errorf("config: preload variable and backup must differ")
	}
	if c.Runner.DefaultTimeout <= 0 {
		c.Runner.DefaultTimeout = Duration(30 * time.Second)
	}
	if c.Runner.RateBurst < 0 {
		return fmt.Errorf("config: rate burst must not be negative")
	}
	return nil
}

// Loader loads configuration from a YAML file, skipping the parse when
// the file content is unchanged since the previous load.
type Loader struct {
	path     string
	mu       sync.Mutex
	config   *Config
	lastHash []byte
	lastLoad time.Time
}

// NewLoader creates a loader for the YAML file at path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads, parses, and validates the configuration file. Values not
// present in the file keep their defaults.
func (l *Loader) Load() (*Config, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	hash := sha256.Sum256(data)
	if l.config != nil && string(hash[:]) == string(l.lastHash) {
		return l.config, nil
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l.config = &cfg
	l.lastHash = hash[:]
	l.lastLoad = time.Now()
	return l.config, nil
}
