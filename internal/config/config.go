// Package config loads CLI settings from a YAML file, TASKS_* environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	OutputText = "text"
	OutputJSON = "json"
)

const (
	defaultLogLevel = "warn"
	defaultOutput   = OutputText
	defaultFirstID  = 1
)

type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// Output selects how results are printed: text or json.
	Output string `mapstructure:"output" yaml:"output"`

	// FirstID is the first id handed out by a fresh tracker.
	FirstID int `mapstructure:"first_id" yaml:"first_id"`
}

// DefaultPath returns ~/.config/tasks/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "tasks", "config.yaml")
}

func Default() *Config {
	return &Config{
		LogLevel: defaultLogLevel,
		Output:   defaultOutput,
		FirstID:  defaultFirstID,
	}
}

// Load reads the config at path. A missing file yields defaults. Flags that
// were set on the command line override file and environment values; flags
// may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("tasks")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("output", defaultOutput)
	v.SetDefault("first_id", defaultFirstID)

	if flags != nil {
		for key, name := range map[string]string{
			"log_level": "log-level",
			"output":    "output",
		} {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		var pathErr *os.PathError
		if !errors.As(err, &notFound) && !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.Output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("unknown output %q (want %s or %s)", c.Output, OutputText, OutputJSON)
	}
	if c.FirstID < 1 {
		return fmt.Errorf("first_id must be positive, got %d", c.FirstID)
	}
	return nil
}

// Level parses LogLevel into a slog level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return level, nil
}
