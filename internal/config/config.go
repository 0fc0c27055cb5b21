package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/analogrelay/optbridge"
)

// ErrInvalidConfig is returned when configuration is invalid
var ErrInvalidConfig = errors.New("invalid configuration")

// Producer names accepted by the producer setting.
const (
	ProducerStatic = "static"
	ProducerNative = "native"
)

// Config represents the optbridge configuration
type Config struct {
	Fallback int32         `yaml:"fallback"`
	Producer string        `yaml:"producer"`
	Logging  LoggingConfig `yaml:"logging"`
	Bench    BenchConfig   `yaml:"bench"`
}

// LoggingConfig represents logging settings
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// BenchConfig represents bench command settings
type BenchConfig struct {
	Workers  int           `yaml:"workers"`
	Duration time.Duration `yaml:"duration"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Fallback: optbridge.DefaultReserveValue,
		Producer: ProducerStatic,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Bench: BenchConfig{
			Workers:  4,
			Duration: 10 * time.Second,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (if
// any), environment variables and finally any flags explicitly set in fs.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		if err := loadFromFile(path, config); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}

	if fs != nil {
		if err := applyFlagOverrides(fs, config); err != nil {
			return nil, err
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func loadFromFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, config)
}

func applyEnvOverrides(config *Config) error {
	if fb := os.Getenv("OPTBRIDGE_FALLBACK"); fb != "" {
		v, err := strconv.ParseInt(fb, 10, 32)
		if err != nil {
			return fmt.Errorf("%w: OPTBRIDGE_FALLBACK: %v", ErrInvalidConfig, err)
		}
		config.Fallback = int32(v)
	}

	if p := os.Getenv("OPTBRIDGE_PRODUCER"); p != "" {
		config.Producer = p
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		config.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		config.Logging.Format = logFormat
	}
	return nil
}

// applyFlagOverrides copies only flags the user actually set, so flag
// defaults never mask file or environment values.
func applyFlagOverrides(fs *pflag.FlagSet, config *Config) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "fallback":
			config.Fallback, err = fs.GetInt32("fallback")
		case "producer":
			config.Producer, err = fs.GetString("producer")
		case "log-level":
			config.Logging.Level, err = fs.GetString("log-level")
		case "log-format":
			config.Logging.Format, err = fs.GetString("log-format")
		case "workers":
			config.Bench.Workers, err = fs.GetInt("workers")
		case "duration":
			config.Bench.Duration, err = fs.GetDuration("duration")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to read flags: %w", err)
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Producer {
	case ProducerStatic, ProducerNative:
	default:
		return fmt.Errorf("%w: %w: %q", ErrInvalidConfig, optbridge.ErrUnknownProducer, c.Producer)
	}

	if !isValidLogLevel(c.Logging.Level) {
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.Logging.Level)
	}

	if c.Bench.Workers < 1 {
		return fmt.Errorf("%w: bench workers must be at least 1", ErrInvalidConfig)
	}

	if c.Bench.Duration <= 0 {
		return fmt.Errorf("%w: bench duration must be positive", ErrInvalidConfig)
	}

	return nil
}

func isValidLogLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{Fallback: %d, Producer: %s, LogLevel: %s}",
		c.Fallback, c.Producer, c.Logging.Level)
}
