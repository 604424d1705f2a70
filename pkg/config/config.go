// Package config provides configuration loading and validation for valley.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/Sumatoshi-tech/valley/pkg/report"
)

// Sentinel validation errors.
var (
	ErrInvalidTolerance = errors.New("tolerance must be a non-negative number")
	ErrInvalidFormat    = errors.New("unknown report format")
	ErrInvalidColor     = errors.New("color must be auto, always or never")
	ErrInvalidLogLevel  = errors.New("unknown log level")
	ErrInvalidSampling  = errors.New("sample ratio must be within [0, 1]")
	ErrInvalidGenerate  = errors.New("generate sizes must be non-negative and max height positive")
)

// Colour modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Default configuration values.
const (
	DefaultTolerance = 0.0
	DefaultShowCase  = false
	DefaultDiff      = true
	DefaultFormat    = report.FormatText
	DefaultColor     = ColorAuto
	DefaultLogLevel  = "info"
	DefaultLogJSON   = false
	DefaultGenSize   = 16
	DefaultGenOps    = 32
	DefaultGenHeight = 100

	configName = ".valley"
	envPrefix  = "VALLEY"
)

// Config holds all configuration for valley.
type Config struct {
	Harness       HarnessConfig       `mapstructure:"harness"`
	Report        ReportConfig        `mapstructure:"report"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Observability ObservabilityConfig `mapstructure:"observability"`
	Generate      GenerateConfig      `mapstructure:"generate"`
}

// HarnessConfig controls how results are compared.
type HarnessConfig struct {
	// Tolerance is the largest accepted |got-expected|. Zero means exact.
	Tolerance float64 `mapstructure:"tolerance"`
	ShowCase  bool    `mapstructure:"show_case"`
	Diff      bool    `mapstructure:"diff"`
}

// ReportConfig controls output rendering.
type ReportConfig struct {
	Format string `mapstructure:"format"`
	Color  string `mapstructure:"color"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// ObservabilityConfig holds telemetry export settings.
type ObservabilityConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPHeaders  string  `mapstructure:"otlp_headers"`
	MetricsFile  string  `mapstructure:"metrics_file"`
	Environment  string  `mapstructure:"environment"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
}

// GenerateConfig holds defaults for random case generation.
type GenerateConfig struct {
	Size      int `mapstructure:"size"`
	Ops       int `mapstructure:"ops"`
	MaxHeight int `mapstructure:"max_height"`
}

// LoadConfig loads configuration from file and environment variables.
// An empty configPath searches for .valley.yaml in the working directory
// and $HOME/.config/valley; a missing file is not an error in that case.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("$HOME/.config/valley")
	}

	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperCfg.AutomaticEnv()

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := Validate(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("harness.tolerance", DefaultTolerance)
	viperCfg.SetDefault("harness.show_case", DefaultShowCase)
	viperCfg.SetDefault("harness.diff", DefaultDiff)

	viperCfg.SetDefault("report.format", DefaultFormat)
	viperCfg.SetDefault("report.color", DefaultColor)

	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.json", DefaultLogJSON)

	viperCfg.SetDefault("observability.otlp_endpoint", "")
	viperCfg.SetDefault("observability.otlp_headers", "")
	viperCfg.SetDefault("observability.otlp_insecure", false)
	viperCfg.SetDefault("observability.metrics_file", "")
	viperCfg.SetDefault("observability.environment", "")
	viperCfg.SetDefault("observability.sample_ratio", 0.0)

	viperCfg.SetDefault("generate.size", DefaultGenSize)
	viperCfg.SetDefault("generate.ops", DefaultGenOps)
	viperCfg.SetDefault("generate.max_height", DefaultGenHeight)
}

// Validate checks every field that has a restricted domain.
func Validate(config *Config) error {
	if config.Harness.Tolerance < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidTolerance, config.Harness.Tolerance)
	}

	switch config.Report.Format {
	case report.FormatText, report.FormatJSON, report.FormatYAML:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, config.Report.Format)
	}

	switch config.Report.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidColor, config.Report.Color)
	}

	if _, err := config.Logging.SlogLevel(); err != nil {
		return err
	}

	if config.Observability.SampleRatio < 0 || config.Observability.SampleRatio > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidSampling, config.Observability.SampleRatio)
	}

	gen := config.Generate
	if gen.Size < 0 || gen.Ops < 0 || gen.MaxHeight <= 0 {
		return fmt.Errorf("%w: size=%d ops=%d max_height=%d", ErrInvalidGenerate, gen.Size, gen.Ops, gen.MaxHeight)
	}

	return nil
}

// SlogLevel parses Level into an slog level.
func (l LoggingConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level

	err := level.UnmarshalText([]byte(l.Level))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, l.Level)
	}

	return level, nil
}
