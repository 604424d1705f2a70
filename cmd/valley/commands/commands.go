// Package commands implements CLI command handlers for valley.
package commands

import (
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/valley/pkg/config"
	"github.com/Sumatoshi-tech/valley/pkg/observability"
	"github.com/Sumatoshi-tech/valley/pkg/version"
)

// Persistent flag names registered on the root command.
const (
	FlagVerbose = "verbose"
	FlagQuiet   = "quiet"
)

type observabilityInit func(observability.Config) (observability.Providers, error)

// flagBool reads a boolean flag that may be absent when a command runs
// without its root.
func flagBool(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)

	return err == nil && v
}

// observabilityConfig maps loaded configuration onto the telemetry setup.
// --verbose lowers the level to debug; --quiet raises it to error.
func observabilityConfig(cmd *cobra.Command, cfg *config.Config) (observability.Config, error) {
	level, err := cfg.Logging.SlogLevel()
	if err != nil {
		return observability.Config{}, err
	}

	switch {
	case flagBool(cmd, FlagVerbose):
		level = slog.LevelDebug
	case flagBool(cmd, FlagQuiet):
		level = slog.LevelError
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.LogOutput = cmd.ErrOrStderr()
	obsCfg.LogLevel = level
	obsCfg.LogJSON = cfg.Logging.JSON
	obsCfg.Environment = cfg.Observability.Environment
	obsCfg.OTLPEndpoint = cfg.Observability.OTLPEndpoint
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(cfg.Observability.OTLPHeaders)
	obsCfg.OTLPInsecure = cfg.Observability.OTLPInsecure
	obsCfg.SampleRatio = cfg.Observability.SampleRatio
	obsCfg.MetricsFile = cfg.Observability.MetricsFile

	return obsCfg, nil
}

// applyColor forces colour on or off; auto leaves the terminal detection
// done by the color package.
func applyColor(mode string) {
	switch mode {
	case config.ColorAlways:
		color.NoColor = false //nolint:reassign // intentional override of library global
	case config.ColorNever:
		color.NoColor = true //nolint:reassign // intentional override of library global
	}
}
