package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/valley/pkg/config"
	"github.com/Sumatoshi-tech/valley/pkg/report"
)

const (
	testTolerance = 1e-9
	testGenSize   = 40
	testGenOps    = 400
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".valley.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfig_EmptyFile_UsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.InDelta(t, config.DefaultTolerance, cfg.Harness.Tolerance, 0)
	assert.Equal(t, config.DefaultShowCase, cfg.Harness.ShowCase)
	assert.Equal(t, config.DefaultDiff, cfg.Harness.Diff)
	assert.Equal(t, config.DefaultFormat, cfg.Report.Format)
	assert.Equal(t, config.DefaultColor, cfg.Report.Color)
	assert.Equal(t, config.DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, config.DefaultLogJSON, cfg.Logging.JSON)
	assert.Empty(t, cfg.Observability.OTLPEndpoint)
	assert.Empty(t, cfg.Observability.MetricsFile)
	assert.Equal(t, config.DefaultGenSize, cfg.Generate.Size)
	assert.Equal(t, config.DefaultGenOps, cfg.Generate.Ops)
	assert.Equal(t, config.DefaultGenHeight, cfg.Generate.MaxHeight)
}

func TestLoadConfig_ValidFile_Unmarshals(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, `harness:
  tolerance: 1e-9
  show_case: true
  diff: false
report:
  format: yaml
  color: never
logging:
  level: debug
  json: true
observability:
  otlp_endpoint: localhost:4317
  otlp_insecure: true
  metrics_file: /tmp/valley.prom
  sample_ratio: 0.25
generate:
  size: 40
  ops: 400
`))
	require.NoError(t, err)

	assert.InDelta(t, testTolerance, cfg.Harness.Tolerance, 1e-15)
	assert.True(t, cfg.Harness.ShowCase)
	assert.False(t, cfg.Harness.Diff)
	assert.Equal(t, report.FormatYAML, cfg.Report.Format)
	assert.Equal(t, config.ColorNever, cfg.Report.Color)
	assert.True(t, cfg.Logging.JSON)
	assert.Equal(t, "localhost:4317", cfg.Observability.OTLPEndpoint)
	assert.True(t, cfg.Observability.OTLPInsecure)
	assert.Equal(t, "/tmp/valley.prom", cfg.Observability.MetricsFile)
	assert.InDelta(t, 0.25, cfg.Observability.SampleRatio, 1e-9)
	assert.Equal(t, testGenSize, cfg.Generate.Size)
	assert.Equal(t, testGenOps, cfg.Generate.Ops)
	assert.Equal(t, config.DefaultGenHeight, cfg.Generate.MaxHeight)

	level, err := cfg.Logging.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "negative_tolerance", content: "harness:\n  tolerance: -1\n", wantErr: config.ErrInvalidTolerance},
		{name: "unknown_format", content: "report:\n  format: xml\n", wantErr: config.ErrInvalidFormat},
		{name: "unknown_color", content: "report:\n  color: sometimes\n", wantErr: config.ErrInvalidColor},
		{name: "unknown_level", content: "logging:\n  level: loud\n", wantErr: config.ErrInvalidLogLevel},
		{name: "sample_ratio", content: "observability:\n  sample_ratio: 2\n", wantErr: config.ErrInvalidSampling},
		{name: "max_height", content: "generate:\n  max_height: 0\n", wantErr: config.ErrInvalidGenerate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.LoadConfig(writeConfig(t, tt.content))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(writeConfig(t, "harness: [\n"))
	require.Error(t, err)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("VALLEY_REPORT_FORMAT", "json")
	t.Setenv("VALLEY_HARNESS_TOLERANCE", "0.5")

	cfg, err := config.LoadConfig(writeConfig(t, "report:\n  format: yaml\n"))
	require.NoError(t, err)

	assert.Equal(t, report.FormatJSON, cfg.Report.Format)
	assert.InDelta(t, 0.5, cfg.Harness.Tolerance, 1e-9)
}

func TestValidate_AcceptsEveryReportFormat(t *testing.T) {
	t.Parallel()

	for _, format := range []string{report.FormatText, report.FormatJSON, report.FormatYAML} {
		cfg, err := config.LoadConfig(writeConfig(t, "report:\n  format: "+format+"\n"))
		require.NoError(t, err, format)
		assert.Equal(t, format, cfg.Report.Format)
	}

	_, err := config.LoadConfig(writeConfig(t, "report:\n  format: xml\n"))
	require.ErrorIs(t, err, config.ErrInvalidFormat)
}
