package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/valley/pkg/config"
	"github.com/Sumatoshi-tech/valley/pkg/harness"
	"github.com/Sumatoshi-tech/valley/pkg/observability"
	"github.com/Sumatoshi-tech/valley/pkg/report"
)

// RunCommand holds flags and dependencies for the run command.
type RunCommand struct {
	configPath  string
	format      string
	chartPath   string
	metricsFile string
	tolerance   float64
	showCase    bool
	diff        bool

	initObs observabilityInit
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	return newRunCommandWithDeps(observability.Init)
}

func newRunCommandWithDeps(initObs observabilityInit) *cobra.Command {
	rc := &RunCommand{initObs: initObs}

	cmd := &cobra.Command{
		Use:   "run [flags] <case>...",
		Short: "Replay case files and report mismatches",
		Long: `Replay each case file against a fresh traveler and compare every produced
value with the expected results. Files ending in .json are read as JSON,
anything else as the whitespace-separated text format; a trailing .lz4 is
decompressed first. Exits non-zero when any case fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: rc.run,
	}

	cmd.Flags().StringVar(&rc.configPath, "config", "", "Config file (default: .valley.yaml)")
	cmd.Flags().StringVar(&rc.format, "format", config.DefaultFormat, "Output format: text, json, yaml")
	cmd.Flags().Float64Var(&rc.tolerance, "tolerance", config.DefaultTolerance, "Largest accepted |got-expected| (0 = exact)")
	cmd.Flags().BoolVar(&rc.showCase, "show-case", config.DefaultShowCase, "Print each case before its verdict")
	cmd.Flags().BoolVar(&rc.diff, "diff", config.DefaultDiff, "Print an expected/got diff for failed cases")
	cmd.Flags().StringVar(&rc.chartPath, "chart", "", "Write an HTML chart of expected and produced results")
	cmd.Flags().StringVar(&rc.metricsFile, "metrics-file", "", "Write harness metrics in Prometheus text format on exit")

	return cmd
}

func (rc *RunCommand) run(cmd *cobra.Command, args []string) (err error) {
	cfg, err := rc.loadConfig(cmd)
	if err != nil {
		return err
	}

	obsCfg, err := observabilityConfig(cmd, cfg)
	if err != nil {
		return err
	}

	providers, err := rc.initObs(obsCfg)
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	defer func() {
		err = errors.Join(err, providers.Shutdown(context.Background()))
	}()

	applyColor(cfg.Report.Color)

	metrics, err := observability.NewHarnessMetrics(providers.Meter)
	if err != nil {
		return err
	}

	ctx, span := providers.Tracer.Start(cmd.Context(), "valley.run",
		trace.WithAttributes(attribute.Int("run.cases", len(args))))
	defer span.End()

	runner := harness.NewRunner(
		harness.WithLogger(providers.Logger),
		harness.WithTracer(providers.Tracer),
		harness.WithMetrics(metrics),
		harness.WithTolerance(cfg.Harness.Tolerance),
	)

	providers.Logger.DebugContext(ctx, "replaying cases",
		"files", len(args), "tolerance", cfg.Harness.Tolerance, "format", cfg.Report.Format)

	outcomes, err := runner.RunFiles(ctx, args)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())

		return err
	}

	err = rc.render(cmd, cfg, outcomes)
	if err != nil {
		return err
	}

	err = harness.Check(outcomes)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}

	return err
}

func (rc *RunCommand) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(rc.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	if flags.Changed("format") {
		cfg.Report.Format = rc.format
	}

	if flags.Changed("tolerance") {
		cfg.Harness.Tolerance = rc.tolerance
	}

	if flags.Changed("show-case") {
		cfg.Harness.ShowCase = rc.showCase
	}

	if flags.Changed("diff") {
		cfg.Harness.Diff = rc.diff
	}

	if flags.Changed("metrics-file") {
		cfg.Observability.MetricsFile = rc.metricsFile
	}

	err = config.Validate(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (rc *RunCommand) render(cmd *cobra.Command, cfg *config.Config, outcomes []*harness.Outcome) error {
	if !flagBool(cmd, FlagQuiet) {
		err := report.Write(cmd.OutOrStdout(), cfg.Report.Format, outcomes, report.TextOptions{
			ShowCase: cfg.Harness.ShowCase,
			Diff:     cfg.Harness.Diff,
		})
		if err != nil {
			return err
		}
	}

	if rc.chartPath == "" {
		return nil
	}

	return writeChart(rc.chartPath, outcomes)
}

func writeChart(path string, outcomes []*harness.Outcome) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart: %w", err)
	}

	defer func() {
		err = errors.Join(err, f.Close())
	}()

	return report.WriteChart(f, outcomes)
}
