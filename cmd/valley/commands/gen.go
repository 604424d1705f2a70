package commands

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/valley/pkg/config"
	"github.com/Sumatoshi-tech/valley/pkg/testcase"
)

// GenCommand holds flags for the gen command.
type GenCommand struct {
	configPath string
	output     string
	size       int
	ops        int
	maxHeight  int
	seed       uint64
	json       bool

	now func() time.Time
}

// NewGenCommand creates the gen command.
func NewGenCommand() *cobra.Command {
	gc := &GenCommand{now: time.Now}

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a random case with reference results",
		Long: `Generate a random landscape and operation sequence. Expected results come
from a naive reference model, so the case can be replayed with "valley run".
Output goes to stdout unless --output is set; an output name picks its
format the same way run reads it (.json, optional .lz4).`,
		Args: cobra.NoArgs,
		RunE: gc.run,
	}

	cmd.Flags().StringVar(&gc.configPath, "config", "", "Config file (default: .valley.yaml)")
	cmd.Flags().IntVar(&gc.size, "size", config.DefaultGenSize, "Number of initial heights")
	cmd.Flags().IntVar(&gc.ops, "ops", config.DefaultGenOps, "Number of operations")
	cmd.Flags().IntVar(&gc.maxHeight, "max-height", config.DefaultGenHeight, "Heights are drawn from [0, max-height)")
	cmd.Flags().Uint64Var(&gc.seed, "seed", 0, "Random seed (default: current time)")
	cmd.Flags().BoolVar(&gc.json, "json", false, "Write JSON to stdout instead of the text format")
	cmd.Flags().StringVarP(&gc.output, "output", "o", "", "Output file")

	return cmd
}

func (gc *GenCommand) run(cmd *cobra.Command, _ []string) error {
	params, err := gc.params(cmd)
	if err != nil {
		return err
	}

	seed := gc.seed
	if !cmd.Flags().Changed("seed") {
		seed = uint64(gc.now().UnixNano()) //nolint:gosec // sign is irrelevant for a seed
	}

	c := testcase.Generate(rand.New(rand.NewPCG(seed, seed)), params)

	if flagBool(cmd, FlagVerbose) {
		fmt.Fprintf(cmd.ErrOrStderr(), "seed=%d size=%d ops=%d results=%d\n",
			seed, len(c.Landscape), len(c.Operations), len(c.Expected))
	}

	if gc.output != "" {
		return testcase.SaveFile(gc.output, c)
	}

	if gc.json {
		return testcase.EncodeJSON(cmd.OutOrStdout(), c)
	}

	return testcase.Encode(cmd.OutOrStdout(), c)
}

func (gc *GenCommand) params(cmd *cobra.Command) (testcase.GenerateParams, error) {
	cfg, err := config.LoadConfig(gc.configPath)
	if err != nil {
		return testcase.GenerateParams{}, err
	}

	flags := cmd.Flags()

	if flags.Changed("size") {
		cfg.Generate.Size = gc.size
	}

	if flags.Changed("ops") {
		cfg.Generate.Ops = gc.ops
	}

	if flags.Changed("max-height") {
		cfg.Generate.MaxHeight = gc.maxHeight
	}

	err = config.Validate(cfg)
	if err != nil {
		return testcase.GenerateParams{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return testcase.GenerateParams{
		Size:      cfg.Generate.Size,
		Ops:       cfg.Generate.Ops,
		MaxHeight: cfg.Generate.MaxHeight,
	}, nil
}
