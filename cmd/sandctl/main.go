// sandctl is the headless companion to the GUI: it runs the sand world
// without a window, benchmarks stepping throughput and manages world
// snapshots.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sandgrid/internal/sims/sand"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	root := &cobra.Command{
		Use:           "sandctl",
		Short:         "Headless tooling for the sandgrid simulation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newRunCmd(logger),
		newBenchCmd(logger),
		newSnapshotCmd(logger),
	)
	if err := root.Execute(); err != nil {
		logger.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}

// worldFlags holds the flags shared by every command that builds a world.
type worldFlags struct {
	width     int
	height    int
	seed      int64
	scenario  string
	overrides []string
}

func (f *worldFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.width, "width", 0, "world width (0 keeps the scenario/default value)")
	cmd.Flags().IntVar(&f.height, "height", 0, "world height (0 keeps the scenario/default value)")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "seed (0 keeps the scenario/default value)")
	cmd.Flags().StringVar(&f.scenario, "scenario", "", "path to a JSON scenario file")
	cmd.Flags().StringArrayVar(&f.overrides, "set", nil, "parameter override in key=value form (repeatable)")
}

// config resolves the layered configuration: defaults, then the scenario
// file, then explicit flags and --set overrides.
func (f *worldFlags) config() (sand.Config, error) {
	cfg := sand.DefaultConfig()
	if f.scenario != "" {
		loaded, err := sand.LoadScenario(f.scenario)
		if err != nil {
			return sand.Config{}, err
		}
		cfg = loaded
	}
	if f.width > 0 {
		cfg.Width = f.width
	}
	if f.height > 0 {
		cfg.Height = f.height
	}
	if f.seed != 0 {
		cfg.Seed = f.seed
	}
	for _, kv := range f.overrides {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			return sand.Config{}, errors.Errorf("malformed --set %q, want key=value", kv)
		}
		if !cfg.Apply(parts[0], parts[1]) {
			return sand.Config{}, errors.Errorf("unknown or invalid --set %q", kv)
		}
	}
	return cfg, nil
}

// build constructs and resets a world from the resolved configuration.
func (f *worldFlags) build() (*sand.World, error) {
	cfg, err := f.config()
	if err != nil {
		return nil, err
	}
	world := sand.NewWithConfig(cfg)
	world.Reset(0)
	return world, nil
}
