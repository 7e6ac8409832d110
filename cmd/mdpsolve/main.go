package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/CodeStranger-Fred/mdpsolve/internal/config"
	"github.com/CodeStranger-Fred/mdpsolve/mdp"
	"github.com/CodeStranger-Fred/mdpsolve/mdpfile"
	"github.com/CodeStranger-Fred/mdpsolve/render"
	"github.com/CodeStranger-Fred/mdpsolve/scenarios"
)

var (
	cfg        *config.Config
	configFile string
	logger     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mdpsolve",
	Short: "Finite MDP planner",
	Long: `mdpsolve computes optimal policies for finite Markov decision processes
by value iteration, either until convergence or for a fixed horizon.

Definitions come from a YAML file (--file) or a built-in scenario (--scenario).`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	cfg = config.Default()

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file (yaml, json or toml)")

	// Input
	flags.StringVar(&cfg.File, "file", cfg.File, "MDP definition file")
	flags.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, fmt.Sprintf("Built-in scenario %v", scenarios.Names()))

	// Convergence mode
	flags.Float64Var(&cfg.Epsilon, "epsilon", cfg.Epsilon, "Convergence threshold on the per-sweep value change")
	flags.Float64Var(&cfg.Discount, "discount", cfg.Discount, "Override the definition's discount factor (negative keeps it)")
	flags.StringVar(&cfg.Discipline, "discipline", cfg.Discipline, "Sweep update discipline (in-place, synchronous)")
	flags.IntVar(&cfg.MaxSweeps, "max-sweeps", cfg.MaxSweeps, "Give up after this many sweeps (0 for unlimited)")

	// Fixed-horizon mode
	flags.Float64Var(&cfg.Gamma, "gamma", cfg.Gamma, "Discount factor for the horizon solve (negative uses the definition's)")
	flags.IntVar(&cfg.Iterations, "iterations", cfg.Iterations, "Number of horizon iterations")
	flags.StringVar(&cfg.Chart, "chart", cfg.Chart, "Write an HTML chart of the value trajectory to this path")

	// Output
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flags.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Disable colored output")

	// Bind flags to viper for config file and environment variable support
	for _, name := range []string{"file", "scenario", "epsilon", "discount", "discipline", "max-sweeps",
		"gamma", "iterations", "chart", "log-level", "no-color"} {
		viper.BindPFlag(strings.ReplaceAll(name, "-", "_"), flags.Lookup(name))
	}
	viper.SetEnvPrefix("MDPSOLVE")
	viper.AutomaticEnv()

	rootCmd.AddCommand(convergeCmd, horizonCmd, demoCmd, validateCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := cfg.SlogLevel()
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

// load resolves the configured definition and applies the discount override.
func load() (*mdp.MDP, error) {
	var (
		m   *mdp.MDP
		err error
	)
	if cfg.File != "" {
		m, err = mdpfile.Load(cfg.File)
	} else {
		m, err = scenarios.Lookup(cfg.Scenario)
	}
	if err != nil {
		return nil, err
	}
	if cfg.Discount >= 0 {
		return m.WithDiscount(cfg.Discount)
	}
	return m, nil
}

func newPrinter() *render.Printer {
	return render.NewPrinter(os.Stdout, !cfg.NoColor)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
