package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/physworld/internal/config"
	"github.com/san-kum/physworld/internal/experiment"
	"github.com/san-kum/physworld/internal/logger"
	"github.com/san-kum/physworld/internal/sim"
	"github.com/san-kum/physworld/internal/viz"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	configFile string
	dt         float64
	duration   float64
	check      bool
	tolerance  float64
	plot       bool
	all        bool
	outFile    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "physworld",
		Short:         "rigid sphere physics simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive()
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a scenario and print its summary",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().BoolVar(&check, "check", false, "fail when momentum or energy is not conserved")
	runCmd.Flags().Float64Var(&tolerance, "tolerance", config.DefaultTolerance, "relative conservation tolerance")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot x location and energy over time")
	runCmd.Flags().BoolVar(&all, "all", false, "run every preset side by side")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	dumpCmd := &cobra.Command{
		Use:   "dump [preset]",
		Short: "write a preset as a YAML scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  dumpPreset,
	}
	dumpCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "watch a scenario evolve in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadScenario(cmd, args)
			if err != nil {
				return err
			}
			return viz.RunLive(cfg)
		},
	}
	addScenarioFlags(liveCmd)

	rootCmd.AddCommand(runCmd, presetsCmd, dumpCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Log.WithError(err).Fatal("command failed")
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file path (yaml)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep in seconds")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated duration in seconds")
}

// loadScenario picks the scenario from --config or a preset name, then
// applies the flags the user set explicitly.
func loadScenario(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	case len(args) == 1:
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", args[0], strings.Join(config.ListPresets(), ", "))
		}
	default:
		return nil, errors.New("need a preset name or --config")
	}
	applyOverrides(cmd, cfg)
	return cfg, cfg.Validate()
}

func applyOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Lookup("check") != nil && flags.Changed("check") {
		cfg.CheckConservation = check
	}
	if flags.Lookup("tolerance") != nil && flags.Changed("tolerance") {
		cfg.Tolerance = tolerance
	}
}

func runScenario(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if all {
		return runAll(ctx, cmd)
	}

	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}

	logger.Log.WithFields(logrus.Fields{
		"scenario": cfg.Name,
		"bodies":   len(cfg.Bodies),
		"dt":       cfg.Dt,
		"duration": cfg.Duration,
	}).Debug("running scenario")

	res, runErr := exp.Run(ctx)
	if res != nil {
		report(cfg.Name, res)
	}
	return runErr
}

func report(name string, res *sim.Result) {
	fmt.Println(viz.Summary(name, res))
	if !plot {
		return
	}
	if p := viz.TrajectoryPlot(res.History, 70, 12); p != "" {
		fmt.Println()
		fmt.Println(p)
	}
	if p := viz.EnergyPlot(res.History, 70, 8); p != "" {
		fmt.Println()
		fmt.Println(p)
	}
}

// runAll runs every preset on its own goroutine and reports them in name
// order.
func runAll(ctx context.Context, cmd *cobra.Command) error {
	reg := experiment.NewRegistry()
	names := config.ListPresets()
	jobs := make([]sim.Job, 0, len(names))
	bound := 0.0
	for _, name := range names {
		cfg := config.GetPreset(name)
		applyOverrides(cmd, cfg)
		exp := experiment.New(cfg)
		if err := exp.Setup(reg); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		jobs = append(jobs, exp.Job())
		bound = max(bound, experiment.WorldBound(cfg))
	}

	batch := sim.NewBatch(func() *sim.Simulator {
		s := sim.NewSimulator()
		for _, m := range reg.DefaultMetrics(bound) {
			s.AddMetric(m)
		}
		return s
	})
	results, err := batch.Run(ctx, jobs)
	for i, res := range results {
		if res != nil {
			report(jobs[i].Name, res)
		}
	}
	return err
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tDT\tDURATION\tCHECK\tINTERACTIONS")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%.4fs\t%.2fs\t%t\t%s\n",
			name,
			len(cfg.Bodies),
			cfg.Dt,
			cfg.Duration,
			cfg.CheckConservation,
			strings.Join(cfg.Interactions, ", "),
		)
	}
	return w.Flush()
}

func dumpPreset(cmd *cobra.Command, args []string) error {
	cfg := config.GetPreset(args[0])
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s (available: %s)", args[0], strings.Join(config.ListPresets(), ", "))
	}
	if outFile != "" {
		if err := config.Save(outFile, cfg); err != nil {
			return err
		}
		logger.Log.WithField("path", outFile).Info("scenario written")
		return nil
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
