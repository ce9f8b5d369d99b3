package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/san-kum/pondmodel/internal/config"
	"github.com/san-kum/pondmodel/internal/dynamo"
	"github.com/san-kum/pondmodel/internal/pond"
	"github.com/san-kum/pondmodel/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configFile string
	preset     string
	overrides  map[string]string

	evalTime   float64
	head       float64
	inflow     float64
	sampleTime float64
	points     int
	pngPath    string
	benchN     int
)

// main registers the pondmodel commands and runs the self-tests when no
// subcommand is given. It exits with status 1 if the command fails.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "pondmodel",
		Short:        "storage pond with weir outflow",
		RunE:         runSelfTest,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "parameter preset")
	rootCmd.PersistentFlags().StringToStringVar(&overrides, "set", nil, "parameter override name=value (repeatable)")

	selftestCmd := &cobra.Command{
		Use:   "selftest",
		Short: "run model self-tests",
		RunE:  runSelfTest,
	}

	evalCmd := &cobra.Command{
		Use:   "eval",
		Short: "evaluate dynamics and measurement at a point",
		RunE:  runEval,
	}
	evalCmd.Flags().Float64Var(&evalTime, "t", 0, "time (s)")
	evalCmd.Flags().Float64Var(&head, "x", config.DefaultHead, "head on weir (m)")
	evalCmd.Flags().Float64Var(&inflow, "u", config.DefaultInflow, "inflow (m^3/s)")

	paramsCmd := &cobra.Command{
		Use:   "params",
		Short: "print resolved parameters as yaml",
		RunE:  showParams,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list parameter presets",
		RunE:  listPresets,
	}

	steadyCmd := &cobra.Command{
		Use:   "steady",
		Short: "steady-state head for a constant inflow",
		RunE:  runSteady,
	}
	steadyCmd.Flags().Float64Var(&inflow, "u", config.DefaultInflow, "inflow (m^3/s)")

	linearizeCmd := &cobra.Command{
		Use:   "linearize",
		Short: "linearise about a point and discretise",
		RunE:  runLinearize,
	}
	linearizeCmd.Flags().Float64Var(&head, "x", config.DefaultHead, "head on weir (m)")
	linearizeCmd.Flags().Float64Var(&inflow, "u", config.DefaultInflow, "inflow (m^3/s)")
	linearizeCmd.Flags().Float64Var(&sampleTime, "ts", config.DefaultSampleTime, "sample time (s)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "plot dh/dt over the admissible head range",
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&inflow, "u", config.DefaultInflow, "inflow (m^3/s)")
	sweepCmd.Flags().IntVar(&points, "points", config.DefaultSweepPoints, "grid points")
	sweepCmd.Flags().StringVar(&pngPath, "png", "", "also save the curve to this image file")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark dynamics evaluation",
		RunE:  benchDynamics,
	}
	benchCmd.Flags().IntVar(&benchN, "n", 1_000_000, "evaluations")

	rootCmd.AddCommand(selftestCmd, evalCmd, paramsCmd, presetsCmd, steadyCmd, linearizeCmd, sweepCmd, benchCmd)

	return rootCmd
}

// loadConfig applies defaults, preset, config file, then --set overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if preset != "" {
		cfg.Preset = preset
	}

	set, err := parseOverrides(overrides)
	if err != nil {
		return nil, err
	}
	cfg.Merge(set)

	return cfg, nil
}

func resolve() (*config.Config, pond.Params, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, pond.Params{}, err
	}
	p, err := cfg.PondParams()
	if err != nil {
		return nil, pond.Params{}, err
	}
	return cfg, p, nil
}

func runSelfTest(cmd *cobra.Command, args []string) error {
	_, p, err := resolve()
	if err != nil {
		return err
	}

	report := pond.SelfTest(p)
	fmt.Fprintln(cmd.OutOrStdout(), viz.RenderReport(report))
	return report.Err()
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, p, err := resolve()
	if err != nil {
		return err
	}
	pickPoint(cmd, cfg)

	x := dynamo.State{head}
	u := dynamo.Control{inflow}

	dx, err := pond.Dynamics(evalTime, x, u, p)
	if err != nil {
		var de *dynamo.DomainError
		if errors.As(err, &de) {
			return fmt.Errorf("head %g m is outside the admissible range [0, %g): %w", de.Value, de.Upper, err)
		}
		return err
	}
	y := pond.Measurement(evalTime, x, u, p)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "T\tHEAD\tINFLOW\tOUTFLOW\tDH/DT\tY")
	fmt.Fprintf(w, "%g\t%.6g\t%.6g\t%.6g\t%.6e\t%.6g\n",
		evalTime, x[0], u[0], pond.Outflow(x[0], p), dx[0], y[0])
	return w.Flush()
}

// pickPoint fills flags the user did not set from the config file.
func pickPoint(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if f := flags.Lookup("t"); f != nil && !f.Changed {
		evalTime = cfg.Point.Time
	}
	if f := flags.Lookup("x"); f != nil && !f.Changed {
		head = cfg.Point.Head
	}
	if f := flags.Lookup("u"); f != nil && !f.Changed {
		inflow = cfg.Point.Inflow
	}
	if f := flags.Lookup("ts"); f != nil && !f.Changed {
		sampleTime = cfg.SampleTime
	}
}

func showParams(cmd *cobra.Command, args []string) error {
	_, p, err := resolve()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tHEIGHT\tWIDTH\tALPHA\tC\tMAX INFLOW")

	for _, name := range config.ListPresets() {
		p, _ := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%.6g\t%.4g\n",
			name, p.WeirHeight, p.WeirWidth, p.Alpha, p.C, pond.MaxInflow(p))
	}

	return w.Flush()
}

func runSteady(cmd *cobra.Command, args []string) error {
	cfg, p, err := resolve()
	if err != nil {
		return err
	}
	pickPoint(cmd, cfg)

	h, err := pond.SteadyState(inflow, p)
	if err != nil {
		return fmt.Errorf("inflow %g m^3/s (max %.4g): %w", inflow, pond.MaxInflow(p), err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.Metric("inflow", fmt.Sprintf("%g m^3/s", inflow)))
	fmt.Fprintln(out, viz.Metric("head", fmt.Sprintf("%.8g m", h)))
	fmt.Fprintln(out, viz.Metric("outflow", fmt.Sprintf("%.8g m^3/s", pond.Outflow(h, p))))
	return nil
}

func runLinearize(cmd *cobra.Command, args []string) error {
	cfg, p, err := resolve()
	if err != nil {
		return err
	}
	pickPoint(cmd, cfg)

	cont, err := pond.Linearize(head, inflow, p)
	if err != nil {
		return err
	}
	disc, err := cont.ToDiscrete(sampleTime)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.Title.Render(fmt.Sprintf("continuous model at h=%g, q=%g", head, inflow)))
	fmt.Fprintln(out, cont.String())
	fmt.Fprintln(out, viz.Separator(40))
	fmt.Fprintln(out, viz.Title.Render(fmt.Sprintf("discrete model, ts=%gs", disc.Ts)))
	fmt.Fprintln(out, disc.String())
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, p, err := resolve()
	if err != nil {
		return err
	}
	if f := cmd.Flags().Lookup("u"); !f.Changed {
		inflow = cfg.Sweep.Inflow
	}
	if f := cmd.Flags().Lookup("points"); !f.Changed {
		points = cfg.Sweep.Points
	}

	heads, rates, err := pond.Sweep(inflow, p, points)
	if err != nil {
		return err
	}

	graph, err := viz.RateCurve(heads, rates, 60, 15)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, graph)
	fmt.Fprintln(out, viz.Metric("profile", viz.SparklineChart(rates, 40)))

	eq, err := pond.SteadyState(inflow, p)
	if err != nil {
		eq = -1
		fmt.Fprintln(out, viz.Subtle.Render("no equilibrium below the weir bound"))
	} else {
		fmt.Fprintln(out, viz.Metric("equilibrium head", fmt.Sprintf("%.6g m", eq)))
	}

	if pngPath != "" {
		if err := viz.SaveRatePlot(pngPath, heads, rates, eq); err != nil {
			return fmt.Errorf("failed to save plot: %w", err)
		}
		fmt.Fprintf(out, "saved %s\n", pngPath)
	}
	return nil
}

func benchDynamics(cmd *cobra.Command, args []string) error {
	_, p, err := resolve()
	if err != nil {
		return err
	}
	if benchN < 1 {
		return fmt.Errorf("bench needs at least 1 evaluation, got %d", benchN)
	}

	x := dynamo.State{config.DefaultHead}
	u := dynamo.Control{config.DefaultInflow}

	start := time.Now()
	for i := 0; i < benchN; i++ {
		if _, err := pond.Dynamics(0, x, u, p); err != nil {
			return err
		}
	}
	serial := time.Since(start)

	start = time.Now()
	if _, _, err := pond.Sweep(config.DefaultInflow, p, benchN+1); err != nil {
		return err
	}
	parallel := time.Since(start)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tEVALS\tTIME\tEVALS/SEC")
	fmt.Fprintf(w, "serial\t%d\t%v\t%.0f\n", benchN, serial, float64(benchN)/serial.Seconds())
	fmt.Fprintf(w, "sweep\t%d\t%v\t%.0f\n", benchN+1, parallel, float64(benchN+1)/parallel.Seconds())
	return w.Flush()
}
