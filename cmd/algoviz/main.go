package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/san-kum/algoviz/internal/algorithms"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/logging"
	"github.com/san-kum/algoviz/internal/trace"
)

// app carries flag values and the services built from them for one invocation.
type app struct {
	out    io.Writer
	errOut io.Writer

	configFile  string
	logLevel    string
	logFile     string
	dataDir     string
	metricsAddr string

	values  string
	target  float64
	preset  string
	size    int
	seed    int64
	speedMs int
	theme   string

	cfg     *config.Config
	log     *logging.Logger
	gen     *trace.Generator
	metrics *prometheus.Registry
	server  *http.Server
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{out: os.Stdout, errOut: os.Stderr}
	if err := a.rootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "algoviz",
		Short: "step-by-step algorithm playback",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.play,

		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
		SilenceUsage:       true,
	}
	rootCmd.SetOut(a.out)
	rootCmd.SetErr(a.errOut)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&a.logLevel, "log-level", defaults.LogLevel, "debug, info, warn or error")
	pf.StringVar(&a.logFile, "log-file", "", "also append JSON logs to this file")
	pf.StringVar(&a.dataDir, "data", ".algoviz", "run archive directory")
	pf.StringVar(&a.metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	pf.StringVar(&a.values, "values", "", "comma separated input values, e.g. 5,3,8,1")
	pf.Float64Var(&a.target, "target", 0, "search target (default: middle element)")
	pf.StringVar(&a.preset, "preset", defaults.Preset, "input preset")
	pf.IntVar(&a.size, "size", defaults.Size, "generated input size")
	pf.Int64Var(&a.seed, "seed", defaults.Seed, "random seed for generated input")
	pf.IntVar(&a.speedMs, "speed", defaults.SpeedMs, "milliseconds per step")
	pf.StringVar(&a.theme, "theme", defaults.Theme, "color theme")

	playCmd := &cobra.Command{
		Use:   "play [algorithm]",
		Short: "interactive player",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.play,
	}
	addPlayFlags(playCmd)
	addPlayFlags(rootCmd)

	watchCmd := &cobra.Command{
		Use:   "watch [algorithm]",
		Short: "play to the end without interaction",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.watch,
	}

	traceCmd := &cobra.Command{
		Use:   "trace [algorithm]",
		Short: "print every step",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.printTrace,
	}

	exportCmd := &cobra.Command{
		Use:   "export [algorithm]",
		Short: "export a trace as json, csv or an svg frame",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.export,
	}
	exportCmd.Flags().String("format", "json", "json, csv or svg")
	exportCmd.Flags().Int("step", -1, "step to draw for svg (default last)")
	exportCmd.Flags().StringP("out", "o", "", "output file (default stdout)")
	exportCmd.Flags().Bool("save", false, "also archive the run in the data directory")

	statsCmd := &cobra.Command{
		Use:   "stats [algorithm]",
		Short: "summarize a trace and plot comparisons",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.stats,
	}
	statsCmd.Flags().String("svg", "", "also write the comparison curve as svg")

	compareCmd := &cobra.Command{
		Use:   "compare [algorithm...]",
		Short: "run several algorithms on the same input",
		RunE:  a.compare,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [algorithm]",
		Short: "comparisons as input size grows",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.sweep,
	}
	sweepCmd.Flags().Int("min", 2, "smallest size")
	sweepCmd.Flags().Int("max", 64, "largest size")
	sweepCmd.Flags().Int("points", 8, "number of sizes")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list algorithms",
		RunE:  a.list,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list input presets and themes",
		RunE:  a.presets,
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list archived runs",
		RunE:  a.runs,
	}
	runsCmd.Flags().String("algorithm", "", "only runs of this algorithm")
	runsCmd.Flags().Bool("reindex", false, "rebuild the run index from the run directories first")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  a.scenario,
	}

	for _, cmd := range []*cobra.Command{watchCmd, traceCmd, exportCmd, statsCmd} {
		addPlayFlags(cmd)
	}

	rootCmd.AddCommand(playCmd, watchCmd, traceCmd, exportCmd, statsCmd, compareCmd, sweepCmd, listCmd, presetsCmd, runsCmd, scenarioCmd)
	return rootCmd
}

// addPlayFlags lets a command read its trace from an export or the archive.
func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().String("file", "", "play an exported trace")
	cmd.Flags().String("run", "", "play an archived run")
}

// setup resolves configuration (defaults, file, env, then flags) and builds
// the logger and generator shared by every command.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Resolve(a.configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = a.logFile
	}
	if flags.Changed("preset") {
		cfg.Preset = a.preset
	}
	if flags.Changed("size") {
		cfg.Size = a.size
	}
	if flags.Changed("seed") {
		cfg.Seed = a.seed
	}
	if flags.Changed("speed") {
		cfg.SpeedMs = a.speedMs
	}
	if flags.Changed("theme") {
		cfg.Theme = a.theme
	}
	if flags.Changed("values") {
		vals, err := parseValues(a.values)
		if err != nil {
			return err
		}
		cfg.Values = vals
	}
	if flags.Changed("target") {
		v := a.target
		cfg.Target = &v
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.log, err = logging.New(logging.Options{Level: cfg.LogLevel, Writer: a.errOut, File: cfg.LogFile})
	if err != nil {
		return err
	}

	a.metrics = prometheus.NewRegistry()
	a.gen = trace.NewGenerator(trace.NewRegistry(),
		trace.WithMetrics(trace.NewMetrics(a.metrics)),
		trace.WithLogger(a.log.Logger),
	)

	if a.metricsAddr != "" {
		a.serveMetrics()
	}
	return nil
}

func (a *app) teardown(cmd *cobra.Command, _ []string) error {
	if a.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = a.server.Shutdown(ctx)
	}
	if a.log != nil {
		return a.log.Close()
	}
	return nil
}

func (a *app) serveMetrics() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.metrics, promhttp.HandlerOpts{}))
	a.server = &http.Server{Addr: a.metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("metrics server", "addr", a.metricsAddr, "error", err)
		}
	}()
	a.log.Info("serving metrics", "addr", a.metricsAddr)
}

func (a *app) algorithm(args []string) (string, error) {
	id := a.cfg.Algorithm
	if len(args) > 0 {
		id = args[0]
	}
	if _, err := a.gen.Registry().Get(id); err != nil {
		return "", fmt.Errorf("%w (available: %s)", err, strings.Join(a.gen.Registry().List(), ", "))
	}
	return id, nil
}

func (a *app) buildTrace(algorithm string, input []float64) *trace.Trace {
	j := a.job(algorithm, input)
	return a.gen.Generate(j.Algorithm, j.Input, j.Target)
}

// job pairs a search algorithm with the configured target.
func (a *app) job(algorithm string, input []float64) trace.Job {
	j := trace.Job{Algorithm: algorithm, Input: input}
	if algorithms.IsSearch(algorithm) {
		j.Target = a.cfg.TargetFor(input)
	}
	return j
}

func parseValues(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []float64{}, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
