package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/lifeloop/internal/automation"
	"github.com/san-kum/lifeloop/internal/config"
	"github.com/san-kum/lifeloop/internal/export"
	"github.com/san-kum/lifeloop/internal/life"
	"github.com/san-kum/lifeloop/internal/search"
	"github.com/san-kum/lifeloop/internal/tui"
	"github.com/san-kum/lifeloop/internal/viz"
)

var (
	width          int
	height         int
	maxGenerations int
	minLoopLength  int
	maxAttempts    int
	seed           uint64
	delay          time.Duration
	detector       string
	renderer       string
	theme          string
	fromInitial    bool
	// Config file
	configFile string
	// Preset name
	preset   string
	logLevel string
	// inspect and bench
	jsonOut  bool
	svgPath  string
	svgCell  float64
	csvPath  string
	benchGen int
	benchN   int
)

// main registers commands and flags and executes the root command, which
// searches for a loop and replays it. It exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "lifeloop",
		Short:         "find and replay looping game of life boards",
		RunE:          runSearch,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.IntVar(&width, "width", config.DefaultWidth, "grid width")
	pf.IntVar(&height, "height", config.DefaultHeight, "grid height")
	pf.IntVar(&maxGenerations, "max", config.DefaultMaxGenerations, "generations per attempt before giving up")
	pf.IntVar(&minLoopLength, "min", config.DefaultMinLoopLength, "accept only loops longer than this")
	pf.IntVar(&maxAttempts, "attempts", 0, "stop after this many attempts (0 = unlimited)")
	pf.Uint64Var(&seed, "seed", uint64(time.Now().UnixNano()), "random seed")
	pf.DurationVar(&delay, "delay", config.DefaultDelay, "replay frame delay")
	pf.StringVar(&detector, "detector", config.DefaultDetector, "cycle detector ("+strings.Join(life.Detectors(), "|")+")")
	pf.StringVar(&renderer, "renderer", config.DefaultRenderer, "renderer ("+strings.Join(config.Renderers, "|")+")")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "tui theme ("+strings.Join(viz.ThemeNames(), "|")+")")
	pf.BoolVar(&fromInitial, "from-initial", false, "replay from generation 0 instead of the cycle start")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")

	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "search once and print the loop",
		RunE:  inspectLoop,
	}
	inspectCmd.Flags().BoolVar(&jsonOut, "json", false, "print a JSON report")
	inspectCmd.Flags().StringVar(&svgPath, "svg", "", "write the loop's first grid as SVG")
	inspectCmd.Flags().Float64Var(&svgCell, "cell", 10, "SVG cell size")
	inspectCmd.Flags().StringVar(&csvPath, "csv", "", "write populations by generation as CSV")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario]",
		Short: "run a yaml scenario of searches",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "compare detectors across grid sizes",
		RunE:  benchDetectors,
	}
	benchCmd.Flags().IntVar(&benchN, "runs", 20, "attempts per size and detector")
	benchCmd.Flags().IntVar(&benchGen, "gens", 500, "generations per attempt")

	menuCmd := &cobra.Command{
		Use:   "menu",
		Short: "pick a preset interactively",
		RunE:  runMenu,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSIZE\tMAX GENS\tMIN LOOP")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%dx%d\t%d\t%d\n", name, p.Width, p.Height, p.MaxGenerations, p.MinLoopLength)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(inspectCmd, batchCmd, benchCmd, menuCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// resolveConfig layers the preset, the config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		if cfg = config.GetPreset(preset); cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		fileCfg, err := config.Read(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("max") {
		cfg.MaxGenerations = maxGenerations
	}
	if flags.Changed("min") {
		cfg.MinLoopLength = minLoopLength
	}
	if flags.Changed("attempts") {
		cfg.MaxAttempts = maxAttempts
	}
	if flags.Changed("delay") {
		cfg.Delay = delay
	}
	if flags.Changed("detector") {
		cfg.Detector = detector
	}
	if flags.Changed("renderer") {
		cfg.Renderer = renderer
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("from-initial") {
		cfg.ReplayFrom = config.DefaultReplayFrom
		if fromInitial {
			cfg.ReplayFrom = "initial"
		}
	}
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger() (*log.Logger, error) {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "lifeloop",
	}), nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()

	if cfg.Renderer == "tui" {
		// The full-screen UI owns the terminal, so logs are dropped.
		s, err := search.New(cfg.SearchConfig(), log.New(io.Discard))
		if err != nil {
			return err
		}
		err = viz.Run(ctx, s, cfg.ReplayOptions(), cfg.Theme)
		if errors.Is(err, tea.ErrProgramKilled) {
			fmt.Println("Exiting...")
			return nil
		}
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	s, err := search.New(cfg.SearchConfig(), logger)
	if err != nil {
		return err
	}
	r := tui.NewRenderer(os.Stdout)
	s.AddObserver(r)

	res, err := s.Run(ctx)
	fmt.Println()
	if errors.Is(err, context.Canceled) {
		fmt.Println("Exiting...")
		return nil
	}
	if err != nil {
		return err
	}

	if err := r.Start(); err != nil {
		return err
	}
	err = s.Replay(ctx, res, cfg.ReplayOptions(), r)
	if stopErr := r.Stop(); stopErr != nil && err == nil {
		err = stopErr
	}
	if errors.Is(err, context.Canceled) {
		fmt.Println("Exiting...")
		return nil
	}
	return err
}

func runMenu(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()

	err = viz.RunMenu(ctx, cfg, log.New(io.Discard))
	if errors.Is(err, tea.ErrProgramKilled) {
		fmt.Println("Exiting...")
		return nil
	}
	return err
}

func inspectLoop(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()

	s, err := search.New(cfg.SearchConfig(), logger)
	if err != nil {
		return err
	}
	start := time.Now()
	res, err := s.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if svgPath != "" {
		if err := os.WriteFile(svgPath, []byte(export.GridToSVG(res.Loop[0], svgCell)), 0644); err != nil {
			return err
		}
		logger.Info("wrote svg", "path", svgPath)
	}

	if csvPath != "" {
		if err := writeCSV(csvPath, res); err != nil {
			return err
		}
		logger.Info("wrote csv", "path", csvPath)
	}

	if jsonOut {
		return export.WriteJSON(os.Stdout, export.NewReport(res))
	}

	fmt.Printf("found in %v after %d attempts\n", elapsed, res.Attempt)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "seed:\t%d\n", res.Seed)
	fmt.Fprintf(w, "grid:\t%dx%d\n", res.Width, res.Height)
	fmt.Fprintf(w, "cycle start:\t%d\n", res.CycleStart)
	fmt.Fprintf(w, "detected at:\t%d\n", res.DetectedAt)
	fmt.Fprintf(w, "loop length:\t%d\n", res.LoopLength)
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println("\nloop start:")
	fmt.Println(res.Loop[0])

	pops := make([]float64, len(res.Populations))
	for i, p := range res.Populations {
		pops[i] = float64(p)
	}
	if len(pops) > 1 && slices.Min(pops) != slices.Max(pops) {
		graph := asciigraph.Plot(pops,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("population by generation"),
		)
		fmt.Println()
		fmt.Println(graph)
	}

	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, res.Metrics[name])
	}
	return nil
}

func writeCSV(path string, res *search.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := export.WritePopulationsCSV(file, res); err != nil {
		return err
	}
	return file.Close()
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()

	if scenario.Name != "" {
		fmt.Printf("scenario: %s\n", scenario.Name)
	}
	if scenario.Description != "" {
		fmt.Printf("%s\n", scenario.Description)
	}

	results, err := automation.RunScenario(ctx, scenario, logger)
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tNAME\tATTEMPTS\tSEED\tSTART\tLENGTH\tTIME")
	for _, r := range results {
		if r.Result == nil {
			fmt.Fprintf(w, "%d\t%s\t%d\t-\t-\t-\t%v\n", r.Step, r.Name, r.Attempts, r.Elapsed.Round(time.Millisecond))
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\t%v\n",
			r.Step, r.Name, r.Attempts, r.Result.Seed, r.Result.CycleStart, r.Result.LoopLength, r.Elapsed.Round(time.Millisecond))
	}
	if flushErr := w.Flush(); flushErr != nil && err == nil {
		err = flushErr
	}
	return err
}

func benchDetectors(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()

	sweep := &automation.Sweep{
		Sizes:          []automation.Size{{Width: 8, Height: 8}, {Width: 16, Height: 16}, {Width: 32, Height: 32}, {Width: 64, Height: 32}},
		Detectors:      life.Detectors(),
		Attempts:       benchN,
		MaxGenerations: benchGen,
		Seed:           seed,
	}

	fmt.Printf("benchmarking %d attempts of up to %d generations\n\n", benchN, benchGen)
	results, err := automation.RunSweep(ctx, sweep, logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tDETECTOR\tATTEMPTS\tGENERATIONS\tCYCLES\tTIME\tGENS/SEC")
	for _, r := range results {
		fmt.Fprintf(w, "%dx%d\t%s\t%d\t%d\t%d\t%v\t%.0f\n",
			r.Size.Width, r.Size.Height, r.Detector, r.Attempts, r.Generations, r.Cycles,
			r.Elapsed.Round(time.Microsecond), r.GenerationsPerSecond())
	}
	return w.Flush()
}
