package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/seaweed/internal/config"
	"github.com/san-kum/seaweed/internal/export"
	"github.com/san-kum/seaweed/internal/metrics"
	"github.com/san-kum/seaweed/internal/scene"
	"github.com/san-kum/seaweed/internal/storage"
	"github.com/san-kum/seaweed/internal/tui"
	"github.com/san-kum/seaweed/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	dt         float64
	frames     int
	seed       int64
	configFile string
	preset     string
	scriptFile string
	plot       bool
	watch      bool
	strict     bool
	verbose    bool
	frameRate  int
	outFile    string
	save       bool
	svgFile    string
	metric     string
	runs       int
	// snapshot defaults to fewer frames than run and sweep
	snapFrames int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "seaweed",
		Short: "spring-mass seaweed in a terminal aquarium",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive(newLogger())
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".seaweed", "data directory")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "open the viewer on a preset or config file",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the simulation headless and report metrics",
		RunE:  runSimulation,
	}
	runCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames to simulate")
	runCmd.Flags().Float64Var(&dt, "dt", scene.DefaultDt, "timestep")
	runCmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&scriptFile, "script", "", "scenario script (yaml)")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot kinetic energy")
	runCmd.Flags().BoolVar(&watch, "watch", false, "print frames while running")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate for --watch")
	runCmd.Flags().BoolVar(&strict, "strict", false, "fail on non-finite state")
	runCmd.Flags().BoolVar(&save, "save", false, "store the run in the data directory")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored metric history",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&metric, "metric", "", "metric to plot (default: all)")
	plotCmd.Flags().StringVar(&svgFile, "svg", "", "write the chart to an SVG file instead")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [file.svg]",
		Short: "simulate headless and write the final frame as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshot,
	}
	snapshotCmd.Flags().IntVar(&snapFrames, "frames", 200, "frames to simulate first")
	snapshotCmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	snapshotCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	snapshotCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	snapshotCmd.Flags().StringVar(&scriptFile, "script", "", "scenario script (yaml)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run consecutive seeds in parallel and compare metrics",
		RunE:  sweep,
	}
	sweepCmd.Flags().IntVar(&runs, "runs", 4, "number of seeds")
	sweepCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames per run")
	sweepCmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "first seed")
	sweepCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	sweepCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Printf("  %s\n", name)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print or write the default configuration",
		RunE:  writeConfig,
	}
	configCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")
	configCmd.Flags().StringVarP(&outFile, "output", "o", "", "write to file instead of stdout")

	rootCmd.AddCommand(liveCmd, runCmd, listCmd, plotCmd, exportCmd, snapshotCmd, sweepCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig resolves the configuration: preset or file, then .env and
// SEAWEED_* variables, then flags set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("strict") {
		cfg.Strict = strict
	}
	return cfg, cfg.Validate()
}

func newScene(cmd *cobra.Command, logger *slog.Logger) (*scene.Scene, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	opts, err := cfg.SceneOptions(logger)
	if err != nil {
		return nil, nil, err
	}
	s, err := scene.New(opts)
	if err != nil {
		return nil, nil, err
	}
	return s, cfg, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	s, _, err := newScene(cmd, newLogger())
	if err != nil {
		return err
	}
	title := preset
	if title == "" {
		title = "seaweed"
	}
	return viz.RunLive(s, title)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	s, cfg, err := newScene(cmd, logger)
	if err != nil {
		return err
	}
	for _, m := range metrics.Standard() {
		s.AddMetric(m)
	}

	var script *scene.Script
	if scriptFile != "" {
		script, err = scene.LoadScript(scriptFile)
		if err != nil {
			return err
		}
		logger.Debug("loaded script", "name", script.Name, "events", len(script.Events))
	}

	if watch {
		r := tui.NewLiveRenderer("seaweed", frameRate, os.Stdout)
		r.Start()
		defer r.Stop()
		s.AddObserver(r)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %d frames (dt=%g, seed=%d)...\n", cfg.Frames, cfg.Dt, cfg.Seed)
	start := time.Now()

	result, err := s.Run(ctx, cfg.Frames, script)
	if result != nil {
		printSummary(result, time.Since(start))
	}
	if err != nil {
		return err
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(runInfo(cfg), result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	if plot {
		printGraph(result.History["kinetic_energy"], "mean kinetic energy")
	}
	return nil
}

func runInfo(cfg *config.Config) storage.RunInfo {
	name := preset
	if name == "" {
		name = "reef"
	}
	field := cfg.Environment.Field
	if field == "" {
		field = "none"
	}
	return storage.RunInfo{Name: name, Seed: cfg.Seed, Dt: cfg.Dt, Field: field, Script: scriptFile}
}

func printGraph(data []float64, caption string) {
	if len(data) == 0 {
		return
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Println()
	fmt.Println(graph)
}

func printSummary(result *scene.Result, elapsed time.Duration) {
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("frames: %d  sim time: %.2fs\n", result.Frames, result.Time)
	fmt.Println("\nmetrics:")

	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%.6f\n", name, result.Metrics[name])
	}
	w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSEED\tFIELD\tFRAMES\tTIME")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\t%s\n",
			run.ID,
			run.Name,
			run.Seed,
			run.Field,
			run.Frames,
			run.Timestamp.Format("2006-01-02 15:04:05"),
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	history, _, err := st.LoadHistory(args[0])
	if err != nil {
		return err
	}

	names := make([]string, 0, len(history))
	for name := range history {
		if metric == "" || metric == name {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("no history for metric %q in %s", metric, args[0])
	}
	sort.Strings(names)

	if svgFile != "" {
		svg := export.HistoryToSVG(history[names[0]], 800, 300, "#5fd7af")
		if err := os.WriteFile(svgFile, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%s)\n", svgFile, names[0])
		return nil
	}

	for _, name := range names {
		printGraph(history[name], name)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
}

func snapshot(cmd *cobra.Command, args []string) error {
	s, _, err := newScene(cmd, newLogger())
	if err != nil {
		return err
	}

	var script *scene.Script
	if scriptFile != "" {
		if script, err = scene.LoadScript(scriptFile); err != nil {
			return err
		}
	}
	if _, err := s.Run(cmd.Context(), snapFrames, script); err != nil {
		return err
	}

	svg := export.NewSVG(s.Bounds(), 1)
	s.Render(svg)

	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := svg.WriteTo(f); err != nil {
		return err
	}
	fmt.Printf("wrote %s: frame %d, %d shapes\n", args[0], s.Clock().Frame, svg.Shapes())
	return nil
}

func sweep(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	build := func(seed int64) (scene.Options, error) {
		c := *cfg
		c.Seed = seed
		return c.SceneOptions(logger)
	}
	newMetrics := func() []scene.Metric {
		ms := make([]scene.Metric, 0)
		for _, m := range metrics.Standard() {
			ms = append(ms, m)
		}
		return ms
	}

	ens := scene.NewEnsemble(build, newMetrics, runs, cfg.Seed)
	fmt.Printf("running %d seeds x %d frames...\n", runs, cfg.Frames)
	start := time.Now()

	results, err := ens.Run(cmd.Context(), cfg.Frames)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tKINETIC\tMAX SPEED\tSTRAIN\tLOCKED")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%.4f\t%.4f\n",
			ens.Seed(i),
			r.Metrics["kinetic_energy"],
			r.Metrics["max_speed"],
			r.Metrics["strain"],
			r.Metrics["locked_fraction"],
		)
	}
	return w.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if outFile != "" {
		if err := config.Save(outFile, cfg); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outFile)
		return nil
	}
	return config.Encode(os.Stdout, cfg)
}
