package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/verletsim/internal/analysis"
	"github.com/san-kum/verletsim/internal/automation"
	"github.com/san-kum/verletsim/internal/config"
	"github.com/san-kum/verletsim/internal/export"
	"github.com/san-kum/verletsim/internal/gui"
	"github.com/san-kum/verletsim/internal/optim"
	"github.com/san-kum/verletsim/internal/physics"
	"github.com/san-kum/verletsim/internal/render"
	"github.com/san-kum/verletsim/internal/scene"
	"github.com/san-kum/verletsim/internal/sim"
	"github.com/san-kum/verletsim/internal/storage"
	"github.com/san-kum/verletsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	logJSON    bool
	// run
	frames        int
	tickRate      int
	snapshotEvery int
	logEvery      int
	pushX         float64
	pushY         float64
	pushFrom      int
	pushTo        int
	scenarioFile  string
	// sweep
	sweepParams []string
	sweepMetric string
	sweepMax    bool
	// bench
	benchFrames int
	// tui
	fps     int
	theme   string
	gifPath string
	// export-json
	jsonPath string
	// export-svg
	svgFrame  int
	svgTrails bool
	svgOut    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "verletsim",
		Short:         "real-time 2d verlet particle simulator",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel, logJSON)
		},
		RunE: runGUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".verletsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log as json")

	guiCmd := &cobra.Command{
		Use:   "gui [scene]",
		Short: "run simulation in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui [scene]",
		Short: "run simulation in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTUI,
	}
	tuiCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "display frame rate")
	tuiCmd.Flags().StringVar(&theme, "theme", viz.ThemeCyberpunk.Name, fmt.Sprintf("color theme %v", viz.ThemeNames()))
	tuiCmd.Flags().StringVar(&gifPath, "gif", "verletsim.gif", "recording output path")

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run headless simulation and save it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames to simulate")
	runCmd.Flags().IntVar(&tickRate, "tick-rate", config.DefaultTickRate, "physics frames per second")
	runCmd.Flags().IntVar(&snapshotEvery, "snapshot-every", config.DefaultSnapshotEvery, "frames between particle snapshots (0 disables)")
	runCmd.Flags().IntVar(&logEvery, "log-every", 0, "frames between debug step logs (0 disables)")
	runCmd.Flags().Float64Var(&pushX, "push-x", config.DefaultWidth/2, "field point x")
	runCmd.Flags().Float64Var(&pushY, "push-y", config.DefaultHeight/2, "field point y")
	runCmd.Flags().IntVar(&pushFrom, "push-from", 0, "first frame with the field on")
	runCmd.Flags().IntVar(&pushTo, "push-to", 0, "frame the field turns off (exclusive)")
	runCmd.Flags().StringVar(&scenarioFile, "scenario", "", "scripted push timeline (yaml)")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scene]",
		Short: "grid search over config values",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames per trial")
	sweepCmd.Flags().StringArrayVar(&sweepParams, "param", nil, fmt.Sprintf("name=v1,v2,... (repeatable; names %v)", config.Tunables))
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "max_overlap", "metric to optimise")
	sweepCmd.Flags().BoolVar(&sweepMax, "maximize", false, "prefer larger metric values")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of kinetic energy",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run series to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			if jsonPath != "" {
				return st.ExportJSONFile(jsonPath, args[0])
			}
			return st.ExportJSON(os.Stdout, args[0])
		},
	}
	exportJSONCmd.Flags().StringVarP(&jsonPath, "output", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export particle snapshots to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportCSV(os.Stdout, args[0])
		},
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a particle snapshot to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgFrame, "frame", -1, "snapshot frame (-1 for last)")
	exportSVGCmd.Flags().BoolVar(&svgTrails, "trails", false, "draw paths through earlier snapshots")
	exportSVGCmd.Flags().StringVarP(&svgOut, "output", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets [scene]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list available scenes",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SCENE\tPARTICLES\tPRESETS")
			for _, name := range scene.Names() {
				layout, err := scene.Get(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%d\t%v\n", name, len(layout), config.ListPresets(name))
			}
			return w.Flush()
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench [scene]",
		Short: "benchmark the physics step",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScenes,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 5000, "frames per scene")

	rootCmd.AddCommand(guiCmd, tuiCmd, runCmd, sweepCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, presetsCmd, scenesCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func setupLogging(level string, jsonOut bool) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if jsonOut {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

// resolveConfig layers defaults, the preset, the config file and finally
// any flag set on the command line.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	sceneName := ""
	if len(args) > 0 {
		sceneName = args[0]
	}

	if preset != "" {
		name := sceneName
		if name == "" {
			name = config.DefaultScene
		}
		cfg = config.GetPreset(name, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(name))
		}
	}

	if configFile != "" {
		loaded, err := config.Overlay(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if sceneName != "" {
		cfg.Scene = sceneName
	}

	flags := cmd.Flags()
	if flags.Changed("frames") {
		cfg.Run.Frames = frames
	}
	if flags.Changed("tick-rate") {
		cfg.Physics.TickRate = tickRate
	}
	if flags.Changed("snapshot-every") {
		cfg.Run.SnapshotEvery = snapshotEvery
	}
	if flags.Changed("log-every") {
		cfg.Run.LogEvery = logEvery
	}
	if flags.Changed("fps") {
		cfg.Display.FPS = fps
	}

	if _, err := scene.Get(cfg.Scene); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildEngine(cfg *config.Config) (*sim.Engine, error) {
	layout, err := scene.Get(cfg.Scene)
	if err != nil {
		return nil, err
	}
	particles, err := scene.Build(layout)
	if err != nil {
		return nil, err
	}

	params := cfg.Params()
	world, err := physics.NewWorld(params, particles)
	if err != nil {
		return nil, err
	}

	engine, err := sim.New(world, physics.NewForceField(params), cfg.SimConfig())
	if err != nil {
		return nil, err
	}
	engine.SetLogger(slog.Default().With("scene", cfg.Scene))
	return engine, nil
}

func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := interruptContext()
	defer cancel()

	app := gui.NewApp("verletsim - "+cfg.Scene, cfg.World.Width, cfg.World.Height)
	if err := gui.Run(ctx, app, engine); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	// the terminal belongs to the view; only errors reach stderr
	if logLevel == "info" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
	}

	opts := viz.DefaultOptions()
	opts.Title = cfg.Scene
	opts.FPS = cfg.Display.FPS
	opts.Theme = theme
	opts.GIFPath = gifPath

	return viz.Run(func() (*sim.Engine, error) { return buildEngine(cfg) }, opts)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	var scenario *automation.Scenario
	if scenarioFile != "" {
		sc, err := automation.LoadScenario(scenarioFile)
		if err != nil {
			return err
		}
		scenario = sc
		if len(args) == 0 && sc.Scene != "" {
			args = []string{sc.Scene}
		}
		if preset == "" {
			preset = sc.Preset
		}
	}

	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if scenario != nil && scenario.Frames > 0 && !cmd.Flags().Changed("frames") {
		cfg.Run.Frames = scenario.Frames
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}
	for _, m := range sim.DefaultMetrics() {
		engine.AddMetric(m)
	}

	var in sim.Input = sim.Idle{}
	switch {
	case scenario != nil:
		in = scenario.Input()
	case pushTo > pushFrom:
		in = &sim.Script{Point: r2.Vec{X: pushX, Y: pushY}, From: pushFrom, To: pushTo}
	}

	ctx, cancel := interruptContext()
	defer cancel()

	slog.Info("running simulation",
		"scene", cfg.Scene,
		"preset", preset,
		"frames", cfg.Run.Frames,
		"particles", engine.World().Len(),
	)
	start := time.Now()

	result, err := engine.Simulate(ctx, cfg.Run.Frames, in)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	meta := storage.RunMetadata{
		Scene:     cfg.Scene,
		Preset:    preset,
		Particles: engine.World().Len(),
		TickRate:  cfg.Physics.TickRate,
		Dt:        engine.Config().Dt(),
		Width:     cfg.World.Width,
		Height:    cfg.World.Height,
		GravityX:  cfg.Physics.GravityX,
		GravityY:  cfg.Physics.GravityY,
	}
	runID, err := st.Save(meta, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d (%.3fs simulated)\n", result.Frames, engine.Time())
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	return nil
}

// parseSweepParam reads "name=v1,v2,...".
func parseSweepParam(spec string) (string, []float64, error) {
	name, list, ok := strings.Cut(spec, "=")
	if !ok || name == "" || list == "" {
		return "", nil, fmt.Errorf("invalid --param %q, want name=v1,v2,...", spec)
	}
	var values []float64
	for _, field := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return "", nil, fmt.Errorf("invalid value in --param %q: %w", spec, err)
		}
		values = append(values, v)
	}
	return name, values, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	if len(sweepParams) == 0 {
		return fmt.Errorf("at least one --param is required")
	}

	base, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	base.Run.SnapshotEvery = 0

	names := make([]string, 0, len(sweepParams))
	ranges := make([][]float64, 0, len(sweepParams))
	for _, spec := range sweepParams {
		name, values, err := parseSweepParam(spec)
		if err != nil {
			return err
		}
		if err := config.DefaultConfig().Set(name, 0); err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	search := optim.NewGridSearch(names, ranges)
	if sweepMax {
		search.Maximize()
	}

	eval := func(ctx context.Context, params map[string]float64) (map[string]float64, error) {
		cfg := *base
		for k, v := range params {
			if err := cfg.Set(k, v); err != nil {
				return nil, err
			}
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		engine, err := buildEngine(&cfg)
		if err != nil {
			return nil, err
		}
		for _, m := range sim.DefaultMetrics() {
			engine.AddMetric(m)
		}
		result, err := engine.Simulate(ctx, cfg.Run.Frames, nil)
		if err != nil {
			return nil, err
		}
		return result.Metrics, nil
	}

	ctx, cancel := interruptContext()
	defer cancel()

	slog.Info("sweep started", "scene", base.Scene, "trials", search.Size(), "metric", sweepMetric)
	trials, best, err := search.Search(ctx, eval, sweepMetric)
	if err != nil && len(trials) == 0 {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(strings.Join(names, "\t")), strings.ToUpper(sweepMetric))
	for i, t := range trials {
		cols := make([]string, len(names))
		for j, name := range names {
			cols[j] = strconv.FormatFloat(t.Params[name], 'g', -1, 64)
		}
		val := fmt.Sprintf("%.6f", t.Value)
		if t.Err != nil {
			val = "error: " + t.Err.Error()
		}
		if i == best {
			val += "  *"
		}
		fmt.Fprintf(w, "%s\t%s\n", strings.Join(cols, "\t"), val)
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	return err
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
	fmt.Fprintln(w, "ID\tSCENE\tPRESET\tTIME\tFRAMES\tPARTICLES\tDT")

	for _, run := range runs {
		p := run.Preset
		if p == "" {
			p = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%.4fs\n",
			run.ID,
			run.Scene,
			p,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Particles,
			run.Dt,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("samples: %d\n\n", len(samples))

	energy := make([]float64, len(samples))
	overlap := make([]float64, len(samples))
	contacts := make([]float64, len(samples))
	for i, s := range samples {
		energy[i] = s.KineticEnergy
		overlap[i] = s.MaxOverlap
		contacts[i] = float64(s.Contacts)
	}

	series := []struct {
		data    []float64
		caption string
	}{
		{energy, "kinetic energy"},
		{overlap, "max overlap"},
		{contacts, "contacts"},
	}
	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	if len(samples) < 2 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("scene: %s\n\n", meta.Scene)

	energy := make([]float64, len(samples))
	for i, s := range samples {
		energy[i] = s.KineticEnergy
	}

	spec := analysis.Analyze(energy, meta.Dt)

	graph := asciigraph.Plot(spec.Band(0.25),
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (kinetic energy)"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq, _ := spec.Dominant()
	fmt.Printf("resolution: %.3f hz\n", spec.Resolution)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	rows, err := st.LoadParticles(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("run %s has no snapshots", runID)
	}

	frame := svgFrame
	if frame < 0 {
		frame = rows[len(rows)-1].Frame
	}

	var sprites []render.Sprite
	var trails [][]r2.Vec
	for _, row := range rows {
		if row.Frame > frame {
			break
		}
		pos := r2.Vec{X: row.X, Y: row.Y}
		if svgTrails {
			for len(trails) <= row.Index {
				trails = append(trails, nil)
			}
			trails[row.Index] = append(trails[row.Index], pos)
		}
		if row.Frame == frame {
			sprites = append(sprites, render.Sprite{
				Center: pos,
				Radius: row.Radius,
				Color:  render.Color(row.X, row.Y, meta.Width, meta.Height),
			})
		}
	}
	if len(sprites) == 0 {
		return fmt.Errorf("run %s has no snapshot at frame %d", runID, frame)
	}

	svg := export.SnapshotToSVG(sprites, meta.Width, meta.Height, trails)
	if svgOut == "" {
		_, err = fmt.Print(svg)
		return err
	}
	return os.WriteFile(svgOut, []byte(svg), 0644)
}

func listPresets(cmd *cobra.Command, args []string) error {
	scenes := scene.Names()
	if len(args) > 0 {
		scenes = args
	}

	for _, name := range scenes {
		presets := config.ListPresets(name)
		if len(presets) == 0 {
			fmt.Printf("no presets for scene: %s\n", name)
			continue
		}
		fmt.Printf("presets for %s:\n", name)
		for _, p := range presets {
			fmt.Printf("  %s\n", p)
		}
	}
	return nil
}

func benchScenes(cmd *cobra.Command, args []string) error {
	scenes := scene.Names()
	if len(args) > 0 {
		scenes = args
	}

	ctx, cancel := interruptContext()
	defer cancel()

	fmt.Printf("benchmarking %d frames per scene\n\n", benchFrames)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENE\tPARTICLES\tFRAMES\tTIME\tFRAMES/SEC\tREALTIME")

	for _, name := range scenes {
		cfg := config.DefaultConfig()
		cfg.Scene = name
		cfg.Run.SnapshotEvery = 0

		engine, err := buildEngine(cfg)
		if err != nil {
			return err
		}

		start := time.Now()
		result, err := engine.Simulate(ctx, benchFrames, nil)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		perSec := float64(result.Frames) / elapsed.Seconds()
		fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.0f\t%.1fx\n",
			name, engine.World().Len(), result.Frames, elapsed, perSec, perSec/float64(cfg.Physics.TickRate))
	}

	return w.Flush()
}
