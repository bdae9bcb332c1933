package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/dynmotion/internal/clock"
	"github.com/san-kum/dynmotion/internal/config"
	"github.com/san-kum/dynmotion/internal/export"
	"github.com/san-kum/dynmotion/internal/integrators"
	"github.com/san-kum/dynmotion/internal/motion"
	"github.com/san-kum/dynmotion/internal/optim"
	"github.com/san-kum/dynmotion/internal/pool"
	"github.com/san-kum/dynmotion/internal/sim"
	"github.com/san-kum/dynmotion/internal/storage"
	"github.com/san-kum/dynmotion/internal/value"
)

var (
	dataDir    string
	verbose    int
	configFile string
	scheme     string
	cadence    string
	hz         int
	duration   float64
	plotAfter  bool
	outFile    string
	svgWidth   int
	svgHeight  int
	swatches   bool
	stiffness  string
	damping    string
	overshoot  float64
)

// main registers the commands and exits with status 1 when one fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "dynmotion",
		Short:         "spring, tween and keyframe animation lab",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".dynmotion", "data directory")
	rootCmd.PersistentFlags().IntVarP(&verbose, "verbose", "v", 0, "diagnostic log verbosity")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "simulate an animation and save the trace",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAnimation,
	}
	addAnimationFlags(runCmd)
	runCmd.Flags().BoolVar(&plotAfter, "plot", false, "plot the trace after the run")

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

	compareCmd := &cobra.Command{
		Use:   "compare [preset] [scheme...]",
		Short: "compare spring schemes on the same animation",
		Args:  cobra.MaximumNArgs(4),
		RunE:  compareSchemes,
	}
	addAnimationFlags(compareCmd)
	compareCmd.Flags().BoolVar(&plotAfter, "plot", false, "overlay the first column of every scheme")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in animation presets",
		RunE:  listPresets,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 400, "image height")
	exportSVGCmd.Flags().BoolVar(&swatches, "swatches", false, "render color runs as a swatch strip")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "print a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "play an animation in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addAnimationFlags(liveCmd)

	tuneCmd := &cobra.Command{
		Use:   "tune [preset]",
		Short: "grid search spring stiffness and damping for the fastest settle",
		Args:  cobra.MaximumNArgs(1),
		RunE:  tuneSpring,
	}
	addAnimationFlags(tuneCmd)
	tuneCmd.Flags().StringVar(&stiffness, "stiffness", "50:400:8", "stiffness range lo:hi:n")
	tuneCmd.Flags().StringVar(&damping, "damping", "4:40:10", "damping range lo:hi:n")
	tuneCmd.Flags().Float64Var(&overshoot, "max-overshoot", 0.02, "largest acceptable overshoot fraction")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, compareCmd, presetsCmd, exportSVGCmd, exportJSONCmd, liveCmd, tuneCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addAnimationFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "animation file (yaml)")
	cmd.Flags().StringVar(&scheme, "scheme", "", "spring scheme: euler, rk4 or analytic")
	cmd.Flags().StringVar(&cadence, "cadence", "", "frame cadence: fixed or variable")
	cmd.Flags().IntVar(&hz, "hz", config.DefaultHz, "frames per second")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "maximum simulated seconds")
}

func newLogger() logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(os.Stderr, args)
	}, funcr.Options{Verbosity: verbose})
}

func poolOptions(log logr.Logger) pool.Options {
	return pool.Options{Name: "dynmotion", Logger: log.WithName("pool")}
}

// loadConfig resolves the animation: --config wins over a preset name, and
// explicitly set flags override both.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	case len(args) > 0:
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", args[0], strings.Join(config.ListPresets(), ", "))
		}
	default:
		cfg = config.DefaultConfig()
	}

	if cmd.Flags().Changed("hz") {
		cfg.Hz = hz
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("scheme") {
		cfg.Scheme = scheme
	}
	if cmd.Flags().Changed("cadence") {
		cfg.Cadence = cadence
	}
	return cfg, cfg.Validate()
}

func motionOptions(cfg *config.Config, log logr.Logger) ([]motion.Option, error) {
	opts := []motion.Option{motion.WithLogger(log.WithName("motion"))}
	switch cfg.Cadence {
	case "", "fixed":
		opts = append(opts, motion.WithCadence(clock.Fixed))
	case "variable":
		opts = append(opts, motion.WithCadence(clock.Variable))
	default:
		return nil, fmt.Errorf("unknown cadence %q", cfg.Cadence)
	}
	if cfg.Scheme != "" {
		sc, err := integrators.ParseScheme(cfg.Scheme)
		if err != nil {
			return nil, err
		}
		opts = append(opts, motion.WithScheme(sc))
	}
	return opts, nil
}

func runAnimation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	r, err := runnerFor(cfg.Kind)
	if err != nil {
		return err
	}
	log := newLogger()
	opts, err := motionOptions(cfg, log)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s (%s, %d hz)...\n", cfg.Name, cfg.Kind, cfg.Hz)
	start := time.Now()

	result, sc, err := r.run(cmd.Context(), cfg, opts...)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	info := storage.RunInfo{
		Name:     cfg.Name,
		Scheme:   sc.String(),
		Cadence:  cadenceName(cfg),
		Kind:     cfg.Kind,
		Hz:       float64(cfg.Hz),
		Duration: cfg.Duration,
	}
	runID, err := st.Save(info, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d (finished: %v)\n", result.Ticks, result.Completed)
	fmt.Printf("final: %v\n", []float64(result.Final()))
	printMetrics(result.Metrics)

	if plotAfter {
		plotSamples(result.Columns, result.Samples)
	}
	return nil
}

func cadenceName(cfg *config.Config) string {
	if cfg.Cadence == "" {
		return config.DefaultCadence
	}
	return cfg.Cadence
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
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
	fmt.Fprintln(w, "ID\tNAME\tKIND\tSCHEME\tTIME\tTICKS\tDONE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%v\n",
			run.ID,
			run.Name,
			run.Kind,
			run.Scheme,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Completed,
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

	samples, _, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("animation: %s (%s)\n", meta.Name, meta.Scheme)
	fmt.Printf("samples: %d\n\n", len(samples))

	plotSamples(meta.Columns, samples)
	return nil
}

func plotSamples(columns []string, samples []sim.Sample) {
	if len(samples) == 0 {
		return
	}
	r := &sim.Result{Samples: samples}
	for i := range samples[0] {
		caption := fmt.Sprintf("x%d vs time", i)
		if i < len(columns) {
			caption = columns[i] + " vs time"
		}
		graph := asciigraph.Plot(r.Column(i),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
}

func compareSchemes(cmd *cobra.Command, args []string) error {
	var presetArgs []string
	schemes := make([]integrators.Scheme, 0, len(args))
	for i, arg := range args {
		sc, err := integrators.ParseScheme(arg)
		if err != nil {
			if i == 0 {
				presetArgs = args[:1]
				continue
			}
			return err
		}
		schemes = append(schemes, sc)
	}
	if len(schemes) == 0 {
		schemes = integrators.Schemes()
	}

	cfg, err := loadConfig(cmd, presetArgs)
	if err != nil {
		return err
	}
	r, err := runnerFor(cfg.Kind)
	if err != nil {
		return err
	}

	start := time.Now()
	results, err := r.compare(cmd.Context(), cfg, schemes, newLogger())
	if err != nil {
		return err
	}

	fmt.Printf("comparing schemes for %s (%d hz, %.1fs max) in %v\n\n", cfg.Name, cfg.Hz, cfg.Duration, time.Since(start))
	fmt.Printf("%-10s  %-8s  %-6s  %-12s  %-12s  %-12s\n", "scheme", "ticks", "done", "final_x0", "settle_s", "overshoot")
	fmt.Println(strings.Repeat("-", 68))

	series := make([][]float64, len(results))
	for i, res := range results {
		final := 0.0
		if f := res.Final(); len(f) > 0 {
			final = f[0]
		}
		fmt.Printf("%-10s  %8d  %-6v  %12.6f  %12.4f  %12.4f\n",
			schemes[i], res.Ticks, res.Completed, final,
			res.Metrics["settle_time"], res.Metrics["overshoot"])
		series[i] = res.Column(0)
	}

	if plotAfter {
		fmt.Println()
		fmt.Println(asciigraph.PlotMany(series,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.SeriesColors(asciigraph.Green, asciigraph.Yellow, asciigraph.Cyan),
			asciigraph.Caption(schemeCaption(schemes)),
		))
	}
	return nil
}

func schemeCaption(schemes []integrators.Scheme) string {
	names := make([]string, len(schemes))
	for i, sc := range schemes {
		names[i] = sc.String()
	}
	return strings.Join(names, " / ")
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tPROGRAM\tCADENCE\tFROM\tTO")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		program := "animation"
		to := p.To
		switch {
		case p.Keyframes != nil:
			program = fmt.Sprintf("keyframes(%d)", len(p.Keyframes.Frames))
			to = "-"
		case p.Sequence != nil:
			program = fmt.Sprintf("sequence(%d)", len(p.Sequence.Steps))
			to = "-"
		case p.Animation != nil:
			program = p.Animation.Mode
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", name, p.Kind, program, p.Cadence, p.From, to)
	}
	return w.Flush()
}

func loadResult(st *storage.Store, runID string) (*storage.RunMetadata, *sim.Result, error) {
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	samples, times, err := st.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, &sim.Result{
		Columns:   meta.Columns,
		Times:     times,
		Samples:   samples,
		Ticks:     meta.Ticks,
		Completed: meta.Completed,
		Metrics:   meta.Metrics,
	}, nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, result, err := loadResult(storage.New(dataDir), args[0])
	if err != nil {
		return err
	}

	var svg string
	if swatches && meta.Kind == "color" {
		colors := make([]value.Color, len(result.Samples))
		for i, s := range result.Samples {
			if len(s) >= 4 {
				colors[i] = value.Color{R: s[0], G: s[1], B: s[2], A: s[3]}
			}
		}
		svg = export.SwatchesToSVG(colors, svgWidth, svgHeight)
	} else {
		svg = export.ResultToSVG(result, svgWidth, svgHeight)
	}
	if svg == "" {
		return fmt.Errorf("run %s has too few samples to render", meta.ID)
	}

	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, result, err := loadResult(storage.New(dataDir), args[0])
	if err != nil {
		return err
	}
	return storage.WriteJSON(os.Stdout, meta.RunInfo, result)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	r, err := runnerFor(cfg.Kind)
	if err != nil {
		return err
	}
	// stderr belongs to the terminal UI while it runs.
	opts, err := motionOptions(cfg, logr.Discard())
	if err != nil {
		return err
	}
	return r.live(cfg, opts...)
}

func tuneSpring(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if cfg.Animation == nil || (cfg.Animation.Mode != "" && cfg.Animation.Mode != "spring") {
		return fmt.Errorf("tune needs a simple spring animation, %s is not one", cfg.Name)
	}
	r, err := runnerFor(cfg.Kind)
	if err != nil {
		return err
	}
	ks, err := optim.ParseRange(stiffness)
	if err != nil {
		return err
	}
	cs, err := optim.ParseRange(damping)
	if err != nil {
		return err
	}
	opts, err := motionOptions(cfg, newLogger())
	if err != nil {
		return err
	}

	objective := func(ctx context.Context, p map[string]float64) (float64, error) {
		trial := *cfg
		a := *cfg.Animation
		a.Stiffness, a.Damping, a.Critical = p["stiffness"], p["damping"], false
		trial.Animation = &a

		result, _, err := r.run(ctx, &trial, opts...)
		if err != nil {
			return 0, err
		}
		settle := result.Metrics["settle_time"]
		if settle < 0 || result.Metrics["overshoot"] > overshoot {
			return math.Inf(1), nil
		}
		return settle, nil
	}

	g := optim.NewGridSearch([]string{"stiffness", "damping"}, [][]float64{ks, cs})
	fmt.Printf("tuning %s over %d springs...\n", cfg.Name, g.Evaluated())
	best, settle, err := g.Search(cmd.Context(), objective)
	if err != nil {
		return err
	}

	fmt.Printf("stiffness: %.3f\n", best["stiffness"])
	fmt.Printf("damping:   %.3f\n", best["damping"])
	fmt.Printf("settles in %.3fs with overshoot at most %.1f%%\n", settle, overshoot*100)
	return nil
}
