package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/kinsim/internal/config"
	"github.com/san-kum/kinsim/internal/diag"
	"github.com/san-kum/kinsim/internal/integrators"
	"github.com/san-kum/kinsim/internal/kinetics"
	"github.com/san-kum/kinsim/internal/metrics"
	"github.com/san-kum/kinsim/internal/sim"
	"github.com/san-kum/kinsim/internal/storage"
	"github.com/san-kum/kinsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	method     string
	eqFactor   float64
	samples    int
	exportPath string
	frameRate  int
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "kinsim",
		Short: "reaction network kinetics simulator",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".kinsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log solver diagnostics")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "simulate a reaction scheme",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScheme,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "scheme config file (yaml)")
	runCmd.Flags().StringVar(&method, "method", "", "ODE method (rosenbrock23, dopri5)")
	runCmd.Flags().Float64Var(&eqFactor, "ef", 0, "equilibrium acceleration factor")
	runCmd.Flags().IntVar(&samples, "samples", 0, "trajectory samples to store")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot concentrations of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	ratesCmd := &cobra.Command{
		Use:   "rates [run_id]",
		Short: "plot reaction rates of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRates,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&exportPath, "out", "o", "", "output file (default stdout)")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "simulate and replay with a live view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "scheme config file (yaml)")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in reaction schemes",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.PresetNames() {
				fmt.Println(name)
			}
			return nil
		},
	}

	methodsCmd := &cobra.Command{
		Use:   "methods",
		Short: "list available ODE methods",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range integrators.Methods() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, ratesCmd, exportCmd, liveCmd, presetsCmd, methodsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func sink() diag.Sink {
	if !verbose {
		return diag.Nop()
	}
	return diag.NewSlog(slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

func loadScheme(args []string) (*config.Config, string, error) {
	if configFile != "" {
		cfg, err := config.Load(configFile)
		return cfg, configFile, err
	}
	name := "isomerization"
	if len(args) > 0 {
		name = args[0]
	}
	cfg, ok := config.Presets[name]
	if !ok {
		return nil, "", fmt.Errorf("unknown preset %q (available: %v)", name, config.PresetNames())
	}
	return cfg, name, nil
}

// simulate runs the full pipeline and returns the sampled run. Flag
// overrides apply to a local copy so shared presets stay pristine.
func simulate(cfg *config.Config, name string) (*storage.Run, error) {
	local := *cfg
	cfg = &local
	scheme, k, err := cfg.Scheme()
	if err != nil {
		return nil, err
	}
	if method != "" {
		cfg.Method = method
	}
	if eqFactor != 0 {
		cfg.EquilibriumFactor = eqFactor
	}
	if samples > 0 {
		cfg.Samples = samples
	}

	dydt, err := kinetics.NewRateFunc(scheme, k, kinetics.Options{
		EquilibriumFactor: cfg.EquilibriumFactor,
		Diag:              sink(),
	})
	if err != nil {
		return nil, err
	}

	span, err := cfg.Span()
	if err != nil {
		return nil, err
	}

	y, r, err := sim.Simulate(context.Background(), dydt, cfg.Y0, sim.Options{
		TSpan:  span,
		Method: cfg.Method,
		Diag:   sink(),
	})
	if err != nil {
		return nil, err
	}

	n := cfg.Samples
	if n < 2 {
		n = config.DefaultSamples
	}
	times := make([]float64, n)
	for i := range times {
		times[i] = y.TMin() + float64(i)*(y.TMax()-y.TMin())/float64(n-1)
	}

	drift := metrics.NewMassDrift()
	residual := metrics.NewEquilibriumResidual(dydt)

	conc := make([][]float64, n)
	rates := make([][]float64, n)
	for i, t := range times {
		conc[i] = y.At(t)
		rates[i] = r.At(t)
		drift.Observe(conc[i], t)
		residual.Observe(conc[i], t)
	}

	return &storage.Run{
		Meta: storage.RunMetadata{
			Scheme:  name,
			Method:  cfg.Method,
			TMin:    y.TMin(),
			TMax:    y.TMax(),
			Species: scheme.Compounds,
			Metrics: map[string]float64{
				drift.Name():    drift.Value(),
				residual.Name(): residual.Value(),
			},
		},
		Times: times,
		Conc:  conc,
		Rates: rates,
	}, nil
}

func runScheme(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadScheme(args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("simulating %s...\n", name)
	start := time.Now()
	run, err := simulate(cfg, name)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(run)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("span: [%g, %g]\n", run.Meta.TMin, run.Meta.TMax)
	fmt.Println("\nmetrics:")
	for name, val := range run.Meta.Metrics {
		fmt.Printf("  %s: %.3e\n", name, val)
	}
	return nil
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
	fmt.Fprintln(w, "ID\tSCHEME\tTIME\tSPAN\tMETHOD\tSPECIES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t[%g, %g]\t%s\t%d\n",
			run.ID,
			run.Scheme,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.TMin, run.TMax,
			run.Method,
			len(run.Species),
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	run, err := st.Load(args[0])
	if err != nil {
		return err
	}
	fmt.Print(viz.PlotSeries("concentrations: "+run.Meta.Scheme, run.Meta.Species, run.Times, run.Conc, 6))
	return nil
}

func plotRates(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	run, err := st.Load(args[0])
	if err != nil {
		return err
	}
	fmt.Print(viz.PlotSeries("rates: "+run.Meta.Scheme, run.Meta.Species, run.Times, run.Rates, 6))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	return st.ExportJSON(args[0], exportPath)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadScheme(args)
	if err != nil {
		return err
	}
	run, err := simulate(cfg, name)
	if err != nil {
		return err
	}

	model := viz.NewLive(name, run.Meta.Species, run.Times, run.Conc, frameRate)
	_, err = tea.NewProgram(model).Run()
	return err
}
