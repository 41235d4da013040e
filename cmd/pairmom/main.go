package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/pairmom/internal/config"
	"github.com/san-kum/pairmom/internal/export"
	"github.com/san-kum/pairmom/internal/kernel"
	"github.com/san-kum/pairmom/internal/problem"
	"github.com/san-kum/pairmom/internal/solver"
	"github.com/san-kum/pairmom/internal/storage"
	"github.com/san-kum/pairmom/internal/watch"
)

var (
	dataDir    string
	dim        int
	nodes      int
	iterations int
	radius     float64
	birth      float64
	death      float64
	envDeath   float64
	alpha      float64
	beta       float64
	gamma      float64
	accuracy   int
	method     string
	configFile string
	preset     string
	svgOut     string
	svgWidth   int
	svgHeight  int
	sweepParam int
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pairmom",
		Short: "equilibrium pair correlations of the spatial birth-death model",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pairmom", "data directory")

	solveCmd := &cobra.Command{
		Use:   "solve [kernel] [params...]",
		Short: "solve for the equilibrium correlation function",
		RunE:  runSolve,
	}
	addSolveFlags(solveCmd)

	watchCmd := &cobra.Command{
		Use:   "watch [kernel] [params...]",
		Short: "solve with a live convergence view",
		RunE:  runWatch,
	}
	addSolveFlags(watchCmd)

	benchCmd := &cobra.Command{
		Use:   "bench [kernel] [params...]",
		Short: "time the solution methods across grid sizes",
		RunE:  runBench,
	}
	addSolveFlags(benchCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [kernel] [params...]",
		Short: "sweep one kernel parameter and report the equilibrium",
		RunE:  runSweep,
	}
	addSolveFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&sweepParam, "param", 0, "index of the kernel parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "first parameter value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 0, "last parameter value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of sweep points")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored correlation function",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run's correlation samples as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a run's correlation function as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output path (default <run_id>.svg)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 450, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	kernelsCmd := &cobra.Command{
		Use:   "kernels",
		Short: "list kernel families and their parameters",
		RunE:  listKernels,
	}

	rootCmd.AddCommand(solveCmd, watchCmd, benchCmd, sweepCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, presetsCmd, kernelsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSolveFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&dim, "dim", 1, "spatial dimension")
	cmd.Flags().IntVar(&nodes, "nodes", config.DefaultNodes, "grid nodes")
	cmd.Flags().IntVar(&iterations, "iterations", config.DefaultIterations, "iteration budget")
	cmd.Flags().Float64Var(&radius, "radius", 0, "domain radius (0 = auto from kernel reach)")
	cmd.Flags().Float64Var(&birth, "birth", config.DefaultBirth, "birth rate b")
	cmd.Flags().Float64Var(&death, "death", config.DefaultDeath, "competition strength s")
	cmd.Flags().Float64Var(&envDeath, "env-death", config.DefaultEnvDeath, "environmental death rate d")
	cmd.Flags().Float64Var(&alpha, "alpha", 1, "closure weight alpha")
	cmd.Flags().Float64Var(&beta, "beta", 0, "closure weight beta")
	cmd.Flags().Float64Var(&gamma, "gamma", 0, "closure weight gamma")
	cmd.Flags().IntVar(&accuracy, "accuracy", config.DefaultAccuracy, "decimal places of accuracy")
	cmd.Flags().StringVar(&method, "method", "neuman", "solution method (neuman, lneuman, nystrom)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig layers preset, config file, flags and positional kernel
// arguments, later sources overriding earlier ones.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("dim") {
		cfg.Dim = dim
	}
	if cmd.Flags().Changed("nodes") {
		cfg.Nodes = nodes
	}
	if cmd.Flags().Changed("iterations") {
		cfg.Iterations = iterations
	}
	if cmd.Flags().Changed("radius") {
		cfg.Radius = radius
	}
	if cmd.Flags().Changed("birth") {
		cfg.Birth = birth
	}
	if cmd.Flags().Changed("death") {
		cfg.Death = death
	}
	if cmd.Flags().Changed("env-death") {
		cfg.EnvDeath = envDeath
	}
	if cmd.Flags().Changed("alpha") {
		cfg.Alpha = alpha
	}
	if cmd.Flags().Changed("beta") {
		cfg.Beta = beta
	}
	if cmd.Flags().Changed("gamma") {
		cfg.Gamma = gamma
	}
	if cmd.Flags().Changed("accuracy") {
		cfg.Accuracy = accuracy
	}
	if cmd.Flags().Changed("method") {
		cfg.Method = method
	}

	if len(args) > 0 {
		params := make([]float64, 0, len(args)-1)
		for _, a := range args[1:] {
			v, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return nil, fmt.Errorf("kernel parameter %q: %w", a, err)
			}
			params = append(params, v)
		}
		cfg.Kernel = config.KernelConfig{Family: args[0], Params: params}
	}

	return cfg, nil
}

func buildProblem(cmd *cobra.Command, args []string) (*problem.Problem, error) {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return nil, err
	}
	params, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	return problem.New(params)
}

func runSolve(cmd *cobra.Command, args []string) error {
	p, err := buildProblem(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s := solver.New(p)
	fmt.Printf("solving with %s, %d nodes, radius %.4f...\n", s.Name(), p.Nodes(), p.Radius())
	start := time.Now()

	res, err := s.Solve(p)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(p, res)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	if res.Converged {
		fmt.Printf("converged after %d iterations\n", res.Iterations)
	} else {
		fmt.Printf("NOT converged after %d iterations\n", res.Iterations)
	}
	fmt.Printf("N: %.*f\n", p.Accuracy(), res.N)
	fmt.Printf("C(0): %.*f\n", p.Accuracy(), res.GetC0())

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	fmt.Println("\nmetrics:")
	for name, val := range meta.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	p, err := buildProblem(cmd, args)
	if err != nil {
		return err
	}
	prog := tea.NewProgram(watch.New(p))
	_, err = prog.Run()
	return err
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	methods := []string{"neuman", "lneuman", "nystrom"}
	if cfg.Dim != 1 && cfg.Dim != 3 {
		methods = []string{"neuman"}
	}
	sizes := []int{64, 128, 256}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tNODES\tITERS\tCONVERGED\tN\tTIME")

	for _, m := range methods {
		for _, n := range sizes {
			run := *cfg
			run.Method = m
			run.Nodes = n
			params, err := run.Params()
			if err != nil {
				return err
			}
			p, err := problem.New(params)
			if err != nil {
				return err
			}

			start := time.Now()
			res, err := solver.New(p).Solve(p)
			elapsed := time.Since(start)
			if err != nil {
				fmt.Fprintf(w, "%s\t%d\t-\t-\t-\t%v (%v)\n", m, n, elapsed, err)
				continue
			}
			fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.4f\t%v\n", m, n, res.Iterations, res.Converged, res.N, elapsed)
		}
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if sweepParam < 0 || sweepParam >= len(cfg.Kernel.Params) {
		return fmt.Errorf("parameter index %d out of range for %s kernel", sweepParam, cfg.Kernel.Family)
	}
	if sweepSteps < 2 {
		return fmt.Errorf("need at least 2 sweep points, got %d", sweepSteps)
	}
	from, to := sweepFrom, sweepTo
	if from == 0 && to == 0 {
		// Default range: half to double the configured value.
		base := cfg.Kernel.Params[sweepParam]
		from, to = base/2, base*2
	}

	family, err := kernel.ParseFamily(cfg.Kernel.Family)
	if err != nil {
		return err
	}
	paramName := kernel.ParamNames(family)[sweepParam]

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tN\tC(0)\tEXCESS\tCONVERGED\n", paramName)

	for i := 0; i < sweepSteps; i++ {
		value := from + (to-from)*float64(i)/float64(sweepSteps-1)

		run := *cfg
		run.Kernel.Params = append([]float64(nil), cfg.Kernel.Params...)
		run.Kernel.Params[sweepParam] = value

		params, err := run.Params()
		if err != nil {
			fmt.Fprintf(w, "%.4f\t-\t-\t-\t%v\n", value, err)
			continue
		}
		p, err := problem.New(params)
		if err != nil {
			fmt.Fprintf(w, "%.4f\t-\t-\t-\t%v\n", value, err)
			continue
		}
		res, err := solver.New(p).Solve(p)
		if err != nil {
			fmt.Fprintf(w, "%.4f\t-\t-\t-\t%v\n", value, err)
			continue
		}
		excess := 0.0
		if res.N > 0 {
			excess = res.GetC0()/(res.N*res.N) - 1
		}
		fmt.Fprintf(w, "%.4f\t%.4f\t%.4f\t%+.4f\t%v\n", value, res.N, res.GetC0(), excess, res.Converged)
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tKERNEL\tMETHOD\tDIM\tNODES\tCONVERGED\tN\tTIME")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%v\t%.4f\t%s\n",
			run.ID,
			run.Kernel,
			run.Method,
			run.Dim,
			run.Nodes,
			run.Converged,
			run.N,
			run.Timestamp.Format("2006-01-02 15:04:05"),
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
	_, cs, err := st.LoadCorrelation(runID)
	if err != nil {
		return err
	}
	if len(cs) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("kernel: %s, method: %s, dim %d\n", meta.Kernel, meta.Method, meta.Dim)
	fmt.Printf("N: %.6f\n\n", meta.N)

	graph := asciigraph.Plot(cs,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("C(r), r in [0, %.3f]", meta.Radius)),
	)
	fmt.Println(graph)
	fmt.Println()

	fmt.Println("metrics:")
	for name, val := range meta.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	rs, cs, err := st.LoadCorrelation(runID)
	if err != nil {
		return err
	}

	payload := struct {
		*storage.RunMetadata
		R []float64 `json:"r"`
		C []float64 `json:"c"`
	}{RunMetadata: meta, R: rs, C: cs}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	rs, cs, err := st.LoadCorrelation(runID)
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()
	if err := w.Write([]string{"r", "c"}); err != nil {
		return err
	}
	for i := range rs {
		row := []string{
			strconv.FormatFloat(rs[i], 'g', -1, 64),
			strconv.FormatFloat(cs[i], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
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
	rs, cs, err := st.LoadCorrelation(runID)
	if err != nil {
		return err
	}

	svg := export.CorrelationSVG(rs, cs, meta.N, svgWidth, svgHeight, "#00ff00")
	if svg == "" {
		return fmt.Errorf("not enough data to render")
	}

	out := svgOut
	if out == "" {
		out = runID + ".svg"
	}
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

func listKernels(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FAMILY\tPARAMETERS")
	for _, name := range kernel.Families() {
		f, err := kernel.ParseFamily(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%v\n", name, kernel.ParamNames(f))
	}
	return w.Flush()
}
