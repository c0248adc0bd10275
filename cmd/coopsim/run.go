package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/coopsim/internal/config"
	"github.com/vovakirdan/coopsim/internal/core"
	"github.com/vovakirdan/coopsim/internal/engine"
	"github.com/vovakirdan/coopsim/internal/platform/render"
	"github.com/vovakirdan/coopsim/internal/registry"
	"github.com/vovakirdan/coopsim/internal/sink"
	"github.com/vovakirdan/coopsim/internal/storage"
	"github.com/vovakirdan/coopsim/internal/topology"
)

var (
	flagConfig      string
	flagPresets     []string
	flagBenefit     float64
	flagCost        float64
	flagSelection   float64
	flagSize        int
	flagGenerations int
	flagInitial     float64
	flagOutDir      string
	flagNoFiles     bool
	flagStore       bool
	flagStoreTrace  bool
	flagPreview     bool
)

var runCmd = &cobra.Command{
	Use:   "run <variant>",
	Short: "Run a simulation",
	Long: `Run one simulation of the specified variant and write its results.

Parameters come from the variant's config file and can be overridden with
flags. Each generation performs one update step per agent.

Output files:
  wellmixed  FreqCoop.txt
  spatial    COOP_FREQ_B_<b>__C_<c>.txt, INITIAL_MATRIX_B_<b>__C_<c>.txt,
             FINAL_MATRIX_B_<b>__C_<c>.txt

Presets:
  quick, reference, long   - scale the number of generations (x0.1, x1, x10)
  strong, moderate, weak   - set k to 0.01, 0.1, 1.0

Examples:
  coopsim run spatial
  coopsim run spatial --b 1.5 --c 1 --k 0.5 --preset quick
  coopsim run wellmixed --n 2000 --out ./results --seed 7
  coopsim run spatial --store --store-trace --preview
  coopsim run spatial --config ./my-spatial.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom run config YAML")
	runCmd.Flags().StringSliceVar(&flagPresets, "preset", nil, "Presets to apply: quick, reference, long, strong, moderate, weak")
	runCmd.Flags().Float64Var(&flagBenefit, "b", 0, "Benefit b provided by a cooperator")
	runCmd.Flags().Float64Var(&flagCost, "c", 0, "Cost c paid by a cooperator")
	runCmd.Flags().Float64Var(&flagSelection, "k", 0, "Selection noise k of the Fermi rule")
	runCmd.Flags().IntVar(&flagSize, "n", 0, "Population size (well-mixed) or grid side (spatial)")
	runCmd.Flags().IntVar(&flagGenerations, "generations", 0, "Number of generations")
	runCmd.Flags().Float64Var(&flagInitial, "f0", 0, "Initial fraction of cooperators")
	runCmd.Flags().StringVar(&flagOutDir, "out", "", "Directory for result files (overrides config)")
	runCmd.Flags().BoolVar(&flagNoFiles, "no-files", false, "Do not write result files")
	runCmd.Flags().BoolVar(&flagStore, "store", false, "Save the run to the catalogue database")
	runCmd.Flags().BoolVar(&flagStoreTrace, "store-trace", false, "Also save the full trace (implies --store)")
	runCmd.Flags().BoolVar(&flagPreview, "preview", false, "Show the final grid, coloured when stdout is a terminal")
}

func runRun(cmd *cobra.Command, args []string) {
	variant := args[0]

	if !registry.Exists(variant) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", variant)
		fmt.Fprintln(os.Stderr, "Run 'coopsim list' to see available variants.")
		os.Exit(1)
	}

	cfg, err := config.Load(variant, flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	for _, preset := range flagPresets {
		if err := config.ApplyPreset(&cfg, preset); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	applyOverrides(cmd, &cfg)

	logger := newLogger()

	var store *storage.Store
	if flagStore || flagStoreTrace {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening run catalogue: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep, err := executeRun(ctx, runRequest{
		Variant:    variant,
		Config:     cfg,
		Seed:       resolveSeed(flagSeed),
		NoFiles:    flagNoFiles,
		Store:      store,
		StoreTrace: flagStoreTrace,
		Logger:     logger,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Error: run interrupted")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Println(rep.Summary().Render(render.DefaultTheme()))

	if flagPreview && rep.FinalRows != nil {
		fd := int(os.Stdout.Fd())
		if !term.IsTerminal(fd) {
			// Plain 80-column preview for pipes and files
			fmt.Println(render.GridScreen(rep.FinalRows, 80).String())
			return
		}
		width := 80
		if w, _, termErr := term.GetSize(fd); termErr == nil {
			width = w
		}
		fmt.Println(render.Grid(rep.FinalRows, width))
	}
}

// applyOverrides copies every flag the user set onto cfg.
func applyOverrides(cmd *cobra.Command, cfg *config.SimConfig) {
	flags := cmd.Flags()
	if flags.Changed("b") {
		cfg.Benefit = flagBenefit
	}
	if flags.Changed("c") {
		cfg.Cost = flagCost
	}
	if flags.Changed("k") {
		cfg.Selection = flagSelection
	}
	if flags.Changed("n") {
		cfg.Size = flagSize
	}
	if flags.Changed("generations") {
		cfg.Generations = flagGenerations
	}
	if flags.Changed("f0") {
		cfg.InitialCooperation = flagInitial
	}
	if flags.Changed("out") {
		cfg.Output.Dir = flagOutDir
	}
}

// runRequest holds everything needed to perform one run.
type runRequest struct {
	Variant    string
	Config     config.SimConfig
	Seed       int64
	NoFiles    bool
	Store      *storage.Store // nil disables the catalogue
	StoreTrace bool
	Logger     *log.Logger
}

// runReport is the outcome of executeRun.
type runReport struct {
	Title     string
	Params    core.Params
	Result    engine.Result
	RunID     string
	Files     []string
	FinalRows [][]core.Strategy // nil for non-grid variants
}

// Summary returns the display form of the report.
func (r runReport) Summary() render.Summary {
	return render.Summary{
		Title:  r.Title,
		Params: r.Params,
		Result: r.Result,
		RunID:  r.RunID,
		Files:  r.Files,
	}
}

// executeRun validates the request, runs the engine and stores the results.
// Invalid parameters are rejected before any file is created.
func executeRun(ctx context.Context, req runRequest) (runReport, error) {
	model, err := registry.Create(req.Variant)
	if err != nil {
		return runReport{}, err
	}

	p := req.Config.Params(req.Seed)
	rc, err := engine.NewRunContext(model, p, rand.New(rand.NewSource(req.Seed)))
	if err != nil {
		return runReport{}, err
	}
	_, lattice := rc.Topology.(topology.Lattice)

	logger := req.Logger
	if logger == nil {
		logger = log.New(os.Stderr)
	}

	rep := runReport{Title: model.Title(), Params: p}
	var sinks sink.Multi

	var text *sink.Text
	if !req.NoFiles && req.Config.Output.Trace {
		names := sink.FileNames(lattice, p.Benefit, p.Cost)
		if !req.Config.Output.Snapshots {
			names.Initial, names.Final = "", ""
		}
		text, err = sink.Files(req.Config.Output.Dir, names)
		if err != nil {
			return runReport{}, err
		}
		defer text.Close()
		sinks = append(sinks, text)
		for _, name := range []string{names.Trace, names.Initial, names.Final} {
			if name != "" {
				rep.Files = append(rep.Files, filepath.Join(req.Config.Output.Dir, name))
			}
		}
	}

	var rec *storage.Recorder
	if req.Store != nil && req.StoreTrace {
		rec, err = req.Store.NewRecorder()
		if err != nil {
			return runReport{}, err
		}
		defer rec.Rollback()
		sinks = append(sinks, rec)
	}

	lastDecile := 0
	eng := engine.New(rc, sinks,
		engine.WithLogger(logger),
		engine.WithTraceRetention(false),
		engine.WithProgress(func(step, total int) {
			if d := step * 10 / total; d > lastDecile {
				lastDecile = d
				logger.Info("progress", "percent", d*10)
			}
		}),
	)

	res, err := eng.Run(ctx)
	if err != nil {
		return runReport{}, err
	}
	rep.Result = res

	if text != nil {
		if err := text.Close(); err != nil {
			return runReport{}, err
		}
	}

	if lattice {
		rep.FinalRows = eng.Population().Rows()
	}

	if req.Store != nil {
		run := storage.NewRun(p, res)
		if rec != nil {
			rep.RunID, err = rec.Commit(run)
		} else {
			rep.RunID, err = req.Store.SaveRun(run)
		}
		if err != nil {
			return runReport{}, err
		}
		logger.Info("run stored", "id", rep.RunID)
	}

	return rep, nil
}
