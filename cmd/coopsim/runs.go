package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/coopsim/internal/registry"
	"github.com/vovakirdan/coopsim/internal/sink"
	"github.com/vovakirdan/coopsim/internal/storage"
)

var (
	flagRunsLimit int
	flagTraceID   string
	flagStats     bool
	flagClear     bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [variant]",
	Short: "Show stored runs",
	Long: `Display runs saved with 'coopsim run --store', newest first.

Examples:
  coopsim runs
  coopsim runs spatial --limit 5
  coopsim runs --stats
  coopsim runs --trace 0f8fad5b-d9cb-469f-a165-70867728950e > trace.txt
  coopsim runs wellmixed --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Maximum number of runs to show")
	runsCmd.Flags().StringVar(&flagTraceID, "trace", "", "Print the stored trace of a run")
	runsCmd.Flags().BoolVar(&flagStats, "stats", false, "Show per-variant statistics")
	runsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete stored runs (of the variant, if given)")
}

func runRuns(cmd *cobra.Command, args []string) {
	variant := ""
	if len(args) == 1 {
		variant = args[0]
		if !registry.Exists(variant) {
			fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", variant)
			fmt.Fprintln(os.Stderr, "Run 'coopsim list' to see available variants.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run catalogue: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagTraceID != "":
		err = printTrace(os.Stdout, store, flagTraceID)
	case flagClear:
		err = store.ClearRuns(variant)
		if err == nil {
			fmt.Println("Runs cleared.")
		}
	case flagStats:
		err = printStats(os.Stdout, store)
	default:
		err = printRuns(os.Stdout, store, variant, flagRunsLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}

// printTrace writes a stored trace in the same format as the trace files.
func printTrace(w io.Writer, store *storage.Store, id string) error {
	run, err := store.RunByID(id)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("no run with id %s", id)
	}

	trace, err := store.RunTrace(id)
	if err != nil {
		return err
	}
	if len(trace) == 0 {
		return fmt.Errorf("run %s was stored without a trace", id)
	}

	out := sink.NewText(w)
	for _, smp := range trace {
		if err := out.Record(smp.Step, smp.Fraction); err != nil {
			return err
		}
	}
	return out.Flush()
}

func printRuns(w io.Writer, store *storage.Store, variant string, limit int) error {
	runs, err := store.RecentRuns(variant, limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs stored yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Run 'coopsim run <variant> --store' to save one.")
		return nil
	}

	fmt.Fprintf(w, "  %-36s  %-9s  %-6s  %-6s  %-6s  %-5s  %-8s  %s\n",
		"ID", "Variant", "b", "c", "k", "N", "Final", "Date")
	fmt.Fprintf(w, "  %-36s  %-9s  %-6s  %-6s  %-6s  %-5s  %-8s  %s\n",
		"--", "-------", "-", "-", "-", "-", "-----", "----")

	for _, r := range runs {
		fmt.Fprintf(w, "  %-36s  %-9s  %-6.2f  %-6.2f  %-6.3g  %-5d  %-8.6f  %s\n",
			r.ID, r.Variant, r.Benefit, r.Cost, r.Selection, r.Size, r.FinalFraction,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printStats(w io.Writer, store *storage.Store) error {
	stats, err := store.VariantStats()
	if err != nil {
		return err
	}

	if len(stats) == 0 {
		fmt.Fprintln(w, "No runs stored yet.")
		return nil
	}

	variants := make([]string, 0, len(stats))
	for v := range stats {
		variants = append(variants, v)
	}
	sort.Strings(variants)

	fmt.Fprintf(w, "  %-9s  %-5s  %-8s  %-8s  %-8s  %s\n", "Variant", "Runs", "Mean", "Min", "Max", "Last run")
	fmt.Fprintf(w, "  %-9s  %-5s  %-8s  %-8s  %-8s  %s\n", "-------", "----", "----", "---", "---", "--------")
	for _, v := range variants {
		s := stats[v]
		fmt.Fprintf(w, "  %-9s  %-5d  %-8.6f  %-8.6f  %-8.6f  %s\n",
			s.Variant, s.Runs, s.MeanFinal, s.MinFinal, s.MaxFinal, s.LastRun.Format("2006-01-02 15:04"))
	}
	return nil
}
