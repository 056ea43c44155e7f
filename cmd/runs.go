package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/alexiusacademia/gosfr/internal/catalog"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	runsCase  string
	runsLimit int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse the run history",
	Long: `Browse the runs recorded in the history database (--db).

Subcommands:
  list   - List recent runs
  show   - Show one run in detail`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs, newest first",
	Long: `List recent runs, newest first.

Examples:
  gosfr runs list
  gosfr runs list --case "SFR full core" --limit 5`,
	Args: cobra.NoArgs,
	RunE: runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one run in detail",
	Long: `Show one run in detail. The id may be any unique prefix.

Examples:
  gosfr runs show 3f2a9c1e`,
	Args: cobra.ExactArgs(1),
	RunE: runRunsShow,
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)

	runsListCmd.Flags().StringVar(&runsCase, "case", "", "Only runs of this case")
	runsListCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "Maximum number of runs")
}

func runRunsList(cmd *cobra.Command, args []string) error {
	db, err := catalog.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.List(runsCase, runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("\n  No runs recorded.")
		fmt.Println()
		return nil
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  ID\tCase\tStatus\tk-eff\tHistories\tStarted\tDuration\n")
	fmt.Fprintf(w, "  ──\t────\t──────\t─────\t─────────\t───────\t────────\n")
	for i := range runs {
		r := &runs[i]
		keff := "-"
		if r.Status == catalog.StatusCompleted {
			keff = fmt.Sprintf("%.5f ± %.5f", r.KEff, r.KEffStd)
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			short(r.ID), r.Case, r.Status, keff,
			humanize.Comma(int64(r.Particles)*int64(r.Batches)),
			humanize.Time(r.Started()), duration(r))
	}
	w.Flush()
	fmt.Println()
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	db, err := catalog.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	r, err := db.Get(args[0])
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     RUN %s\n", r.ID)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Case:\t%s\n", r.Case)
	fmt.Fprintf(w, "  Status:\t%s\n", r.Status)
	fmt.Fprintf(w, "  Directory:\t%s\n", r.Dir)
	fmt.Fprintf(w, "  Particles / batch:\t%s\n", humanize.Comma(int64(r.Particles)))
	fmt.Fprintf(w, "  Batches (inactive):\t%d (%d)\n", r.Batches, r.Inactive)
	fmt.Fprintf(w, "  Started:\t%s (%s)\n", r.Started().Format(time.DateTime), humanize.Time(r.Started()))
	fmt.Fprintf(w, "  Duration:\t%s\n", duration(r))
	switch r.Status {
	case catalog.StatusCompleted:
		fmt.Fprintf(w, "  k-effective:\t%.5f ± %.5f\n", r.KEff, r.KEffStd)
		fmt.Fprintf(w, "  State point:\t%s\n", r.StatePoint)
	case catalog.StatusFailed:
		fmt.Fprintf(w, "  Error:\t%s\n", r.Error)
	}
	w.Flush()
	fmt.Println()
	fmt.Printf("  Plot its flux map with: gosfr plot --run %s -o flux.png\n\n", short(r.ID))
	return nil
}

func duration(r *catalog.Run) string {
	if r.FinishedAt == 0 {
		return "running"
	}
	return r.Duration().Round(time.Second).String()
}
