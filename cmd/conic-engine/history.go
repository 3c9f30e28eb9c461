// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/conic-engine/internal/history"
	"github.com/pdiddy/conic-engine/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List, inspect and export recorded analyses",
	Long: `History reads the SQLite log written by parse, batch and serve when
--history is on. The database lives at <data-dir>/history.db.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list [text]",
	Short: "List recorded analyses, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistory(engineConfig().History, true)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(context.Background(), queryOptsFromFlags(cmd, args))
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		if entries == nil {
			entries = []history.Entry{}
		}
		return writeJSON(os.Stdout, entries)
	}
	printEntries(os.Stdout, entries)
	return nil
}

func printEntries(w io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No analyses recorded.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tWhen\tType\tConf\tSource\tEquation")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%s\t%s\n",
			e.ID, e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Type, e.Confidence, e.Source, truncate(e.Equation, 40))
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d entries\n", len(entries))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// --- show subcommand ---

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one recorded analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	cfg := engineConfig()
	store, err := openHistory(cfg.History, true)
	if err != nil {
		return err
	}
	defer store.Close()

	e, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return writeJSON(os.Stdout, e)
	}
	fmt.Printf("Equation:   %s\nRecorded:   %s\n", e.Equation, e.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	printResult(os.Stdout, e.Result, cfg.Classifier.Locale)
	return nil
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded analyses to YAML or JSON",
	Long: `Export writes recorded analyses (or a filtered subset) to
<data-dir>/export.yaml or export.json.`,
	RunE: runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := openHistory(engineConfig().History, true)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(context.Background(), opts)
	case "json":
		path, err = store.ExportJSON(context.Background(), opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Println("Exported to", path)
	return nil
}

// --- stats subcommand ---

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count recorded analyses per conic type",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory(engineConfig().History, true)
		if err != nil {
			return err
		}
		defer store.Close()

		counts, err := store.Counts(context.Background())
		if err != nil {
			return err
		}
		for _, t := range []types.ConicType{types.ConicCircle, types.ConicEllipse, types.ConicParabola, types.ConicHyperbola, types.ConicUnknown} {
			fmt.Printf("%-14s %d\n", t, counts[t])
		}
		return nil
	},
}

// --- shared helpers ---

func queryOptsFromFlags(cmd *cobra.Command, args []string) history.QueryOptions {
	queryText := strings.Join(args, " ")
	conicType, _ := cmd.Flags().GetString("type")
	source, _ := cmd.Flags().GetString("source")
	minConf, _ := cmd.Flags().GetFloat64("min-confidence")
	limit, _ := cmd.Flags().GetInt("limit")

	return history.QueryOptions{
		Query:         queryText,
		Type:          types.ConicType(conicType),
		Source:        types.Source(source),
		MinConfidence: minConf,
		MaxResults:    limit,
	}
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("type", "", "filter by type: circonferenza, ellisse, parabola, iperbole, unknown")
	cmd.Flags().String("source", "", "filter by source: cascade or ai")
	cmd.Flags().Float64("min-confidence", 0, "drop entries below this confidence")
	cmd.Flags().Int("limit", 0, "maximum entries (0 = use default)")
}

func init() {
	addFilterFlags(historyListCmd)
	historyListCmd.Flags().Bool("json", false, "output entries as JSON")

	historyShowCmd.Flags().Bool("json", false, "output the entry as JSON")

	addFilterFlags(historyExportCmd)
	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyStatsCmd)

	rootCmd.AddCommand(historyCmd)
}
