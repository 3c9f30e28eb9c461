// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/conic-engine/internal/polynomial"
	"github.com/pdiddy/conic-engine/internal/report"
	"github.com/pdiddy/conic-engine/pkg/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse <equation>",
	Short: "Classify an equation and print its geometry",
	Long: `Parse classifies a single equation. Arguments are joined with spaces, so
quoting is optional:

  conic-engine parse "x^2 + y^2 = 25"
  conic-engine parse y = 2x^2 - 3x + 1

The result is printed as a parameter table, or as the ConicResult JSON
document with --json.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	equation := strings.Join(args, " ")
	cfg := engineConfig()

	store, err := openHistory(cfg.History, false)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	res := newAnalyzer(cfg).Analyze(context.Background(), equation)

	if store != nil {
		if _, err := store.Record(context.Background(), equation, res); err != nil {
			logger.Warn("recording analysis failed", "error", err)
		}
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return writeJSON(os.Stdout, res)
	}
	printResult(os.Stdout, res, cfg.Classifier.Locale)
	return nil
}

func printResult(w io.Writer, res types.ConicResult, loc types.Locale) {
	fmt.Fprintf(w, "Type:       %s\n", res.Type)
	fmt.Fprintf(w, "Confidence: %.0f%%\n", res.Confidence*100)
	if res.Strategy != "" {
		fmt.Fprintf(w, "Strategy:   %s (%s)\n", res.Strategy, res.Source)
	} else {
		fmt.Fprintf(w, "Source:     %s\n", res.Source)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, r := range report.Rows(res, loc) {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name, r.Value, r.Description)
	}
	tw.Flush()

	if n := len(res.GraphingPoints); n > 0 {
		fmt.Fprintf(w, "\n%d graphing points\n", n)
	}
}

var termsCmd = &cobra.Command{
	Use:   "terms <equation>",
	Short: "Show the term-by-term breakdown of an equation",
	Long: `Terms extracts every monomial of the equation, moves the right-hand side
across the equals sign, and prints the summed coefficient of each of the
nine shapes (x^2y^2, x^2y, xy^2, x^2, y^2, xy, x, y, constant) together
with the combined polynomial and the classifier verdict.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTerms,
}

func runTerms(cmd *cobra.Command, args []string) error {
	sum, err := polynomial.Summarize(strings.Join(args, " "))
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return writeJSON(os.Stdout, sum)
	}

	fmt.Printf("Normalized: %s\n\n", sum.Normalized)
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Shape\tCoefficient")
	for _, t := range sum.Totals {
		fmt.Fprintf(tw, "%s\t%.2f\n", t.Shape, t.Coefficient)
	}
	tw.Flush()

	v := sum.Coefficients
	fmt.Printf("\nCombined:   %s\n", sum.Combined)
	fmt.Printf("A=%g B=%g C=%g D=%g E=%g F=%g\n", v.A, v.B, v.C, v.D, v.E, v.F)
	fmt.Printf("Discriminant: %g\n", v.Discriminant())
	fmt.Printf("Type:       %s\n", sum.Type)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	parseCmd.Flags().Bool("json", false, "print the result as JSON")
	termsCmd.Flags().Bool("json", false, "print the breakdown as JSON")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(termsCmd)
}
