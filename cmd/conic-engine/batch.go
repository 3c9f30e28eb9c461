// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/conic-engine/internal/batch"
)

var batchCmd = &cobra.Command{
	Use:   "batch <input.yaml>",
	Short: "Classify a YAML file of equations",
	Long: `Batch reads a YAML list of equations (or a mapping with an "equations"
key), classifies them in parallel, and writes items plus a summary as YAML
to --output or stdout. Results keep the input order.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	equations, err := batch.ReadFile(args[0])
	if err != nil {
		return err
	}
	cfg := engineConfig()

	store, err := openHistory(cfg.History, false)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out, err := batch.NewRunner(newAnalyzer(cfg), cfg.Batch, logger).Run(ctx, equations)
	if err != nil {
		return err
	}

	if store != nil {
		for _, it := range out.Items {
			if _, err := store.Record(ctx, it.Equation, it.Result); err != nil {
				logger.Warn("recording analysis failed", "equation", it.Equation, "error", err)
			}
		}
	}

	outPath, _ := cmd.Flags().GetString("output")
	if outPath == "" {
		return batch.Write(os.Stdout, out)
	}
	if err := batch.WriteFile(outPath, out); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %d results to %s\n", out.Summary.Total, outPath)
	return nil
}

func init() {
	batchCmd.Flags().StringP("output", "o", "", "write results to this YAML file instead of stdout")
	batchCmd.Flags().Int("workers", 4, "equations classified in parallel")
	_ = viper.BindPFlag("batch.workers", batchCmd.Flags().Lookup("workers"))

	rootCmd.AddCommand(batchCmd)
}
