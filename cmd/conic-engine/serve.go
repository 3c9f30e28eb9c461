// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/conic-engine/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve conic analysis over HTTP",
	Long: `Serve starts an HTTP server with:

  POST /api/parse-conic   {"equation": "..."} -> ConicResult JSON
  GET  /health            liveness and AI/history status
  GET  /api/history       recorded analyses (with --history)
  GET  /api/history/{id}  one recorded analysis (with --history)

The server stops gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := engineConfig()

	store, err := openHistory(cfg.History, false)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	srv, err := server.New(server.Config{
		Server:   cfg.Server,
		Analyzer: newAnalyzer(cfg),
		History:  store,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Start(ctx)
}

func init() {
	serveCmd.Flags().String("host", "127.0.0.1", "address to bind")
	serveCmd.Flags().String("port", "8080", "port to listen on")
	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))

	rootCmd.AddCommand(serveCmd)
}
