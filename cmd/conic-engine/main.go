// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the conic-engine CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/conic-engine/internal/ai"
	"github.com/pdiddy/conic-engine/internal/cascade"
	"github.com/pdiddy/conic-engine/internal/history"
	"github.com/pdiddy/conic-engine/internal/secrets"
	"github.com/pdiddy/conic-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// loadedSecrets holds keys read from .secrets/ at startup.
	loadedSecrets secrets.Set

	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "conic-engine",
	Short: "Classify second-degree equations into conic sections",
	Long: `conic-engine reads a two-variable equation such as "x^2 + y^2 = 25" and
reports which conic section it describes (circle, ellipse, parabola,
hyperbola) together with its geometry: center, radius, semi-axes, foci,
vertex, directrix, eccentricity and asymptotes.

A deterministic cascade of parsers always answers. When an OpenAI API key
is available the model is asked first and its answer is used only if it
validates against the conic schema.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(viper.GetString("log_level"))
		if err != nil {
			return err
		}
		logger = l
		slog.SetDefault(l)

		s, err := secrets.Load(viper.GetString("secrets_dir"))
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			names := s.Names()
			sort.Strings(names)
			logger.Debug("loaded secrets", "keys", names)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./conic-engine.yaml or ~/.config/conic-engine/config.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("locale", "it", "explanation language: it or en")
	pf.Bool("points", false, "include graphing points in results")
	pf.Bool("ai", true, "ask the language model first when an API key is available")
	pf.String("model", ai.DefaultModel, "OpenAI chat model")
	pf.String("api-key", "", "OpenAI API key (overrides .secrets/openai-api-key and $OPENAI_API_KEY)")
	pf.Bool("history", false, "record analyses in the history database")
	pf.String("data-dir", "data", "directory holding history.db and exports")

	bind := map[string]string{
		"log_level":                  "log-level",
		"classifier.locale":          "locale",
		"classifier.graphing_points": "points",
		"ai.enabled":                 "ai",
		"ai.model":                   "model",
		"ai.api_key":                 "api-key",
		"history.enabled":            "history",
		"history.dir":                "data-dir",
	}
	for key, flag := range bind {
		_ = viper.BindPFlag(key, pf.Lookup(flag))
	}

	viper.SetDefault("secrets_dir", secrets.DefaultDir)
	viper.SetDefault("ai.max_retries", 3)
	viper.SetDefault("ai.timeout", 20*time.Second)
	viper.SetDefault("history.max_results", 20)
	viper.SetDefault("server.host", "127.0.0.1")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.read_timeout", 10*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("batch.workers", 4)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("conic-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "conic-engine"))
		}
	}

	viper.SetEnvPrefix("CONIC_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

// engineConfig assembles typed configuration from viper.
func engineConfig() types.EngineConfig {
	return types.EngineConfig{
		Classifier: types.ClassifierConfig{
			Locale:         types.Locale(viper.GetString("classifier.locale")),
			GraphingPoints: viper.GetBool("classifier.graphing_points"),
		},
		AI: types.AIConfig{
			Enabled:    viper.GetBool("ai.enabled"),
			Model:      viper.GetString("ai.model"),
			APIKey:     loadedSecrets.OpenAIKey(viper.GetString("ai.api_key")),
			BaseURL:    viper.GetString("ai.base_url"),
			MaxRetries: viper.GetInt("ai.max_retries"),
			Timeout:    viper.GetDuration("ai.timeout"),
		},
		History: types.HistoryConfig{
			Enabled:    viper.GetBool("history.enabled"),
			Dir:        viper.GetString("history.dir"),
			MaxResults: viper.GetInt("history.max_results"),
		},
		Server: types.ServerConfig{
			Host:         viper.GetString("server.host"),
			Port:         viper.GetString("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout"),
			WriteTimeout: viper.GetDuration("server.write_timeout"),
		},
		Batch: types.BatchConfig{
			Workers: viper.GetInt("batch.workers"),
		},
	}
}

// newAnalyzer wires the cascade and, when a key is present, the OpenAI
// backend. Without a key the AI path stays off.
func newAnalyzer(cfg types.EngineConfig) *ai.Analyzer {
	fallback := cascade.New(cfg.Classifier)
	aiCfg := cfg.AI
	if aiCfg.APIKey == "" {
		aiCfg.Enabled = false
	}
	var backend ai.Backend
	if aiCfg.Enabled {
		backend = ai.NewOpenAIBackend(aiCfg, nil)
		logger.Debug("AI backend enabled", "model", aiCfg.Model)
	}
	return ai.NewAnalyzer(backend, fallback, aiCfg, cfg.Classifier, ai.WithLogger(logger))
}

// openHistory opens the history store, or returns nil when history is off
// and force is false.
func openHistory(cfg types.HistoryConfig, force bool) (*history.Store, error) {
	if !cfg.Enabled && !force {
		return nil, nil
	}
	return history.NewStore(cfg)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
