// Package cmd wires the CLI: the root command runs a triage batch, with
// subcommands for inspecting the model catalog and checking credentials.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"vulntriage/internal/batch"
	"vulntriage/internal/config"
	"vulntriage/internal/dispatch"
	"vulntriage/internal/registry"
	"vulntriage/internal/tokens"
	"vulntriage/internal/verdict"
)

var (
	configPath   string
	baseDir      string
	outputDir    string
	model        string
	temperature  float64
	maxTokens    int
	maxProjects  int
	delay        time.Duration
	noTokenCount bool
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "vulntriage",
	Short: "LLM-assisted triage of static-analysis security alerts",
	Long: `vulntriage sends CWE-specific analysis prompts, built from prompt templates
and per-alert code context, to a remote LLM and records a structured verdict
for every alert: false-positive judgment, sanitization, attack feasibility,
and confidence. Results are written as CSV with a run summary.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := resolveConfig(cmd.Flags())
		if err != nil {
			return err
		}

		if err := registry.Validate(); err != nil {
			return fmt.Errorf("model catalog self-check: %w", err)
		}

		counter := tokens.NewCounter(logger)
		dispatcher := dispatch.New(logger, counter)
		if err := dispatcher.CheckCredentials(); err != nil {
			return err
		}

		driver := batch.NewDriver(logger, dispatcher, verdict.NewExtractor(logger), cfg)
		results, err := driver.Run(cmd.Context())
		if err != nil {
			return err
		}
		if len(results) == 0 {
			logger.Warn("no alerts were processed, nothing to write")
			return nil
		}

		resultsPath, err := batch.WriteResults(results, cfg.OutputDir)
		if err != nil {
			return err
		}
		summaryPath, err := batch.WriteSummary(results, cfg.Model, cfg.OutputDir)
		if err != nil {
			return err
		}
		logger.Info("triage run complete",
			"alerts", len(results), "results", resultsPath, "summary", summaryPath)
		return nil
	},
}

// Execute runs the CLI, cancelling on SIGINT/SIGTERM. Called by main.main.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// resolveConfig layers CLI flags over the optional YAML run config over the
// defaults. Only flags the user actually set override file values.
func resolveConfig(flags *pflag.FlagSet) (config.Run, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return config.Run{}, err
		}
		cfg = loaded
	}

	if flags.Changed("base-dir") {
		cfg.BaseDir = baseDir
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = outputDir
	}
	if flags.Changed("model") {
		cfg.Model = model
	}
	if flags.Changed("temperature") {
		t := temperature
		cfg.Temperature = &t
	}
	if flags.Changed("max-tokens") {
		n := maxTokens
		cfg.MaxTokens = &n
	}
	if flags.Changed("max-projects") {
		cfg.MaxProjects = maxProjects
	}
	if flags.Changed("delay") {
		cfg.Delay = config.Duration(delay)
	}
	if flags.Changed("no-token-count") {
		cfg.CountTokens = !noTokenCount
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = filepath.Join(cfg.BaseDir, "triage-results")
	}

	if err := cfg.Validate(); err != nil {
		return config.Run{}, err
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML run configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.Flags().StringVar(&baseDir, "base-dir", ".", "Directory holding Projects_info.csv, templates, and code contexts")
	rootCmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for the results CSV and summary (default: <base-dir>/triage-results)")
	rootCmd.Flags().StringVarP(&model, "model", "m", "", "Model to use (see 'vulntriage models')")
	rootCmd.Flags().Float64VarP(&temperature, "temperature", "t", 0, "Sampling temperature; validated against the model's legal range")
	rootCmd.Flags().IntVarP(&maxTokens, "max-tokens", "x", 0, "Maximum tokens to generate per call")
	rootCmd.Flags().IntVar(&maxProjects, "max-projects", 0, "Process at most this many projects (0 = all)")
	rootCmd.Flags().DurationVar(&delay, "delay", time.Second, "Delay between model calls")
	rootCmd.Flags().BoolVar(&noTokenCount, "no-token-count", false, "Disable token counting and cost estimation")
}
