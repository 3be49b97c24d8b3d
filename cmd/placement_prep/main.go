// Package main provides the placement_prep CLI: rule catalogue lookups, resume
// scoring and suggestions, job posting ingestion and the REST API server.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/placement-prep/internal/config"
	"github.com/jonathan/placement-prep/internal/observability"
	"github.com/jonathan/placement-prep/internal/rules"
)

// app carries the resolved configuration shared by every subcommand
type app struct {
	configPath string
	domain     string
	level      string
	rulesDir   string
	verbose    bool

	cfg     config.Config
	logger  *slog.Logger
	loader  *rules.Loader
	printer *observability.Printer
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "placement_prep",
		Short: "Resume rule engine for campus placement preparation",
		Long: "placement_prep scores resumes against domain rule bundles (web developer, data scientist, " +
			"cyber security, AI/ML engineer, DevOps engineer), explains every rule result and suggests fixes.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Path to a JSON or YAML config file")
	flags.StringVarP(&a.domain, "domain", "d", "", "Target domain (default web-developer)")
	flags.StringVarP(&a.level, "level", "l", "", "Experience level: entryLevel, midLevel or seniorLevel")
	flags.StringVar(&a.rulesDir, "rules-dir", "", "Directory of rule bundles overriding the embedded ones")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Print detailed debug information")

	root.AddCommand(
		newDomainsCmd(a),
		newRulesCmd(a),
		newScoreCmd(a),
		newEvaluateCmd(a),
		newSuggestCmd(a),
		newIngestJobCmd(a),
		newWatchCmd(a),
		newServeCmd(a),
	)
	return root
}

// setup merges flags over the config file, the environment and the defaults
func (a *app) setup(cmd *cobra.Command) error {
	var cfg config.Config
	if a.configPath != "" {
		loaded, err := config.LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		cfg = *loaded
	}

	if cmd.Flags().Changed("domain") {
		cfg.Domain = a.domain
	}
	if cmd.Flags().Changed("level") {
		cfg.Level = a.level
	}
	if cmd.Flags().Changed("rules-dir") {
		cfg.RulesDir = a.rulesDir
	}
	if a.verbose {
		cfg.Verbose = true
	}
	cfg.ApplyEnv()
	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	opts := []rules.Option{rules.WithLogger(a.logger)}
	if cfg.RulesDir != "" {
		opts = append(opts, rules.WithDir(cfg.RulesDir))
	}
	a.loader = rules.NewLoader(opts...)
	a.printer = observability.NewPrinter(cmd.ErrOrStderr())
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
