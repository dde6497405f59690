package main

import (
	"fmt"
	"os"
	"path"

	"github.com/spf13/cobra"

	"github.com/ekisa-team/modelhandler/internal/config"
	"github.com/ekisa-team/modelhandler/internal/xfs"
)

// Version is overridden at build time via -ldflags.
var Version = "dev"

var (
	flagConfigPath string
	flagSchemaPath string
	flagModelDir   string
	flagSuffix     string
)

var rootCmd = &cobra.Command{
	Use:           "modelhandler",
	Short:         "Serve a single model backend",
	Long:          "modelhandler binds the backend defined in an artifact directory and forwards inference requests to it.",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagConfigPath, "config", path.Join(config.DefaultConfigPath(), "config.yaml"), "Path to config file, empty to skip")
	flags.StringVar(&flagSchemaPath, "schema", "", "Path to config schema file (default: built-in)")
	flags.StringVar(&flagModelDir, "model-dir", "", "Artifact directory (overrides config)")
	flags.StringVar(&flagSuffix, "suffix", "", "Backend definition file suffix (overrides config)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig returns the effective configuration and whether it was read
// from a file. A missing file at the default path falls back to defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, bool, error) {
	cfg := config.Default()
	loaded := false

	if flagConfigPath != "" {
		_, err := os.Stat(flagConfigPath)
		switch {
		case err == nil:
			cfg, err = config.LoadAndValidate(flagConfigPath, flagSchemaPath)
			if err != nil {
				return nil, false, err
			}
			loaded = true
		case cmd.Flags().Changed("config"):
			return nil, false, fmt.Errorf("config file %s: %w", flagConfigPath, err)
		}
	}

	if !loaded {
		if err := cfg.ApplyEnv(); err != nil {
			return nil, false, err
		}
	}

	if flagModelDir != "" {
		cfg.ModelDir = xfs.ExpandTilde(flagModelDir)
	}
	if flagSuffix != "" {
		cfg.BackendSuffix = flagSuffix
	}

	return cfg, loaded, nil
}
