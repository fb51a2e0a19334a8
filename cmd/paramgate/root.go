package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "paramgate",
	Short: "Declarative schema engine for request parameters",
	Long: `Paramgate validates, coerces, and defaults untyped request
parameters against declarative action schemas.

Schemas are checked for internal consistency at load time; request
data is validated per call, with raise-on-first-error or
collect-all-errors semantics chosen per schema.

Quick start:
  paramgate validate --dir schemas   # Lint schema files
  paramgate serve                    # Start the validation service`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "paramgate.yaml", "config file path")
}

// newLogger builds the process logger from config values.
func newLogger(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	logger := zerolog.New(os.Stderr)
	if format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return logger.Level(lvl).With().Timestamp().Logger()
}
