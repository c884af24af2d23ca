package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/docline/docline/version"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "docline",
	Short: "Batch PDF to structured JSON converter",
	Long: `Docline converts a directory of PDF documents into structured,
schema-validated JSON records, one output artifact per input file.

For each PDF it extracts the text layer with layout hints, derives a
title, a heading outline, and body sections, validates the result
against the active JSON Schema, and writes the record. A malformed
document produces a failure artifact instead of halting the batch.`,
	Version:       version.GitRelease,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.docline/config.yaml)",
	)

	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the process logger at the configured level.
func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: l}))
}
