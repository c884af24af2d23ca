package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/docline/docline/internal/batch"
	"github.com/docline/docline/internal/config"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run the batch over a directory of PDFs",
	Long: `Process every PDF in the input directory and write one JSON
artifact per input into the output directory.

The output artifact is named after the input's base name, so reruns
overwrite prior results for the same file. The exit status is non-zero
when any file failed or produced an invalid record, so external
orchestration can detect partial batch failure.

Examples:
  docline process --input ./pdfs --output ./records
  docline process --schema ./schema/output.json --workers 8
  DOCLINE_PDF_PASSWORD=secret docline process --input /app/input --output /app/output`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cm, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfg := cm.Get()

		logger := newLogger(cfg.LogLevel)

		summary, err := batch.Run(cmd.Context(), batch.Config{
			InputDir:    cfg.Input,
			OutputDir:   cfg.Output,
			SchemaPath:  cfg.Schema,
			Workers:     cfg.Workers,
			MaxPages:    cfg.MaxPages,
			PDFPassword: config.ResolveEnvVars(cfg.PDFPassword),
			Thresholds:  cfg.Thresholds(),
			Logger:      logger,
		})
		if err != nil {
			return err
		}

		if bad := summary.Failed + summary.Invalid; bad > 0 {
			return fmt.Errorf("%d of %d documents did not produce a valid record", bad, summary.Total)
		}
		return nil
	},
}

func init() {
	processCmd.Flags().String("input", "", "input directory of PDF files")
	processCmd.Flags().String("output", "", "output directory for JSON artifacts")
	processCmd.Flags().String("schema", "", "path to the output JSON Schema (default: embedded)")
	processCmd.Flags().Int("workers", 0, "concurrent file workers")
	processCmd.Flags().Int("max-pages", 0, "reject documents above this page count")

	// Flags override config file and environment.
	viper.BindPFlag("input", processCmd.Flags().Lookup("input"))
	viper.BindPFlag("output", processCmd.Flags().Lookup("output"))
	viper.BindPFlag("schema", processCmd.Flags().Lookup("schema"))
	viper.BindPFlag("workers", processCmd.Flags().Lookup("workers"))
	viper.BindPFlag("max_pages", processCmd.Flags().Lookup("max-pages"))

	rootCmd.AddCommand(processCmd)
}
