package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docline/docline/internal/config"
	"github.com/docline/docline/internal/schema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Inspect the active record schema",
}

var schemaShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active schema document",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		s, err := reg.Get()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(s.Raw()))
		return nil
	},
}

var schemaCheckCmd = &cobra.Command{
	Use:   "check <record.json>",
	Short: "Validate an existing record file against the active schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		s, err := reg.Get()
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("not valid JSON: %w", err)
		}

		res := schema.Validate(doc, s)
		if res.Valid {
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		}

		for _, v := range res.Violations {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n", v.Path, v.Message, v.Rule)
		}
		return fmt.Errorf("%d schema violations", len(res.Violations))
	},
}

// loadRegistry loads the schema configured for this invocation.
func loadRegistry() (*schema.Registry, error) {
	cm, err := config.NewManager(cfgFile)
	if err != nil {
		return nil, err
	}
	reg := schema.NewRegistry()
	if err := reg.Load(cm.Get().Schema); err != nil {
		return nil, err
	}
	return reg, nil
}

func init() {
	schemaCmd.AddCommand(schemaShowCmd)
	schemaCmd.AddCommand(schemaCheckCmd)
	rootCmd.AddCommand(schemaCmd)
}
