package main

import (
	"fmt"

	"github.com/aretw0/argtree/pkg/schema"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [schema]",
	Short: "Check a schema for definition mistakes",
	Long: `Loads the schema and reports duplicate IDs, nodes without filters, dangling
indexed_by references and invalid patterns.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := loadSchema(cmd, args)
		if err != nil {
			return err
		}

		if err := schema.Validate(s); err != nil {
			for _, e := range schema.ValidationErrors(err) {
				fmt.Fprintf(cmd.ErrOrStderr(), "  - %v\n", e)
			}
			return fmt.Errorf("schema %q is invalid", s.Name)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Schema %q is valid! ✅\n", s.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
