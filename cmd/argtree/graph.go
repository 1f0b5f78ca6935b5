package main

import (
	"fmt"

	"github.com/aretw0/argtree"
	"github.com/aretw0/argtree/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [schema] [-- args...]",
	Short: "Export the schema tree visualization",
	Long: `Outputs a Mermaid diagram (graph TD) of the schema tree. When arguments follow "--",
the nodes they match and the innermost entered task are highlighted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, argv, err := loadSchema(cmd, args)
		if err != nil {
			return err
		}

		var overlay *graph.Overlay
		if cmd.ArgsLenAtDash() >= 0 {
			res, err := argtree.New(s).Analyse(cmd.Context(), argv, "")
			if err != nil {
				return err
			}
			overlay = graph.OverlayFor(res)
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(s, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
