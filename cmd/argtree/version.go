package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/aretw0/argtree"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of argtree",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "argtree version %s (%s)\n", strings.TrimSpace(argtree.Version), runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
