package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/argtree"
	"github.com/aretw0/argtree/internal/presentation/tui"
	"github.com/aretw0/argtree/pkg/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [schema] -- [args...]",
	Short: "Trace how an argument vector matches a schema",
	Long: `Runs matching only (no callbacks) and prints which node claimed each token,
the entered tasks, the argument map and any unmatched tokens.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}
		s, argv, err := loadSchema(cmd, args)
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")
		stop, _ := cmd.Flags().GetBool("stop-on-unmatched")

		exec := argtree.New(s,
			argtree.WithLogger(logger),
			argtree.WithStopOnUnmatched(stop),
		)
		res, err := exec.Analyse(cmd.Context(), argv, "")
		if err != nil {
			return err
		}
		if err := printResult(cmd, output, res); err != nil {
			return err
		}
		if res.Failed() {
			return res.Err()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringP("output", "o", "table", "Output format: table, json or yaml")
	inspectCmd.Flags().Bool("stop-on-unmatched", false, "Stop matching at the first unmatched token")
}

func printResult(cmd *cobra.Command, output string, res *domain.Result) error {
	w := cmd.OutOrStdout()
	switch output {
	case "table":
		tui.PrintTrace(w, res)
		if len(res.Args) > 0 {
			data, err := yaml.Marshal(map[string]any{"args": map[string]any(res.Args)})
			if err != nil {
				return err
			}
			fmt.Fprint(w, string(data))
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	}
	return errors.New("unknown output format: " + output)
}
