package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/argtree/internal/logging"
	"github.com/aretw0/argtree/pkg/domain"
	"github.com/aretw0/argtree/pkg/loader"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "argtree",
	Short: "argtree inspects and serves declarative argument schemas",
	Long: `argtree loads a YAML or JSON argument schema and lets you check it, trace how an
argument vector is matched against it, or expose matching over HTTP.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("schema", "s", "", "Schema file (YAML, or JSON by extension)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")
}

func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	name, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(name)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}

// loadSchema resolves the schema path from --schema or the first positional argument and
// returns the remaining arguments. Callback names in the document are not resolved.
func loadSchema(cmd *cobra.Command, args []string) (*domain.Schema, []string, error) {
	path, _ := cmd.Flags().GetString("schema")

	before, after := args, []string(nil)
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		before, after = args[:dash], args[dash:]
	}
	if path == "" {
		if len(before) == 0 {
			return nil, nil, errors.New("no schema given: pass a path or --schema")
		}
		path, before = before[0], before[1:]
	}

	s, err := loader.New(nil, loader.WithoutCallbacks()).Load(path)
	if err != nil {
		return nil, nil, err
	}
	argv := append([]string{}, before...)
	return s, append(argv, after...), nil
}
