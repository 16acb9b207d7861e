package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mlang",
	Short: "mlang interpreter",
	Long: `mlang is a tree-walking interpreter for a small expression language
built around first-class match expressions.

Use "mlang run <file>" to run a script file, or "mlang run" with no file
(or with -i) for an interactive REPL.`,
	Version: "0.1.0-dev",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
