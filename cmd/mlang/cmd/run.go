package cmd

import (
	"fmt"
	"os"

	"github.com/jack-papel/mlang"
	"github.com/jack-papel/mlang/repl"
	"github.com/spf13/cobra"
)

var interactive bool

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run an mlang source file, or start an interactive session",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMain,
}

func init() {
	runCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "start an interactive REPL instead of running a file")
	rootCmd.AddCommand(runCmd)
}

func runMain(_ *cobra.Command, args []string) error {
	if interactive || len(args) == 0 {
		repl.Start(os.Stdin, os.Stdout)
		return nil
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("could not read file: %w", err)
	}

	output, d := mlang.ParseAndRun(string(content))
	if d != nil {
		fmt.Fprintln(os.Stderr, d.Error())
		os.Exit(1)
	}
	fmt.Print(output)
	return nil
}
