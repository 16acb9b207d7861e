// Command mlang is the command-line launcher for the mlang interpreter: an
// external collaborator over the core's Program pipeline (§6).
package main

import (
	"fmt"
	"os"

	"github.com/jack-papel/mlang/cmd/mlang/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
