// Package repl implements a Read-Eval-Print loop for mlang. It is an
// external collaborator (§6): it only drives the core's Program pipeline,
// it never reaches into the lexer, parser, or evaluator directly.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jack-papel/mlang"
)

const PROMPT = "mlang> "
const CONT = "   ... "

// Start runs the loop: accumulate lines until a blank one, then parse and
// run the buffered program in one shot (mlang's indentation-scoped blocks
// make line-at-a-time incremental parsing unworkable, unlike the teacher's
// bracket-balance heuristic).
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)

	fmt.Fprintln(out, "mlang")
	fmt.Fprintln(out, "Enter a program, then a blank line to run it. Type 'exit' to quit.")
	fmt.Fprintln(out)

	var buf strings.Builder

	for {
		if buf.Len() == 0 {
			fmt.Fprint(out, PROMPT)
		} else {
			fmt.Fprint(out, CONT)
		}

		if !scanner.Scan() {
			return
		}
		line := scanner.Text()

		if buf.Len() == 0 && (strings.TrimSpace(line) == "exit" || strings.TrimSpace(line) == "quit") {
			fmt.Fprintln(out, "Goodbye!")
			return
		}

		if strings.TrimSpace(line) == "" && buf.Len() > 0 {
			output, d := mlang.ParseAndRun(buf.String())
			buf.Reset()
			if d != nil {
				fmt.Fprintln(out, d.Error())
				continue
			}
			fmt.Fprint(out, output)
			if !strings.HasSuffix(output, "\n") {
				fmt.Fprintln(out)
			}
			continue
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		buf.WriteString(line)
		buf.WriteString("\n")
	}
}
