/*
Tableau decides satisfiability of propositional and restricted first-order
formulas using the semantic-tableau method.

Usage:

	tableau [flags] FILE
	tableau [flags] -i

The flags are:

	-v, --version
		Give the current version of tableau and then exit.

	-i, --interactive
		Read formulas one at a time from stdin instead of from a file,
		printing results as each one is entered. Uses GNU readline based
		routines for input when connected to a TTY.

	-d, --direct
		In interactive mode, force reading directly from stdin instead of
		going through GNU readline even if launched in a tty.

FILE is a text file whose optional first line is a space-separated list of
directives drawn from PARSE and SAT; every subsequent line holds one formula.
Each formula line produces one line of output per requested directive. A
malformed formula is reported but does not halt the run; a file that cannot
be opened is fatal.
*/
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/dekarrin/tableau/internal/input"
	"github.com/dekarrin/tableau/internal/tableau"
	"github.com/dekarrin/tableau/internal/version"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitOpenError indicates the input file could not be opened (or was not
	// given as exactly one argument), or that the interactive reader could
	// not be started.
	ExitOpenError
)

var (
	returnCode      int   = ExitSuccess
	flagVersion     *bool = pflag.BoolP("version", "v", false, "Give the current version of tableau and then exit.")
	flagInteractive *bool = pflag.BoolP("interactive", "i", false, "Read formulas one at a time from stdin.")
	flagDirect      *bool = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of via readline.")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we don't lose the panic just
			// because we checked
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("tableau %s\n", version.Current)
		return
	}

	if *flagInteractive {
		runInteractive(*flagDirect)
		return
	}

	args := pflag.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "ERROR: expected exactly one FILE argument\nDo -h for help.\n")
		returnCode = ExitOpenError
		return
	}

	f, err := os.Open(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: could not open %s: %s\n", args[0], err.Error())
		returnCode = ExitOpenError
		return
	}
	defer f.Close()

	runBatch(f, os.Stdout, os.Stderr)
}

// directiveSet is which of PARSE/SAT were requested for a run or a line.
type directiveSet struct {
	parse bool
	sat   bool
}

// parseDirectiveLine reads the space-separated directive vocabulary from
// the first line of a file. Unknown tokens are logged to stderr and
// skipped; recognizing none leaves both flags false (the caller then
// defaults to running both, the same default the daemon's epSolve applies
// when no directives are given in a request).
func parseDirectiveLine(line string, errOut *os.File) directiveSet {
	var d directiveSet
	for _, tok := range strings.Fields(line) {
		switch strings.ToUpper(tok) {
		case "PARSE":
			d.parse = true
		case "SAT":
			d.sat = true
		default:
			fmt.Fprintf(errOut, "WARN: unknown directive %q, ignoring\n", tok)
		}
	}
	return d
}

// runBatch reads an input file per the documented file format and writes
// one result line per formula per requested directive to out.
func runBatch(f *os.File, out, errOut *os.File) {
	scanner := bufio.NewScanner(f)

	var directives directiveSet
	first := true

	for scanner.Scan() {
		line := scanner.Text()

		if first {
			first = false
			if looksLikeDirectiveLine(line) {
				directives = parseDirectiveLine(line, errOut)
				continue
			}
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		processLine(line, directives, out)
	}
}

// looksLikeDirectiveLine reports whether line consists entirely of tokens
// drawn from the directive vocabulary (case-insensitively). No formula line
// consists only of the words PARSE and SAT, so this is how the optional
// first line is told apart from the first formula.
func looksLikeDirectiveLine(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	for _, tok := range fields {
		u := strings.ToUpper(tok)
		if u != "PARSE" && u != "SAT" {
			return false
		}
	}
	return true
}

// processLine parses raw as one formula and writes the directives'
// requested output lines to out, using exactly the functions (Classify,
// VerdictSentence) the daemon's /v1/solve handler uses for the same input,
// so the two consumers never diverge on wording.
func processLine(raw string, directives directiveSet, out *os.File) {
	res, err := tableau.Parse(raw)
	if err != nil {
		fmt.Fprintf(out, "%s is not a formula.\n", raw)
		return
	}

	canonical := tableau.Print(res.Formula)

	wantParse, wantSAT := directives.parse, directives.sat
	if !wantParse && !wantSAT {
		wantParse, wantSAT = true, true
	}

	if wantParse {
		fmt.Fprintln(out, tableau.Classify(canonical, res))
	}
	if wantSAT {
		verdict := tableau.Solve(res.Formula)
		fmt.Fprintln(out, tableau.VerdictSentence(canonical, verdict))
	}
}

// commandReader is the subset of input.DirectCommandReader /
// input.InteractiveCommandReader that interactive mode needs.
type commandReader interface {
	ReadCommand() (string, error)
	Close() error
}

// runInteractive drives a readline (or direct, if forceDirect) session:
// one formula per line, with both PARSE and SAT run on each, until QUIT or
// end of input.
func runInteractive(forceDirect bool) {
	var reader commandReader
	var err error
	if forceDirect {
		reader = input.NewDirectReader(os.Stdin)
	} else {
		reader, err = input.NewInteractiveReader()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: could not start interactive session: %s\n", err.Error())
		returnCode = ExitOpenError
		return
	}
	defer reader.Close()

	fmt.Println("tableau interactive mode. Type HELP for commands, QUIT to exit.")

	both := directiveSet{parse: true, sat: true}

	for {
		line, err := reader.ReadCommand()
		if err != nil {
			break
		}

		switch strings.ToUpper(strings.TrimSpace(line)) {
		case "QUIT":
			return
		case "HELP":
			fmt.Print(helpTable())
			continue
		}

		processLine(line, both, os.Stdout)
	}
}

// helpTable renders the interactive-mode command summary as a table.
func helpTable() string {
	data := [][]string{
		{"Command", "Description"},
		{"<formula>", "Parse and solve the given formula (both PARSE and SAT)."},
		{"HELP", "Show this table."},
		{"QUIT", "Exit interactive mode."},
	}

	opts := rosed.Options{TableHeaders: true}

	return rosed.Edit("").
		InsertTableOpts(0, data, 72, opts).
		String() + "\n"
}
