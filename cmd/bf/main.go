package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"bf/engine"
)

var (
	backend = flag.String("backend", "bytecode", "execution tier: ast, rle, peephole, or bytecode")
	tape    = flag.Int("tape", 0, "tape capacity in cells (0 for the default)")
	raw     = flag.Bool("raw", false, "put the terminal in raw mode so ',' reads one keystroke at a time")
)

func main() {
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Println("Usage: bf [-backend ast|rle|peephole|bytecode] [-tape cells] [-raw] <file>")
		os.Exit(1)
	}

	if err := run(args[0], *backend, *tape, *raw); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(path, backend string, tape int, raw bool) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	program, err := engine.Parse(source)
	if err != nil {
		return err
	}

	interp, err := lower(program, backend)
	if err != nil {
		return err
	}

	if raw {
		restore, err := setRawTerminal()
		if err != nil {
			return err
		}
		defer restore()
	}

	return engine.InterpretStdin(interp, tape)
}

// setRawTerminal puts stdin into raw mode, when it is a terminal, so that
// a program's "," reads a single keystroke instead of waiting on a
// line-buffered, echoed read. It is a no-op when stdin isn't a terminal
// (a pipe or redirected file), and returns a restore function to call
// when the interpreter is done with the terminal.
func setRawTerminal() (func(), error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return func() {}, nil
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to set raw mode: %w", err)
	}

	return func() { term.Restore(fd, state) }, nil
}

// lower compiles the parsed AST down to the requested tier. Only the
// bytecode tier can fail here, when a count or offset operand overflows
// Count; ast, rle and peephole never do.
func lower(program engine.Program, backend string) (engine.Interpretable, error) {
	switch backend {
	case "ast":
		return program, nil
	case "rle":
		return program.RLECompile(), nil
	case "peephole":
		return program.PeepholeCompile(), nil
	case "bytecode":
		peep := program.PeepholeCompile()
		return peep.BytecodeCompile()
	default:
		return nil, fmt.Errorf("unknown backend %q", backend)
	}
}
