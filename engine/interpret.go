package engine

import (
	"bytes"
	"context"
	"io"
	"os"

	"golang.org/x/sync/errgroup"
)

// Interpretable is satisfied by every tier's program type (Program,
// RLEProgram, PeepProgram, BytecodeProgram). Rather than a virtual
// dispatch tree, each tier implements this one method directly and the
// three higher-level entry points below are thin free functions built
// on top of it - the "lower this tier, then run a callback" contract
// collapses to a single shared interface once every tier can already
// run itself against a Tape.
type Interpretable interface {
	InterpretState(state *Tape, input io.Reader, output io.Writer) error
}

// Interpret creates a fresh Tape of the given capacity (DefaultCapacity
// if 0) and runs p against it. The Tape is discarded when Interpret
// returns; a compiled program carries no state of its own and may be
// run again, including concurrently from other goroutines, each with
// its own Tape.
func Interpret(p Interpretable, capacity int, input io.Reader, output io.Writer) error {
	return p.InterpretState(NewTape(capacity), input, output)
}

// InterpretStdin runs p against a fresh Tape with the process's standard
// input and output bound as the streams.
func InterpretStdin(p Interpretable, capacity int) error {
	return Interpret(p, capacity, os.Stdin, os.Stdout)
}

// InterpretMemory runs p against a fresh Tape with input taken from a
// byte slice and output collected into one, returning the collected
// output. Useful for tests and for embedding the engine somewhere that
// isn't talking to real files or a terminal.
func InterpretMemory(p Interpretable, capacity int, input []byte) ([]byte, error) {
	var out bytes.Buffer
	if err := Interpret(p, capacity, bytes.NewReader(input), &out); err != nil {
		return out.Bytes(), err
	}
	return out.Bytes(), nil
}

// Run is one unit of concurrent work for InterpretMemoryConcurrent: a
// program paired with the input it should see.
type Run struct {
	Program Interpretable
	Input   []byte
}

// InterpretMemoryConcurrent runs each Run on its own Tape from its own
// goroutine and collects their outputs in the same order the Runs were
// given, reflecting that interpretations are single-threaded and
// synchronous individually but share nothing across goroutines and so
// may run concurrently on disjoint Tapes (see the package's concurrency
// model). It stops and returns the first error encountered, cancelling
// ctx for the remaining goroutines.
func InterpretMemoryConcurrent(ctx context.Context, capacity int, runs []Run) ([][]byte, error) {
	outputs := make([][]byte, len(runs))

	g, ctx := errgroup.WithContext(ctx)
	for i, r := range runs {
		i, r := i, r
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := InterpretMemory(r.Program, capacity, r.Input)
			outputs[i] = out
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return outputs, err
	}
	return outputs, nil
}
