package engine

import "io"

// InterpretState walks the AST, executing each statement against state in
// order. A Loop re-evaluates its body for as long as the current cell is
// non-zero, checked before each iteration. No optimization is performed;
// this is the reference semantics every other tier must agree with.
func (p Program) InterpretState(state *Tape, input io.Reader, output io.Writer) error {
	return interpretAST(p, state, input, output)
}

func interpretAST(p Program, state *Tape, input io.Reader, output io.Writer) error {
	for _, stmt := range p {
		if stmt.IsLoop() {
			for state.Load() != 0 {
				if err := interpretAST(stmt.Body, state, input, output); err != nil {
					return err
				}
			}
			continue
		}

		if err := execCommand(stmt.Cmd, state, input, output); err != nil {
			return err
		}
	}
	return nil
}

// execCommand applies a single leaf Command to state. Shared by the AST
// interpreter and anywhere else a bare Command needs to be run once.
func execCommand(c Command, state *Tape, input io.Reader, output io.Writer) error {
	switch c {
	case Left:
		return state.Left(1)
	case Right:
		return state.Right(1)
	case Up:
		state.Up(1)
	case Down:
		state.Down(1)
	case In:
		return state.Read(input)
	case Out:
		return state.Write(output)
	}
	return nil
}
