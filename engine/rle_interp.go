package engine

import "io"

// InterpretState walks the RLE program, applying each run's Count in
// bulk rather than one step at a time. Loop semantics are unchanged from
// the AST tier.
func (p RLEProgram) InterpretState(state *Tape, input io.Reader, output io.Writer) error {
	return interpretRLE(p, state, input, output)
}

func interpretRLE(p RLEProgram, state *Tape, input io.Reader, output io.Writer) error {
	for _, stmt := range p {
		if stmt.IsLoop() {
			for state.Load() != 0 {
				if err := interpretRLE(stmt.Body, state, input, output); err != nil {
					return err
				}
			}
			continue
		}

		if err := execRun(stmt.Cmd, stmt.Count, state, input, output); err != nil {
			return err
		}
	}
	return nil
}

func execRun(cmd Command, count uint, state *Tape, input io.Reader, output io.Writer) error {
	switch cmd {
	case Left:
		return state.Left(int(count))
	case Right:
		return state.Right(int(count))
	case Up:
		state.Up(byte(count % 256))
	case Down:
		state.Down(byte(count % 256))
	case In:
		for i := uint(0); i < count; i++ {
			if err := state.Read(input); err != nil {
				return err
			}
		}
	case Out:
		for i := uint(0); i < count; i++ {
			if err := state.Write(output); err != nil {
				return err
			}
		}
	}
	return nil
}
