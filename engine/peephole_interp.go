package engine

import "io"

// InterpretState walks the Peephole program. SetZero, OffsetAdd* and
// FindZero* execute in a single step each; Loop iterates while the
// current cell is non-zero, same as the tiers above it.
func (p PeepProgram) InterpretState(state *Tape, input io.Reader, output io.Writer) error {
	return interpretPeephole(p, state, input, output)
}

func interpretPeephole(p PeepProgram, state *Tape, input io.Reader, output io.Writer) error {
	for _, stmt := range p {
		if stmt.IsLoop() {
			for state.Load() != 0 {
				if err := interpretPeephole(stmt.Body, state, input, output); err != nil {
					return err
				}
			}
			continue
		}

		if err := execPeepInstr(stmt, state, input, output); err != nil {
			return err
		}
	}
	return nil
}

func execPeepInstr(stmt PeepStatement, state *Tape, input io.Reader, output io.Writer) error {
	switch stmt.Op {
	case PeepLeft:
		return state.Left(stmt.N)
	case PeepRight:
		return state.Right(stmt.N)
	case PeepChange:
		state.Up(byte(stmt.N))
	case PeepIn:
		return state.Read(input)
	case PeepOut:
		return state.Write(output)
	case PeepSetZero:
		state.Store(0)
	case PeepOffsetAddRight:
		return offsetAdd(state, stmt.N)
	case PeepOffsetAddLeft:
		return offsetAdd(state, -stmt.N)
	case PeepFindZeroRight:
		return findZero(state, stmt.N)
	case PeepFindZeroLeft:
		return findZero(state, -stmt.N)
	}
	return nil
}

// offsetAdd reads the current cell, adds it (wrapping) to the cell at
// delta, then zeroes the current cell.
func offsetAdd(state *Tape, delta int) error {
	v := state.Load()
	if v == 0 {
		return nil
	}
	if err := state.AddAt(delta, v); err != nil {
		return err
	}
	state.Store(0)
	return nil
}

// findZero advances the pointer by stride, bounds-checked on every step,
// until the current cell is 0. A tape where every stride-th cell is
// nonzero up to capacity terminates in ErrPointerOverflow rather than
// looping forever.
func findZero(state *Tape, stride int) error {
	for state.Load() != 0 {
		var err error
		if stride > 0 {
			err = state.Right(stride)
		} else {
			err = state.Left(-stride)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
