package engine

import "io"

// InterpretState walks the flat instruction array with a program counter,
// the same dispatch shape as a register-machine bytecode interpreter:
// decode, execute, advance pc (jumps overwrite it directly instead).
// Termination is pc running past the last instruction.
func (p BytecodeProgram) InterpretState(state *Tape, input io.Reader, output io.Writer) error {
	pc := 0
	for pc < len(p) {
		instr := p[pc]

		switch instr.Op {
		case BcJumpZero:
			if state.Load() == 0 {
				pc = int(instr.Operand)
				continue
			}
		case BcJumpNotZero:
			if state.Load() != 0 {
				pc = int(instr.Operand)
				continue
			}
		default:
			if err := execBytecodeInstr(instr, state, input, output); err != nil {
				return err
			}
		}

		pc++
	}
	return nil
}

func execBytecodeInstr(instr BytecodeInstr, state *Tape, input io.Reader, output io.Writer) error {
	n := int(instr.Operand)

	switch instr.Op {
	case BcLeft:
		return state.Left(n)
	case BcRight:
		return state.Right(n)
	case BcChange:
		state.Up(byte(instr.Operand))
	case BcIn:
		return state.Read(input)
	case BcOut:
		return state.Write(output)
	case BcSetZero:
		state.Store(0)
	case BcOffsetAddRight:
		return offsetAdd(state, n)
	case BcOffsetAddLeft:
		return offsetAdd(state, -n)
	case BcFindZeroRight:
		return findZero(state, n)
	case BcFindZeroLeft:
		return findZero(state, -n)
	}
	return nil
}
