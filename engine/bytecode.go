package engine

import "fmt"

// BytecodeOp is the opcode of a flat bytecode instruction. Unlike the
// tree tiers above it, loops are linearized into a pair of resolved
// jumps; there is no Loop opcode.
type BytecodeOp uint8

const (
	BcLeft BytecodeOp = iota
	BcRight
	BcChange
	BcIn
	BcOut
	BcSetZero
	BcOffsetAddRight
	BcOffsetAddLeft
	BcFindZeroRight
	BcFindZeroLeft
	BcJumpZero
	BcJumpNotZero
)

// BytecodeInstr is a single flat instruction: an opcode and one operand.
// For BcJumpZero/BcJumpNotZero the operand is an absolute index into the
// enclosing BytecodeProgram; for every other opcode it is the same count
// or offset the Peephole tier carried, validated to fit Count.
type BytecodeInstr struct {
	Op      BytecodeOp
	Operand uint32
}

// BytecodeProgram is a flat, linear instruction stream with all jump
// targets resolved at compile time.
type BytecodeProgram []BytecodeInstr

// peepOpToBytecodeOp maps every non-loop Peephole opcode to its
// bytecode equivalent; the two sets are in 1:1 correspondence.
var peepOpToBytecodeOp = map[PeepOp]BytecodeOp{
	PeepLeft:           BcLeft,
	PeepRight:          BcRight,
	PeepChange:         BcChange,
	PeepIn:             BcIn,
	PeepOut:            BcOut,
	PeepSetZero:        BcSetZero,
	PeepOffsetAddRight: BcOffsetAddRight,
	PeepOffsetAddLeft:  BcOffsetAddLeft,
	PeepFindZeroRight:  BcFindZeroRight,
	PeepFindZeroLeft:   BcFindZeroLeft,
}

// opsWithCountOperand are the opcodes whose operand is a count or offset
// and therefore subject to the Count width check; Change's operand is
// always a byte (0-255) and never overflows.
var opsWithCountOperand = map[PeepOp]bool{
	PeepLeft:           true,
	PeepRight:          true,
	PeepOffsetAddRight: true,
	PeepOffsetAddLeft:  true,
	PeepFindZeroRight:  true,
	PeepFindZeroLeft:   true,
}

// BytecodeCompile linearizes a Peephole program. Each Loop becomes a
// JumpZero placeholder, the compiled body, then a JumpNotZero back to
// the body's first instruction; the placeholder is patched once the
// body's length - and therefore the loop's exit point - is known.
//
// JumpZero's target is the instruction one past the matching
// JumpNotZero; JumpNotZero's target is the instruction one past the
// JumpZero it pairs with (the body's first instruction). Both are taken
// without incrementing the program counter afterward, and both fall
// through with the normal increment when not taken - so a zero test at
// loop entry steps directly past the loop, and a nonzero test at loop
// exit steps directly back into the body.
func (p PeepProgram) BytecodeCompile() (BytecodeProgram, error) {
	c := new(bytecodeCompiler)
	if err := c.compile(p); err != nil {
		return nil, err
	}
	return c.out, nil
}

type bytecodeCompiler struct {
	out BytecodeProgram
}

func (c *bytecodeCompiler) compile(p PeepProgram) error {
	for _, stmt := range p {
		if stmt.IsLoop() {
			if err := c.compileLoop(stmt.Body); err != nil {
				return err
			}
			continue
		}
		if err := c.issue(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (c *bytecodeCompiler) compileLoop(body PeepProgram) error {
	beginPC := len(c.out)
	c.out = append(c.out, BytecodeInstr{Op: BcJumpZero, Operand: 0})

	if err := c.compile(body); err != nil {
		return err
	}

	endPC := len(c.out)
	c.out = append(c.out, BytecodeInstr{Op: BcJumpNotZero, Operand: jumpTarget(beginPC + 1)})
	c.out[beginPC].Operand = jumpTarget(endPC + 1)
	return nil
}

// jumpTarget converts an instruction index to an operand. Unlike counts,
// jump targets address the instruction array rather than measuring a
// repeat or offset, so they are not subject to the Count width check.
func jumpTarget(pc int) uint32 {
	return uint32(pc)
}

func (c *bytecodeCompiler) issue(stmt PeepStatement) error {
	op, ok := peepOpToBytecodeOp[stmt.Op]
	if !ok {
		return fmt.Errorf("brainfuck: unrecognized peephole opcode %d", stmt.Op)
	}

	operand := uint32(stmt.N)
	if opsWithCountOperand[stmt.Op] {
		var err error
		operand, err = toOperand(stmt.N)
		if err != nil {
			return err
		}
	}

	c.out = append(c.out, BytecodeInstr{Op: op, Operand: operand})
	return nil
}

// toOperand validates that n fits the bytecode Count width before
// widening it for storage; jump targets, which index the instruction
// array rather than counting anything, skip this check.
func toOperand(n int) (uint32, error) {
	if n < 0 || uint(n) > uint(MaxCount) {
		return 0, fmt.Errorf("%w: %d exceeds %d", ErrCountOverflow, n, MaxCount)
	}
	return uint32(n), nil
}
