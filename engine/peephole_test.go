package engine

import (
	"errors"
	"testing"
)

func TestPeepholeSetZero(t *testing.T) {
	program, err := Parse([]byte("+++[-]"))
	assert(t, err == nil, "unexpected parse error: %v", err)

	peep := program.PeepholeCompile()
	assert(t, len(peep) == 2, "want 2 statements, got %d", len(peep))
	assert(t, peep[1].Op == PeepSetZero, "want SetZero, got %v", peep[1].Op)

	out, err := InterpretMemory(peep, 0, nil)
	assert(t, err == nil, "unexpected interpret error: %v", err)
	assert(t, len(out) == 0, "want no output, got %q", out)
}

func TestPeepholeOffsetAddRight(t *testing.T) {
	program, err := Parse([]byte("+++[->+<]"))
	assert(t, err == nil, "unexpected parse error: %v", err)

	peep := program.PeepholeCompile()
	assert(t, len(peep) == 2, "want 2 statements, got %d", len(peep))
	assert(t, peep[1].Op == PeepOffsetAddRight && peep[1].N == 1,
		"want OffsetAddRight(1), got %v(%d)", peep[1].Op, peep[1].N)

	tape := NewTape(4)
	err = peep.InterpretState(tape, nil, nil)
	assert(t, err == nil, "unexpected interpret error: %v", err)
	assert(t, tape.Load() == 0, "want origin cell 0, got %d", tape.Load())
	v, _ := tape.At(1)
	assert(t, v == 3, "want target cell 3, got %d", v)
}

func TestPeepholeOffsetAddLeft(t *testing.T) {
	program, err := Parse([]byte(">>+++[-<+>]"))
	assert(t, err == nil, "unexpected parse error: %v", err)

	peep := program.PeepholeCompile()
	var loop PeepStatement
	for _, s := range peep {
		if s.IsLoop() || s.Op == PeepOffsetAddLeft {
			loop = s
		}
	}
	assert(t, loop.Op == PeepOffsetAddLeft && loop.N == 1,
		"want OffsetAddLeft(1), got %v(%d)", loop.Op, loop.N)
}

func TestPeepholeFindZeroRight(t *testing.T) {
	program, err := Parse([]byte("+>+>+>+<<<[>]"))
	assert(t, err == nil, "unexpected parse error: %v", err)

	peep := program.PeepholeCompile()
	found := false
	for _, s := range peep {
		if s.Op == PeepFindZeroRight && s.N == 1 {
			found = true
		}
	}
	assert(t, found, "want a FindZeroRight(1) instruction in %+v", peep)

	tape := NewTape(8)
	err = peep.InterpretState(tape, nil, nil)
	assert(t, err == nil, "unexpected interpret error: %v", err)
	assert(t, tape.Ptr() == 4, "want pointer at cell 4, got %d", tape.Ptr())
}

func TestPeepholeFindZeroOverflow(t *testing.T) {
	// Every cell at the stride is nonzero all the way to capacity, so the
	// bounds check inside findZero, not a zero cell, must be what stops it.
	tape := &Tape{cells: []byte{1, 1, 1, 1}, ptr: 0}
	peep := PeepProgram{peepInstr(PeepFindZeroRight, 1)}
	err := peep.InterpretState(tape, nil, nil)
	assert(t, errors.Is(err, ErrPointerOverflow), "want pointer overflow, got %v", err)
}

func TestPeepholeGeneralLoopFallback(t *testing.T) {
	// Body mixes a move and an unrelated change: matches no idiom.
	program, err := Parse([]byte("+[>-<.]"))
	assert(t, err == nil, "unexpected parse error: %v", err)

	peep := program.PeepholeCompile()
	assert(t, peep[1].IsLoop(), "want a general Loop, got %v", peep[1].Op)
}

func TestPeepholeEquivalence(t *testing.T) {
	runAll(t, "++++++++[>++++++++<-]>+.", nil)
	runAll(t, "+++[->+<].", nil)
}
