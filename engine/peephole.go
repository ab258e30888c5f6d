package engine

/*
	The peephole tier works directly off the AST (it does not need to go
	through the RLE tier first, though the run-fusing idea is the same)
	and produces a closed set of instructions:

		Left(n), Right(n)            fused pointer motion, opposite moves cancel
		Change(d)                    fused wrapping add/sub, net zero is elided
		In, Out                      unchanged, single-step
		SetZero                      loop body is one odd Change: zeroes for any start
		OffsetAddRight(k)/Left(k)    loop body is "- move(k) + move(-k)": one-shot add-and-zero
		FindZeroRight(s)/Left(s)     loop body is a single bare move: stride to the next zero
		Loop(body)                   anything else, compiled recursively

	Pattern recognition only ever looks at an already-aggregated loop
	body, and the specialized forms are themselves terminal - nothing
	downstream tries to pattern-match a SetZero or OffsetAdd again.
	PeepholeCompile is defined on the AST Program only; there is no entry
	point that compiles a PeepProgram a second time.
*/

// PeepOp is the opcode of a non-loop Peephole instruction.
type PeepOp uint8

const (
	PeepLeft PeepOp = iota
	PeepRight
	PeepChange
	PeepIn
	PeepOut
	PeepSetZero
	PeepOffsetAddRight
	PeepOffsetAddLeft
	PeepFindZeroRight
	PeepFindZeroLeft
)

// PeepStatement is one element of a Peephole program: either an
// instruction (Op, N) or a Loop over a nested PeepProgram.
type PeepStatement struct {
	kind stmtKind
	Op   PeepOp
	// N is an Op-dependent operand: a move count for Left/Right, a net
	// 8-bit delta (0-255) for Change, or an offset/stride for the
	// OffsetAdd and FindZero families. Unused for In, Out and Loop.
	N    int
	Body PeepProgram
}

// PeepProgram is an ordered sequence of PeepStatements.
type PeepProgram []PeepStatement

// IsLoop reports whether the statement is a Loop rather than an instruction.
func (s PeepStatement) IsLoop() bool {
	return s.kind == loopStmt
}

func peepInstr(op PeepOp, n int) PeepStatement {
	return PeepStatement{kind: cmdStmt, Op: op, N: n}
}

func peepLoop(body PeepProgram) PeepStatement {
	return PeepStatement{kind: loopStmt, Body: body}
}

// PeepholeCompile lowers an AST program straight to the Peephole tier:
// fusing motion and arithmetic runs, then pattern-matching each loop
// body against the table above.
func (p Program) PeepholeCompile() PeepProgram {
	return peepholeCompileProgram(p)
}

func peepholeCompileProgram(p Program) PeepProgram {
	c := new(peepCompiler)
	c.compile(p)
	return c.finish()
}

// peepCompiler accumulates at most one of a move run or a change run at
// a time; In, Out and Loop flush both before they're emitted.
type peepCompiler struct {
	out          PeepProgram
	moveAcc      int
	moveActive   bool
	changeAcc    byte
	changeActive bool
}

func (c *peepCompiler) compile(p Program) {
	for _, stmt := range p {
		if stmt.IsLoop() {
			c.flushAll()
			c.out = append(c.out, compileLoopBody(stmt.Body))
			continue
		}

		switch stmt.Cmd {
		case Left:
			c.flushChange()
			c.moveAcc--
			c.moveActive = true
		case Right:
			c.flushChange()
			c.moveAcc++
			c.moveActive = true
		case Up:
			c.flushMove()
			c.changeAcc++
			c.changeActive = true
		case Down:
			c.flushMove()
			c.changeAcc--
			c.changeActive = true
		case In:
			c.flushAll()
			c.out = append(c.out, peepInstr(PeepIn, 0))
		case Out:
			c.flushAll()
			c.out = append(c.out, peepInstr(PeepOut, 0))
		}
	}
}

func (c *peepCompiler) flushMove() {
	if !c.moveActive {
		return
	}
	switch {
	case c.moveAcc > 0:
		c.out = append(c.out, peepInstr(PeepRight, c.moveAcc))
	case c.moveAcc < 0:
		c.out = append(c.out, peepInstr(PeepLeft, -c.moveAcc))
	}
	c.moveAcc = 0
	c.moveActive = false
}

func (c *peepCompiler) flushChange() {
	if !c.changeActive {
		return
	}
	if c.changeAcc != 0 {
		c.out = append(c.out, peepInstr(PeepChange, int(c.changeAcc)))
	}
	c.changeAcc = 0
	c.changeActive = false
}

func (c *peepCompiler) flushAll() {
	c.flushMove()
	c.flushChange()
}

func (c *peepCompiler) finish() PeepProgram {
	c.flushAll()
	return c.out
}

// compileLoopBody aggregates body and tries each loop idiom, most
// specific first, before falling back to a general Loop.
func compileLoopBody(body Program) PeepStatement {
	aggregated := peepholeCompileProgram(body)
	if specialized, ok := matchLoopIdiom(aggregated); ok {
		return specialized
	}
	return peepLoop(aggregated)
}

// matchLoopIdiom recognizes the closed set of loop idioms the peephole
// tier knows about. Every candidate is checked against the full body
// shape before it's accepted, so a body with extra trailing or leading
// instructions falls through to the general Loop case.
func matchLoopIdiom(body PeepProgram) (PeepStatement, bool) {
	if s, ok := matchSetZero(body); ok {
		return s, true
	}
	if s, ok := matchOffsetAdd(body); ok {
		return s, true
	}
	if s, ok := matchFindZero(body); ok {
		return s, true
	}
	return PeepStatement{}, false
}

// matchSetZero recognizes [-], [+], and any single-Change body whose
// delta is coprime with 256 (odd): repeatedly adding an odd delta to a
// byte cell visits every residue before returning to the start, so the
// loop always terminates with the cell at 0, regardless of its starting
// value.
func matchSetZero(body PeepProgram) (PeepStatement, bool) {
	if len(body) != 1 || body[0].IsLoop() || body[0].Op != PeepChange {
		return PeepStatement{}, false
	}
	if body[0].N&1 == 0 {
		return PeepStatement{}, false
	}
	return peepInstr(PeepSetZero, 0), true
}

// matchOffsetAdd recognizes "[- >..> + <..<]" (and its mirror): decrement
// the current cell by exactly 1, walk to an offset cell and back,
// incrementing it by exactly 1. After N iterations (N the cell's
// starting value) the origin is 0 and the target gained N - precisely
// what OffsetAddRight/Left do in one step.
func matchOffsetAdd(body PeepProgram) (PeepStatement, bool) {
	if len(body) != 4 {
		return PeepStatement{}, false
	}
	for _, s := range body {
		if s.IsLoop() {
			return PeepStatement{}, false
		}
	}
	dec, move1, inc, move2 := body[0], body[1], body[2], body[3]
	if dec.Op != PeepChange || dec.N != 0xFF {
		return PeepStatement{}, false
	}
	if inc.Op != PeepChange || inc.N != 1 {
		return PeepStatement{}, false
	}
	if move1.N <= 0 || move1.N != move2.N {
		return PeepStatement{}, false
	}
	switch {
	case move1.Op == PeepRight && move2.Op == PeepLeft:
		return peepInstr(PeepOffsetAddRight, move1.N), true
	case move1.Op == PeepLeft && move2.Op == PeepRight:
		return peepInstr(PeepOffsetAddLeft, move1.N), true
	default:
		return PeepStatement{}, false
	}
}

// matchFindZero recognizes "[ >..> ]" and its mirror: a loop body that
// does nothing but step the pointer by a fixed stride.
func matchFindZero(body PeepProgram) (PeepStatement, bool) {
	if len(body) != 1 || body[0].IsLoop() {
		return PeepStatement{}, false
	}
	switch body[0].Op {
	case PeepRight:
		return peepInstr(PeepFindZeroRight, body[0].N), true
	case PeepLeft:
		return peepInstr(PeepFindZeroLeft, body[0].N), true
	default:
		return PeepStatement{}, false
	}
}
