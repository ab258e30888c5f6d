package engine

import (
	"bytes"
	"fmt"
	"testing"
)

func assert(t *testing.T, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(fmt.Sprintf("%v %s", cond, format), args...)
	}
}

// runAll parses source and interprets it on every tier in turn, asserting
// every tier produces identical output and identical error behavior. It
// returns the shared output so callers can make additional assertions.
func runAll(t *testing.T, source string, input []byte) []byte {
	t.Helper()

	program, err := Parse([]byte(source))
	assert(t, err == nil, "parse failed: %v", err)

	rle := program.RLECompile()
	peep := program.PeepholeCompile()
	bc, err := peep.BytecodeCompile()
	assert(t, err == nil, "bytecode compile failed: %v", err)

	var want []byte
	var wantErr error

	for i, tier := range []Interpretable{program, rle, peep, bc} {
		out, err := InterpretMemory(tier, 0, input)
		if i == 0 {
			want, wantErr = out, err
		} else {
			assert(t, bytes.Equal(out, want), "tier %d output %q != ast output %q", i, out, want)
			assert(t, errorsIs(err, wantErr), "tier %d error %v != ast error %v", i, err, wantErr)
		}
	}
	return want
}

func errorsIs(a, b error) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Error() == b.Error()
}
