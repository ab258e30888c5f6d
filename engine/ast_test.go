package engine

import (
	"errors"
	"testing"
)

func TestParseUnmatched(t *testing.T) {
	_, err := Parse([]byte("[[]"))
	assert(t, errors.Is(err, ErrUnmatchedBegin), "want unmatched begin, got %v", err)

	_, err = Parse([]byte("[]]"))
	assert(t, errors.Is(err, ErrUnmatchedEnd), "want unmatched end, got %v", err)
}

func TestParseSkipsComments(t *testing.T) {
	program, err := Parse([]byte("+ hello > world -"))
	assert(t, err == nil, "unexpected parse error: %v", err)
	assert(t, len(program) == 3, "want 3 statements, got %d", len(program))
	assert(t, program[0].Cmd == Up, "want Up, got %v", program[0].Cmd)
	assert(t, program[1].Cmd == Right, "want Right, got %v", program[1].Cmd)
	assert(t, program[2].Cmd == Down, "want Down, got %v", program[2].Cmd)
}

func TestASTHelloA(t *testing.T) {
	// cell0 = 8, loop 8 times adding 8 to cell1, then +1 -> 65 ('A')
	out := runAll(t, "++++++++[>++++++++<-]>+.", nil)
	assert(t, string(out) == "A", "want %q, got %q", "A", out)
}

func TestASTEcho(t *testing.T) {
	out := runAll(t, ",.,.,.", []byte("xyz"))
	assert(t, string(out) == "xyz", "want %q, got %q", "xyz", out)
}
