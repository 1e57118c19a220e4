// Package bff implements the bit-exact interpreter for the 10-instruction
// BFF dialect over a fixed 128-cell token tape. Execution is a pure
// function of the tape and the two head positions: it mutates the tape in
// place and reports the number of steps it ran before terminating.
package bff

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/dgedye-lab/bffsoup/token"
)

const (
	// TapeLen is the fixed number of token cells in any BFF tape.
	TapeLen = 128
	// MaxSteps bounds every execution; it is one of the four termination
	// causes alongside stack overflow, empty-pop, and the instruction
	// pointer running off the end of the tape.
	MaxSteps = 8192
	// MaxStack bounds the bracket-matching stack.
	MaxStack = 64
)

// instructionSet classifies which of the 256 possible byte values are BFF
// instructions. It is built once at package init and backs IsInstruction,
// which the stats package uses for its op-count scan and tape rendering.
// Run itself dispatches with a switch over the same 10 bytes.
var instructionSet = buildInstructionSet()

func buildInstructionSet() *bitset.BitSet {
	bs := bitset.New(256)
	for _, b := range []byte{'<', '>', '{', '}', '+', '-', '.', ',', '[', ']'} {
		bs.Set(uint(b))
	}
	return bs
}

// IsInstruction reports whether b is one of the 10 legal BFF instruction
// bytes. Any other byte value is a no-op when dispatched.
func IsInstruction(b byte) bool {
	return instructionSet.Test(uint(b))
}

// Tape is the fixed 128-cell token array an execution reads and mutates.
type Tape [TapeLen]token.Token

// Run executes tape starting with the given head positions until one of
// the four termination causes fires, returning the number of steps
// executed. Instructions and data share the tape: any write may overwrite
// an instruction ip has not yet reached, and the interpreter must not
// precompute bracket-matching positions, since a `,` or `.` can rewrite a
// bracket after it has already been pushed.
func Run(tape *Tape, head0, head1 int) int {
	ip := 0
	h0, h1 := head0, head1
	var stack [MaxStack]int
	sp := 0
	steps := 0

	for steps < MaxSteps {
		steps++
		switch c := tape[ip].Char(); c {
		case '<':
			h0 = mod128(h0 - 1)
		case '>':
			h0 = mod128(h0 + 1)
		case '{':
			h1 = mod128(h1 - 1)
		case '}':
			h1 = mod128(h1 + 1)
		case '+':
			tape[h0] = tape[h0].WithChar(tape[h0].Char() + 1)
		case '-':
			tape[h0] = tape[h0].WithChar(tape[h0].Char() - 1)
		case '.':
			tape[h1] = tape[h0]
		case ',':
			tape[h0] = tape[h1]
		case '[':
			if sp == MaxStack {
				return steps
			}
			stack[sp] = ip
			sp++
		case ']':
			if sp == 0 {
				return steps
			}
			if tape[h0].Char() != 0 {
				ip = stack[sp-1]
				// Falls through to the advance below so the next
				// iteration re-enters the loop body at ip+1, i.e. the
				// instruction immediately after the matching `[`.
			} else {
				sp--
			}
		default:
			// no-op
		}

		if ip+1 >= TapeLen {
			return steps
		}
		ip++
	}
	return steps
}

func mod128(h int) int {
	h %= TapeLen
	if h < 0 {
		h += TapeLen
	}
	return h
}
