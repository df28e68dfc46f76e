// Package search implements the Lahoda-Melichar codeword-skipping search
// engine and its byte-level fallbacks: signatures, the representative
// table, the three stream searchers, and the LM/SS search tasks.
package search

import (
	"strings"

	"github.com/operutka/alzw/automaton"
)

// Signature is the pair (dest: S->S, final: S->bool) of a phrase w.r.t. a
// pattern DFA.
type Signature struct {
	Dest  []int
	Final []bool
}

func epsilonSignature(dfa *automaton.DFA) Signature {
	n := dfa.StateCount()
	sig := Signature{Dest: make([]int, n), Final: make([]bool, n)}
	for i := range sig.Dest {
		sig.Dest[i] = i
	}
	return sig
}

// extend returns the signature of w·sym given w's signature sig.
func (sig Signature) extend(dfa *automaton.DFA, sym uint8) Signature {
	n := dfa.StateCount()
	fsid := n - 1
	out := Signature{Dest: make([]int, n), Final: make([]bool, n)}
	for s := 0; s < n; s++ {
		d := dfa.Next(sig.Dest[s], sym)
		out.Dest[s] = d
		out.Final[s] = sig.Final[s] || d == fsid
	}
	return out
}

// IsFinal reports whether, starting the phrase from state s, some prefix of
// it reached the DFA's accept state.
func (sig Signature) IsFinal(s int) bool { return sig.Final[s] }

// Destination returns δ*(s, w).
func (sig Signature) Destination(s int) int { return sig.Dest[s] }

// key builds a map key from the two fixed-size arrays by concatenating them
// into a byte string suitable as a hash map key.
func (sig Signature) key() string {
	var b strings.Builder
	for i, d := range sig.Dest {
		if sig.Final[i] {
			b.WriteByte(1)
		} else {
			b.WriteByte(0)
		}
		b.WriteByte(byte(d))
		b.WriteByte(byte(d >> 8))
	}
	return b.String()
}
