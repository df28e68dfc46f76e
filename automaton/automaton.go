// Package automaton implements the pattern-matching DFA over the 5-symbol
// alphabet, built via the classic KMP border array: every state has a
// transition for every symbol, so matching never needs a failure link at
// run time.
package automaton

import "github.com/operutka/alzw/dict"

// DFA is a deterministic finite automaton with dict.AlphabetSize
// transitions per state and no failure transitions: every state has a
// transition for every symbol.
type DFA struct {
	transitions [][dict.AlphabetSize]int
}

// StateCount returns |S|.
func (d *DFA) StateCount() int { return len(d.transitions) }

// Next returns δ(sid, sym).
func (d *DFA) Next(sid int, sym uint8) int {
	return d.transitions[sid][sym]
}

// Build constructs the pattern-matching DFA for pattern (over Σ): state
// count is len(pattern)+1, state 0 is initial, state len(pattern) is final.
func Build(pattern string) *DFA {
	m := len(pattern)
	dfa := &DFA{transitions: make([][dict.AlphabetSize]int, m+1)}

	p := make([]uint8, m)
	for i := 0; i < m; i++ {
		p[i] = uint8(dict.CharToBase(pattern[i]))
	}

	for a := uint8(0); a < dict.AlphabetSize; a++ {
		dfa.transitions[0][a] = 0
	}
	for i := 0; i < m; i++ {
		dfa.transitions[i][p[i]] = i + 1
	}

	ba := borderArray(p)
	for i := 1; i <= m; i++ {
		for a := uint8(0); a < dict.AlphabetSize; a++ {
			if i == m || a != p[i] {
				dfa.transitions[i][a] = dfa.transitions[ba[i-1]][a]
			}
		}
	}
	return dfa
}

// borderArray is the standard KMP failure function over the base-encoded
// pattern.
func borderArray(p []uint8) []int {
	ba := make([]int, len(p))
	if len(p) == 0 {
		return ba
	}
	ba[0] = 0
	for i := 1; i < len(p); i++ {
		j := ba[i-1]
		for j > 0 && p[i] != p[j] {
			j = ba[j-1]
		}
		if p[i] == p[j] {
			ba[i] = j + 1
		} else {
			ba[i] = 0
		}
	}
	return ba
}
