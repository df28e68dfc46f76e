package search

import (
	"github.com/operutka/alzw/automaton"
	"github.com/operutka/alzw/dict"
)

// Representative is the canonical phrase of a signature equivalence class,
// arranged into a trie over Σ with root = the epsilon representative.
type Representative struct {
	sig         Signature
	prev        *Representative
	sym         uint8
	transitions [dict.AlphabetSize]*Representative
}

// Signature returns the equivalence class's signature.
func (r *Representative) Signature() Signature { return r.sig }

// Transition returns the representative of class·sym.
func (r *Representative) Transition(sym uint8) *Representative {
	return r.transitions[sym]
}

// RepresentativeTable is built once per pattern DFA by breadth-first search
// from the epsilon representative.
type RepresentativeTable struct {
	eps  *Representative
	reps map[string]*Representative
}

// Epsilon returns the empty-phrase representative, the table's root.
func (t *RepresentativeTable) Epsilon() *Representative { return t.eps }

// NewRepresentativeTable builds the table for dfa. The table is finite
// because the signature space is bounded by |S|^|S|*2^|S|.
func NewRepresentativeTable(dfa *automaton.DFA) *RepresentativeTable {
	eps := &Representative{sig: epsilonSignature(dfa)}
	reps := make(map[string]*Representative)

	queue := []*Representative{eps}
	for len(queue) > 0 {
		r := queue[0]
		queue = queue[1:]

		key := r.sig.key()
		if existing, ok := reps[key]; !ok {
			reps[key] = r
			if r.prev != nil {
				r.prev.transitions[r.sym] = r
			}
			for a := uint8(0); a < dict.AlphabetSize; a++ {
				queue = append(queue, &Representative{
					sig:  r.sig.extend(dfa, a),
					prev: r,
					sym:  a,
				})
			}
		} else if r.prev != nil {
			r.prev.transitions[r.sym] = existing
		}
	}

	return &RepresentativeTable{eps: eps, reps: reps}
}
