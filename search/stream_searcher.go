package search

import (
	"fmt"

	"github.com/operutka/alzw/automaton"
	"github.com/operutka/alzw/dict"
)

// MatchHandler receives a match's sequence index and target-coordinate
// offset.
type MatchHandler func(seq, offset int)

// PhraseSource resolves a codeword to its materialised phrase, implemented
// by *decoder.Decoder.
type PhraseSource interface {
	ResolvePhrase(cw uint64) ([]uint8, bool)
}

type searcherKind int

const (
	kindSimple searcherKind = iota
	kindBMH
	kindDFA
)

// StreamSearcher shares one ring buffer across the three byte-level search
// algorithms; which search step runs is selected by kind.
type StreamSearcher struct {
	kind searcherKind

	dec     PhraseSource
	pattern []uint8

	sbuffer []uint8
	sbCap   int
	sbSize  int
	offset  int
	seq     int

	bcs [dict.AlphabetSize]int // Boyer-Moore-Horspool bad-character shift table

	dfa    *automaton.DFA
	state  int
	fstate int
}

func newBase(kind searcherKind, dec PhraseSource, query string) *StreamSearcher {
	plen := len(query)
	pattern := make([]uint8, plen)
	for i := 0; i < plen; i++ {
		pattern[i] = uint8(dict.CharToBase(query[i]))
	}

	sbCap := 2 * plen
	if sbCap < 4096 {
		sbCap = 4096
	}
	sbCap = ((sbCap + 4095) / 4096) * 4096

	return &StreamSearcher{
		kind:    kind,
		dec:     dec,
		pattern: pattern,
		sbuffer: make([]uint8, sbCap),
		sbCap:   sbCap,
	}
}

// NewSimple builds the naive O(m) per-window searcher.
func NewSimple(dec PhraseSource, query string) *StreamSearcher {
	return newBase(kindSimple, dec, query)
}

// NewBMH builds a Boyer-Moore-Horspool searcher.
func NewBMH(dec PhraseSource, query string) *StreamSearcher {
	ss := newBase(kindBMH, dec, query)
	m := len(ss.pattern)
	end := m - 1
	for i := range ss.bcs {
		ss.bcs[i] = m
	}
	for i := 0; i < end; i++ {
		ss.bcs[ss.pattern[i]] = end - i
	}
	return ss
}

// NewDFA builds a DFA-based searcher using a pre-built pattern-matching DFA
// for query.
func NewDFA(dec PhraseSource, query string, dfa *automaton.DFA) *StreamSearcher {
	ss := newBase(kindDFA, dec, query)
	ss.dfa = dfa
	ss.fstate = len(ss.pattern)
	return ss
}

// Reset starts a new sequence at the given target-coordinate offset.
func (ss *StreamSearcher) Reset(seq, offset int) {
	ss.sbSize = 0
	ss.offset = offset
	ss.seq = seq
	if ss.kind == kindDFA {
		ss.state = 0
	}
}

// ProcessCW materialises cw's phrase into the ring buffer and runs the
// search step, returning the phrase's length.
func (ss *StreamSearcher) ProcessCW(cw uint64, h MatchHandler) (int, error) {
	phrase, ok := ss.dec.ResolvePhrase(cw)
	if !ok {
		return 0, fmt.Errorf("search: unknown codeword %d", cw)
	}

	for _, b := range phrase {
		if ss.sbSize >= ss.sbCap {
			ss.step(h)
		}
		i := ss.offset + ss.sbSize
		ss.sbuffer[i%ss.sbCap] = b
		ss.sbSize++
	}
	ss.step(h)

	return len(phrase), nil
}

func (ss *StreamSearcher) step(h MatchHandler) {
	switch ss.kind {
	case kindSimple:
		ss.simpleStep(h)
	case kindBMH:
		ss.bmhStep(h)
	case kindDFA:
		ss.dfaStep(h)
	}
}

func (ss *StreamSearcher) simpleStep(h MatchHandler) {
	m := len(ss.pattern)
	for ss.sbSize >= m {
		match := true
		for i := 0; i < m && match; i++ {
			match = ss.sbuffer[(ss.offset+i)%ss.sbCap] == ss.pattern[i]
		}
		if match && h != nil {
			h(ss.seq, ss.offset)
		}
		ss.offset++
		ss.sbSize--
	}
}

func (ss *StreamSearcher) bmhStep(h MatchHandler) {
	m := len(ss.pattern)
	end := m - 1
	for ss.sbSize >= m {
		match := true
		for i := end; i >= 0 && match; i-- {
			match = ss.sbuffer[(ss.offset+i)%ss.sbCap] == ss.pattern[i]
		}
		if match && h != nil {
			h(ss.seq, ss.offset)
		}
		shift := ss.bcs[ss.sbuffer[(ss.offset+end)%ss.sbCap]]
		ss.offset += shift
		ss.sbSize -= shift
	}
}

func (ss *StreamSearcher) dfaStep(h MatchHandler) {
	for ss.sbSize > 0 {
		ss.state = ss.dfa.Next(ss.state, ss.sbuffer[ss.offset%ss.sbCap])
		ss.offset++
		if ss.state == ss.fstate && h != nil {
			h(ss.seq, ss.offset-len(ss.pattern))
		}
		ss.sbSize--
	}
}
