package search

import (
	"fmt"

	"github.com/operutka/alzw/automaton"
	"github.com/operutka/alzw/decoder"
)

// Task is the per-query-algorithm search driver; the LM task and the plain
// byte-level fallback task both implement it.
type Task interface {
	InitSearch()
	NewSequence()
	ProcessCW(cw uint64, h MatchHandler) (int, error)
}

// Run drives task over every sequence recorded by a Decoder: a single
// compressed stream may be searched repeatedly by instantiating a new task
// per query, since tasks never mutate the decoder. The match handler is
// invoked in order of non-decreasing offset within a sequence; sequences
// are visited in container order.
func Run(sequences [][]uint64, task Task, h MatchHandler) error {
	task.InitSearch()
	for i, seq := range sequences {
		if i > 0 {
			task.NewSequence()
		}
		for _, cw := range seq {
			if _, err := task.ProcessCW(cw, h); err != nil {
				return err
			}
		}
	}
	return nil
}

// SSTask drives one of the plain byte-level stream searchers (naive, BMH,
// or DFA) over the compressed stream's codewords, one sequence at a time.
type SSTask struct {
	ss  *StreamSearcher
	seq int
}

// NewSSTask wraps an already-constructed stream searcher as a Task.
func NewSSTask(ss *StreamSearcher) *SSTask {
	return &SSTask{ss: ss}
}

func (t *SSTask) InitSearch() {
	t.seq = 1
	t.ss.Reset(t.seq, 0)
}

func (t *SSTask) NewSequence() {
	t.seq++
	t.ss.Reset(t.seq, 0)
}

func (t *SSTask) ProcessCW(cw uint64, h MatchHandler) (int, error) {
	return t.ss.ProcessCW(cw, h)
}

type cwEntry struct {
	cw   uint64
	plen int
}

// LMTask implements the Lahoda-Melichar codeword-skipping search: it walks
// the compressed stream's codewords without materialising phrases, falling
// back to a byte-level DFA search over a small trailing window only when a
// signature indicates a match might end inside the current phrase.
type LMTask struct {
	dfa    *automaton.DFA
	rtable *RepresentativeTable
	dec    *decoder.Decoder
	ss     *StreamSearcher

	rmap map[uint64]*Representative

	state int

	cwWindow     []cwEntry
	windowOffset int
	windowSize   int
	lastMatch    int

	seq int
}

// NewLMTask builds the pattern DFA and its representative table once per
// query, then walks dec's recorded sequences.
func NewLMTask(dec *decoder.Decoder, query string) *LMTask {
	dfa := automaton.Build(query)
	return &LMTask{
		dfa:    dfa,
		rtable: NewRepresentativeTable(dfa),
		dec:    dec,
		ss:     NewDFA(dec, query, dfa),
		rmap:   make(map[uint64]*Representative),
	}
}

func (t *LMTask) InitSearch() {
	t.seq = 1
	t.resetWindow()
}

func (t *LMTask) NewSequence() {
	t.seq++
	t.resetWindow()
}

func (t *LMTask) resetWindow() {
	t.state = 0
	t.windowOffset = 0
	t.windowSize = 0
	t.cwWindow = t.cwWindow[:0]
	t.lastMatch = -1
}

// ProcessCW implements the per-codeword skip-or-verify algorithm.
func (t *LMTask) ProcessCW(cw uint64, h MatchHandler) (int, error) {
	r, err := t.representative(cw)
	if err != nil {
		return 0, err
	}
	sig := r.Signature()

	if sig.IsFinal(t.state) {
		lastMatch := t.lastMatch
		filter := func(seq, offset int) {
			if offset <= lastMatch {
				return
			}
			lastMatch = offset
			if h != nil {
				h(seq, offset)
			}
		}

		t.ss.Reset(t.seq, t.windowOffset)
		for _, e := range t.cwWindow {
			if _, err := t.ss.ProcessCW(e.cw, filter); err != nil {
				return 0, err
			}
		}
		if _, err := t.ss.ProcessCW(cw, filter); err != nil {
			return 0, err
		}
		t.lastMatch = lastMatch
	}

	t.state = sig.Destination(t.state)

	plen, ok := t.dec.PhraseLen(cw)
	if !ok {
		return 0, fmt.Errorf("search: unknown codeword %d", cw)
	}

	t.cwWindow = append(t.cwWindow, cwEntry{cw: cw, plen: plen})
	t.windowSize += plen

	for len(t.cwWindow) > 0 {
		head := t.cwWindow[0]
		if t.windowSize-head.plen < t.dfa.StateCount() {
			break
		}
		t.cwWindow = t.cwWindow[1:]
		t.windowSize -= head.plen
		t.windowOffset += head.plen
	}

	return plen, nil
}

// representative is the memoised representative lookup: on miss, walk the
// owning node's path to root collecting suffix symbols until either the
// root or a previously memoised ancestor codeword is reached, then replay
// those suffixes through the representative trie.
func (t *LMTask) representative(cw uint64) (*Representative, error) {
	if r, ok := t.rmap[cw]; ok {
		return r, nil
	}

	suffix, stoppedAt, hitRoot := t.dec.Dictionary().PathSuffix(cw, func(ancestorCW uint64) bool {
		_, ok := t.rmap[ancestorCW]
		return ok
	})

	var r *Representative
	if hitRoot {
		r = t.rtable.Epsilon()
	} else {
		var ok bool
		r, ok = t.rmap[stoppedAt]
		if !ok {
			return nil, fmt.Errorf("search: unknown codeword %d", cw)
		}
	}

	for i := len(suffix) - 1; i >= 0; i-- {
		r = r.Transition(suffix[i])
	}

	t.rmap[cw] = r
	return r, nil
}
