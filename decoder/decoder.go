// Package decoder implements the ALZW decode loop: token stream plus
// reference sequence back into the target string, with the dictionary
// maintained in lock-step with the encoder's.
package decoder

import (
	"fmt"
	"io"

	"github.com/operutka/alzw/bitio"
	"github.com/operutka/alzw/dict"
)

// Stats mirrors encoder.Stats for the decode side; test-observable only.
type Stats struct {
	MatchPhraseCopies int
	InsertsEmitted    int
	DeleteRunBytes    uint64
}

// Decoder owns a dictionary built identically to an encoder's and replays
// the same construction order as it consumes tokens.
type Decoder struct {
	dict  *dict.Dictionary
	rseq  string
	width int

	curRefOffset uint64

	// phrases maps emitted codewords to their owning node; entries
	// stored while decoding may be stale until Freeze re-resolves every
	// codeword in Sequences. Used by the search package for phrase
	// materialisation once Freeze is called. Ported from decoder.cpp's
	// hash-index mode.
	phrases map[uint64]dict.ResolvedNode
	frozen  bool

	// current/Sequences record the non-sentinel codewords consumed per
	// decoded sequence, in wire order, for reuse by the search package's
	// search tasks without re-parsing the bitstream.
	current   []uint64
	Sequences [][]uint64

	Stats Stats
}

// New creates a decoder for reference sequence rseq (the full non-gap
// reference string).
func New(rseq string) *Decoder {
	d := dict.New()
	return &Decoder{
		dict:    d,
		rseq:    rseq,
		width:   d.InitialWidth(),
		phrases: make(map[uint64]dict.ResolvedNode),
	}
}

func (d *Decoder) Dictionary() *dict.Dictionary { return d.dict }

// Phrases returns the frozen codeword->node map; only valid after Freeze.
func (d *Decoder) Phrases() map[uint64]dict.ResolvedNode { return d.phrases }

// Decode reads tokens from in until cur_ref_offset reaches len(rseq) or
// input is exhausted, writing the reconstructed target to out.
func (d *Decoder) Decode(in *bitio.Reader, out io.Writer) error {
	inode, dnode, wnode := d.dict.INodeID(), d.dict.DNodeID(), d.dict.WNodeID()
	d.curRefOffset = 0
	d.current = d.current[:0]

	for d.curRefOffset < uint64(len(d.rseq)) {
		var cw uint64
		n, err := in.Read(&cw, d.width)
		if err != nil {
			return err
		}
		if n < d.width {
			d.Sequences = append(d.Sequences, append([]uint64(nil), d.current...))
			return nil // short read: normal end-of-stream
		}

		switch {
		case cw == dnode:
			m, err := in.ReadDelta()
			if err != nil {
				return err
			}
			d.curRefOffset += m
			d.Stats.DeleteRunBytes += m
		case cw == inode:
			if err := d.readInsert(in, out); err != nil {
				return err
			}
		case cw == wnode:
			if d.width >= 64 {
				return fmt.Errorf("decoder: codeword width overflow")
			}
			d.width++
		default:
			if err := d.resolveAndEmit(cw, in, out); err != nil {
				return err
			}
		}
	}
	d.Sequences = append(d.Sequences, append([]uint64(nil), d.current...))
	return nil
}

func (d *Decoder) readInsert(in *bitio.Reader, out io.Writer) error {
	k, err := in.ReadDelta()
	if err != nil {
		return err
	}
	for i := uint64(0); i < k; i++ {
		var cw uint64
		n, err := in.Read(&cw, d.width)
		if err != nil {
			return err
		}
		if n < d.width {
			return io.ErrUnexpectedEOF
		}
		if err := d.emitKnown(cw, out); err != nil {
			return err
		}
		d.Stats.InsertsEmitted++
	}
	return nil
}

// resolveAndEmit handles a codeword that is not one of the three
// sentinels: either it names a known node (emit its phrase, advance the
// reference offset by its length) or it is not yet minted, triggering a
// match-phrase copy from the reference.
func (d *Decoder) resolveAndEmit(cw uint64, in *bitio.Reader, out io.Writer) error {
	if r, ok := d.dict.Resolve(cw); ok {
		plen := d.dict.PhraseLength(r)
		if err := d.emitPhrase(r, out); err != nil {
			return err
		}
		d.phrases[cw] = r
		d.current = append(d.current, cw)
		d.curRefOffset += plen
		return nil
	}
	if err := d.matchPhraseCopy(cw, out); err != nil {
		return err
	}
	d.current = append(d.current, cw)
	return nil
}

// emitKnown emits the phrase for a codeword already known to the
// dictionary (used for INSERT tokens, which never mint new codewords).
func (d *Decoder) emitKnown(cw uint64, out io.Writer) error {
	r, ok := d.dict.Resolve(cw)
	if !ok {
		return fmt.Errorf("decoder: unknown codeword %d", cw)
	}
	if err := d.emitPhrase(r, out); err != nil {
		return err
	}
	d.phrases[cw] = r
	d.current = append(d.current, cw)
	return nil
}

func (d *Decoder) emitPhrase(r dict.ResolvedNode, out io.Writer) error {
	phrase := d.dict.Phrase(r)
	for _, b := range phrase {
		if _, err := out.Write([]byte{dict.BaseToChar(b)}); err != nil {
			return err
		}
	}
	return nil
}

// matchPhraseCopy consumes reference symbols starting at cur_ref_offset,
// growing the dictionary (follow+add per symbol, starting a fresh phrase)
// until the cursor's id equals cw, emitting each copied symbol. Ported
// from decoder.cpp's output_match.
func (d *Decoder) matchPhraseCopy(cw uint64, out io.Writer) error {
	d.dict.ResetPhrase()
	for d.dict.CurID() < cw {
		if d.curRefOffset >= uint64(len(d.rseq)) {
			return fmt.Errorf("decoder: reference exhausted during match-phrase copy")
		}
		c := d.rseq[d.curRefOffset]
		base := uint8(dict.CharToBase(c))
		if !d.dict.Follow(base) {
			d.dict.Add(base)
		}
		if _, err := out.Write([]byte{c}); err != nil {
			return err
		}
		d.curRefOffset++
		d.Stats.MatchPhraseCopies++
	}
	d.dict.CommitPhrase()
	return nil
}

// Freeze finalises the codeword->node map so it may be shared read-only by
// search tasks: every codeword in Sequences is re-resolved against the
// final dictionary, since a node split after a codeword was emitted moves
// that codeword to a different node.
func (d *Decoder) Freeze() {
	for _, seq := range d.Sequences {
		for _, cw := range seq {
			if r, ok := d.dict.Resolve(cw); ok {
				d.phrases[cw] = r
			}
		}
	}
	d.frozen = true
}

// Frozen reports whether Freeze has been called.
func (d *Decoder) Frozen() bool { return d.frozen }

// ResolvePhrase returns the materialised phrase for a codeword previously
// emitted by Decode, for use by stream searchers.
func (d *Decoder) ResolvePhrase(cw uint64) ([]uint8, bool) {
	r, ok := d.phrases[cw]
	if !ok {
		r, ok = d.dict.Resolve(cw)
		if !ok {
			return nil, false
		}
	}
	return d.dict.Phrase(r), true
}

// PhraseLen returns the number of symbols contributed by codeword cw:
// n.phrase_length - (n.id+n.length-cw).
func (d *Decoder) PhraseLen(cw uint64) (int, bool) {
	r, ok := d.dict.Resolve(cw)
	if !ok {
		return 0, false
	}
	return int(d.dict.PhraseLength(r)), true
}
