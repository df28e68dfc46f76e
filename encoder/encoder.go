// Package encoder implements the ALZW operation FSM that turns a pairwise
// alignment into a token stream of MATCH/MISMATCH runs, INSERT bursts, and
// DELETE run-lengths, growing a shared dictionary as it goes.
package encoder

import (
	"github.com/operutka/alzw/bitio"
	"github.com/operutka/alzw/dict"
	"github.com/operutka/alzw/token"
)

// Stats are observability counters, never part of the wire format.
type Stats struct {
	Matches, Mismatches, Inserts, Deletes int
	// MatchRuns counts contiguous match runs; MatchMismatchRuns counts
	// contiguous match-or-mismatch runs (ported as two distinct counters
	// from encoder.cpp's nmseqs/nmmseqs).
	MatchRuns, MatchMismatchRuns, InsertRuns, DeleteRuns int
	MMBits, InsBits, DelBits                             int
}

// Encoder is exclusively owned by its caller and is never shared across
// goroutines: encoding a single stream is inherently sequential.
type Encoder struct {
	dict *dict.Dictionary

	syncPeriod uint64

	width int
	ndel  int
	nins  int
	nmm   int

	lastOp token.Kind

	fmismatch bool
	fnewNode  bool
	fwidthInc bool

	insQueue []uint64

	Stats Stats
}

// New creates an encoder with its own dictionary. syncPeriod is the fixed
// sync period P; 0 disables periodic sync (adaptive sync is driven by
// passing a non-nil syncMap to Encode instead).
func New(syncPeriod uint64) *Encoder {
	d := dict.New()
	return &Encoder{
		dict:       d,
		syncPeriod: syncPeriod,
		width:      d.InitialWidth(),
		lastOp:     token.None,
	}
}

func (e *Encoder) Dictionary() *dict.Dictionary { return e.dict }
func (e *Encoder) Width() int                   { return e.width }

func nextSyncPoint(current *uint64, index *int, syncMap []uint32, syncPeriod uint64) {
	if syncMap != nil && syncPeriod != 0 {
		var soffset uint64
		for soffset < syncPeriod && *index < len(syncMap) {
			soffset += uint64(syncMap[*index])
			*index++
		}
		*current += soffset
	} else {
		*current += syncPeriod
	}
}

// Encode appends the token stream for the alignment (rseq, aseq) — both
// equal-length strings over Σ∪{-} — to out.
func (e *Encoder) Encode(rseq, aseq string, out *bitio.Writer, syncMap []uint32) error {
	alen := len(aseq)
	var roffset, nextSP uint64
	var smi int

	nextSyncPoint(&nextSP, &smi, syncMap, e.syncPeriod)

	for i := 0; i < alen; i++ {
		c1, c2 := rseq[i], aseq[i]

		if c1 != '-' {
			if nextSP > 0 && nextSP == roffset {
				nextSyncPoint(&nextSP, &smi, syncMap, e.syncPeriod)
				if err := e.Sync(out); err != nil {
					return err
				}
			}
			roffset++
		}

		var err error
		switch {
		case c1 == '-':
			err = e.Insert(c2, out)
		case c2 == '-':
			err = e.Delete(out)
		case c1 == c2:
			err = e.Match(c2, out)
		default:
			err = e.Mismatch(c2, out)
		}
		if err != nil {
			return err
		}
	}

	return e.Flush(out)
}

// Match handles a MATCH event, including the width-bump decision table:
// grow the dictionary by following or adding a symbol, or split off a new
// phrase and bump the codeword width once the current width is exhausted.
func (e *Encoder) Match(c byte, out *bitio.Writer) error {
	base := uint8(dict.CharToBase(c))

	if err := e.flushIns(out); err != nil {
		return err
	}
	if err := e.flushDel(out); err != nil {
		return err
	}

	if e.lastOp != token.Match && e.lastOp != token.Mismatch {
		e.Stats.MatchMismatchRuns++
	}
	if e.lastOp != token.Match {
		e.Stats.MatchRuns++
	}
	e.lastOp = token.Match

	if !e.fmismatch {
		id := e.dict.CurID()
		canFollow := e.dict.CanFollow(base)
		next := e.dict.NextID()

		switch {
		case !token.NeedsWidthBump(next):
			e.dict.Add(base)
			e.fnewNode = !canFollow
		case canFollow:
			e.dict.Follow(base)
		case e.fwidthInc:
			e.dict.Add(base)
			e.fnewNode = true
			e.fwidthInc = false
		default:
			if err := e.outMM(id, out); err != nil {
				return err
			}
			e.dict.NewPhrase()

			if err := e.outMM(e.dict.WNodeID(), out); err != nil {
				return err
			}
			e.dict.Follow(base)

			e.width++
			e.nmm = 0
			e.fnewNode = false
			e.fmismatch = false
			e.fwidthInc = true
		}
	} else if !e.dict.Follow(base) {
		if err := e.outMM(e.dict.CurID(), out); err != nil {
			return err
		}
		e.dict.NewPhrase()
		e.dict.Follow(base)
		e.nmm = 0
		e.fnewNode = false
		e.fmismatch = false
	}

	e.nmm++
	e.Stats.Matches++
	return nil
}

// Mismatch handles a MISMATCH event.
func (e *Encoder) Mismatch(c byte, out *bitio.Writer) error {
	base := uint8(dict.CharToBase(c))

	if err := e.flushIns(out); err != nil {
		return err
	}
	if err := e.flushDel(out); err != nil {
		return err
	}

	if e.lastOp != token.Match && e.lastOp != token.Mismatch {
		e.Stats.MatchMismatchRuns++
	}
	e.lastOp = token.Mismatch

	e.fmismatch = true

	if e.fnewNode || !e.dict.Follow(base) {
		if err := e.outMM(e.dict.CurID(), out); err != nil {
			return err
		}
		e.dict.NewPhrase()
		e.dict.Follow(base)
		e.nmm = 0
		e.fnewNode = false
	}

	e.nmm++
	e.Stats.Mismatches++
	return nil
}

// Insert handles an INSERT event.
func (e *Encoder) Insert(c byte, out *bitio.Writer) error {
	base := uint8(dict.CharToBase(c))

	if err := e.flushMM(out); err != nil {
		return err
	}
	if err := e.flushDel(out); err != nil {
		return err
	}

	if e.lastOp != token.Insert {
		e.Stats.InsertRuns++
	}
	e.lastOp = token.Insert

	if e.dict.Follow(base) {
		e.nins++
	} else {
		e.outIns(e.dict.CurID())
		e.dict.NewPhrase()
		e.dict.Follow(base)
		e.nins = 1
	}

	e.Stats.Inserts++
	return nil
}

// Delete handles a DELETE event.
func (e *Encoder) Delete(out *bitio.Writer) error {
	if err := e.flushMM(out); err != nil {
		return err
	}
	if err := e.flushIns(out); err != nil {
		return err
	}

	if e.lastOp != token.Delete {
		e.Stats.DeleteRuns++
	}
	e.lastOp = token.Delete

	e.ndel++
	e.Stats.Deletes++
	return nil
}

func (e *Encoder) outMM(id uint64, out *bitio.Writer) error {
	if err := out.Write(id, e.width); err != nil {
		return err
	}
	e.Stats.MMBits += e.width
	return nil
}

func (e *Encoder) outIns(id uint64) {
	e.insQueue = append(e.insQueue, id)
}

func (e *Encoder) outDel(size uint64, out *bitio.Writer) error {
	if err := out.Write(e.dict.DNodeID(), e.width); err != nil {
		return err
	}
	n, err := out.WriteDelta(size)
	if err != nil {
		return err
	}
	e.Stats.DelBits += n + e.width
	return nil
}

func (e *Encoder) flushMM(out *bitio.Writer) error {
	e.fmismatch = false
	e.fnewNode = false

	if e.nmm == 0 {
		return nil
	}
	if err := e.outMM(e.dict.CurID(), out); err != nil {
		return err
	}
	e.dict.NewPhrase()
	e.nmm = 0
	return nil
}

func (e *Encoder) flushIns(out *bitio.Writer) error {
	if e.nins > 0 {
		e.outIns(e.dict.CurID())
		e.dict.NewPhrase()
		e.nins = 0
	}

	if len(e.insQueue) == 0 {
		return nil
	}

	if err := out.Write(e.dict.INodeID(), e.width); err != nil {
		return err
	}
	n, err := out.WriteDelta(uint64(len(e.insQueue)))
	if err != nil {
		return err
	}
	for _, id := range e.insQueue {
		if err := out.Write(id, e.width); err != nil {
			return err
		}
	}
	e.Stats.InsBits += e.width + n + len(e.insQueue)*e.width
	e.insQueue = e.insQueue[:0]
	return nil
}

func (e *Encoder) flushDel(out *bitio.Writer) error {
	if e.ndel == 0 {
		return nil
	}
	if err := e.outDel(uint64(e.ndel), out); err != nil {
		return err
	}
	e.ndel = 0
	return nil
}

// Flush emits any pending runs; must be called after the last event of a
// sequence.
func (e *Encoder) Flush(out *bitio.Writer) error {
	if err := e.flushMM(out); err != nil {
		return err
	}
	if err := e.flushIns(out); err != nil {
		return err
	}
	return e.flushDel(out)
}

// Sync flushes all pending runs at a synchronisation point without writing
// any marker: both endpoints compute the same schedule.
func (e *Encoder) Sync(out *bitio.Writer) error {
	return e.Flush(out)
}
