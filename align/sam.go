package align

import (
	"fmt"
	"os"
	"strings"

	"github.com/biogo/hts/sam"
)

// insertion records the winning inserted bases at one reference position
// under the MAPQ tie-break policy.
type insertion struct {
	bases []byte
	mapq  byte
}

// mapqWins reports whether a record with mapq should replace whatever
// already occupies a position, under the policy that MAPQ 255
// ("unavailable") never overwrites a concrete prior value and ties favour
// the incumbent: hasIncumbent is false only when nothing has written that
// position yet, in which case any record wins.
func mapqWins(mapq byte, hasIncumbent bool, incumbentMapq byte) bool {
	if !hasIncumbent {
		return true
	}
	if mapq == 255 {
		return false
	}
	if incumbentMapq == 255 {
		return true
	}
	return mapq > incumbentMapq
}

// LoadSamAlignment reconstructs a single reference-padded alignment row
// from every record in a SAM file, against the named reference sequence,
// applying the following CIGAR-op policy: M consumes ref+query, I records
// an insertion keyed by reference position, D/N advance the reference with
// a gap in the reconstructed row, S consumes query only (soft-clipped bases
// are dropped). M/I/D/N all apply the mapqWins tie policy uniformly to
// overlapping records, matching sam-alignment.cpp's alignment_symbol queue.
// Reference positions no record ever covers default to 'N' ("unsequenced"),
// not to the reference base.
func LoadSamAlignment(refSeq string, samPath string) (*Pair, error) {
	f, err := os.Open(samPath)
	if err != nil {
		return nil, fmt.Errorf("align: open %s: %w", samPath, err)
	}
	defer f.Close()

	r, err := sam.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("align: parse header of %s: %w", samPath, err)
	}

	base := make([]byte, len(refSeq))
	for i := range base {
		base[i] = 'N'
	}
	baseMapq := make([]byte, len(refSeq))
	covered := make([]bool, len(refSeq))
	ins := make(map[int]insertion)

	for {
		rec, err := r.Read()
		if err != nil {
			if err.Error() == "EOF" {
				break
			}
			return nil, fmt.Errorf("align: read %s: %w", samPath, err)
		}
		if rec.Flags&sam.Unmapped != 0 {
			continue
		}

		refPos := rec.Pos
		queryPos := 0
		seq := rec.Seq.Expand()

		for _, op := range rec.Cigar {
			n := op.Len()
			switch op.Type() {
			case sam.CigarMatch, sam.CigarEqual, sam.CigarMismatch:
				for k := 0; k < n; k++ {
					recordBase(base, baseMapq, covered, refPos, seq[queryPos], rec.MapQ)
					refPos++
					queryPos++
				}
			case sam.CigarInsertion:
				recordInsertion(ins, refPos, seq[queryPos:queryPos+n], rec.MapQ)
				queryPos += n
			case sam.CigarDeletion, sam.CigarSkipped:
				for k := 0; k < n; k++ {
					recordBase(base, baseMapq, covered, refPos, '-', rec.MapQ)
					refPos++
				}
			case sam.CigarSoftClipped:
				queryPos += n
			}
		}
	}

	var rOut, aOut strings.Builder
	for i := 0; i < len(refSeq); i++ {
		if in, ok := ins[i]; ok {
			for _, b := range in.bases {
				rOut.WriteByte('-')
				aOut.WriteByte(b)
			}
		}
		rOut.WriteByte(refSeq[i])
		aOut.WriteByte(base[i])
	}

	return &Pair{Ref: rOut.String(), Aligned: aOut.String()}, nil
}

// recordBase applies mapqWins to a single reference position covered by an
// M/D/N CIGAR op, the same tie policy recordInsertion applies to I ops.
func recordBase(base, baseMapq []byte, covered []bool, pos int, b, mapq byte) {
	if pos < 0 || pos >= len(base) {
		return
	}
	if !mapqWins(mapq, covered[pos], baseMapq[pos]) {
		return
	}
	base[pos] = b
	baseMapq[pos] = mapq
	covered[pos] = true
}

func recordInsertion(ins map[int]insertion, pos int, bases []byte, mapq byte) {
	existing, ok := ins[pos]
	if !mapqWins(mapq, ok, existing.mapq) {
		return
	}
	ins[pos] = insertion{bases: append([]byte(nil), bases...), mapq: mapq}
}
