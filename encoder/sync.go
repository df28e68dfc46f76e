package encoder

// AlignmentPair is the minimal (reference, aligned) row pair ChangeVector
// and SyncMap need — independent of any particular loader.
type AlignmentPair struct {
	Ref, Aligned string
}

// ChangeVector marks every reference position where at least one of the
// given alignments departs from the reference: a mismatch or a deletion
// marks the position itself, and an insertion marks the position
// immediately before it (or is dropped if the insertion precedes the first
// reference position). The vector is one element longer than the
// reference's non-gap length, matching the sync map's "tail" sentinel.
// Ported from alzw.cpp's create_change_vector.
func ChangeVector(pairs []AlignmentPair) []bool {
	var changes []bool

	for _, p := range pairs {
		if changes == nil {
			changes = make([]bool, nonGapLen(p.Ref)+1)
		}

		var roffset int
		for j := 0; j < len(p.Ref); j++ {
			c1, c2 := p.Ref[j], p.Aligned[j]
			switch {
			case c1 == '-':
				if roffset > 0 {
					changes[roffset-1] = true
				}
			case c1 != c2:
				changes[roffset] = true
			}
			if c1 != '-' {
				roffset++
			}
		}
	}

	return changes
}

func nonGapLen(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] != '-' {
			n++
		}
	}
	return n
}

// SyncMap turns a change vector into the inter-sync distances Encode's
// syncMap parameter expects. A sync point is the first unchanged position
// after one or more changes; each entry is the distance from the previous
// sync point (position 0 for the first) to the next one. A leading
// unchanged run (no change seen yet) is thus folded into the distance
// reported for the first real sync point, exactly like alzw.cpp's
// create_sync_map. Unchanged positions after the last sync point produce
// no entry.
func SyncMap(changes []bool) []uint32 {
	var syncMap []uint32
	syncNeeded := false
	var period uint32

	for _, changed := range changes {
		if changed {
			syncNeeded = true
		} else if syncNeeded {
			syncMap = append(syncMap, period)
			syncNeeded = false
			period = 0
		}
		period++
	}

	return syncMap
}
