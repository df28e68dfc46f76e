package encoder

import (
	"bytes"
	"testing"

	"github.com/operutka/alzw/bitio"
	"github.com/operutka/alzw/decoder"
)

// stripGaps recovers the non-gap reference string consumed by decoder.New
// from the aligned r* row consumed by Encoder.Encode: the decoder's
// reference argument is the full non-gap reference, not the aligned row.
func stripGaps(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '-' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

func roundTrip(t *testing.T, rseq, aseq string) string {
	t.Helper()

	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	enc := New(0)
	if err := enc.Encode(rseq, aseq, w, nil); err != nil {
		t.Fatalf("Encode(%q,%q): %v", rseq, aseq, err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	r := bitio.NewReader(&buf)
	var out bytes.Buffer
	dec := decoder.New(stripGaps(rseq))
	if err := dec.Decode(r, &out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return out.String()
}

func TestRoundTripPureMatch(t *testing.T) {
	if got, want := roundTrip(t, "ACGTACGT", "ACGTACGT"), "ACGTACGT"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRoundTripSingleMismatch(t *testing.T) {
	if got, want := roundTrip(t, "ACGT", "ACNT"), "ACNT"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRoundTripSingleDeletion(t *testing.T) {
	if got, want := roundTrip(t, "ACGT", "AC-T"), "ACT"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRoundTripSingleInsertion(t *testing.T) {
	if got, want := roundTrip(t, "AC-GT", "ACTGT"), "ACTGT"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRoundTripMixedEditsAgainstLongerReference(t *testing.T) {
	rseq := "ACGTACGTACGTACGTACGT"
	aseq := "ACGTAC-TAC-TACGTTCGT"
	want := "ACGTACTACTACGTTCGT"
	if got := roundTrip(t, rseq, aseq); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRoundTripLongAllMismatchSequence(t *testing.T) {
	rseq := "ACGTACGTACGTACGTACGTACGTACGTACGTACGTACGT"
	aseq := "TGCATGCATGCATGCATGCATGCATGCATGCATGCATGCA"
	if got := roundTrip(t, rseq, aseq); got != aseq {
		t.Errorf("got %q, want %q", got, aseq)
	}
}

func TestRoundTripGrowsDictionaryPastInitialWidth(t *testing.T) {
	// A long run of matched phrases separated by scattered, varied
	// mismatches repeatedly mints fresh multi-symbol nodes, growing past the
	// initial 9-codeword allocation and forcing WNODE width-increment tokens
	// (the codeword width goes from 4 to 6 bits); decode must still recover
	// the target exactly.
	rseq := "ACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGT"
	aseq := "ACGTTCGTACGAACGTACCTACGTACGGACGTCCGTACGTAAGTACGTACGTNCGTACGN"
	if got := roundTrip(t, rseq, aseq); got != aseq {
		t.Errorf("got %q, want %q", got, aseq)
	}
}

func TestEncodeStatsCountEvents(t *testing.T) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	enc := New(0)
	if err := enc.Encode("ACGT", "ACNT", w, nil); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if enc.Stats.Matches != 3 {
		t.Errorf("Stats.Matches = %d, want 3", enc.Stats.Matches)
	}
	if enc.Stats.Mismatches != 1 {
		t.Errorf("Stats.Mismatches = %d, want 1", enc.Stats.Mismatches)
	}
}

func TestEncodeMultipleSequencesShareDictionary(t *testing.T) {
	rseq := "ACGTACGTACGT"
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	enc := New(0)
	if err := enc.Encode(rseq, "ACGTACGTACGT", w, nil); err != nil {
		t.Fatalf("Encode #1: %v", err)
	}
	nodesAfterFirst := enc.Dictionary().UsedNodes()
	if err := enc.Encode(rseq, "ACGTACGTTCGT", w, nil); err != nil {
		t.Fatalf("Encode #2: %v", err)
	}
	if enc.Dictionary().UsedNodes() < nodesAfterFirst {
		t.Errorf("UsedNodes() decreased across sequences: %d -> %d", nodesAfterFirst, enc.Dictionary().UsedNodes())
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	r := bitio.NewReader(&buf)
	dec := decoder.New(rseq)
	var out1, out2 bytes.Buffer
	if err := dec.Decode(r, &out1); err != nil {
		t.Fatalf("Decode #1: %v", err)
	}
	if err := dec.Decode(r, &out2); err != nil {
		t.Fatalf("Decode #2: %v", err)
	}
	if out1.String() != "ACGTACGTACGT" {
		t.Errorf("Decode #1 = %q, want %q", out1.String(), "ACGTACGTACGT")
	}
	if out2.String() != "ACGTACGTTCGT" {
		t.Errorf("Decode #2 = %q, want %q", out2.String(), "ACGTACGTTCGT")
	}
	if len(dec.Sequences) != 2 {
		t.Errorf("len(Sequences) = %d, want 2", len(dec.Sequences))
	}
}
