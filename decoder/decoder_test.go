package decoder

import (
	"bytes"
	"testing"

	"github.com/operutka/alzw/bitio"
	"github.com/operutka/alzw/encoder"
)

func encode(t *testing.T, rseq, aseq string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	enc := encoder.New(0)
	if err := enc.Encode(rseq, aseq, w, nil); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeStatsTrackDeletedBytes(t *testing.T) {
	stream := encode(t, "ACGTACGT", "AC--ACGT")
	r := bitio.NewReader(bytes.NewReader(stream))
	dec := New("ACGTACGT")

	var out bytes.Buffer
	if err := dec.Decode(r, &out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got, want := out.String(), "ACACGT"; got != want {
		t.Fatalf("Decode output = %q, want %q", got, want)
	}
	if dec.Stats.DeleteRunBytes != 2 {
		t.Errorf("Stats.DeleteRunBytes = %d, want 2", dec.Stats.DeleteRunBytes)
	}
}

func TestDecodeStatsTrackInsertedBases(t *testing.T) {
	stream := encode(t, "AC--GT", "ACTTGT")
	r := bitio.NewReader(bytes.NewReader(stream))
	dec := New("ACGT")

	var out bytes.Buffer
	if err := dec.Decode(r, &out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got, want := out.String(), "ACTTGT"; got != want {
		t.Fatalf("Decode output = %q, want %q", got, want)
	}
	if dec.Stats.InsertsEmitted != 2 {
		t.Errorf("Stats.InsertsEmitted = %d, want 2", dec.Stats.InsertsEmitted)
	}
}

func TestResolvePhraseAndPhraseLenAfterDecode(t *testing.T) {
	rseq := "ACGTACGT"
	stream := encode(t, rseq, rseq)
	r := bitio.NewReader(bytes.NewReader(stream))
	dec := New(rseq)

	var out bytes.Buffer
	if err := dec.Decode(r, &out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	dec.Freeze()

	if len(dec.Sequences) != 1 {
		t.Fatalf("len(Sequences) = %d, want 1", len(dec.Sequences))
	}

	var total int
	for _, cw := range dec.Sequences[0] {
		n, ok := dec.PhraseLen(cw)
		if !ok {
			t.Fatalf("PhraseLen(%d): not found", cw)
		}
		phrase, ok := dec.ResolvePhrase(cw)
		if !ok {
			t.Fatalf("ResolvePhrase(%d): not found", cw)
		}
		if len(phrase) != n {
			t.Errorf("ResolvePhrase(%d) len = %d, PhraseLen = %d", cw, len(phrase), n)
		}
		total += n
	}
	if total != len(rseq) {
		t.Errorf("sum of phrase lengths = %d, want %d", total, len(rseq))
	}
}
