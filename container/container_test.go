package container

import (
	"bytes"
	"testing"

	"github.com/operutka/alzw/bitio"
)

func TestHeaderRoundTrip(t *testing.T) {
	names := []string{"chr1", "sample-A", ""}

	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	if err := WriteHeader(w, names); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	r := bitio.NewReader(&buf)
	got, err := ReadHeader(r)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if len(got) != len(names) {
		t.Fatalf("ReadHeader() = %v, want %v", got, names)
	}
	for i := range names {
		if got[i] != names[i] {
			t.Errorf("ReadHeader()[%d] = %q, want %q", i, got[i], names[i])
		}
	}
}

func TestEmptyHeaderMeansSingleAnonymousSequence(t *testing.T) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	if err := WriteHeader(w, nil); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	r := bitio.NewReader(&buf)
	got, err := ReadHeader(r)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if len(got) != 1 || got[0] != "" {
		t.Errorf("ReadHeader() = %v, want [\"\"]", got)
	}
}

func TestWriteHeaderRejectsOverlongName(t *testing.T) {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	longName := make([]byte, maxNameLen)
	for i := range longName {
		longName[i] = 'A'
	}
	if err := WriteHeader(w, []string{string(longName)}); err == nil {
		t.Errorf("WriteHeader: want error for name of length %d", len(longName))
	}
}
