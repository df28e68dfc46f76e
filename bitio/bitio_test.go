package bitio

import (
	"bytes"
	"testing"
)

func TestWriteReadFixedWidth(t *testing.T) {
	cases := []struct {
		value uint64
		width int
	}{
		{0, 1},
		{1, 1},
		{5, 3},
		{255, 8},
		{1023, 10},
		{1<<32 - 1, 32},
		{1<<63 - 1, 63},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, c := range cases {
		if err := w.Write(c.value, c.width); err != nil {
			t.Fatalf("Write(%d,%d): %v", c.value, c.width, err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	r := NewReader(&buf)
	for _, c := range cases {
		var got uint64
		n, err := r.Read(&got, c.width)
		if err != nil {
			t.Fatalf("Read(%d): %v", c.width, err)
		}
		if n != c.width {
			t.Fatalf("Read(%d): got %d bits, want %d", c.width, n, c.width)
		}
		if got != c.value {
			t.Errorf("Read(%d): got %d, want %d", c.width, got, c.value)
		}
	}
}

func TestGammaRoundTrip(t *testing.T) {
	values := []uint64{1, 2, 3, 4, 7, 8, 255, 256, 1 << 20, 1<<40 + 17}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, v := range values {
		if _, err := w.WriteGamma(v); err != nil {
			t.Fatalf("WriteGamma(%d): %v", v, err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	r := NewReader(&buf)
	for _, v := range values {
		got, err := r.ReadGamma()
		if err != nil {
			t.Fatalf("ReadGamma: %v", err)
		}
		if got != v {
			t.Errorf("ReadGamma: got %d, want %d", got, v)
		}
	}
}

func TestDeltaRoundTrip(t *testing.T) {
	values := []uint64{1, 2, 3, 8, 100, 1 << 16, 1<<48 + 1}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, v := range values {
		if _, err := w.WriteDelta(v); err != nil {
			t.Fatalf("WriteDelta(%d): %v", v, err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	r := NewReader(&buf)
	for _, v := range values {
		got, err := r.ReadDelta()
		if err != nil {
			t.Fatalf("ReadDelta: %v", err)
		}
		if got != v {
			t.Errorf("ReadDelta: got %d, want %d", got, v)
		}
	}
}

func TestWriteStringRoundTrip(t *testing.T) {
	names := []string{"", "chr1", "a long sequence name with spaces"}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, n := range names {
		if err := w.WriteString(n); err != nil {
			t.Fatalf("WriteString(%q): %v", n, err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	r := NewReader(&buf)
	out := make([]byte, 256)
	for _, n := range names {
		nread, err := r.ReadString(out)
		if err != nil {
			t.Fatalf("ReadString: %v", err)
		}
		if nread < 0 {
			t.Fatalf("ReadString(%q): terminator not found", n)
		}
		if string(out[:nread]) != n {
			t.Errorf("ReadString: got %q, want %q", out[:nread], n)
		}
	}
}

func TestReadShortStreamReportsFewerBits(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.Write(0x3, 2); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	r := NewReader(&buf)
	var got uint64
	n, err := r.Read(&got, 32)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n >= 32 {
		t.Fatalf("Read: got %d bits from a 1-byte stream, want fewer than 32", n)
	}
}
