// Package token defines the shared vocabulary of the ALZW operation FSM:
// the run kinds the encoder aggregates events into and the width-growth
// rule the encoder applies (the decoder widens only on the WNODE tokens the
// encoder emits).
package token

// Kind distinguishes the four run kinds the encoder's FSM aggregates
// events into.
type Kind int

const (
	None Kind = iota
	Match
	Mismatch
	Insert
	Delete
)

// WidthFor returns ceil(log2(n)), the number of bits needed to address
// codewords 0..n-1.
func WidthFor(n uint64) int {
	w := 0
	for (uint64(1) << uint(w)) < n {
		w++
	}
	return w
}

// NeedsWidthBump reports whether minting the codeword next would overflow
// the current width, i.e. next is an exact power of two (so next-1 — the
// largest value representable in the current width — has already been
// used). Ported from encoder.cpp's `(next & (next - 1)) != 0` guard,
// inverted: that expression is false exactly when next is a power of two.
func NeedsWidthBump(next uint64) bool {
	return next != 0 && (next&(next-1)) == 0
}
