// Package align supplies the alignment providers consumed by the encoder: a
// pairwise alignment is exposed as two equal-length strings over Σ∪{-}.
// FASTA and SAM/BAM loaders turn external file formats into that shape so
// the command-line tools have real adapters to call.
package align

// Provider yields the pair of equal-length alignment strings the encoder
// consumes: Count() == 2, At(0) == r* (reference row), At(1) == a*
// (aligned target row).
type Provider interface {
	Count() int
	At(i int) string
}

// Pair is the simplest Provider: two strings held directly.
type Pair struct {
	Ref, Aligned string
}

func (p Pair) Count() int { return 2 }

func (p Pair) At(i int) string {
	switch i {
	case 0:
		return p.Ref
	case 1:
		return p.Aligned
	default:
		panic("align: index out of range")
	}
}

// StripGaps removes '-' characters, recovering the underlying sequence
// from an alignment row.
func StripGaps(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '-' {
			out = append(out, s[i])
		}
	}
	return string(out)
}
