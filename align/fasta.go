package align

import (
	"fmt"
	"strings"

	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
)

func init() {
	// Alignment rows carry '-' gap characters that seq's own alphabet
	// checker rejects; validate() below enforces Σ∪{-} instead.
	seq.ValidateSeq = false
}

// LoadFasta reads every record of a FASTA file into name->sequence pairs,
// normalising to upper-case and validating the alphabet Σ∪{-}. Grounded on
// a standard fastx.NewReader / Read-until-EOF loop.
func LoadFasta(path string) (names []string, seqs []string, err error) {
	r, err := fastx.NewDefaultReader(path)
	if err != nil {
		return nil, nil, fmt.Errorf("align: open %s: %w", path, err)
	}
	defer r.Close()

	for {
		rec, err := r.Read()
		if err != nil {
			if err.Error() == "EOF" {
				break
			}
			return nil, nil, fmt.Errorf("align: read %s: %w", path, err)
		}
		seq := strings.ToUpper(string(rec.Seq.Seq))
		if err := validate(seq); err != nil {
			return nil, nil, fmt.Errorf("align: %s in %s: %w", rec.Name, path, err)
		}
		names = append(names, string(rec.Name))
		seqs = append(seqs, seq)
	}
	return names, seqs, nil
}

func validate(s string) error {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '-' && c != 'A' && c != 'C' && c != 'G' && c != 'T' && c != 'N' {
			return fmt.Errorf("illegal character %q at position %d", c, i)
		}
	}
	return nil
}

// FastaAlignment loads exactly two aligned rows (reference, target) out of
// one FASTA file containing both, in order.
type FastaAlignment struct {
	Pair
	RefName, TargetName string
}

// LoadFastaAlignment reads a FASTA file whose records are each introduced
// by a > comment line, wrapped at any width, with whitespace ignored.
func LoadFastaAlignment(path string) (*FastaAlignment, error) {
	names, seqs, err := LoadFasta(path)
	if err != nil {
		return nil, err
	}
	if len(names) < 2 {
		return nil, fmt.Errorf("align: %s has fewer than two sequences", path)
	}
	if len(seqs[0]) != len(seqs[1]) {
		return nil, fmt.Errorf("align: %s rows have unequal length (%d vs %d)", path, len(seqs[0]), len(seqs[1]))
	}
	return &FastaAlignment{
		Pair:       Pair{Ref: seqs[0], Aligned: seqs[1]},
		RefName:    names[0],
		TargetName: names[1],
	}, nil
}
