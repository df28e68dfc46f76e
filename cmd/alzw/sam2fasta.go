package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/operutka/alzw/align"
)

// runSam2Fasta implements the "sam2fasta" subcommand: reconstructs a
// reference-padded alignment row from each SAM file against the named
// reference, writing a two-record FASTA pair per input.
func runSam2Fasta(args []string) {
	fs := newFlagSet("sam2fasta")
	refPath := fs.String("r", "", "reference FASTA (required)")
	outDir := fs.String("outdir", ".", "directory to write <sam base name>.fa into")
	parseOrExit(fs, args)

	if *refPath == "" || fs.NArg() == 0 {
		usageError(fs, "alzw sam2fasta: -r and at least one SAM file are required")
	}

	refNames, refSeqs, err := align.LoadFasta(*refPath)
	checkError(err)
	if len(refSeqs) == 0 {
		usageError(fs, "alzw sam2fasta: %s has no sequences", *refPath)
	}
	refName, refSeq := refNames[0], refSeqs[0]

	for _, samPath := range fs.Args() {
		pair, err := align.LoadSamAlignment(refSeq, samPath)
		checkError(err)

		base := strings.TrimSuffix(filepath.Base(samPath), filepath.Ext(samPath))
		outPath := filepath.Join(*outDir, base+".fa")
		f, err := os.Create(outPath)
		checkError(err)

		fmt.Fprintf(f, ">%s\n", refName)
		writeWrapped(f, []byte(pair.Ref), 70)
		fmt.Fprintf(f, ">%s\n", base)
		writeWrapped(f, []byte(pair.Aligned), 70)

		checkError(f.Close())
	}
}
