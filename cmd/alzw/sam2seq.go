package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/operutka/alzw/align"
)

// runSam2Seq implements the "sam2seq" subcommand: the same reconstruction
// as sam2fasta, but only the reconstructed target row, gap-stripped, for
// callers that just want the sequence. Reference positions no record covers
// come out as 'N'.
func runSam2Seq(args []string) {
	fs := newFlagSet("sam2seq")
	refPath := fs.String("r", "", "reference FASTA (required)")
	outDir := fs.String("outdir", ".", "directory to write <sam base name>.fa into")
	parseOrExit(fs, args)

	if *refPath == "" || fs.NArg() == 0 {
		usageError(fs, "alzw sam2seq: -r and at least one SAM file are required")
	}

	_, refSeqs, err := align.LoadFasta(*refPath)
	checkError(err)
	if len(refSeqs) == 0 {
		usageError(fs, "alzw sam2seq: %s has no sequences", *refPath)
	}
	refSeq := refSeqs[0]

	for _, samPath := range fs.Args() {
		pair, err := align.LoadSamAlignment(refSeq, samPath)
		checkError(err)

		base := strings.TrimSuffix(filepath.Base(samPath), filepath.Ext(samPath))
		outPath := filepath.Join(*outDir, base+".fa")
		f, err := os.Create(outPath)
		checkError(err)

		fmt.Fprintf(f, ">%s\n", base)
		writeWrapped(f, []byte(align.StripGaps(pair.Aligned)), 70)

		checkError(f.Close())
	}
}
