package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/operutka/alzw/align"
	"github.com/operutka/alzw/container"
	"github.com/operutka/alzw/decoder"
)

// runDecompress implements the "decompress" subcommand: given the reference
// FASTA and a container, write one FASTA file per contained sequence name
// into the output directory.
func runDecompress(args []string) {
	fs := newFlagSet("decompress")
	refPath := fs.String("r", "", "reference FASTA (required)")
	outDir := fs.String("outdir", ".", "directory to write <name>.fa into")
	parseOrExit(fs, args)

	if *refPath == "" || fs.NArg() != 1 {
		usageError(fs, "alzw decompress: -r and exactly one container path are required")
	}

	_, refSeqs, err := align.LoadFasta(*refPath)
	checkError(err)
	if len(refSeqs) == 0 {
		usageError(fs, "alzw decompress: %s has no sequences", *refPath)
	}
	rseq := refSeqs[0]

	r, closer, err := container.Open(fs.Arg(0))
	checkError(err)
	defer closer.Close()

	names, err := container.ReadHeader(r)
	checkError(err)

	dec := decoder.New(rseq)
	for _, name := range names {
		var buf bytes.Buffer
		checkError(dec.Decode(r, &buf))

		outPath := filepath.Join(*outDir, name+".fa")
		f, err := os.Create(outPath)
		checkError(err)
		fmt.Fprintf(f, ">%s\n", name)
		writeWrapped(f, buf.Bytes(), 70)
		checkError(f.Close())
	}
}

func writeWrapped(f *os.File, seq []byte, width int) {
	for i := 0; i < len(seq); i += width {
		end := i + width
		if end > len(seq) {
			end = len(seq)
		}
		fmt.Fprintf(f, "%s\n", seq[i:end])
	}
}
