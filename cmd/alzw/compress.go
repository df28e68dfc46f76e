package main

import (
	"log"
	"time"

	"github.com/pkg/profile"
	"github.com/vbauerster/mpb/v5"
	"github.com/vbauerster/mpb/v5/decor"

	"github.com/operutka/alzw/align"
	"github.com/operutka/alzw/container"
	"github.com/operutka/alzw/encoder"
)

// runCompress implements the "compress" subcommand: one or more FASTA
// files, each holding a (reference, target) pair against the same
// reference, are encoded into a single container, with progress reported
// per input file via mpb.
func runCompress(args []string) {
	fs := newFlagSet("compress")
	out := fs.String("o", "", "output container path (required)")
	sync := fs.Uint64("s", 200, "fixed sync period in reference positions (0 disables periodic sync)")
	adaptive := fs.Bool("a", false, "adaptive synchronisation: sync only at the first agreeing position after a change in any input, at least -s positions apart (-s 0 disables sync), instead of on a fixed period")
	pfCPU := fs.Bool("pprof-cpu", false, "profile CPU")
	parseOrExit(fs, args)

	if *out == "" || fs.NArg() == 0 {
		usageError(fs, "alzw compress: -o and at least one input FASTA file are required")
	}

	if *pfCPU {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	files := fs.Args()

	alignments := make([]*align.FastaAlignment, len(files))
	for i, f := range files {
		a, err := align.LoadFastaAlignment(f)
		checkError(err)
		if i > 0 && a.Ref != alignments[0].Ref {
			usageError(fs, "alzw compress: %s has a different reference row than %s", f, files[0])
		}
		alignments[i] = a
	}

	w, closer, err := container.Create(*out)
	checkError(err)
	defer closer.Close()

	names := make([]string, len(alignments))
	for i, a := range alignments {
		names[i] = a.TargetName
	}
	checkError(container.WriteHeader(w, names))

	var syncMap []uint32
	if *adaptive {
		pairs := make([]encoder.AlignmentPair, len(alignments))
		for i, a := range alignments {
			pairs[i] = encoder.AlignmentPair{Ref: a.Ref, Aligned: a.Aligned}
		}
		syncMap = encoder.SyncMap(encoder.ChangeVector(pairs))
	}

	p := mpb.New(mpb.WithWidth(64))
	bar := p.AddBar(int64(len(alignments)),
		mpb.PrependDecorators(decor.Name("compress", decor.WC{W: len("compress") + 1, C: decor.DidentRight})),
		mpb.AppendDecorators(decor.CountersNoUnit("%d / %d")),
	)

	enc := encoder.New(*sync)
	sTime := time.Now()
	for _, a := range alignments {
		checkError(enc.Encode(a.Ref, a.Aligned, w, syncMap))
		bar.Increment()
	}
	p.Wait()

	checkError(w.Flush())

	log.Printf("compressed %d sequence(s) in %s (%d dictionary nodes, width %d bits)",
		len(alignments), time.Since(sTime), enc.Dictionary().UsedNodes(), enc.Width())
}
