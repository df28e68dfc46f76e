package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/operutka/alzw/align"
	"github.com/operutka/alzw/automaton"
	"github.com/operutka/alzw/container"
	"github.com/operutka/alzw/decoder"
	"github.com/operutka/alzw/search"
)

// runSearch implements the "search" subcommand: one of four pattern-search
// algorithms, run against a container's decoded sequences for each query
// read from stdin, one per line. Matches are reported to stderr so stdout
// stays free for a future scriptable format.
func runSearch(args []string) {
	fs := newFlagSet("search")
	refPath := fs.String("r", "", "reference FASTA (required)")
	algo := fs.String("alg", "lm", "search algorithm: lm, dfa, bmh, s")
	parseOrExit(fs, args)

	if *refPath == "" || fs.NArg() != 1 {
		usageError(fs, "alzw search: -r and exactly one container path are required")
	}

	switch *algo {
	case "lm", "dfa", "bmh", "s":
	default:
		usageError(fs, "alzw search: unknown -alg %q (want lm, dfa, bmh, or s)", *algo)
	}

	_, refSeqs, err := align.LoadFasta(*refPath)
	checkError(err)
	if len(refSeqs) == 0 {
		usageError(fs, "alzw search: %s has no sequences", *refPath)
	}
	rseq := refSeqs[0]

	r, closer, err := container.Open(fs.Arg(0))
	checkError(err)
	defer closer.Close()

	names, err := container.ReadHeader(r)
	checkError(err)

	dec := decoder.New(rseq)
	for range names {
		checkError(dec.Decode(r, io.Discard))
	}
	dec.Freeze()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		query := scanner.Text()
		if query == "" {
			continue
		}
		runQuery(dec, names, *algo, query)
	}
	checkError(scanner.Err())
}

func runQuery(dec *decoder.Decoder, names []string, algo, query string) {
	handler := func(seq, offset int) {
		name := "?"
		if seq >= 1 && seq <= len(names) {
			name = names[seq-1]
		}
		fmt.Fprintf(os.Stderr, "%s\t%s\t%d\n", query, name, offset)
	}

	var task search.Task
	switch algo {
	case "lm":
		task = search.NewLMTask(dec, query)
	case "dfa":
		task = search.NewSSTask(search.NewDFA(dec, query, automaton.Build(query)))
	case "bmh":
		task = search.NewSSTask(search.NewBMH(dec, query))
	case "s":
		task = search.NewSSTask(search.NewSimple(dec, query))
	}

	checkError(search.Run(dec.Sequences, task, handler))
}
