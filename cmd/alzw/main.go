package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

var version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "compress":
		runCompress(args)
	case "decompress":
		runDecompress(args)
	case "search":
		runSearch(args)
	case "sam2fasta":
		runSam2Fasta(args)
	case "sam2seq":
		runSam2Seq(args)
	case "-h", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "alzw: unknown command %q\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `alzw - adaptive LZW reference-based sequence compressor

Version: v%s
Usage: %s <command> [options]

Commands:
  compress     encode one or more aligned FASTA pairs into a container
  decompress   decode a container back to FASTA
  search       run a pattern search against a container
  sam2fasta    rebuild a reference-padded alignment from a SAM file
  sam2seq      like sam2fasta, but write only the gap-stripped target sequence

Run "%s <command> -h" for command-specific options.
`, version, filepath.Base(os.Args[0]), filepath.Base(os.Args[0]))
}

// checkError reports a runtime failure (I/O, malformed container, decode
// mismatch) and exits 2. Bad arguments are reported via usageError instead.
func checkError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

// usageError reports a bad invocation (missing/invalid flags or arguments)
// and exits 1.
func usageError(fs *flag.FlagSet, format string, a ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	fs.Usage()
	os.Exit(1)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: alzw %s [options] <args>\n\nOptions:\n", name)
		fs.PrintDefaults()
	}
	return fs
}

// parseOrExit runs fs.Parse and turns any flag error into a usage exit(1)
// rather than flag.ExitOnError's built-in exit(2), which the container
// format's "1 usage error / 2 runtime error" split does not use.
func parseOrExit(fs *flag.FlagSet, args []string) {
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
}
