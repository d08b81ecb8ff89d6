// Command vntok-compile reads the plain-text dictionaries under
// INPUT_DICTS_PATH (vn_lang_tool/ and tokenizer/ subdirectories) and writes
// the compiled artifacts into OUTPUT_DICTS_PATH.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/vntok/vntok/internal/dict"
	"github.com/vntok/vntok/internal/vnlang"
)

func main() {
	os.Exit(doMain(os.Args[1:], os.Stderr))
}

// doMain is separated out for the purpose of unit testing.
func doMain(args []string, stdErr io.Writer) int {
	flags := flag.NewFlagSet("vntok-compile", flag.ContinueOnError)
	flags.SetOutput(stdErr)
	flags.Usage = func() { printUsage(stdErr) }

	noSticky := flags.Bool("no-sticky", false, "skip the syllable and pair dictionaries")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() < 2 {
		printUsage(stdErr)
		return 1
	}
	inputPath, outputPath := flags.Arg(0), flags.Arg(1)

	if err := vnlang.Init(inputPath + "/vn_lang_tool"); err != nil {
		fmt.Fprintln(stdErr, err)
		return 1
	}
	if err := dict.CompileAll(inputPath+"/tokenizer", outputPath, !*noSticky); err != nil {
		fmt.Fprintln(stdErr, err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage:\n    vntok-compile [OPTION]... INPUT_DICTS_PATH OUTPUT_DICTS_PATH\n\n")
}
