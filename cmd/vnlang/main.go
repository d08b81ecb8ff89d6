// Command vnlang transforms Vietnamese text: case folding, canonical
// unicode form, and tone/hat stripping. Input comes from arguments or
// stdin; invalid UTF-8 transforms to the empty string.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/vntok/vntok/internal/vnlang"
)

const defaultDictPath = "/usr/share/vntok/dicts"

type transformOptions struct {
	keepCase        bool
	toUpper         bool
	keepUnicodeForm bool
	keepTones       bool
	dictPath        string
}

func main() {
	os.Exit(doMain(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// doMain is separated out for the purpose of unit testing.
func doMain(args []string, stdIn io.Reader, stdOut, stdErr io.Writer) int {
	flags := flag.NewFlagSet("vnlang", flag.ContinueOnError)
	flags.SetOutput(stdErr)
	flags.Usage = func() { printUsage(stdErr, flags) }

	var opts transformOptions
	flags.BoolVar(&opts.keepCase, "c", false, "keep original letter case (default to lowercase)")
	flags.BoolVar(&opts.keepCase, "keep-case", false, "keep original letter case (default to lowercase)")
	flags.BoolVar(&opts.toUpper, "U", false, "convert to upper-case")
	flags.BoolVar(&opts.toUpper, "upper-case", false, "convert to upper-case")
	flags.BoolVar(&opts.keepUnicodeForm, "u", false, "keep original unicode form (default convert to canonical form)")
	flags.BoolVar(&opts.keepUnicodeForm, "keep-unicode", false, "keep original unicode form (default convert to canonical form)")
	flags.BoolVar(&opts.keepTones, "keep-tones", false, "keep tones (default remove all tones/hat)")
	flags.StringVar(&opts.dictPath, "d", defaultDictPath, "dictionaries path")
	flags.StringVar(&opts.dictPath, "dict-path", defaultDictPath, "dictionaries path")

	if err := flags.Parse(args); err != nil {
		return 1
	}

	if err := vnlang.Init(opts.dictPath); err != nil {
		fmt.Fprintln(stdErr, err)
		return 1
	}

	if flags.NArg() > 0 {
		for _, arg := range flags.Args() {
			fmt.Fprintln(stdOut, transform(arg, opts))
		}
		return 0
	}
	w := bufio.NewWriter(stdOut)
	defer w.Flush()
	sc := bufio.NewScanner(stdIn)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		fmt.Fprintln(w, transform(sc.Text(), opts))
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintln(stdErr, err)
		return 1
	}
	return 0
}

func transform(s string, opts transformOptions) string {
	if !vnlang.IsValid(s) {
		return ""
	}
	codepoints := vnlang.ToUTF(s)
	if !opts.keepCase {
		codepoints = vnlang.LowerAll(codepoints)
	}
	if !opts.keepUnicodeForm {
		codepoints = vnlang.NormalizeNFD(codepoints, false)
	}
	if !opts.keepTones {
		codepoints = vnlang.RootAll(codepoints)
	}
	if opts.toUpper {
		codepoints = vnlang.UpperAll(codepoints)
	}
	return vnlang.String(codepoints)
}

func printUsage(w io.Writer, flags *flag.FlagSet) {
	fmt.Fprintf(w, "Usage:\n    vnlang [OPTION]... [TEXT]...\n\nOptions:\n")
	flags.PrintDefaults()
}
