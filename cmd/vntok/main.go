// Command vntok segments text given as arguments or on stdin, one line per
// input, tokens separated by tabs.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/vntok/vntok"
)

const defaultDictPath = "/usr/share/vntok/dicts"

type tokenizerOptions struct {
	forTransforming bool
	noSticky        bool
	url             bool
	host            bool
	verbose         bool
	dictPath        string
}

func main() {
	os.Exit(doMain(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// doMain is separated out for the purpose of unit testing.
func doMain(args []string, stdIn io.Reader, stdOut, stdErr io.Writer) int {
	flags := flag.NewFlagSet("vntok", flag.ContinueOnError)
	flags.SetOutput(stdErr)
	flags.Usage = func() { printUsage(stdErr, flags) }

	var opts tokenizerOptions
	flags.BoolVar(&opts.forTransforming, "t", false, "segment for transforming")
	flags.BoolVar(&opts.forTransforming, "for-transform", false, "segment for transforming")
	flags.BoolVar(&opts.noSticky, "n", false, "do not split sticky text")
	flags.BoolVar(&opts.noSticky, "no-sticky", false, "do not split sticky text")
	flags.BoolVar(&opts.url, "u", false, "segment URL")
	flags.BoolVar(&opts.url, "url", false, "segment URL")
	flags.BoolVar(&opts.host, "host", false, "segment HOST")
	flags.BoolVar(&opts.verbose, "v", false, "print token details")
	flags.BoolVar(&opts.verbose, "verbose", false, "print token details")
	flags.StringVar(&opts.dictPath, "d", defaultDictPath, "dictionaries path")
	flags.StringVar(&opts.dictPath, "dict-path", defaultDictPath, "dictionaries path")

	if err := flags.Parse(args); err != nil {
		return 1
	}

	mode := vntok.TokenizeNormal
	if opts.url {
		mode = vntok.TokenizeURL
	} else if opts.host {
		mode = vntok.TokenizeHost
	}

	tok, err := vntok.New(vntok.Config{
		DictPath:        opts.dictPath,
		LoadNontoneData: !opts.noSticky,
	})
	if err != nil {
		fmt.Fprintln(stdErr, err)
		return 1
	}

	process := func(text string) {
		res, err := tok.Segment(text, opts.forTransforming, mode)
		if err != nil {
			fmt.Fprintln(stdErr, err)
			return
		}
		for _, it := range res {
			if opts.verbose {
				fmt.Fprintf(stdOut, "%s\t", it.String())
			} else {
				fmt.Fprintf(stdOut, "%s\t", it.Text)
			}
		}
		fmt.Fprintln(stdOut)
	}

	if flags.NArg() > 0 {
		for _, arg := range flags.Args() {
			process(arg)
		}
		return 0
	}
	sc := bufio.NewScanner(stdIn)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		process(sc.Text())
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintln(stdErr, err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer, flags *flag.FlagSet) {
	fmt.Fprintf(w, "Usage:\n    vntok [OPTION]... [TEXT]...\n\nOptions:\n")
	flags.PrintDefaults()
}
