package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// cliFlags holds all flags for the contentpipe command.
type cliFlags struct {
	config      string
	src         string
	out         string
	baseURL     string
	siteTitle   string
	drafts      bool
	fullPage    bool
	cacheBudget int64
	verbose     bool
	version     bool
}

// parseFlags parses command-line flags and returns positional args.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("contentpipe", flag.ContinueOnError)
	f := &cliFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.src, "src", "s", "", "source directory of markdown documents")
	fs.StringVarP(&f.out, "out", "o", "", "output directory (default: source directory)")
	fs.StringVar(&f.baseURL, "base-url", "", "prefix for resolving relative links")
	fs.StringVar(&f.siteTitle, "site-title", "", "site title for full-page output")
	fs.BoolVar(&f.drafts, "drafts", false, "include documents flagged as drafts")
	fs.BoolVar(&f.fullPage, "full-page", false, "wrap fragments in a complete HTML5 page")
	fs.Int64Var(&f.cacheBudget, "cache-budget", 0, "document cache byte budget (0 = default)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "report progress to stderr")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
