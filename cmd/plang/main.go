package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"git.sr.ht/~sircmpwn/getopt"

	"github.com/c0d3-dump/plang/pkg/config"
)

const cliToolVersion = "plang 0.1.0"

// cli carries what the global options resolved for a subcommand.
type cli struct {
	cfg    *config.Config
	logger *log.Logger
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) > 0 {
		switch args[0] {
		case "--help":
			printUsage()
			return 0
		case "--version":
			fmt.Fprintln(os.Stdout, cliToolVersion)
			return 0
		}
	}

	opts, optind, err := getopt.Getopts(append([]string{"plang"}, args...), "c:hvV")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		printUsage()
		return 1
	}
	args = args[optind-1:]

	var (
		configPath string
		verbose    bool
	)
	for _, opt := range opts {
		switch opt.Option {
		case 'c':
			configPath = opt.Value
		case 'h':
			printUsage()
			return 0
		case 'v':
			verbose = true
		case 'V':
			fmt.Fprintln(os.Stdout, cliToolVersion)
			return 0
		}
	}

	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "help":
		printUsage()
		return 0
	case "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		reportError(err)
		return 1
	}
	c := &cli{cfg: cfg, logger: log.New(io.Discard, "plang: ", 0)}
	if verbose || cfg.Verbose {
		c.logger.SetOutput(os.Stderr)
	}
	if cfg.Path != "" {
		c.logger.Printf("config %s", cfg.Path)
	}

	switch args[0] {
	case "run":
		return c.runEntry(args[1:])
	case "check":
		return c.checkEntry(args[1:])
	case "repl":
		return c.replEntry(args[1:])
	case "new":
		return c.newEntry(args[1:])
	case "install":
		return c.installEntry(args[1:])
	case "uninstall":
		return c.uninstallEntry(args[1:])
	case "list":
		return c.listEntry(args[1:])
	case "search":
		return c.searchEntry(args[1:])
	default:
		return c.runEntry(args)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  plang [-v] [-c config] <file.pl>")
	fmt.Fprintln(os.Stderr, "  plang run <file.pl | app dir | installed app>")
	fmt.Fprintln(os.Stderr, "  plang check <file.pl>...")
	fmt.Fprintln(os.Stderr, "  plang repl")
	fmt.Fprintln(os.Stderr, "  plang new <name>")
	fmt.Fprintln(os.Stderr, "  plang install [-b branch] <git url | path | registry name>")
	fmt.Fprintln(os.Stderr, "  plang uninstall <name>")
	fmt.Fprintln(os.Stderr, "  plang list")
	fmt.Fprintln(os.Stderr, "  plang search [term]")
	fmt.Fprintln(os.Stderr, "  plang version")
}
