// Package main is the entry point for ptedit, a line-oriented driver for
// the piece-table engine.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dshills/piecetable/internal/config"
	"github.com/dshills/piecetable/internal/engine"
	"github.com/dshills/piecetable/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// options holds parsed command-line flags.
type options struct {
	ConfigPath string
	LogLevel   string
	File       string
	Boundary   string
	ReadOnly   bool
	Quiet      bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}
	if opts.Boundary != "" {
		cfg.Engine.Boundary = opts.Boundary
	}
	if opts.ReadOnly {
		cfg.Engine.ReadOnly = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.LogLevel()
	logCfg.Prefix = "ptedit"
	logger := logging.New(logCfg)

	e, err := newEngine(opts.File, cfg.EngineOptions(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	logger.Info("engine %s ready: %d bytes", e.ID(), e.Len())

	r := newREPL(e, logger, os.Stdout)
	r.prompt = !opts.Quiet
	if err := r.Run(os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// newEngine creates an engine over the contents of path, or an empty one.
func newEngine(path string, opts []engine.Option) (*engine.Engine, error) {
	if path == "" {
		return engine.New(opts...), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return engine.NewFromReader(f, opts...)
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.File, "file", "", "File providing the original text")
	flag.StringVar(&opts.File, "f", "", "File providing the original text (shorthand)")
	flag.StringVar(&opts.Boundary, "boundary", "", "Offset boundary mode (bytes, runes, graphemes)")
	flag.BoolVar(&opts.ReadOnly, "readonly", false, "Reject all edits")
	flag.BoolVar(&opts.ReadOnly, "R", false, "Reject all edits (shorthand)")
	flag.BoolVar(&opts.Quiet, "quiet", false, "Do not print a prompt (for scripts)")
	flag.BoolVar(&opts.Quiet, "q", false, "Do not print a prompt (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "ptedit - piece table editing shell\n\n")
		fmt.Fprintf(os.Stderr, "Usage: ptedit [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  ptedit                       Start with an empty document\n")
		fmt.Fprintf(os.Stderr, "  ptedit -f notes.txt          Edit over the contents of a file\n")
		fmt.Fprintf(os.Stderr, "  ptedit -q < script.txt       Run commands from a script\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("ptedit %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	return opts
}
