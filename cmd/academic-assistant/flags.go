// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports --base-url, --timeout, --print, --transcript, --verbose, --log-file, --version

package main

import (
	"flag"
	"io"
	"strings"
)

type cliArgs struct {
	baseURL    string
	timeout    string
	print      bool
	transcript string
	verbose    bool
	logFile    string
	version    bool
	question   string
}

func parseFlags(name string, argv []string, stderr io.Writer) (cliArgs, error) {
	var args cliArgs

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&args.baseURL, "base-url", "", "Assistant service address (default http://localhost:8000)")
	fs.StringVar(&args.timeout, "timeout", "", "Per-request timeout, e.g. 90s; 0 disables (default 2m)")
	fs.BoolVar(&args.print, "print", false, "Ask one question non-interactively and print the answer")
	fs.StringVar(&args.transcript, "transcript", "", "Transcript PDF to upload before asking (print mode)")
	fs.BoolVar(&args.verbose, "verbose", false, "Enable debug logging")
	fs.StringVar(&args.logFile, "log-file", "", "Write logs to this file")
	fs.BoolVar(&args.version, "version", false, "Show version and exit")

	if err := fs.Parse(argv); err != nil {
		return args, err
	}
	args.question = strings.TrimSpace(strings.Join(fs.Args(), " "))
	return args, nil
}
