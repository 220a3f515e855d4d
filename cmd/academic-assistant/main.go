// ABOUTME: CLI entry point for the academic assistant client
// ABOUTME: Parses flags, loads config, opens the log and dispatches to interactive or print mode

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	// termfix must be imported before any package that imports bubbletea.
	_ "github.com/mauromedda/academic-assistant/internal/termfix"

	"github.com/mauromedda/academic-assistant/internal/config"
	aalog "github.com/mauromedda/academic-assistant/internal/log"
	"github.com/mauromedda/academic-assistant/internal/mode/interactive"
	"github.com/mauromedda/academic-assistant/internal/mode/print"
	"github.com/mauromedda/academic-assistant/internal/session"
	"github.com/mauromedda/academic-assistant/internal/transport"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args, err := parseFlags(os.Args[0], os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if args.version {
		fmt.Printf("academic-assistant %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run loads configuration and dispatches to the selected mode.
func run(args cliArgs) error {
	if args.verbose {
		aalog.SetLevel(aalog.LevelDebug)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	cfg, err := config.LoadAll(cwd, buildCLIOverrides(args))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	timeout, err := cfg.Timeout()
	if err != nil {
		return err
	}

	interactiveMode := !args.print

	if logFile := logDestination(cfg, interactiveMode); logFile != "" {
		closeLog, err := aalog.OpenFile(logFile)
		if err != nil {
			return err
		}
		defer closeLog()
	}

	client := transport.NewClient(cfg.BaseURL, transport.WithTimeout(timeout))
	defer client.Close()

	identity := session.Identity{UserID: cfg.UserID, ConversationID: cfg.ConversationID}
	aalog.Info("starting %s mode against %s (timeout %s)", modeName(interactiveMode), client.BaseURL(), timeout)

	if !interactiveMode {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return print.Run(ctx, print.Config{
			Identity:   identity,
			Transcript: args.transcript,
		}, client, args.question)
	}

	if args.transcript != "" {
		aalog.Warn("--transcript is only used with --print; use ctrl+f in the app")
	}
	return interactive.Run(interactive.AppDeps{
		Service:  client,
		Identity: identity,
		BaseURL:  client.BaseURL(),
		Version:  version,
		StartDir: cwd,
	})
}

// buildCLIOverrides maps CLI flags to a Settings struct for LoadAll.
func buildCLIOverrides(args cliArgs) *config.Settings {
	s := &config.Settings{}
	if args.baseURL != "" {
		s.BaseURL = args.baseURL
	}
	if args.timeout != "" {
		s.RequestTimeout = args.timeout
	}
	if args.logFile != "" {
		s.LogFile = args.logFile
	}
	return s
}

// logDestination returns the file logs are written to, or "" for stderr.
// The TUI owns the terminal, so interactive logs always go to a file.
func logDestination(cfg *config.Settings, tui bool) string {
	if cfg.LogFile != "" {
		return cfg.LogFile
	}
	if tui {
		return config.DefaultLogFile()
	}
	return ""
}

func modeName(tui bool) string {
	if tui {
		return "interactive"
	}
	return "print"
}
