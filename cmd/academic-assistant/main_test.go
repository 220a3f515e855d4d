// ABOUTME: Tests for CLI flag parsing and the mapping of flags onto config overrides
// ABOUTME: Uses an isolated FlagSet per case so tests can run in parallel

package main

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/mauromedda/academic-assistant/internal/config"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		argv []string
		want cliArgs
	}{
		{
			name: "defaults",
			argv: nil,
			want: cliArgs{},
		},
		{
			name: "print with transcript and question",
			argv: []string{"--print", "--transcript", "t.pdf", "What", "next?"},
			want: cliArgs{print: true, transcript: "t.pdf", question: "What next?"},
		},
		{
			name: "service options",
			argv: []string{"--base-url", "http://svc:9000", "--timeout", "0", "--verbose", "--log-file", "/tmp/a.log"},
			want: cliArgs{baseURL: "http://svc:9000", timeout: "0", verbose: true, logFile: "/tmp/a.log"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseFlags("academic-assistant", tt.argv, io.Discard)
			if err != nil {
				t.Fatalf("parseFlags: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseFlags() = %+v; want %+v", got, tt.want)
			}
		})
	}
}

func TestParseFlags_Unknown(t *testing.T) {
	t.Parallel()

	if _, err := parseFlags("academic-assistant", []string{"--model", "x"}, io.Discard); err == nil {
		t.Error("unknown flag accepted")
	}
}

func TestBuildCLIOverrides(t *testing.T) {
	t.Parallel()

	s := buildCLIOverrides(cliArgs{baseURL: "http://svc", timeout: "30s", logFile: "a.log"})
	if s.BaseURL != "http://svc" || s.RequestTimeout != "30s" || s.LogFile != "a.log" {
		t.Errorf("overrides = %+v", s)
	}

	empty := buildCLIOverrides(cliArgs{print: true})
	if empty.BaseURL != "" || empty.RequestTimeout != "" || empty.LogFile != "" {
		t.Errorf("empty overrides = %+v; want zero", empty)
	}
}

func TestLogDestination(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvBaseURL, "")
	t.Setenv(config.EnvTimeout, "")
	explicit := filepath.Join(t.TempDir(), "run.log")

	tests := []struct {
		name string
		args cliArgs
		want string
	}{
		{name: "print mode stays on stderr", args: cliArgs{print: true}, want: ""},
		{name: "interactive mode uses default file", args: cliArgs{}, want: config.DefaultLogFile()},
		{name: "print mode with --log-file", args: cliArgs{print: true, logFile: explicit}, want: explicit},
		{name: "interactive mode with --log-file", args: cliArgs{logFile: explicit}, want: explicit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.LoadAll(t.TempDir(), buildCLIOverrides(tt.args))
			if err != nil {
				t.Fatalf("LoadAll: %v", err)
			}
			if got := logDestination(cfg, !tt.args.print); got != tt.want {
				t.Errorf("logDestination() = %q; want %q", got, tt.want)
			}
		})
	}
}
