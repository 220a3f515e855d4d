// ABOUTME: Environment variable handling for settings
// ABOUTME: ACADEMIC_ASSISTANT_* overrides plus ${VAR} expansion in string fields

package config

import (
	"os"
	"regexp"
)

// Environment variables that override file settings.
const (
	EnvBaseURL = "ACADEMIC_ASSISTANT_BASE_URL"
	EnvTimeout = "ACADEMIC_ASSISTANT_TIMEOUT"
	// EnvBackground is read before the TUI starts: "light" or "dark" (default).
	EnvBackground = "ACADEMIC_ASSISTANT_BACKGROUND"
)

var envVarPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// ResolveEnvVars expands ${VAR} patterns in string fields of Settings.
func ResolveEnvVars(s *Settings) {
	s.BaseURL = expandEnv(s.BaseURL)
	s.UserID = expandEnv(s.UserID)
	s.ConversationID = expandEnv(s.ConversationID)
	s.RequestTimeout = expandEnv(s.RequestTimeout)
	s.LogFile = expandEnv(s.LogFile)
}

// expandEnv replaces ${VAR} with os.Getenv(VAR). Unset vars become "".
func expandEnv(s string) string {
	if s == "" {
		return s
	}
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

func envOverrides() *Settings {
	return &Settings{
		BaseURL:        os.Getenv(EnvBaseURL),
		RequestTimeout: os.Getenv(EnvTimeout),
	}
}
