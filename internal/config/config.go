// ABOUTME: Settings loading with global + project config deep merge
// ABOUTME: Files are decoded with yaml.v3 so both config.yaml and config.json are accepted

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultBaseURL is the address of the assistant service.
	DefaultBaseURL = "http://localhost:8000"
	// DefaultUserID and DefaultConversationID are the fixed identifiers sent
	// with every chat request.
	DefaultUserID         = "1"
	DefaultConversationID = "1"
	// DefaultRequestTimeout bounds a single chat or upload request.
	DefaultRequestTimeout = 2 * time.Minute
)

// Settings holds the merged configuration.
type Settings struct {
	BaseURL        string `yaml:"base_url,omitempty"`
	UserID         string `yaml:"user_id,omitempty"`
	ConversationID string `yaml:"conversation_id,omitempty"`
	// RequestTimeout is a Go duration string; "0" disables the timeout.
	RequestTimeout string `yaml:"request_timeout,omitempty"`
	LogFile        string `yaml:"log_file,omitempty"`
}

// Timeout parses RequestTimeout. An empty value yields DefaultRequestTimeout.
func (s *Settings) Timeout() (time.Duration, error) {
	if s.RequestTimeout == "" {
		return DefaultRequestTimeout, nil
	}
	d, err := time.ParseDuration(s.RequestTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid request_timeout %q: %w", s.RequestTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid request_timeout %q: must not be negative", s.RequestTimeout)
	}
	return d, nil
}

// Load reads and merges global and project-local settings.
// Project settings override global settings.
func Load(projectRoot string) (*Settings, error) {
	global, err := loadFirst(GlobalConfigFiles())
	if err != nil {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	project, err := loadFirst(ProjectConfigFiles(projectRoot))
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return merge(global, project), nil
}

// LoadAll loads file settings, applies environment overrides, expands ${VAR}
// references, layers CLI overrides on top and fills defaults.
func LoadAll(projectRoot string, overrides *Settings) (*Settings, error) {
	s, err := Load(projectRoot)
	if err != nil {
		return nil, err
	}
	s = merge(s, envOverrides())
	ResolveEnvVars(s)
	s = merge(s, overrides)
	applyDefaults(s)

	if _, err := s.Timeout(); err != nil {
		return nil, err
	}
	return s, nil
}

// loadFirst returns the settings of the first existing file in paths, or
// zero Settings when none exists.
func loadFirst(paths []string) (*Settings, error) {
	for _, p := range paths {
		s, err := loadFile(p)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		return s, err
	}
	return &Settings{}, nil
}

// loadFile reads Settings from a YAML or JSON file. Returns zero Settings if
// the file does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if len(strings.TrimSpace(string(data))) == 0 {
		return &s, nil
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge deep-merges override settings onto base settings.
// Non-zero override values win.
func merge(base, override *Settings) *Settings {
	if base == nil {
		base = &Settings{}
	}
	if override == nil {
		return base
	}

	result := *base

	if override.BaseURL != "" {
		result.BaseURL = override.BaseURL
	}
	if override.UserID != "" {
		result.UserID = override.UserID
	}
	if override.ConversationID != "" {
		result.ConversationID = override.ConversationID
	}
	if override.RequestTimeout != "" {
		result.RequestTimeout = override.RequestTimeout
	}
	if override.LogFile != "" {
		result.LogFile = override.LogFile
	}

	return &result
}

func applyDefaults(s *Settings) {
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	s.BaseURL = strings.TrimRight(s.BaseURL, "/")
	if s.UserID == "" {
		s.UserID = DefaultUserID
	}
	if s.ConversationID == "" {
		s.ConversationID = DefaultConversationID
	}
}
