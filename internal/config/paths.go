// ABOUTME: Standard filesystem paths for academic-assistant configuration and logs
// ABOUTME: Resolves ~/.academic-assistant/ for global and .academic-assistant/ for project-local paths

package config

import (
	"os"
	"path/filepath"
)

const (
	globalDirName  = ".academic-assistant"
	projectDirName = ".academic-assistant"
)

// configNames lists accepted config file names in lookup order.
var configNames = []string{"config.yaml", "config.yml", "config.json"}

// GlobalDir returns the user-global config directory (~/.academic-assistant/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// ProjectDir returns the project-local config directory.
func ProjectDir(projectRoot string) string {
	return filepath.Join(projectRoot, projectDirName)
}

// GlobalConfigFiles returns candidate global config files in lookup order.
func GlobalConfigFiles() []string {
	return candidates(GlobalDir())
}

// ProjectConfigFiles returns candidate project-local config files in lookup order.
func ProjectConfigFiles(projectRoot string) []string {
	return candidates(ProjectDir(projectRoot))
}

// DefaultLogFile returns the log file used by interactive mode.
func DefaultLogFile() string {
	return filepath.Join(GlobalDir(), "assistant.log")
}

func candidates(dir string) []string {
	out := make([]string, len(configNames))
	for i, name := range configNames {
		out[i] = filepath.Join(dir, name)
	}
	return out
}
