package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigPaths records where each configuration layer was found.
// Empty fields mean no file exists for that layer.
type ConfigPaths struct {
	User     string // under UserConfigDir
	Project  string // nearest .changelint.* at or above the working directory
	Explicit string // --config
}

// Candidate names, most preferred first. .json files go through the YAML decoder.
//
//nolint:gochecknoglobals // read-only tables
var (
	projectConfigNames = []string{".changelint.yml", ".changelint.yaml", ".changelint.json"}
	userConfigNames    = []string{"config.yml", "config.yaml"}
	repoRootMarkers    = []string{".git", ".hg", ".svn"}
)

// DiscoverPaths locates the user and project configuration for workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	var user string
	if dir := UserConfigDir(); dir != "" {
		user = firstFile(dir, userConfigNames)
	}
	return &ConfigPaths{User: user, Project: project}, nil
}

// UserConfigDir is $XDG_CONFIG_HOME/changelint, or ~/.config/changelint
// when XDG_CONFIG_HOME is unset. It is empty if neither can be determined.
func UserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "changelint")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "changelint")
}

// FindProjectConfig walks from startDir towards the filesystem root and
// returns the first project config file it meets. The walk gives up after
// checking a repository root or the home directory.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("find project config: %w", err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find project config: %w", err)
		}
		if found := firstFile(dir, projectConfigNames); found != "" {
			return found, nil
		}
		if dir == home || firstEntry(dir, repoRootMarkers) {
			return "", nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// firstEntry reports whether any of names exists in dir, file or directory.
func firstEntry(dir string, names []string) bool {
	for _, name := range names {
		if _, err := os.Lstat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}
