// Package runner provides multi-file linting orchestration.
package runner

import (
	"io"

	"github.com/yaklabco/changelint/pkg/config"
	"github.com/yaklabco/changelint/pkg/lint"
)

// Options controls multi-file linting behavior.
type Options struct {
	// Paths are the user-specified files or directories to process.
	// "-" reads standard input. If empty, defaults to the current directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// FileNames are the changelog file names matched while walking directories.
	// Entries may be glob patterns and match case-insensitively.
	// Defaults to config.DefaultFileName.
	FileNames []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of files linted concurrently.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Selection chooses the rules to run.
	Selection lint.Selection

	// Stdin is read for the "-" path. Defaults to os.Stdin.
	Stdin io.Reader
}

// OptionsFromConfig builds Options for paths from a resolved configuration.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return Options{
		Paths:        paths,
		FileNames:    cfg.Files,
		ExcludeGlobs: cfg.Exclude,
		Jobs:         cfg.Jobs,
		Selection:    lint.SelectionFromConfig(cfg),
	}
}

// effectiveFileNames returns the names to match, defaulting if empty.
func (o Options) effectiveFileNames() []string {
	if len(o.FileNames) == 0 {
		return []string{config.DefaultFileName}
	}
	return o.FileNames
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
