package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yaklabco/changelint/pkg/fsutil"
)

// Target is one input to lint.
type Target struct {
	// Path is the path shown to the user: relative to the working directory
	// when the input lies inside it, or fsutil.StdinPath.
	Path string

	// Abs is the absolute path on disk, empty for standard input.
	Abs string
}

// IsStdin reports whether the target reads standard input.
func (t Target) IsStdin() bool {
	return t.Path == fsutil.StdinPath
}

// Discover resolves opts.Paths into lint targets sorted by path.
// Explicit files are always linted; directories are walked for files whose
// name matches opts.FileNames and that no exclude glob matches.
func Discover(ctx context.Context, opts Options) ([]Target, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	seen := make(map[string]struct{})
	var targets []Target
	add := func(target Target) {
		if _, ok := seen[target.Path]; ok {
			return
		}
		seen[target.Path] = struct{}{}
		targets = append(targets, target)
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		if inputPath == fsutil.StdinPath {
			add(Target{Path: fsutil.StdinPath})
			continue
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", fsutil.ErrNotFound, inputPath)
			}
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			add(newTarget(absPath, workDir))
			continue
		}

		discovered, err := walkDirectory(ctx, absPath, workDir, opts)
		if err != nil {
			return nil, err
		}
		for _, path := range discovered {
			add(newTarget(path, workDir))
		}
	}

	sort.Slice(targets, func(i, j int) bool {
		return targets[i].Path < targets[j].Path
	})

	return targets, nil
}

func newTarget(absPath, workDir string) Target {
	display := absPath
	if rel, err := filepath.Rel(workDir, absPath); err == nil && !strings.HasPrefix(rel, "..") {
		display = rel
	}
	return Target{Path: filepath.ToSlash(display), Abs: absPath}
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walkDirectory recursively walks a directory and returns matching changelogs.
func walkDirectory(ctx context.Context, root, workDir string, opts Options) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		relPath, relErr := filepath.Rel(workDir, path)
		if relErr != nil {
			relPath = path
		}

		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if path != root && matchesAny(relPath, opts.ExcludeGlobs) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // Inaccessible symlink targets are skipped.
			}
			if info.IsDir() {
				if !opts.FollowSymlinks {
					return nil
				}
				// Walk the target; WalkDir uses Lstat on its root.
				subFiles, err := walkDirectory(ctx, realPath, workDir, opts)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
		}

		if matchesName(entry.Name(), opts.effectiveFileNames()) && !matchesAny(relPath, opts.ExcludeGlobs) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// matchesName reports whether a file name matches any changelog name pattern.
func matchesName(name string, patterns []string) bool {
	name = strings.ToLower(name)
	for _, pattern := range patterns {
		matched, err := filepath.Match(strings.ToLower(pattern), name)
		if err == nil && matched {
			return true
		}
	}
	return false
}

// matchesAny checks if the path matches any glob pattern.
func matchesAny(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchGlob(relPath, pattern) {
			return true
		}
	}
	return false
}

// matchGlob matches a path against a glob pattern.
// It supports patterns like "*.md", "docs/**" and "**/vendor".
func matchGlob(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	if strings.Contains(pattern, "**") {
		return matchDoubleStarPattern(path, pattern)
	}

	if matched, err := filepath.Match(pattern, path); err == nil && matched {
		return true
	}
	matched, err := filepath.Match(pattern, filepath.Base(path))
	return err == nil && matched
}

// matchDoubleStarPattern handles ** glob patterns.
func matchDoubleStarPattern(path, pattern string) bool {
	parts := strings.SplitN(pattern, "**", 2)
	prefix := strings.TrimSuffix(parts[0], "/")
	suffix := strings.TrimPrefix(parts[1], "/")

	if prefix != "" && path != prefix && !strings.HasPrefix(path, prefix+"/") {
		return false
	}
	if suffix == "" {
		return true
	}

	// The suffix may match any trailing run of path components.
	components := strings.Split(path, "/")
	for idx := range components {
		tail := strings.Join(components[idx:], "/")
		if matched, err := filepath.Match(suffix, tail); err == nil && matched {
			return true
		}
	}
	return false
}
