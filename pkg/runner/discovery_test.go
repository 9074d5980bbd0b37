package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/changelint/pkg/fsutil"
	"github.com/yaklabco/changelint/pkg/runner"
)

func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func targetPaths(targets []runner.Target) []string {
	paths := make([]string, len(targets))
	for i, target := range targets {
		paths[i] = target.Path
	}
	return paths
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tree := map[string]string{
		"CHANGELOG.md":                  "",
		"README.md":                     "",
		"docs/changelog.md":             "",
		"packages/api/CHANGELOG.md":     "",
		"packages/web/HISTORY.md":       "",
		"vendor/lib/CHANGELOG.md":       "",
		".git/CHANGELOG.md":             "",
		"node_modules/x/CHANGELOG.md":   "",
		"packages/api/CHANGELOG.md.bak": "",
	}

	tests := []struct {
		name  string
		paths []string
		names []string
		skip  []string
		want  []string
	}{
		{
			name: "walk defaults",
			want: []string{
				"CHANGELOG.md",
				"docs/changelog.md",
				"node_modules/x/CHANGELOG.md",
				"packages/api/CHANGELOG.md",
				"vendor/lib/CHANGELOG.md",
			},
		},
		{
			name: "exclude globs",
			skip: []string{"vendor/**", "**/node_modules", "docs/*"},
			want: []string{"CHANGELOG.md", "packages/api/CHANGELOG.md"},
		},
		{
			name:  "custom names",
			paths: []string{"packages"},
			names: []string{"HISTORY.md", "CHANGE*.md"},
			want:  []string{"packages/api/CHANGELOG.md", "packages/web/HISTORY.md"},
		},
		{
			name:  "explicit file is always linted",
			paths: []string{"README.md"},
			skip:  []string{"*.md"},
			want:  []string{"README.md"},
		},
		{
			name:  "duplicates collapse",
			paths: []string{"CHANGELOG.md", "./CHANGELOG.md", "docs", "docs/changelog.md"},
			want:  []string{"CHANGELOG.md", "docs/changelog.md"},
		},
		{
			name:  "stdin",
			paths: []string{"-", "CHANGELOG.md", "-"},
			want:  []string{"-", "CHANGELOG.md"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeTree(t, dir, tree)

			targets, err := runner.Discover(context.Background(), runner.Options{
				Paths:        testCase.paths,
				WorkingDir:   dir,
				FileNames:    testCase.names,
				ExcludeGlobs: testCase.skip,
			})
			require.NoError(t, err)
			assert.Equal(t, testCase.want, targetPaths(targets))

			for _, target := range targets {
				if target.IsStdin() {
					assert.Empty(t, target.Abs)
					continue
				}
				assert.True(t, filepath.IsAbs(target.Abs), target.Abs)
			}
		})
	}
}

func TestDiscoverMissingPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"nope.md"},
		WorkingDir: t.TempDir(),
	})
	require.ErrorIs(t, err, fsutil.ErrNotFound)
}

func TestDiscoverOutsideWorkingDir(t *testing.T) {
	t.Parallel()

	outside := t.TempDir()
	writeTree(t, outside, map[string]string{"CHANGELOG.md": ""})
	path := filepath.Join(outside, "CHANGELOG.md")

	targets, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{path},
		WorkingDir: t.TempDir(),
	})
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, filepath.ToSlash(path), targets[0].Path)
}

func TestDiscoverCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: t.TempDir()})
	require.ErrorIs(t, err, context.Canceled)
}
