//go:build stave

package main

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binaryName = "changelint"
	binaryPath = "bin/" + binaryName
	mainPkg    = "./cmd/" + binaryName
)

// releasePlatforms are the GOOS/GOARCH pairs CI.Cross compiles for.
var releasePlatforms = []string{
	"linux/amd64", "linux/arm64",
	"darwin/amd64", "darwin/arm64",
	"windows/amd64", "freebsd/amd64",
}

var Default = Build

var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"l":   Lint.Default,
	"c":   Check,
	"i":   Install,
	"fmt": Lint.Fmt,
	"dog": Dogfood,
}

type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// Build compiles bin/changelint, stamping version, commit and build date.
// The binary is only rebuilt when a Go source or module file is newer.
func Build() error {
	stale, err := target.Dir(binaryPath, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !stale {
		fmt.Printf("%s: up to date\n", binaryPath)
		return nil
	}
	return sh.RunV("go", "build", "-ldflags", versionFlags(), "-o", binaryPath, mainPkg)
}

// Check formats, lints and tests the tree.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Dogfood lints this repository's CHANGELOG.md with the local build.
func Dogfood() error {
	st.Deps(Build)
	if _, err := os.Stat("CHANGELOG.md"); errors.Is(err, fs.ErrNotExist) {
		fmt.Println("dogfood: no CHANGELOG.md")
		return nil
	}
	return sh.RunV(binaryPath, "check", "--format", "full", "--summary", "CHANGELOG.md")
}

func Clean() error {
	for _, path := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Install runs go install with the same version stamping as Build.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", versionFlags(), mainPkg)
}

// Deps downloads and tidies modules.
func Deps() error {
	if err := sh.RunV("go", "mod", "download"); err != nil {
		return err
	}
	return sh.RunV("go", "mod", "tidy")
}

// Coverage renders coverage.out to coverage.html.
func Coverage() error {
	st.Deps(Test.Default)
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

func (Test) Default() error { return gotestsum("pkgname-and-test-fails", true) }

func (Test) Verbose() error { return gotestsum("standard-verbose", true) }

// Short runs with -short and without the race detector or coverage.
func (Test) Short() error { return gotestsum("pkgname", false, "-short") }

func (Lint) Default() error { return golangciLint("--fix") }

// CI lints without rewriting files.
func (Lint) CI() error { return golangciLint() }

func (Lint) Fmt() error { return sh.RunV("gofmt", "-w", ".") }

// FmtCheck fails when gofmt would change any file.
func (Lint) FmtCheck() error {
	unformatted, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if unformatted != "" {
		return fmt.Errorf("needs gofmt (run 'stave fmt'):\n%s", unformatted)
	}
	return nil
}

func (Lint) Vet() error { return sh.RunV("go", "vet", "./...") }

// Gate is the full pipeline run on every pull request.
func (CI) Gate() error {
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.Vet,
		Lint.CI,
		Build,
		Test.Default,
		Dogfood,
		CI.ModTidy,
		CI.Cross,
	)
	fmt.Println("gate: ok")
	return nil
}

// ModTidy fails when go mod tidy rewrites go.mod or go.sum.
func (CI) ModTidy() error {
	before, err := moduleFiles()
	if err != nil {
		return err
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	after, err := moduleFiles()
	if err != nil {
		return err
	}
	if !bytes.Equal(before, after) {
		return errors.New("go mod tidy changed go.mod or go.sum; commit the result")
	}
	return nil
}

// Cross compiles (without cgo) for every release platform.
func (CI) Cross() error {
	for _, platform := range releasePlatforms {
		goos, goarch, _ := strings.Cut(platform, "/")
		fmt.Printf("cross: %s\n", platform)
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, mainPkg); err != nil {
			return fmt.Errorf("cross %s: %w", platform, err)
		}
	}
	return nil
}

// Default runs the parser and linter benchmarks.
func (Bench) Default() error {
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "-benchmem", "./pkg/...")
}

func gotestsum(format string, race bool, extra ...string) error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	args := []string{"tool", "gotestsum", "-f", format, "--", "-p", procs, "-parallel", procs}
	if race {
		args = append(args, "-race", "-coverprofile=coverage.out", "-covermode=atomic")
	}
	args = append(args, extra...)
	return sh.RunV("go", append(args, "./...")...)
}

func golangciLint(flags ...string) error {
	args := append([]string{"run"}, flags...)
	return sh.RunV("golangci-lint", append(args, "./...")...)
}

func moduleFiles() ([]byte, error) {
	var buf bytes.Buffer
	for _, name := range []string{"go.mod", "go.sum"} {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

func git(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

func versionFlags() string {
	return strings.Join([]string{
		"-X main.version=" + cmp.Or(git("describe", "--tags", "--always", "--dirty"), "dev"),
		"-X main.commit=" + cmp.Or(git("rev-parse", "--short", "HEAD"), "none"),
		"-X main.date=" + time.Now().UTC().Format(time.RFC3339),
	}, " ")
}
