// Package fsutil reads changelog inputs and writes generated files safely.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
)

// MaxInputSize bounds how much of a single input is read.
const MaxInputSize = 16 << 20

// StdinPath is the path argument that selects standard input.
const StdinPath = "-"

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrTooLarge indicates the input exceeds MaxInputSize.
	ErrTooLarge = errors.New("input too large")

	// ErrExists indicates a file that must not be overwritten already exists.
	ErrExists = errors.New("file already exists")
)

// FileInfo describes an input that was read.
type FileInfo struct {
	// Path is the path as given, or StdinPath.
	Path string

	// Size is the content size in bytes.
	Size int64

	// Hash is the SHA-256 hash of the content.
	Hash [32]byte
}

// ReadFile reads a changelog file and returns its content along with metadata.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	if stat.Size() > MaxInputSize {
		return nil, nil, fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, path, stat.Size())
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}

	return content, newFileInfo(path, content), nil
}

// ReadInput reads all of r, which stands for the input named path.
// It is used for standard input.
func ReadInput(ctx context.Context, path string, r io.Reader) ([]byte, *FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read input: %w", err)
	}

	content, err := io.ReadAll(io.LimitReader(r, MaxInputSize+1))
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(content) > MaxInputSize {
		return nil, nil, fmt.Errorf("%w: %s", ErrTooLarge, path)
	}

	return content, newFileInfo(path, content), nil
}

// Exists reports whether path exists. Errors other than non-existence are returned.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, classify(path, err)
}

func newFileInfo(path string, content []byte) *FileInfo {
	return &FileInfo{
		Path: path,
		Size: int64(len(content)),
		Hash: sha256.Sum256(content),
	}
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}
