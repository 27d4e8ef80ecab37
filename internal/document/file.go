package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joshsymonds/tokubetsu/pkg/pathutil"
)

// FileSource is a document on the local filesystem.
type FileSource struct {
	path string
}

// NewFileSource creates a source for the file at path.
func NewFileSource(path string) (*FileSource, error) {
	validPath, err := pathutil.ValidatePath(path)
	if err != nil {
		return nil, fmt.Errorf("invalid document path: %w", err)
	}
	return &FileSource{path: validPath}, nil
}

// Location returns the absolute file path.
func (f *FileSource) Location() string {
	return f.path
}

// Read returns the file contents.
func (f *FileSource) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &SourceError{Op: "read", Location: f.path, Err: err}
	}

	data, err := os.ReadFile(f.path) // #nosec G304 - path is validated
	if err != nil {
		return "", &SourceError{Op: "read", Location: f.path, Err: err}
	}
	return string(data), nil
}

// Write replaces the file contents. The new content is written to a
// temporary file in the same directory and renamed over the original, so
// readers never observe a partial document. Existing permissions are kept.
func (f *FileSource) Write(ctx context.Context, content string) error {
	if err := ctx.Err(); err != nil {
		return &SourceError{Op: "write", Location: f.path, Err: err}
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(f.path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return &SourceError{Op: "write", Location: f.path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*")
	if err != nil {
		return &SourceError{Op: "write", Location: f.path, Err: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // already renamed on success

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return &SourceError{Op: "write", Location: f.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &SourceError{Op: "write", Location: f.path, Err: err}
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return &SourceError{Op: "write", Location: f.path, Err: err}
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return &SourceError{Op: "write", Location: f.path, Err: err}
	}
	return nil
}
