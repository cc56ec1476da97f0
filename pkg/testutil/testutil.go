package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// FileSpec describes a file to be written by MustWriteTestFiles.
type FileSpec struct {
	// Path is relative to the directory the files are written in.
	Path string
	// Content is the file content.
	Content string
}

// MustWriteTestFiles writes the given files under a fresh temporary directory
// and returns that directory along with the absolute filenames.
func MustWriteTestFiles(t *testing.T, files []FileSpec) (dir string, filenames []string) {
	t.Helper()
	dir = t.TempDir()
	for _, file := range files {
		abs := filepath.Join(dir, file.Path)
		if err := os.MkdirAll(filepath.Dir(abs), os.ModePerm); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(abs, []byte(file.Content), 0o644); err != nil {
			t.Fatal(err)
		}
		filenames = append(filenames, abs)
	}
	return dir, filenames
}

// EqualError reports whether errors a and b are considered equal.
// They're equal if both are nil, or both are not nil and a.Error() == b.Error().
func EqualError(a, b error) bool {
	return a == nil && b == nil || a != nil && b != nil && a.Error() == b.Error()
}

// ExpectError asserts that the errors are equal.  Return value is true
// if the "want" argument is non-nil.
func ExpectError(t *testing.T, want, got error) bool {
	t.Helper()
	if !EqualError(want, got) {
		t.Fatal("errors: want:", want, "got:", got)
	}
	return want != nil
}
