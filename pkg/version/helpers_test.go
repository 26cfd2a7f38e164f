package version_test

import (
	"os"
	"path/filepath"
	"testing"
)

// touch creates empty files under dir.
func touch(t *testing.T, dir string, names ...string) {
	t.Helper()

	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatalf("setup WriteFile(%q): %v", path, err)
		}
	}
}

// mkdirs creates directories under dir.
func mkdirs(t *testing.T, dir string, names ...string) {
	t.Helper()

	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(path, 0o755); err != nil {
			t.Fatalf("setup MkdirAll(%q): %v", path, err)
		}
	}
}

// baseNames returns filepath.Base of each path.
func baseNames(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, filepath.Base(p))
	}

	return out
}
