// Package golden compares rendered output against files under testdata/.
// Run tests with -update to rewrite the expected files.
package golden

import (
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

var update = flag.Bool("update", false, "update golden files")

// Assert compares got with testdata/<name>.golden next to the calling test file,
// rewriting the file first when -update is set. CRLF in the stored file is ignored.
func Assert(t *testing.T, name, got string) {
	t.Helper()
	_, filename, _, ok := runtime.Caller(1)
	if !ok {
		t.Fatalf("runtime.Caller failed")
	}
	dir := filepath.Join(filepath.Dir(filename), "testdata")
	path := goldenPath(t, dir, name)

	if *update {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("mkdir testdata: %v", err)
		}
		if err := os.WriteFile(path, []byte(got), 0o600); err != nil {
			t.Fatalf("write golden %s: %v", path, err)
		}
	}

	data, err := os.ReadFile(path) //nolint:gosec // testdata path controlled by test
	if err != nil {
		t.Fatalf("read golden %s: %v (run with -update to create it)", path, err)
	}
	want := strings.ReplaceAll(string(data), "\r\n", "\n")
	if want != got {
		t.Errorf("output differs from %s\n--- want\n%s\n--- got\n%s", path, want, got)
	}
}

func goldenPath(t *testing.T, dir, name string) string {
	t.Helper()
	if name == "" || strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		t.Fatalf("invalid golden name %q", name)
	}
	return filepath.Join(dir, name+".golden")
}
