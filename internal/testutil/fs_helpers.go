package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteEnvFile writes a .env file with the given key=value lines into dir.
func WriteEnvFile(t *testing.T, dir string, lines ...string) {
	t.Helper()
	content := ""
	for _, line := range lines {
		content += line + "\n"
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0644); err != nil {
		t.Fatalf("writing .env: %v", err)
	}
}

// MkdirAll creates a directory tree under root, failing the test on error.
func MkdirAll(t *testing.T, root string, parts ...string) string {
	t.Helper()
	path := filepath.Join(append([]string{root}, parts...)...)
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	return path
}

// WriteFile writes content to a path under root, creating parents.
func WriteFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating parent of %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}
