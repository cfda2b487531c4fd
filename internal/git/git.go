// Package git provides the minimal git plumbing qaflow needs: project root
// discovery and change-state queries. It wraps the git CLI rather than linking
// a git implementation; status output is only ever read, never mutated.
package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// projectMarkers are files that identify a project root when no .git
// directory is present (detached checkouts, tarball exports).
var projectMarkers = []string{"package.json", "pyproject.toml", "setup.py", "Cargo.toml", "go.mod"}

// IsRepository checks if dir is within a git repository.
func IsRepository(dir string) bool {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = dir
	return cmd.Run() == nil
}

// FindProjectRoot locates the project root starting from dir. The current
// directory wins if it holds .git or a project marker; otherwise the tree is
// walked upward looking for .git. Falls back to dir itself.
func FindProjectRoot(dir string) string {
	if hasGitDir(dir) {
		return dir
	}
	for _, marker := range projectMarkers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return dir
		}
	}
	for parent := filepath.Dir(dir); parent != filepath.Dir(parent); parent = filepath.Dir(parent) {
		if hasGitDir(parent) {
			return parent
		}
	}
	return dir
}

func hasGitDir(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && info.IsDir()
}

// ChangedFiles returns repository-relative paths with uncommitted changes,
// parsed from `git status --porcelain`. Errors from git (not a repository,
// git missing) surface to the caller, who treats them as "no signal".
func ChangedFiles(dir string) ([]string, error) {
	cmd := exec.Command("git", "status", "--porcelain")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return nil, err
	}
	return ParseStatus(string(output)), nil
}

// ParseStatus extracts file paths from porcelain status output. Rename
// entries ("R  old -> new") yield the new path.
func ParseStatus(out string) []string {
	var paths []string
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 {
			continue
		}
		path := strings.TrimSpace(line[3:])
		if idx := strings.Index(path, " -> "); idx >= 0 {
			path = path[idx+4:]
		}
		path = strings.Trim(path, `"`)
		if path != "" {
			paths = append(paths, path)
		}
	}
	return paths
}
