// Package history records orchestrated test runs so operators can review
// what ran, when, and with what outcome. Entries live in a YAML file under
// the state directory; logging failures never fail a run.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// HistoryFileName is the name of the history file.
	HistoryFileName = "history.yaml"
	// BackupSuffix is appended when a corrupt file is set aside.
	BackupSuffix = ".backup"
)

// Status constants for history entries.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Entry is a single recorded test run.
type Entry struct {
	// ID is a memorable unique identifier for the run.
	ID string `yaml:"id"`
	// SessionID is the timestamp-derived tag correlating report dirs.
	SessionID string `yaml:"session_id"`
	// Workspace and Scope describe what was tested ("" = auto/default).
	Workspace string `yaml:"workspace,omitempty"`
	Scope     string `yaml:"scope,omitempty"`
	Status    string `yaml:"status"`
	ExitCode  int    `yaml:"exit_code"`
	// StartedAt is when the run began; CompletedAt is nil while running.
	StartedAt   time.Time  `yaml:"started_at"`
	CompletedAt *time.Time `yaml:"completed_at,omitempty"`
	Duration    string     `yaml:"duration,omitempty"`
}

// File is the on-disk container for all entries.
type File struct {
	Entries []Entry `yaml:"entries"`
}

// Load reads the history file from stateDir. A missing file yields an empty
// history; a corrupt file is moved aside to a backup and replaced.
func Load(stateDir string) (*File, error) {
	path := filepath.Join(stateDir, HistoryFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("reading history: %w", err)
	}

	var hf File
	if err := yaml.Unmarshal(data, &hf); err != nil {
		// Preserve the corrupt file for inspection and start fresh.
		_ = os.Rename(path, path+BackupSuffix)
		return &File{}, nil
	}
	return &hf, nil
}

// Save writes the history file atomically via temp file + rename.
func Save(stateDir string, hf *File) error {
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	data, err := yaml.Marshal(hf)
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}

	path := filepath.Join(stateDir, HistoryFileName)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("writing temp history: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp history: %w", err)
	}
	return nil
}
