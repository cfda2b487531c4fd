package history

import (
	"fmt"
	"os"
	"time"
)

// Writer provides history logging with automatic pruning. Errors are
// non-fatal: they go to stderr and never fail the run being recorded.
type Writer struct {
	// StateDir is the directory containing the history file.
	StateDir string
	// MaxEntries is the maximum number of entries to retain (0 = unlimited).
	MaxEntries int
}

// NewWriter creates a history writer.
func NewWriter(stateDir string, maxEntries int) *Writer {
	return &Writer{StateDir: stateDir, MaxEntries: maxEntries}
}

// WriteStart records a run in 'running' status and returns its ID for the
// later UpdateComplete call.
func (w *Writer) WriteStart(sessionID, workspace, scope string) (string, error) {
	id, err := GenerateID()
	if err != nil {
		return "", fmt.Errorf("generating history ID: %w", err)
	}
	entry := Entry{
		ID:        id,
		SessionID: sessionID,
		Workspace: workspace,
		Scope:     scope,
		Status:    StatusRunning,
		StartedAt: time.Now(),
	}
	if err := w.append(entry); err != nil {
		return "", fmt.Errorf("writing start entry: %w", err)
	}
	return id, nil
}

// UpdateComplete finalizes a running entry with its exit code and duration.
// Unknown IDs are ignored; the entry may have been pruned meanwhile.
func (w *Writer) UpdateComplete(id string, exitCode int, duration time.Duration) {
	if err := w.updateInternal(id, exitCode, duration); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to update history: %v\n", err)
	}
}

func (w *Writer) updateInternal(id string, exitCode int, duration time.Duration) error {
	hf, err := Load(w.StateDir)
	if err != nil {
		return err
	}
	now := time.Now()
	for i := range hf.Entries {
		if hf.Entries[i].ID != id {
			continue
		}
		hf.Entries[i].ExitCode = exitCode
		hf.Entries[i].CompletedAt = &now
		hf.Entries[i].Duration = duration.Round(time.Millisecond).String()
		if exitCode == 0 {
			hf.Entries[i].Status = StatusCompleted
		} else {
			hf.Entries[i].Status = StatusFailed
		}
		break
	}
	return Save(w.StateDir, hf)
}

func (w *Writer) append(entry Entry) error {
	hf, err := Load(w.StateDir)
	if err != nil {
		return err
	}
	hf.Entries = append(hf.Entries, entry)
	if w.MaxEntries > 0 && len(hf.Entries) > w.MaxEntries {
		hf.Entries = hf.Entries[len(hf.Entries)-w.MaxEntries:]
	}
	return Save(w.StateDir, hf)
}
