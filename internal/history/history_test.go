// Package history tests the run log: identifiers, atomic persistence,
// corrupt-file recovery, and pruning.
// Related: internal/history/history.go, internal/history/writer.go
// Tags: history, persistence, yaml, pruning
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionID(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 25, 14, 30, 5, 0, time.UTC)
	assert.Equal(t, "20250825_143005", SessionID(now))
}

func TestGenerateID(t *testing.T) {
	t.Parallel()

	idPattern := regexp.MustCompile(`^[a-z]+_[a-z]+_\d{8}_\d{6}$`)

	id, err := GenerateID()
	require.NoError(t, err)
	assert.Regexp(t, idPattern, id)

	// Word selection should vary across calls within the same second.
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id, err := GenerateID()
		require.NoError(t, err)
		seen[id] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("missing file yields empty history", func(t *testing.T) {
		t.Parallel()
		hf, err := Load(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, hf.Entries)
	})

	t.Run("round-trips saved entries", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		want := &File{Entries: []Entry{{
			ID:        "swift_falcon_20250825_120000",
			SessionID: "20250825_120000",
			Workspace: "wingspanai-web",
			Scope:     "smoke",
			Status:    StatusCompleted,
			StartedAt: time.Now().Truncate(time.Second),
		}}}
		require.NoError(t, Save(dir, want))

		got, err := Load(dir)
		require.NoError(t, err)
		require.Len(t, got.Entries, 1)
		assert.Equal(t, "swift_falcon_20250825_120000", got.Entries[0].ID)
		assert.Equal(t, "smoke", got.Entries[0].Scope)
	})

	t.Run("corrupt file is moved aside and replaced", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, HistoryFileName)
		require.NoError(t, os.WriteFile(path, []byte("entries: [not: valid: yaml"), 0644))

		hf, err := Load(dir)
		require.NoError(t, err)
		assert.Empty(t, hf.Entries)

		_, statErr := os.Stat(path + BackupSuffix)
		assert.NoError(t, statErr)
	})
}

func TestWriter(t *testing.T) {
	t.Parallel()

	t.Run("start then complete", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		w := NewWriter(dir, 200)

		id, err := w.WriteStart("20250825_120000", "smartscreen", "regression")
		require.NoError(t, err)
		require.NotEmpty(t, id)

		hf, err := Load(dir)
		require.NoError(t, err)
		require.Len(t, hf.Entries, 1)
		assert.Equal(t, StatusRunning, hf.Entries[0].Status)
		assert.Nil(t, hf.Entries[0].CompletedAt)

		w.UpdateComplete(id, 0, 42*time.Second)
		hf, err = Load(dir)
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, hf.Entries[0].Status)
		assert.Equal(t, 0, hf.Entries[0].ExitCode)
		assert.Equal(t, "42s", hf.Entries[0].Duration)
		require.NotNil(t, hf.Entries[0].CompletedAt)
	})

	t.Run("nonzero exit marks failed", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		w := NewWriter(dir, 200)

		id, err := w.WriteStart("20250825_120000", "", "")
		require.NoError(t, err)
		w.UpdateComplete(id, 1, time.Second)

		hf, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, StatusFailed, hf.Entries[0].Status)
	})

	t.Run("prunes oldest entries past the cap", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		w := NewWriter(dir, 3)

		for i := 0; i < 5; i++ {
			_, err := w.WriteStart(fmt.Sprintf("session_%d", i), "", "")
			require.NoError(t, err)
		}

		hf, err := Load(dir)
		require.NoError(t, err)
		require.Len(t, hf.Entries, 3)
		// Newest survive.
		assert.Equal(t, "session_2", hf.Entries[0].SessionID)
		assert.Equal(t, "session_4", hf.Entries[2].SessionID)
	})

	t.Run("unknown id on complete is ignored", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		w := NewWriter(dir, 200)
		w.UpdateComplete("never_existed_20250825_120000", 0, time.Second)

		hf, err := Load(dir)
		require.NoError(t, err)
		assert.Empty(t, hf.Entries)
	})
}
