package git

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		out  string
		want []string
	}{
		"empty output": {
			out:  "",
			want: nil,
		},
		"modified and untracked": {
			out:  " M wingspanai-web/src/login.ts\n?? smartscreen/new.ts\n",
			want: []string{"wingspanai-web/src/login.ts", "smartscreen/new.ts"},
		},
		"rename yields new path": {
			out:  "R  old/name.ts -> wingspanai-web/new/name.ts\n",
			want: []string{"wingspanai-web/new/name.ts"},
		},
		"quoted path": {
			out:  ` M "wingspanai-web/spaced name.ts"` + "\n",
			want: []string{"wingspanai-web/spaced name.ts"},
		},
		"short garbage lines skipped": {
			out:  "M\n\n M a\n",
			want: []string{"a"},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseStatus(tt.out))
		})
	}
}

func TestFindProjectRoot(t *testing.T) {
	t.Parallel()

	t.Run("git dir in current directory", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0755))
		assert.Equal(t, dir, FindProjectRoot(dir))
	})

	t.Run("project marker in current directory", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte("{}"), 0644))
		assert.Equal(t, dir, FindProjectRoot(dir))
	})

	t.Run("walks up to git root", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0755))
		nested := filepath.Join(root, "wingspanai-web", "src")
		require.NoError(t, os.MkdirAll(nested, 0755))
		assert.Equal(t, root, FindProjectRoot(nested))
	})

	t.Run("falls back to starting directory", func(t *testing.T) {
		t.Parallel()
		dir := filepath.Join(t.TempDir(), "plain")
		require.NoError(t, os.MkdirAll(dir, 0755))
		assert.Equal(t, dir, FindProjectRoot(dir))
	})
}
