// Package workspace tests the two-tier detection heuristic and its
// fixed priority order.
// Related: internal/workspace/detect.go
// Tags: workspace, detection, git-status, priority
package workspace

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		changed    []string
		changesErr error
		workDir    string
		want       Workspace
	}{
		"web change selects web": {
			changed: []string{"wingspanai-web/x.ts"},
			want:    Web,
		},
		"priority order prefers web over smartscreen": {
			changed: []string{"smartscreen/y.ts", "wingspanai-web/z.ts"},
			want:    Web,
		},
		"smartscreen change": {
			changed: []string{"smartscreen/app/main.ts"},
			want:    SmartScreen,
		},
		"mobile change": {
			changed: []string{"wingspanai-mobile/test/login.spec.ts"},
			want:    Mobile,
		},
		"no changes falls back to cwd": {
			changed: []string{},
			workDir: "/home/dev/repo/smartscreen/tests",
			want:    SmartScreen,
		},
		"no signal at all": {
			changed: []string{},
			workDir: "/home/dev/elsewhere",
			want:    Unknown,
		},
		"git failure degrades to cwd heuristic": {
			changesErr: errors.New("fatal: not a git repository"),
			workDir:    "/home/dev/repo/wingspanai-mobile",
			want:       Mobile,
		},
		"git failure with unrelated cwd": {
			changesErr: errors.New("git not found"),
			workDir:    "/tmp",
			want:       Unknown,
		},
		"unrelated changes ignored": {
			changed: []string{"docs/readme.md", "scripts/build.sh"},
			workDir: "/tmp",
			want:    Unknown,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			d := &Detector{
				Changes: func() ([]string, error) { return tt.changed, tt.changesErr },
				WorkDir: tt.workDir,
			}
			assert.Equal(t, tt.want, d.Detect())
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Web, Parse("wingspanai-web"))
	assert.Equal(t, SmartScreen, Parse("smartscreen"))
	assert.Equal(t, Mobile, Parse("wingspanai-mobile"))
	assert.Equal(t, Unknown, Parse("-"))
	assert.Equal(t, Unknown, Parse("None"))
	assert.Equal(t, Unknown, Parse(""))
	assert.Equal(t, Unknown, Parse("something-else"))
}

func TestWorkspaceString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "wingspanai-web", Web.String())
	assert.Equal(t, "auto-detect", Unknown.String())
	assert.True(t, Mobile.Known())
	assert.False(t, Unknown.Known())
}
