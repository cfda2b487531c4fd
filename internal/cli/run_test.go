package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCmd_ArgumentErrorsGoToStdout(t *testing.T) {
	tests := map[string][]string{
		"no arguments":       {},
		"too many arguments": {"/repo", "wingspanai-web", "smoke", "extra"},
	}

	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			runCmd.SetOut(&out)
			defer runCmd.SetOut(nil)

			err := runCmd.RunE(runCmd, args)
			require.Error(t, err)
			assert.Equal(t, ExitFailure, ExitCode(err))
			assert.Contains(t, out.String(), "Usage: qaflow run <project_root> [workspace] [scope]")
		})
	}
}

func TestParseScopeArg(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		arg  string
		want string
	}{
		"dash placeholder":  {arg: "-", want: ""},
		"none placeholder":  {arg: "None", want: ""},
		"named scope":       {arg: "smoke", want: "smoke"},
		"custom scope":      {arg: "checkout-flow", want: "checkout-flow"},
		"empty stays empty": {arg: "", want: ""},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, parseScopeArg(tc.arg))
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitFailure, ExitCode(NewExitError(ExitFailure)))
	// Untyped errors map to the generic failure code.
	assert.Equal(t, ExitFailure, ExitCode(errors.New("boom")))
}
