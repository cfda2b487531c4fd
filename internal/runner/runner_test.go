package runner

import (
	"bytes"
	"io"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell-based executor tests require a POSIX shell")
	}
}

func TestSystemExecutor_Stream(t *testing.T) {
	t.Parallel()
	requireUnix(t)

	exec := &SystemExecutor{}

	t.Run("captures lines and exit code", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		result := exec.Stream(CommandSpec{
			Args: []string{"sh", "-c", "echo one; echo two >&2; exit 3"},
		}, &out)

		assert.Equal(t, 3, result.ExitCode)
		// stderr is combined into the same stream.
		assert.ElementsMatch(t, []string{"one", "two"}, result.Lines)
		assert.Contains(t, out.String(), "one")
		assert.Contains(t, out.String(), "two")
		assert.False(t, result.Retried)
	})

	t.Run("zero exit", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		result := exec.Stream(CommandSpec{Args: []string{"sh", "-c", "echo ok"}}, &out)
		assert.Equal(t, 0, result.ExitCode)
		assert.Equal(t, []string{"ok"}, result.Lines)
	})

	t.Run("spawn failure is exit 1 with error as sole line", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		result := exec.Stream(CommandSpec{Args: []string{"/no/such/binary-qaflow"}}, &out)
		assert.Equal(t, 1, result.ExitCode)
		require.Len(t, result.Lines, 1)
		assert.Contains(t, result.Lines[0], "no such file")
	})

	t.Run("oversized single line drains without stalling", func(t *testing.T) {
		t.Parallel()
		// A 2 MB line would stop a fixed-buffer scanner; the drain loop
		// must keep reading to EOF or Wait blocks on the full pipe.
		done := make(chan *ExecutionResult, 1)
		go func() {
			var out bytes.Buffer
			done <- exec.Stream(CommandSpec{
				Args: []string{"sh", "-c", `head -c 2097152 /dev/zero | tr '\0' 'a'; echo; echo trailing; exit 7`},
			}, &out)
		}()

		select {
		case result := <-done:
			assert.Equal(t, 7, result.ExitCode)
			require.Len(t, result.Lines, 2)
			assert.Contains(t, result.Lines[0], "[line truncated]")
			assert.LessOrEqual(t, len(result.Lines[0]), maxLineLen+len(" [line truncated]"))
			assert.Equal(t, "trailing", result.Lines[1])
		case <-time.After(30 * time.Second):
			t.Fatal("Stream did not return for oversized output")
		}
	})

	t.Run("output exceeding the pipe buffer is fully consumed", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		result := exec.Stream(CommandSpec{Args: []string{"sh", "-c", "seq 1 20000"}}, &out)
		assert.Equal(t, 0, result.ExitCode)
		require.Len(t, result.Lines, 20000)
		assert.Equal(t, "1", result.Lines[0])
		assert.Equal(t, "20000", result.Lines[19999])
	})

	t.Run("extra env reaches the child", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		result := exec.Stream(CommandSpec{
			Args: []string{"sh", "-c", "echo $QAFLOW_TEST_MARKER"},
			Env:  []string{"QAFLOW_TEST_MARKER=tagged"},
		}, &out)
		assert.Equal(t, 0, result.ExitCode)
		assert.Equal(t, []string{"tagged"}, result.Lines)
	})
}

func TestDrainLines(t *testing.T) {
	t.Parallel()

	t.Run("splits on newlines and keeps a trailing partial line", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		lines := drainLines(strings.NewReader("one\ntwo\npartial"), &out)
		assert.Equal(t, []string{"one", "two", "partial"}, lines)
		assert.Equal(t, "one\ntwo\npartial\n", out.String())
	})

	t.Run("line exactly at the cap is kept whole", func(t *testing.T) {
		t.Parallel()
		exact := strings.Repeat("a", maxLineLen)
		lines := drainLines(strings.NewReader(exact+"\n"), io.Discard)
		require.Len(t, lines, 1)
		assert.Equal(t, exact, lines[0])
	})

	t.Run("line past the cap is truncated with a marker", func(t *testing.T) {
		t.Parallel()
		long := strings.Repeat("b", maxLineLen+10)
		lines := drainLines(strings.NewReader(long+"\nafter\n"), io.Discard)
		require.Len(t, lines, 2)
		assert.Equal(t, maxLineLen+len(" [line truncated]"), len(lines[0]))
		assert.True(t, strings.HasSuffix(lines[0], " [line truncated]"))
		assert.Equal(t, "after", lines[1])
	})
}

func TestSystemExecutor_Run(t *testing.T) {
	t.Parallel()
	requireUnix(t)

	exec := &SystemExecutor{}

	t.Run("buffered output and exit code", func(t *testing.T) {
		t.Parallel()
		code, output, err := exec.Run(CommandSpec{Args: []string{"sh", "-c", "echo probe; exit 2"}})
		require.NoError(t, err)
		assert.Equal(t, 2, code)
		assert.Contains(t, output, "probe")
	})

	t.Run("spawn failure surfaces the error", func(t *testing.T) {
		t.Parallel()
		code, _, err := exec.Run(CommandSpec{Args: []string{"/no/such/binary-qaflow"}})
		assert.Equal(t, 1, code)
		assert.Error(t, err)
	})
}
