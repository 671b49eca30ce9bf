package app

import (
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutionErrorMessage(t *testing.T) {
	t.Run("prefers stderr", func(t *testing.T) {
		err := &ExecutionError{Command: "nvm install 99.0.0", Stderr: "version not found\n", ExitCode: 1}
		assert.Equal(t, "version not found", err.Error())
	})

	t.Run("falls back to wrapped error", func(t *testing.T) {
		inner := errors.New("exit status 3")
		err := &ExecutionError{Command: "nvm ls", ExitCode: 3, Err: inner}
		assert.Equal(t, "exit status 3", err.Error())
		assert.ErrorIs(t, err, inner)
	})

	t.Run("falls back to exit code", func(t *testing.T) {
		err := &ExecutionError{Command: "nvm ls", ExitCode: 2}
		assert.Equal(t, "nvm ls exited with status 2", err.Error())
	})
}

func TestExecRunner(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	ctx := context.Background()

	out, err := ExecRunner{}.Run(ctx, "sh", "-c", "printf hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out))

	_, err = ExecRunner{}.Run(ctx, "sh", "-c", "echo boom >&2; exit 4")
	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, 4, execErr.ExitCode)
	assert.Equal(t, "boom", execErr.Error())
}
