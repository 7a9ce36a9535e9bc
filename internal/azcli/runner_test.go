package azcli

import (
	"bytes"
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecRunnerCapture(t *testing.T) {
	requireShell(t)
	runner := NewExecRunner(nil, nil, zaptest.NewLogger(t))

	out, err := runner.Capture(context.Background(), "sh", "-c", "printf '  myreg.azurecr.io\\n'")
	require.NoError(t, err)
	assert.Equal(t, "myreg.azurecr.io", out)
}

func TestExecRunnerCaptureFailure(t *testing.T) {
	requireShell(t)
	runner := NewExecRunner(nil, nil, nil)

	_, err := runner.Capture(context.Background(), "sh", "-c", "echo 'ERROR: registry not found' >&2; exit 3")
	require.Error(t, err)

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.ExitCode())
	assert.Contains(t, err.Error(), "ERROR: registry not found")
}

func TestExecRunnerStream(t *testing.T) {
	requireShell(t)
	var stdout, stderr bytes.Buffer
	runner := NewExecRunner(&stdout, &stderr, nil)

	err := runner.Stream(context.Background(), "sh", "-c", "echo step 1; echo warn >&2")
	require.NoError(t, err)
	assert.Equal(t, "step 1\n", stdout.String())
	assert.Equal(t, "warn\n", stderr.String())
}

func TestExecRunnerStreamFailure(t *testing.T) {
	requireShell(t)
	var stdout, stderr bytes.Buffer
	runner := NewExecRunner(&stdout, &stderr, nil)

	err := runner.Stream(context.Background(), "sh", "-c", "exit 2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exit status 2")
}
