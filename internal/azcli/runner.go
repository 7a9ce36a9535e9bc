package azcli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// Runner executes external commands.
type Runner interface {
	// Capture runs a command and returns its trimmed stdout.
	Capture(ctx context.Context, name string, args ...string) (string, error)
	// Stream runs a command with its output forwarded to the operator.
	Stream(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands as child processes.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *zap.Logger
}

// NewExecRunner creates an ExecRunner writing streamed output to stdout and stderr.
func NewExecRunner(stdout, stderr io.Writer, logger *zap.Logger) *ExecRunner {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecRunner{Stdout: stdout, Stderr: stderr, Logger: logger}
}

func (r *ExecRunner) Capture(ctx context.Context, name string, args ...string) (string, error) {
	r.Logger.Debug("exec", zap.String("cmd", commandLine(name, args)))

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", commandError(name, args, err, stderr.String())
	}
	return strings.TrimSpace(stdout.String()), nil
}

func (r *ExecRunner) Stream(ctx context.Context, name string, args ...string) error {
	r.Logger.Debug("exec", zap.String("cmd", commandLine(name, args)))

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if err := cmd.Run(); err != nil {
		return commandError(name, args, err, "")
	}
	return nil
}

func commandError(name string, args []string, err error, stderr string) error {
	stderr = strings.TrimSpace(stderr)
	if stderr == "" {
		return fmt.Errorf("%s: %w", commandLine(name, args), err)
	}
	return fmt.Errorf("%s: %w: %s", commandLine(name, args), err, stderr)
}

// commandLine renders the command up to its first flag, so flag values such
// as connection strings never reach logs or error messages.
func commandLine(name string, args []string) string {
	parts := []string{name}
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") {
			break
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}
