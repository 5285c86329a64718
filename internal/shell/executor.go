// Package shell runs commands through the host shell.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/dyeshell/dye/internal/logging"
)

var logger = logging.Component("shell")

// DefaultShell is used when no shell is configured.
const DefaultShell = "/bin/sh"

// waitDelay bounds how long output pipes are drained after a killed
// command, since grandchildren may keep them open.
const waitDelay = time.Second

// Executor runs shell commands.
type Executor interface {
	// Exec runs a command and returns its stdout and stderr output.
	Exec(ctx context.Context, cmd string) (stdout, stderr []byte, err error)
}

// LocalExecutor runs commands with `<shell> -c` on the local machine.
type LocalExecutor struct {
	// Shell is the interpreter path (defaults to /bin/sh when unset).
	Shell string

	// Timeout bounds each command (no limit when zero).
	Timeout time.Duration
}

// NewLocalExecutor creates an executor for the given shell.
func NewLocalExecutor(shell string, timeout time.Duration) *LocalExecutor {
	return &LocalExecutor{Shell: shell, Timeout: timeout}
}

// Exec runs cmd and waits for it to finish. A command that exits nonzero
// returns an *exec.ExitError; use ExitCode to inspect it.
func (e *LocalExecutor) Exec(ctx context.Context, cmd string) ([]byte, []byte, error) {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	sh := e.Shell
	if sh == "" {
		sh = DefaultShell
	}

	logger.Debug().Str("shell", sh).Str("command", cmd).Msg("running command")

	var stdout, stderr bytes.Buffer
	command := exec.CommandContext(ctx, sh, "-c", cmd)
	command.Stdout = &stdout
	command.Stderr = &stderr
	command.WaitDelay = waitDelay
	err := command.Run()
	if err != nil {
		logger.Debug().Err(err).Str("command", cmd).Msg("command failed")
	}
	return stdout.Bytes(), stderr.Bytes(), err
}

// ExitCode extracts the exit status from an error returned by Exec. The
// boolean is false when the command never ran to completion, for example
// when the shell could not be started.
func ExitCode(err error) (int, bool) {
	if err == nil {
		return 0, true
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			return code, false
		}
		return code, true
	}
	return -1, false
}
