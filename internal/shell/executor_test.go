package shell

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLocalExecutorCapturesOutput(t *testing.T) {
	exec := NewLocalExecutor("", 0)

	stdout, stderr, err := exec.Exec(context.Background(), "echo out; echo err >&2")
	if err != nil {
		t.Fatalf("Exec failed: %v", err)
	}
	if string(stdout) != "out\n" {
		t.Fatalf("unexpected stdout: %q", stdout)
	}
	if string(stderr) != "err\n" {
		t.Fatalf("unexpected stderr: %q", stderr)
	}
}

func TestLocalExecutorExitCode(t *testing.T) {
	exec := NewLocalExecutor(DefaultShell, 0)

	tests := []struct {
		cmd  string
		code int
	}{
		{"true", 0},
		{"false", 1},
		{"exit 7", 7},
	}
	for _, tt := range tests {
		_, _, err := exec.Exec(context.Background(), tt.cmd)
		code, ok := ExitCode(err)
		if !ok {
			t.Fatalf("%q: expected an exit status, got %v", tt.cmd, err)
		}
		if code != tt.code {
			t.Fatalf("%q: expected exit %d, got %d", tt.cmd, tt.code, code)
		}
	}
}

func TestLocalExecutorMissingShell(t *testing.T) {
	exec := NewLocalExecutor("/nonexistent/shell", 0)

	_, _, err := exec.Exec(context.Background(), "true")
	if err == nil {
		t.Fatalf("expected error for missing shell")
	}
	if _, ok := ExitCode(err); ok {
		t.Fatalf("expected no exit status for a shell that never started")
	}
}

func TestLocalExecutorTimeout(t *testing.T) {
	exec := NewLocalExecutor(DefaultShell, 50*time.Millisecond)

	start := time.Now()
	_, _, err := exec.Exec(context.Background(), "sleep 5")
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	if time.Since(start) > 3*time.Second {
		t.Fatalf("timeout was not enforced")
	}
}

func TestExitCodeForeignError(t *testing.T) {
	if _, ok := ExitCode(errors.New("boom")); ok {
		t.Fatalf("expected foreign error to have no exit status")
	}
	if code, ok := ExitCode(nil); !ok || code != 0 {
		t.Fatalf("expected nil error to be exit 0")
	}
}
