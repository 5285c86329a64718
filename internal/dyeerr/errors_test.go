package dyeerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestConfigErrorMessage(t *testing.T) {
	err := Configf("ls", "agent", "unknown agent '%s'", "bogus")
	if got := err.Error(); got != "scope 'ls': unknown agent 'bogus'" {
		t.Fatalf("unexpected message: %q", got)
	}
	if err.Key != "agent" {
		t.Fatalf("expected key to be recorded, got %q", err.Key)
	}

	plain := &ConfigError{Msg: "no theme loaded"}
	if plain.Error() != "no theme loaded" {
		t.Fatalf("unexpected message: %q", plain.Error())
	}
}

func TestErrorKindsThroughWrapping(t *testing.T) {
	cfg := fmt.Errorf("apply: %w", Configf("x", "enabled", "bad"))
	syn := fmt.Errorf("load: %w", &SyntaxError{Source: "p.toml", Msg: "bad"})
	cmd := fmt.Errorf("vars: %w", &CommandError{Name: "host", Command: "false", ExitCode: 1})

	if !IsConfig(cfg) || IsConfig(syn) || IsConfig(cmd) {
		t.Fatalf("IsConfig mismatch")
	}
	if !IsSyntax(syn) || IsSyntax(cfg) {
		t.Fatalf("IsSyntax mismatch")
	}
	if !IsCommand(cmd) || IsCommand(cfg) {
		t.Fatalf("IsCommand mismatch")
	}
}

func TestSyntaxErrorUnwrap(t *testing.T) {
	inner := errors.New("line 3: expected '='")
	err := &SyntaxError{Source: "pattern.toml", Err: inner}
	if !errors.Is(err, inner) {
		t.Fatalf("expected wrapped error to match")
	}
	if err.Error() != "pattern.toml: line 3: expected '='" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestCommandErrorMessage(t *testing.T) {
	err := &CommandError{Name: "capture variable 'host'", Command: "exit 3", ExitCode: 3}
	want := `capture variable 'host': command "exit 3" exited with status 3`
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}
