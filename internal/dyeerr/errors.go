// Package dyeerr defines the error kinds surfaced to users of dye.
package dyeerr

import (
	"errors"
	"fmt"
)

// ConfigError reports a structural problem in a pattern or theme: a missing
// or mistyped key, an unknown scope, or an unknown agent.
type ConfigError struct {
	Scope string
	Key   string
	Msg   string
}

func (e *ConfigError) Error() string {
	if e.Scope != "" {
		return fmt.Sprintf("scope '%s': %s", e.Scope, e.Msg)
	}
	return e.Msg
}

// Configf builds a ConfigError for scope.
func Configf(scope, key, format string, args ...any) *ConfigError {
	return &ConfigError{Scope: scope, Key: key, Msg: fmt.Sprintf(format, args...)}
}

// SyntaxError reports malformed style text or a malformed document.
type SyntaxError struct {
	Source string
	Msg    string
	Err    error
}

func (e *SyntaxError) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Source != "" {
		return fmt.Sprintf("%s: %s", e.Source, msg)
	}
	return msg
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// CommandError reports a shell command that had to succeed but did not.
type CommandError struct {
	Name     string
	Command  string
	ExitCode int
	Err      error
}

func (e *CommandError) Error() string {
	if e.ExitCode > 0 {
		return fmt.Sprintf("%s: command %q exited with status %d", e.Name, e.Command, e.ExitCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: command %q failed: %v", e.Name, e.Command, e.Err)
	}
	return fmt.Sprintf("%s: command %q failed", e.Name, e.Command)
}

func (e *CommandError) Unwrap() error { return e.Err }

// IsConfig reports whether err is or wraps a ConfigError.
func IsConfig(err error) bool {
	var target *ConfigError
	return errors.As(err, &target)
}

// IsSyntax reports whether err is or wraps a SyntaxError.
func IsSyntax(err error) bool {
	var target *SyntaxError
	return errors.As(err, &target)
}

// IsCommand reports whether err is or wraps a CommandError.
func IsCommand(err error) bool {
	var target *CommandError
	return errors.As(err, &target)
}
