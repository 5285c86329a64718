// Package agents renders pattern scopes into shell code for specific tools.
package agents

import (
	"regexp"
	"strings"

	"github.com/dyeshell/dye/internal/dyeerr"
	"github.com/dyeshell/dye/internal/pattern"
)

// Agent renders one scope.
type Agent interface {
	// Generate returns shell code, possibly empty, with lines separated by
	// newlines and no trailing newline.
	Generate() (string, error)
}

// Factory binds an agent to a scope.
type Factory func(scope *pattern.Scope) Agent

// Definition describes a registered agent.
type Definition struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	New         Factory `json:"-"`
}

var (
	acronymBoundary = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	wordBoundary    = regexp.MustCompile(`([a-z\d])([A-Z])`)
)

// NameOf converts a type label such as "EnvironmentVariables" into its
// registry name, "environment_variables".
func NameOf(label string) string {
	name := acronymBoundary.ReplaceAllString(label, "${1}_${2}")
	name = wordBoundary.ReplaceAllString(name, "${1}_${2}")
	name = strings.ReplaceAll(name, "-", "_")
	return strings.ToLower(name)
}

// environmentVariable returns the scope's environment_variable setting, or
// def when it is absent.
func environmentVariable(scope *pattern.Scope, def string) (string, error) {
	v, ok := scope.Get("environment_variable")
	if !ok {
		return def, nil
	}
	name, ok := v.AsString()
	if !ok || strings.TrimSpace(name) == "" {
		return "", dyeerr.Configf(scope.Name, "environment_variable", "'environment_variable' must be a variable name")
	}
	return strings.TrimSpace(name), nil
}
