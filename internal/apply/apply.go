// Package apply renders the scopes of a pattern to shell code.
package apply

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dyeshell/dye/internal/agents"
	"github.com/dyeshell/dye/internal/dyeerr"
	"github.com/dyeshell/dye/internal/logging"
	"github.com/dyeshell/dye/internal/pattern"
	"github.com/dyeshell/dye/internal/shell"
)

var logger = logging.Component("apply")

// Applier renders pattern scopes through their agents.
type Applier struct {
	Pattern  *pattern.Pattern
	Registry *agents.Registry
	Executor shell.Executor
	// Comments adds a "# [scopes.NAME]" line before each scope's output.
	Comments bool
}

// New creates an Applier using the default agent registry.
func New(p *pattern.Pattern, exec shell.Executor) *Applier {
	return &Applier{
		Pattern:  p,
		Registry: agents.DefaultRegistry,
		Executor: exec,
	}
}

// Apply renders each named scope in order, or every scope in document order
// when scopes is empty. Output is written as each scope renders, so lines
// from scopes before a failing one have already been written.
func (a *Applier) Apply(ctx context.Context, w io.Writer, scopes []string) error {
	if a.Pattern == nil {
		return fmt.Errorf("no pattern to apply")
	}
	if len(scopes) == 0 {
		scopes = a.Pattern.ScopeNames()
	}
	for _, name := range scopes {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := a.applyScope(ctx, w, name); err != nil {
			return err
		}
	}
	return nil
}

func (a *Applier) applyScope(ctx context.Context, w io.Writer, name string) error {
	if !a.Pattern.HasScope(name) {
		return dyeerr.Configf(name, "", "no such scope")
	}
	scope, err := a.Pattern.Scope(name)
	if err != nil {
		return err
	}

	agentName, err := scope.Agent()
	if err != nil {
		return err
	}
	registry := a.Registry
	if registry == nil {
		registry = agents.DefaultRegistry
	}
	def, ok := registry.Get(agentName)
	if !ok {
		return dyeerr.Configf(name, "agent", "unknown agent '%s', expected one of: %s", agentName, strings.Join(registry.Names(), ", "))
	}

	enabled, err := scope.Enabled(ctx, a.Executor)
	if err != nil {
		return err
	}
	if !enabled {
		logger.Debug().Str("scope", name).Msg("scope disabled")
		if a.Comments {
			_, err := fmt.Fprintf(w, "# [scopes.%s] skipped because it is not enabled\n", name)
			return err
		}
		return nil
	}

	if a.Comments {
		if _, err := fmt.Fprintf(w, "# [scopes.%s]\n", name); err != nil {
			return err
		}
	}

	output, err := def.New(scope).Generate()
	if err != nil {
		return err
	}
	logger.Debug().Str("scope", name).Str("agent", agentName).Int("bytes", len(output)).Msg("scope rendered")
	if output == "" {
		return nil
	}
	_, err = fmt.Fprintln(w, output)
	return err
}
