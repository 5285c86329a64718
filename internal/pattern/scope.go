package pattern

import (
	"context"
	"fmt"
	"strings"

	"github.com/dyeshell/dye/internal/document"
	"github.com/dyeshell/dye/internal/dyeerr"
	"github.com/dyeshell/dye/internal/interp"
	"github.com/dyeshell/dye/internal/shell"
	"github.com/dyeshell/dye/internal/style"
)

// Scope is one named unit of a pattern, bound to a single agent.
type Scope struct {
	Name string
	// Definition has every string leaf interpolated.
	Definition *document.Table
	// Styles are parsed from the scope's own styles table, in order.
	Styles *style.Sheet

	interp *interp.Interpolator
}

func newScope(name string, raw *document.Table, p *Pattern) (*Scope, error) {
	in := p.Interpolator()
	s := &Scope{
		Name:       name,
		Definition: in.WalkTable(raw),
		Styles:     style.NewSheet(),
		interp:     in,
	}

	styles, ok := s.Definition.Get("styles")
	if !ok {
		return s, nil
	}
	table, ok := styles.AsTable()
	if !ok {
		return nil, dyeerr.Configf(name, "styles", "'styles' must be a table")
	}
	for _, key := range table.Keys() {
		v, _ := table.Get(key)
		text, ok := v.AsString()
		if !ok {
			return nil, dyeerr.Configf(name, "styles", "style '%s' must be a string", key)
		}
		parsed, err := style.LookupOrParse(text, p.Styles)
		if err != nil {
			return nil, &dyeerr.SyntaxError{Source: fmt.Sprintf("scope '%s'", name), Msg: fmt.Sprintf("style '%s': %v", key, err), Err: err}
		}
		s.Styles.Set(key, parsed)
	}
	return s, nil
}

// Interpolator returns the interpolator used for the scope.
func (s *Scope) Interpolator() *interp.Interpolator {
	return s.interp
}

// Get returns a value from the interpolated definition.
func (s *Scope) Get(key string) (document.Value, bool) {
	return s.Definition.Get(key)
}

// String returns a string value from the definition.
func (s *Scope) String(key string) (string, bool) {
	return s.Definition.String(key)
}

// Table returns a sub-table of the definition.
func (s *Scope) Table(key string) (*document.Table, bool) {
	return s.Definition.Table(key)
}

// Bool returns a boolean value, or def when key is absent. Any other type
// is a configuration error.
func (s *Scope) Bool(key string, def bool) (bool, error) {
	v, ok := s.Definition.Get(key)
	if !ok {
		return def, nil
	}
	b, ok := v.AsBool()
	if !ok {
		return false, dyeerr.Configf(s.Name, key, "'%s' must be true or false", key)
	}
	return b, nil
}

// Agent returns the name of the agent bound to the scope.
func (s *Scope) Agent() (string, error) {
	v, ok := s.Definition.Get("agent")
	if !ok {
		return "", dyeerr.Configf(s.Name, "agent", "does not have an agent")
	}
	name, ok := v.AsString()
	if !ok || strings.TrimSpace(name) == "" {
		return "", dyeerr.Configf(s.Name, "agent", "'agent' must be the name of an agent")
	}
	return strings.TrimSpace(name), nil
}

// Enabled reports whether the scope should run. A boolean enabled key is
// authoritative. Otherwise a non-empty enabled_if command runs through exec
// and the scope is enabled when it exits 0. With neither, the scope is
// enabled.
func (s *Scope) Enabled(ctx context.Context, exec shell.Executor) (bool, error) {
	if _, ok := s.Definition.Get("enabled"); ok {
		return s.Bool("enabled", true)
	}

	v, ok := s.Definition.Get("enabled_if")
	if !ok {
		return true, nil
	}
	cmd, ok := v.AsString()
	if !ok {
		return false, dyeerr.Configf(s.Name, "enabled_if", "'enabled_if' must be a shell command string")
	}
	if strings.TrimSpace(cmd) == "" {
		return true, nil
	}
	if exec == nil {
		return false, &dyeerr.CommandError{Name: fmt.Sprintf("scope '%s' enabled_if", s.Name), Command: cmd, ExitCode: -1, Err: fmt.Errorf("no shell available")}
	}

	_, _, err := exec.Exec(ctx, cmd)
	code, ran := shell.ExitCode(err)
	if !ran {
		return false, &dyeerr.CommandError{Name: fmt.Sprintf("scope '%s' enabled_if", s.Name), Command: cmd, ExitCode: code, Err: err}
	}

	logger.Debug().Str("scope", s.Name).Int("exit_code", code).Msg("enabled_if check finished")
	return code == 0, nil
}
