package pattern

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dyeshell/dye/internal/document"
	"github.com/dyeshell/dye/internal/dyeerr"
	"github.com/dyeshell/dye/internal/interp"
	"github.com/dyeshell/dye/internal/logging"
	"github.com/dyeshell/dye/internal/resolve"
	"github.com/dyeshell/dye/internal/shell"
	"github.com/dyeshell/dye/internal/style"
)

var logger = logging.Component("pattern")

// Pattern is a resolved pattern document. Its colors and styles are built
// on top of the theme it was loaded with, so pattern entries may refer to
// and override theme entries.
type Pattern struct {
	Filename   string
	Definition *document.Table
	Theme      *Theme
	Colors     *document.Table
	Styles     *style.Sheet
	Variables  *document.Table
	Metadata
}

// ParsePattern decodes and resolves a pattern document. theme may be nil.
// Capture variables run through exec.
func ParsePattern(ctx context.Context, data []byte, format document.Format, theme *Theme, exec shell.Executor) (*Pattern, error) {
	def, err := document.Parse(data, format)
	if err != nil {
		return nil, &dyeerr.SyntaxError{Source: "pattern", Err: err}
	}
	return newPattern(ctx, def, theme, exec)
}

// LoadPattern reads a pattern from disk. A leading ~/ is expanded.
func LoadPattern(ctx context.Context, path string, theme *Theme, exec shell.Executor) (*Pattern, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("pattern path is required")
	}
	path = expandHome(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pattern %s: %w", path, err)
	}

	logger.Debug().Str("path", path).Msg("loading pattern")

	def, err := document.Parse(data, document.FormatFromPath(path))
	if err != nil {
		return nil, &dyeerr.SyntaxError{Source: path, Err: err}
	}
	p, err := newPattern(ctx, def, theme, exec)
	if err != nil {
		return nil, err
	}
	p.Filename = path
	return p, nil
}

// Empty returns a pattern with no definition of its own, exposing only the
// colors and styles of theme.
func Empty(theme *Theme) *Pattern {
	p, _ := newPattern(context.Background(), document.NewTable(), theme, nil)
	return p
}

func newPattern(ctx context.Context, def *document.Table, theme *Theme, exec shell.Executor) (*Pattern, error) {
	prevent, err := preventThemes(def)
	if err != nil {
		return nil, err
	}
	if prevent && theme != nil {
		logger.Debug().Str("theme", theme.Filename).Msg("pattern prevents themes, ignoring theme")
		theme = nil
	}
	if required := requiresTheme(def); required != "" && theme == nil {
		return nil, &dyeerr.ConfigError{Key: "requires_theme", Msg: fmt.Sprintf("pattern requires theme '%s' but no theme was loaded", required)}
	}

	colors, err := section(def, "colors")
	if err != nil {
		return nil, err
	}
	styles, err := section(def, "styles")
	if err != nil {
		return nil, err
	}

	baseColors := document.NewTable()
	baseStyles := style.NewSheet()
	if theme != nil {
		baseColors = theme.Colors
		baseStyles = theme.Styles
	}

	p := &Pattern{
		Definition: def,
		Theme:      theme,
		Metadata:   metadataOf(def),
	}
	p.Colors = resolve.Colors(baseColors, colors)
	p.Styles = resolve.Styles(baseStyles, p.Colors, styles)

	p.Variables, err = resolveVariables(ctx, def, p.Styles, exec)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func preventThemes(def *document.Table) (bool, error) {
	v, ok := def.Get("prevent_themes")
	if !ok {
		return false, nil
	}
	b, ok := v.AsBool()
	if !ok {
		return false, &dyeerr.SyntaxError{Source: "pattern", Msg: "'prevent_themes' must be true or false"}
	}
	return b, nil
}

func requiresTheme(def *document.Table) string {
	v, ok := def.Get("requires_theme")
	if !ok {
		return ""
	}
	return strings.TrimSpace(v.Text())
}

// resolveVariables runs capture variables first, then adds regular
// variables in document order, interpolating each against the variables
// defined before it.
func resolveVariables(ctx context.Context, def *document.Table, styles *style.Sheet, exec shell.Executor) (*document.Table, error) {
	vars := document.NewTable()
	raw, err := section(def, "variables")
	if err != nil {
		return nil, err
	}

	if capture, ok := raw.Get("capture"); ok {
		captures, ok := capture.AsTable()
		if !ok {
			return nil, dyeerr.Configf("", "capture", "'variables.capture' must be a table")
		}
		for _, name := range captures.Keys() {
			value, _ := captures.Get(name)
			out, err := runCapture(ctx, exec, name, value)
			if err != nil {
				return nil, err
			}
			vars.Set(name, document.String(out))
		}
	}

	for _, name := range raw.Keys() {
		if name == "capture" {
			continue
		}
		if vars.Has(name) {
			return nil, dyeerr.Configf("", name, "a variable named '%s' is already defined", name)
		}
		value, _ := raw.Get(name)
		if text, ok := value.AsString(); ok {
			value = document.String(interp.New(styles, vars).Interpolate(text))
		}
		vars.Set(name, value)
	}
	return vars, nil
}

func runCapture(ctx context.Context, exec shell.Executor, name string, value document.Value) (string, error) {
	cmd, ok := value.AsString()
	if !ok {
		return "", dyeerr.Configf("", name, "capture variable '%s' must be a shell command string", name)
	}
	if exec == nil {
		return "", &dyeerr.CommandError{Name: fmt.Sprintf("capture variable '%s'", name), Command: cmd, ExitCode: -1, Err: fmt.Errorf("no shell available")}
	}

	stdout, _, err := exec.Exec(ctx, cmd)
	code, ran := shell.ExitCode(err)
	if !ran || code != 0 {
		return "", &dyeerr.CommandError{Name: fmt.Sprintf("capture variable '%s'", name), Command: cmd, ExitCode: code, Err: err}
	}
	return strings.TrimRight(string(stdout), "\r\n"), nil
}

// Interpolator returns an interpolator over the pattern's styles and
// variables.
func (p *Pattern) Interpolator() *interp.Interpolator {
	return interp.New(p.Styles, p.Variables)
}

func (p *Pattern) scopes() *document.Table {
	scopes, ok := p.Definition.Table("scopes")
	if !ok {
		return document.NewTable()
	}
	return scopes
}

// ScopeNames returns the scope names in document order.
func (p *Pattern) ScopeNames() []string {
	return p.scopes().Keys()
}

// HasScope reports whether the pattern defines name.
func (p *Pattern) HasScope(name string) bool {
	return p.scopes().Has(name)
}

// Scope derives the named scope, interpolating every string in its
// definition and parsing its styles.
func (p *Pattern) Scope(name string) (*Scope, error) {
	raw, ok := p.scopes().Get(name)
	if !ok {
		return nil, dyeerr.Configf(name, "", "no such scope")
	}
	table, ok := raw.AsTable()
	if !ok {
		return nil, dyeerr.Configf(name, "", "scope definition must be a table")
	}
	return newScope(name, table, p)
}

// ColorSource reports whether a color's raw definition came from the
// pattern or the theme, along with that definition.
func (p *Pattern) ColorSource(key string) (source, definition string, ok bool) {
	path := strings.Split(key, ".")
	if v, found := p.Definition.Lookup(append([]string{"colors"}, path...)...); found {
		return "pattern", v.Text(), true
	}
	if p.Theme != nil {
		if v, found := p.Theme.Definition.Lookup(append([]string{"colors"}, path...)...); found {
			return "theme", v.Text(), true
		}
	}
	return "", "", false
}

// StyleSource reports whether a style's raw definition came from the
// pattern or the theme, along with that definition.
func (p *Pattern) StyleSource(name string) (source, definition string, ok bool) {
	if v, found := p.Definition.Lookup("styles", name); found {
		return "pattern", v.Text(), true
	}
	if p.Theme != nil {
		if v, found := p.Theme.Definition.Lookup("styles", name); found {
			return "theme", v.Text(), true
		}
	}
	return "", "", false
}
