// Package pattern loads themes and patterns and derives their resolved
// colors, styles, variables, and scopes.
package pattern

import (
	"fmt"
	"os"
	"strings"

	"github.com/dyeshell/dye/internal/document"
	"github.com/dyeshell/dye/internal/dyeerr"
	"github.com/dyeshell/dye/internal/resolve"
	"github.com/dyeshell/dye/internal/style"
)

// Metadata holds the descriptive top-level keys of a theme or pattern.
type Metadata struct {
	Description string
	Type        string
	Version     string
}

func metadataOf(def *document.Table) Metadata {
	text := func(key string) string {
		v, ok := def.Get(key)
		if !ok || !v.IsScalar() {
			return ""
		}
		return v.Text()
	}
	return Metadata{
		Description: text("description"),
		Type:        text("type"),
		Version:     text("version"),
	}
}

// Theme is a resolved set of colors and styles.
type Theme struct {
	// Filename is where the theme was loaded from, or "builtin:<name>".
	Filename   string
	Definition *document.Table
	Colors     *document.Table
	Styles     *style.Sheet
	Metadata
}

// ParseTheme decodes and resolves a theme document.
func ParseTheme(data []byte, format document.Format) (*Theme, error) {
	def, err := document.Parse(data, format)
	if err != nil {
		return nil, &dyeerr.SyntaxError{Source: "theme", Err: err}
	}
	return newTheme(def)
}

// LoadTheme reads a theme from disk. A leading ~/ is expanded.
func LoadTheme(path string) (*Theme, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("theme path is required")
	}
	path = expandHome(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme %s: %w", path, err)
	}

	logger.Debug().Str("path", path).Msg("loading theme")

	def, err := document.Parse(data, document.FormatFromPath(path))
	if err != nil {
		return nil, &dyeerr.SyntaxError{Source: path, Err: err}
	}
	theme, err := newTheme(def)
	if err != nil {
		return nil, err
	}
	theme.Filename = path
	return theme, nil
}

func newTheme(def *document.Table) (*Theme, error) {
	colors, err := section(def, "colors")
	if err != nil {
		return nil, err
	}
	styles, err := section(def, "styles")
	if err != nil {
		return nil, err
	}

	theme := &Theme{Definition: def, Metadata: metadataOf(def)}
	theme.Colors = resolve.Colors(document.NewTable(), colors)
	theme.Styles = resolve.Styles(style.NewSheet(), theme.Colors, styles)
	return theme, nil
}

// section returns the named sub-table of def, or an empty table when it is
// absent.
func section(def *document.Table, key string) (*document.Table, error) {
	v, ok := def.Get(key)
	if !ok {
		return document.NewTable(), nil
	}
	t, ok := v.AsTable()
	if !ok {
		return nil, dyeerr.Configf("", key, "'%s' must be a table", key)
	}
	return t, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return home + path[1:]
}
