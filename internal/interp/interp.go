// Package interp substitutes {var:name} and {style:name:format} tokens in
// arbitrary text.
//
// A backslash before a token suppresses substitution: the backslash is
// removed and the token is left as written. Tokens that cannot be resolved
// pass through unchanged.
package interp

import (
	"regexp"
	"strings"

	"github.com/dyeshell/dye/internal/document"
	"github.com/dyeshell/dye/internal/style"
)

var (
	// groups: 1 escape, 2 token, 3 keyword, 4 name, 5 ignored suffix
	varPattern = regexp.MustCompile(`(\\)?(\{(var|variable):([^}:]*)(?::([^}]*))?\})`)
	// groups: 1 escape, 2 token, 3 name, 4 format
	stylePattern = regexp.MustCompile(`(\\)?(\{style:([^}:]*)(?::([^}]*))?\})`)
)

// FormatFunc renders a style for a {style:name:format} token. Returning
// false leaves the token unchanged.
type FormatFunc func(s style.Style) (string, bool)

// Interpolator resolves tokens against a style sheet and a variable table.
type Interpolator struct {
	styles    *style.Sheet
	variables *document.Table
	formats   map[string]FormatFunc
}

// New creates an interpolator. Either table may be nil.
func New(styles *style.Sheet, variables *document.Table) *Interpolator {
	return &Interpolator{
		styles:    styles,
		variables: variables,
		formats:   defaultFormats(),
	}
}

func defaultFormats() map[string]FormatFunc {
	hex := func(s style.Style) (string, bool) {
		if s.Fg == nil {
			return "", false
		}
		h := s.Fg.Hex()
		return h, h != ""
	}
	return map[string]FormatFunc{
		"":    hex,
		"hex": hex,
		"hexnohash": func(s style.Style) (string, bool) {
			h, ok := hex(s)
			return strings.TrimPrefix(h, "#"), ok
		},
		"ansi_on": func(s style.Style) (string, bool) {
			return s.On(), true
		},
		"ansi_off": func(s style.Style) (string, bool) {
			return s.Off(), true
		},
	}
}

// SetFormat registers or replaces a style format.
func (i *Interpolator) SetFormat(name string, fn FormatFunc) {
	i.formats[name] = fn
}

// Interpolate replaces variable tokens, then style tokens.
func (i *Interpolator) Interpolate(text string) string {
	return i.interpolate(text, nil)
}

// InterpolateVariables replaces {var:name} and {variable:name} tokens.
// String values are themselves interpolated before substitution.
func (i *Interpolator) InterpolateVariables(text string) string {
	return i.interpolateVariables(text, nil)
}

// InterpolateStyles replaces {style:name} and {style:name:format} tokens.
func (i *Interpolator) InterpolateStyles(text string) string {
	return replaceTokens(stylePattern, text, func(groups []string) string {
		if groups[1] != "" {
			return groups[2]
		}
		s, err := style.LookupOrParse(groups[3], i.styles)
		if err != nil || s.IsEmpty() {
			return groups[0]
		}
		format, ok := i.formats[groups[4]]
		if !ok {
			return groups[0]
		}
		out, ok := format(s)
		if !ok {
			return groups[0]
		}
		return out
	})
}

// WalkTable returns a copy of t with every string leaf interpolated.
func (i *Interpolator) WalkTable(t *document.Table) *document.Table {
	return document.WalkTable(t, i.Interpolate)
}

// Value returns the fully interpolated text of a variable.
func (i *Interpolator) Value(name string) (string, bool) {
	return i.valueOf(name, nil)
}

func (i *Interpolator) interpolate(text string, active map[string]bool) string {
	return i.InterpolateStyles(i.interpolateVariables(text, active))
}

func (i *Interpolator) interpolateVariables(text string, active map[string]bool) string {
	return replaceTokens(varPattern, text, func(groups []string) string {
		if groups[1] != "" {
			return groups[2]
		}
		value, ok := i.valueOf(groups[4], active)
		if !ok {
			return groups[0]
		}
		return value
	})
}

// valueOf expands a variable. A variable already being expanded further up
// the chain is treated as undefined so cycles terminate.
func (i *Interpolator) valueOf(name string, active map[string]bool) (string, bool) {
	if active[name] {
		return "", false
	}
	v, ok := i.variables.Get(name)
	if !ok || !v.IsScalar() {
		return "", false
	}
	text, isString := v.AsString()
	if !isString {
		return v.Text(), true
	}

	next := make(map[string]bool, len(active)+1)
	for k := range active {
		next[k] = true
	}
	next[name] = true
	return i.interpolate(text, next), true
}

// replaceTokens calls fn with the submatches of every match of re in text
// and splices in the result.
func replaceTokens(re *regexp.Regexp, text string, fn func(groups []string) string) string {
	matches := re.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		groups := make([]string, len(m)/2)
		for g := range groups {
			if m[2*g] >= 0 {
				groups[g] = text[m[2*g]:m[2*g+1]]
			}
		}
		b.WriteString(text[last:m[0]])
		b.WriteString(fn(groups))
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}
