// Package resolve builds color and style tables from their raw definitions.
//
// Entries are processed in declaration order. Each string value is either
// the bare name of an entry resolved earlier, template markup such as
// "{{ colors.base.red }}" rendered against the entries resolved so far, or a
// literal. Unknown references render as the empty string; resolution never
// fails.
package resolve

import (
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/dyeshell/dye/internal/document"
	"github.com/dyeshell/dye/internal/logging"
	"github.com/dyeshell/dye/internal/style"
)

var logger = logging.Component("resolve")

func init() {
	pongo2.SetAutoescape(false)
}

// HasMarkup reports whether text contains template markup.
func HasMarkup(text string) bool {
	return strings.Contains(text, "{{") || strings.Contains(text, "{%") || strings.Contains(text, "{#")
}

// Render renders text as a template against data. When the template
// cannot be compiled or executed, text is returned unchanged along with
// the error.
func Render(text string, data map[string]any) (string, error) {
	tpl, err := pongo2.FromString(text)
	if err != nil {
		return text, err
	}
	out, err := tpl.Execute(pongo2.Context(data))
	if err != nil {
		return text, err
	}
	return out, nil
}

// Colors resolves src on top of base and returns the combined table. Nested
// color tables are flattened to dotted keypaths. base is not modified.
func Colors(base, src *document.Table) *document.Table {
	out := base.Clone()

	for _, entry := range flatten(src, "") {
		text, ok := entry.value.AsString()
		if !ok {
			out.Set(entry.key, entry.value)
			continue
		}
		if aliased, ok := out.Get(text); ok {
			out.Set(entry.key, aliased)
			continue
		}
		if HasMarkup(text) {
			nested := Nest(out)
			rendered, err := Render(text, map[string]any{"colors": nested, "color": nested})
			if err != nil {
				logger.Debug().Err(err).Str("color", entry.key).Msg("template failed, keeping text")
			}
			text = rendered
		}
		out.Set(entry.key, document.String(text))
	}
	return out
}

// Styles resolves src on top of base and returns the combined sheet. colors
// is available to templates as colors and color. Styles that fail to parse
// become the empty style. base is not modified.
func Styles(base *style.Sheet, colors, src *document.Table) *style.Sheet {
	out := base.Clone()
	nested := Nest(colors)

	for _, name := range src.Keys() {
		v, _ := src.Get(name)
		text, ok := v.AsString()
		if !ok {
			logger.Debug().Str("style", name).Str("kind", v.Kind().String()).Msg("ignoring non-string style")
			continue
		}
		if aliased, ok := out.Get(text); ok {
			out.Set(name, aliased)
			continue
		}
		if HasMarkup(text) {
			styles := out.Strings()
			rendered, err := Render(text, map[string]any{
				"colors": nested,
				"color":  nested,
				"styles": styles,
				"style":  styles,
			})
			if err != nil {
				logger.Debug().Err(err).Str("style", name).Msg("template failed, keeping text")
			}
			text = rendered
		}
		s, err := style.LookupOrParse(text, out)
		if err != nil {
			logger.Debug().Err(err).Str("style", name).Msg("unparseable style, using empty style")
			s = style.Style{}
		}
		out.Set(name, s)
	}
	return out
}

type flatEntry struct {
	key   string
	value document.Value
}

func flatten(t *document.Table, prefix string) []flatEntry {
	var entries []flatEntry
	for _, key := range t.Keys() {
		v, _ := t.Get(key)
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if sub, ok := v.AsTable(); ok {
			entries = append(entries, flatten(sub, path)...)
			continue
		}
		entries = append(entries, flatEntry{key: path, value: v})
	}
	return entries
}

// Nest expands a table with dotted keypaths into nested maps for use as
// template data. A keypath that collides with a scalar is dropped.
func Nest(flat *document.Table) map[string]any {
	root := make(map[string]any)
	for _, key := range flat.Keys() {
		v, _ := flat.Get(key)
		parts := strings.Split(key, ".")
		node := root
		for _, part := range parts[:len(parts)-1] {
			child, exists := node[part]
			if !exists {
				next := make(map[string]any)
				node[part] = next
				node = next
				continue
			}
			next, ok := child.(map[string]any)
			if !ok {
				node = nil
				break
			}
			node = next
		}
		if node == nil {
			continue
		}
		leaf := parts[len(parts)-1]
		if _, isMap := node[leaf].(map[string]any); isMap {
			continue
		}
		node[leaf] = v.Interface()
	}
	return root
}
