package agents

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dyeshell/dye/internal/dyeerr"
	"github.com/dyeshell/dye/internal/pattern"
	"github.com/dyeshell/dye/internal/style"
)

const fzfDefaultVariable = "FZF_DEFAULT_OPTS"

// fzfPairs maps style names that carry both a foreground and a background
// to fzf's separate color names.
var fzfPairs = map[string][2]string{
	"text":          {"fg", "bg"},
	"current-line":  {"fg+", "bg+"},
	"selected-line": {"selected-fg", "selected-bg"},
	"preview":       {"preview-fg", "preview-bg"},
}

type fzf struct {
	scope *pattern.Scope
}

func (a *fzf) Generate() (string, error) {
	var opts strings.Builder
	if v, ok := a.scope.Get("opt"); ok {
		table, ok := v.AsTable()
		if !ok {
			return "", dyeerr.Configf(a.scope.Name, "opt", "'opt' must be a table")
		}
		for _, key := range table.Keys() {
			value, _ := table.Get(key)
			if text, ok := value.AsString(); ok {
				fmt.Fprintf(&opts, " %s='%s'", key, text)
				continue
			}
			if b, ok := value.AsBool(); ok && b {
				fmt.Fprintf(&opts, " %s", key)
			}
		}
	}

	var colors []string
	for _, name := range a.scope.Styles.Names() {
		s, _ := a.scope.Styles.Get(name)
		colors = append(colors, fzfColors(name, s)...)
	}

	colorbase := ""
	if v, ok := a.scope.Get("colorbase"); ok {
		colorbase = v.Text() + ","
	}
	colorOpt := ""
	if colorbase != "" || len(colors) > 0 {
		colorOpt = fmt.Sprintf(" --color='%s%s'", colorbase, strings.Join(colors, ","))
	}

	variable, err := environmentVariable(a.scope, fzfDefaultVariable)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("export %s=\"%s%s\"", variable, opts.String(), colorOpt), nil
}

// fzfColors converts one style into fzf --color tokens.
func fzfColors(name string, s style.Style) []string {
	var tokens []string
	if pair, ok := fzfPairs[name]; ok {
		if s.Fg != nil {
			tokens = append(tokens, pair[0]+":"+fzfColor(*s.Fg)+":"+fzfAttrs(s))
		}
		if s.Bg != nil {
			tokens = append(tokens, pair[1]+":"+fzfColor(*s.Bg))
		}
		return tokens
	}
	// Only the foreground applies to the remaining color names.
	if s.Fg != nil {
		tokens = append(tokens, name+":"+fzfColor(*s.Fg)+":"+fzfAttrs(s))
	}
	return tokens
}

func fzfColor(c style.Color) string {
	switch c.Type {
	case style.ColorDefault:
		return "-1"
	case style.ColorStandard, style.ColorEightBit:
		return strconv.Itoa(c.Number)
	default:
		return c.Hex()
	}
}

func fzfAttrs(s style.Style) string {
	attrs := "regular"
	for _, a := range []struct {
		on   bool
		name string
	}{
		{s.Bold(), "bold"},
		{s.Underline(), "underline"},
		{s.Reverse(), "reverse"},
		{s.Dim(), "dim"},
		{s.Italic(), "italic"},
		{s.Strike(), "strikethrough"},
	} {
		if a.on {
			attrs += ":" + a.name
		}
	}
	return attrs
}
