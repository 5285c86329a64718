package agents

import (
	"fmt"
	"strings"

	"github.com/dyeshell/dye/internal/dyeerr"
	"github.com/dyeshell/dye/internal/pattern"
)

// itermCursors maps cursor names to iTerm CursorShape values.
var itermCursors = map[string]string{
	"block":        "0",
	"box":          "0",
	"vertical_bar": "1",
	"vertical":     "1",
	"bar":          "1",
	"pipe":         "1",
	"underline":    "2",
}

type iterm struct {
	scope *pattern.Scope
	out   []string
}

// echo appends a shell line that writes seq with the escape and bell
// characters left for echo -e to expand.
func (a *iterm) echo(seq string) {
	a.out = append(a.out, `builtin echo -en "`+seq+`"`)
}

func (a *iterm) Generate() (string, error) {
	a.out = nil

	if profile, ok := a.scope.Get("profile"); ok && profile.Text() != "" {
		a.echo(`\e]1337;SetProfile=` + profile.Text() + `\a`)
	}

	a.tab()
	a.setColor("foreground", "fg")
	a.setColor("background", "bg")

	if err := a.cursorShape(); err != nil {
		return "", err
	}
	// curfg has no visible effect in iTerm, so only the cursor background
	// is set.
	a.setColor("cursor", "curbg")

	return strings.Join(a.out, "\n"), nil
}

func (a *iterm) tab() {
	s, ok := a.scope.Styles.Get("tab")
	if !ok || s.Fg == nil {
		return
	}
	if s.Fg.IsDefault() {
		a.echo(`\e]6;1;bg;*;default\a`)
		return
	}
	r, g, b := s.Fg.RGB255()
	for _, channel := range []struct {
		name  string
		value uint8
	}{{"red", r}, {"green", g}, {"blue", b}} {
		a.echo(fmt.Sprintf(`\e]6;1;bg;%s;brightness;%d\a`, channel.name, channel.value))
	}
}

func (a *iterm) setColor(styleName, key string) {
	s, ok := a.scope.Styles.Get(styleName)
	if !ok || s.Fg == nil {
		return
	}
	hex := s.Fg.Hex()
	if hex == "" {
		return
	}
	a.echo(`\e]1337;SetColors=` + key + "=" + strings.TrimPrefix(hex, "#") + `\a`)
}

func (a *iterm) cursorShape() error {
	v, ok := a.scope.Get("cursor")
	if !ok {
		return nil
	}
	cursor := v.Text()
	if cursor == "" {
		return nil
	}
	if cursor == "profile" {
		a.echo(`\e[0q`)
		return nil
	}
	shape, ok := itermCursors[cursor]
	if !ok {
		return dyeerr.Configf(a.scope.Name, "cursor", "unknown cursor '%s'", cursor)
	}
	a.echo(`\e]1337;CursorShape=` + shape + `\a`)
	return nil
}
