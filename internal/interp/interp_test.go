package interp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dyeshell/dye/internal/document"
	"github.com/dyeshell/dye/internal/style"
)

func newInterpolator() *Interpolator {
	styles := style.NewSheet()
	styles.Set("accent", style.MustParse("bold #ff79c6 on #282a36"))
	styles.Set("plain", style.MustParse("red"))
	styles.Set("bgonly", style.MustParse("on blue"))
	styles.Set("empty", style.Style{})

	vars := document.NewTable()
	vars.Set("x", document.String("hi"))
	vars.Set("greeting", document.String("{var:x} there"))
	vars.Set("flag", document.Bool(true))
	vars.Set("off", document.Bool(false))
	vars.Set("count", document.Int(42))
	vars.Set("ratio", document.Float(1.5))
	vars.Set("color", document.String("{style:accent:hexnohash}"))
	vars.Set("loop_a", document.String("a{var:loop_b}"))
	vars.Set("loop_b", document.String("b{var:loop_a}"))
	vars.Set("self", document.String("<{var:self}>"))
	vars.Set("list", document.List(document.String("a")))
	return New(styles, vars)
}

func TestInterpolateVariables(t *testing.T) {
	in := newInterpolator()
	tests := []struct {
		text string
		want string
	}{
		{"{var:x}", "hi"},
		{"{variable:x}", "hi"},
		{"say {var:greeting}!", "say hi there!"},
		{"{var:flag} {var:off}", "true false"},
		{"{var:count}/{var:ratio}", "42/1.5"},
		{"{var:nope}", "{var:nope}"},
		{"{var:list}", "{var:list}"},
		{`\{var:x}`, "{var:x}"},
		{`\{var:nope}`, "{var:nope}"},
		{"{var:x}{var:x}", "hihi"},
		{"{var:x:ignored}", "hi"},
		{"{style:accent}", "{style:accent}"},
	}
	for _, tt := range tests {
		if got := in.InterpolateVariables(tt.text); got != tt.want {
			t.Fatalf("%q: expected %q, got %q", tt.text, tt.want, got)
		}
	}
}

func TestInterpolateStyles(t *testing.T) {
	in := newInterpolator()
	tests := []struct {
		text string
		want string
	}{
		{"{style:accent}", "#ff79c6"},
		{"{style:accent:}", "#ff79c6"},
		{"{style:accent:hex}", "#ff79c6"},
		{"{style:accent:hexnohash}", "ff79c6"},
		{"{style:plain:hex}", "#800000"},
		{"{style:#00ff00}", "#00ff00"},
		{"{style:accent:bogus}", "{style:accent:bogus}"},
		{"{style:unknownstyle}", "{style:unknownstyle}"},
		{"{style:empty}", "{style:empty}"},
		{"{style:bgonly}", "{style:bgonly}"},
		{`\{style:accent}`, "{style:accent}"},
		{"{style:plain:ansi_on}x{style:plain:ansi_off}", "\x1b[31mx\x1b[0m"},
		{"{var:x}", "{var:x}"},
	}
	for _, tt := range tests {
		if got := in.InterpolateStyles(tt.text); got != tt.want {
			t.Fatalf("%q: expected %q, got %q", tt.text, tt.want, got)
		}
	}
}

func TestInterpolateComposition(t *testing.T) {
	in := newInterpolator()
	for _, text := range []string{
		"plain text, no tokens",
		"{var:x} and {style:accent:hexnohash}",
		"{var:color}",
		`\{var:x} {style:plain}`,
	} {
		want := in.InterpolateStyles(in.InterpolateVariables(text))
		require.Equal(t, want, in.Interpolate(text), text)
	}
	require.Equal(t, "plain text, no tokens", in.Interpolate("plain text, no tokens"))
	require.Equal(t, "ff79c6", in.Interpolate("{var:color}"))
}

func TestEscapeForAnyName(t *testing.T) {
	in := newInterpolator()
	for _, name := range []string{"x", "nope", "flag", ""} {
		text := `\{var:` + name + `}`
		require.Equal(t, "{var:"+name+"}", in.Interpolate(text))
	}
}

func TestCyclesTerminate(t *testing.T) {
	in := newInterpolator()
	got := in.Interpolate("{var:loop_a}")
	require.Equal(t, "ab{var:loop_a}", got)
	require.Equal(t, "<{var:self}>", in.Interpolate("{var:self}"))
}

func TestSetFormat(t *testing.T) {
	in := newInterpolator()
	in.SetFormat("upper", func(s style.Style) (string, bool) {
		return strings.ToUpper(s.Fg.Hex()), true
	})
	require.Equal(t, "#FF79C6", in.Interpolate("{style:accent:upper}"))
}

func TestNilTables(t *testing.T) {
	in := New(nil, nil)
	require.Equal(t, "{var:x}", in.Interpolate("{var:x}"))
	require.Equal(t, "#0000ff", in.Interpolate("{style:#0000ff}"))
}

func TestWalkTable(t *testing.T) {
	in := newInterpolator()
	inner := document.NewTable()
	inner.Set("one", document.String("echo {var:x}"))
	root := document.NewTable()
	root.Set("command", document.TableValue(inner))
	root.Set("enabled", document.Bool(true))

	out := in.WalkTable(root)
	v, ok := out.Lookup("command", "one")
	require.True(t, ok)
	require.Equal(t, "echo hi", v.Text())

	again := in.WalkTable(root)
	v2, _ := again.Lookup("command", "one")
	require.Equal(t, v.Text(), v2.Text())
}

func TestValue(t *testing.T) {
	in := newInterpolator()
	v, ok := in.Value("greeting")
	require.True(t, ok)
	require.Equal(t, "hi there", v)
	_, ok = in.Value("nope")
	require.False(t, ok)
}
