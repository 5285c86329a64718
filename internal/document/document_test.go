package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTOMLKeepsDeclarationOrder(t *testing.T) {
	data := `
description = "ordered"

[colors]
zeta = "#000000"
alpha = "#ffffff"
middle = "zeta"

[colors.base]
red = "#ff0000"
blue = "#0000ff"

[scopes.ls]
agent = "ls_colors"

[scopes.fzf]
agent = "fzf"
`
	doc, err := ParseTOML([]byte(data))
	require.NoError(t, err)
	require.Equal(t, []string{"description", "colors", "scopes"}, doc.Keys())

	colors, ok := doc.Table("colors")
	require.True(t, ok)
	require.Equal(t, []string{"zeta", "alpha", "middle", "base"}, colors.Keys())

	base, ok := colors.Table("base")
	require.True(t, ok)
	require.Equal(t, []string{"red", "blue"}, base.Keys())

	scopes, ok := doc.Table("scopes")
	require.True(t, ok)
	require.Equal(t, []string{"ls", "fzf"}, scopes.Keys())
}

func TestParseTOMLDottedKeys(t *testing.T) {
	data := `
[variables]
second = "b"
first = "a"

[variables.capture]
host = "hostname"
`
	doc, err := ParseTOML([]byte(data))
	require.NoError(t, err)

	vars, ok := doc.Table("variables")
	require.True(t, ok)
	require.Equal(t, []string{"second", "first", "capture"}, vars.Keys())

	v, ok := doc.Lookup("variables", "capture", "host")
	require.True(t, ok)
	s, _ := v.AsString()
	require.Equal(t, "hostname", s)
}

func TestParseTOMLScalarKinds(t *testing.T) {
	data := `
name = "x"
flag = true
count = 3
ratio = 0.5
list = ["a", "b"]
`
	doc, err := ParseTOML([]byte(data))
	require.NoError(t, err)

	tests := []struct {
		key  string
		kind Kind
		text string
	}{
		{"name", KindString, "x"},
		{"flag", KindBool, "true"},
		{"count", KindInt, "3"},
		{"ratio", KindFloat, "0.5"},
		{"list", KindList, ""},
	}
	for _, tt := range tests {
		v, ok := doc.Get(tt.key)
		if !ok {
			t.Fatalf("missing key %q", tt.key)
		}
		if v.Kind() != tt.kind {
			t.Fatalf("%s: expected kind %s, got %s", tt.key, tt.kind, v.Kind())
		}
		if v.Text() != tt.text {
			t.Fatalf("%s: expected text %q, got %q", tt.key, tt.text, v.Text())
		}
	}
}

func TestParseTOMLInvalid(t *testing.T) {
	_, err := ParseTOML([]byte("[colors\nred = 1"))
	if err == nil {
		t.Fatalf("expected error for malformed toml")
	}
	if !strings.Contains(err.Error(), "invalid toml") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseYAMLKeepsOrder(t *testing.T) {
	data := `
colors:
  zeta: "#000000"
  alpha: "#ffffff"
scopes:
  shell:
    agent: shell
    enabled: false
    command:
      one: echo hi
`
	doc, err := ParseYAML([]byte(data))
	require.NoError(t, err)
	require.Equal(t, []string{"colors", "scopes"}, doc.Keys())

	colors, _ := doc.Table("colors")
	require.Equal(t, []string{"zeta", "alpha"}, colors.Keys())

	enabled, ok := doc.Lookup("scopes", "shell", "enabled")
	require.True(t, ok)
	b, ok := enabled.AsBool()
	require.True(t, ok)
	require.False(t, b)
}

func TestParseYAMLIntegerOutOfRange(t *testing.T) {
	doc, err := ParseYAML([]byte("big: 18446744073709551615\nmax: 9223372036854775807\n"))
	require.NoError(t, err)

	big, ok := doc.Get("big")
	require.True(t, ok)
	require.Equal(t, KindString, big.Kind())
	s, _ := big.AsString()
	require.Equal(t, "18446744073709551615", s)

	limit, ok := doc.Get("max")
	require.True(t, ok)
	require.Equal(t, KindInt, limit.Kind())
	require.Equal(t, "9223372036854775807", limit.Text())
}

func TestParseYAMLRejectsNonMapping(t *testing.T) {
	if _, err := ParseYAML([]byte("- a\n- b\n")); err == nil {
		t.Fatalf("expected error for top-level sequence")
	}
}

func TestParseEmptyDocuments(t *testing.T) {
	for _, format := range []Format{FormatTOML, FormatYAML} {
		doc, err := Parse(nil, format)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", format, err)
		}
		if doc.Len() != 0 {
			t.Fatalf("%s: expected empty table, got %v", format, doc.Keys())
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"theme.toml":   FormatTOML,
		"pattern.yaml": FormatYAML,
		"pattern.YML":  FormatYAML,
		"noext":        FormatTOML,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Fatalf("%s: expected %s, got %s", path, want, got)
		}
	}
}

func TestTableSetKeepsFirstPosition(t *testing.T) {
	table := NewTable()
	table.Set("a", String("1"))
	table.Set("b", String("2"))
	table.Set("a", String("3"))

	require.Equal(t, []string{"a", "b"}, table.Keys())
	s, _ := table.String("a")
	require.Equal(t, "3", s)
}

func TestWalkRebuildsWithoutMutating(t *testing.T) {
	inner := NewTable()
	inner.Set("cmd", String("echo x"))
	root := NewTable()
	root.Set("flag", Bool(true))
	root.Set("list", List(String("x"), Int(1)))
	root.Set("inner", TableValue(inner))

	out := WalkTable(root, func(s string) string { return strings.ReplaceAll(s, "x", "y") })

	cmd, _ := out.Lookup("inner", "cmd")
	require.Equal(t, "echo y", cmd.Text())
	orig, _ := root.Lookup("inner", "cmd")
	require.Equal(t, "echo x", orig.Text())

	list, _ := out.Get("list")
	items, _ := list.AsList()
	require.Equal(t, "y", items[0].Text())
	require.Equal(t, KindInt, items[1].Kind())

	flag, _ := out.Get("flag")
	require.Equal(t, KindBool, flag.Kind())
}

func TestTableMap(t *testing.T) {
	inner := NewTable()
	inner.Set("red", String("#ff0000"))
	root := NewTable()
	root.Set("base", TableValue(inner))
	root.Set("n", Int(2))

	m := root.Map()
	base, ok := m["base"].(map[string]any)
	if !ok {
		t.Fatalf("expected nested map, got %T", m["base"])
	}
	if base["red"] != "#ff0000" {
		t.Fatalf("unexpected nested value: %v", base["red"])
	}
	if m["n"] != int64(2) {
		t.Fatalf("unexpected int value: %v", m["n"])
	}
}
