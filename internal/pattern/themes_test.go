package pattern

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListThemes(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"zeta.toml", "alpha.yaml", "alpha.toml", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(""), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.toml"), 0o755))

	themes, err := ListThemes(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(themes))
	for _, theme := range themes {
		names = append(names, theme.Name)
	}
	require.Equal(t, []string{"alpha", "zeta"}, names)
}

func TestListThemesMissingDir(t *testing.T) {
	themes, err := ListThemes(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	require.Empty(t, themes)
}

func TestBuiltinThemes(t *testing.T) {
	builtins, err := ListBuiltinThemes()
	require.NoError(t, err)
	require.NotEmpty(t, builtins)

	for _, info := range builtins {
		theme, err := FindTheme("", info.Name)
		require.NoError(t, err, info.Name)
		require.Equal(t, BuiltinSource+":"+info.Name, theme.Filename)
		require.True(t, theme.Styles.Has("text"), info.Name)
		require.NotEmpty(t, theme.Description, info.Name)
	}
}

func TestLocalThemeHidesBuiltin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dracula.toml")
	require.NoError(t, os.WriteFile(path, []byte("description = \"local\"\n[styles]\ntext = \"red\"\n"), 0o644))

	all, err := ListAllThemes(dir)
	require.NoError(t, err)

	var found bool
	for _, info := range all {
		if info.Name == "dracula" {
			require.Equal(t, path, info.Source)
			found = true
		}
	}
	require.True(t, found)

	theme, err := FindTheme(dir, "dracula")
	require.NoError(t, err)
	require.Equal(t, "local", theme.Description)
	require.Equal(t, path, theme.Filename)
}

func TestFindThemeMissing(t *testing.T) {
	_, err := FindTheme(t.TempDir(), "does-not-exist")
	require.EqualError(t, err, "does-not-exist: no such theme")
}

func TestThemesDir(t *testing.T) {
	require.Equal(t, "", ThemesDir(""))
	require.Equal(t, filepath.Join("/x", "themes"), ThemesDir("/x"))
}
