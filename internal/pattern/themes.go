package pattern

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dyeshell/dye/internal/document"
)

//go:embed builtin/*.toml
var builtinFS embed.FS

// BuiltinSource marks themes bundled with dye.
const BuiltinSource = "builtin"

var themeExtensions = []string{".toml", ".yaml", ".yml"}

// ThemeInfo describes a theme available by name.
type ThemeInfo struct {
	Name   string `json:"name"`
	Source string `json:"source"` // file path or "builtin"
}

// ThemesDir returns the directory holding named themes under dyeDir.
func ThemesDir(dyeDir string) string {
	if strings.TrimSpace(dyeDir) == "" {
		return ""
	}
	return filepath.Join(dyeDir, "themes")
}

// ListThemes returns the themes in dir, sorted by name. A missing dir yields
// no themes.
func ListThemes(dir string) ([]ThemeInfo, error) {
	if strings.TrimSpace(dir) == "" {
		return []ThemeInfo{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []ThemeInfo{}, nil
		}
		return nil, fmt.Errorf("read themes dir %s: %w", dir, err)
	}

	seen := make(map[string]bool)
	themes := make([]ThemeInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if !isThemeExtension(ext) {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if seen[stem] {
			continue
		}
		seen[stem] = true
		themes = append(themes, ThemeInfo{Name: stem, Source: filepath.Join(dir, name)})
	}

	sort.Slice(themes, func(i, j int) bool {
		return themes[i].Name < themes[j].Name
	})
	return themes, nil
}

// ListBuiltinThemes returns the themes bundled with dye.
func ListBuiltinThemes() ([]ThemeInfo, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("read builtin themes: %w", err)
	}

	themes := make([]ThemeInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		themes = append(themes, ThemeInfo{Name: stem, Source: BuiltinSource})
	}
	sort.Slice(themes, func(i, j int) bool {
		return themes[i].Name < themes[j].Name
	})
	return themes, nil
}

// ListAllThemes merges the themes in dir with the builtin ones. A theme in
// dir hides a builtin theme of the same name.
func ListAllThemes(dir string) ([]ThemeInfo, error) {
	local, err := ListThemes(dir)
	if err != nil {
		return nil, err
	}
	builtins, err := ListBuiltinThemes()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(local))
	all := make([]ThemeInfo, 0, len(local)+len(builtins))
	for _, info := range local {
		seen[info.Name] = true
		all = append(all, info)
	}
	for _, info := range builtins {
		if !seen[info.Name] {
			all = append(all, info)
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Name < all[j].Name
	})
	return all, nil
}

// FindTheme loads a theme by name, searching dir first and then the builtin
// themes.
func FindTheme(dir, name string) (*Theme, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("theme name is required")
	}

	if dir != "" {
		for _, ext := range themeExtensions {
			path := filepath.Join(dir, name+ext)
			if _, err := os.Stat(path); err == nil {
				return LoadTheme(path)
			}
		}
	}

	data, err := builtinFS.ReadFile("builtin/" + name + ".toml")
	if err != nil {
		return nil, fmt.Errorf("%s: no such theme", name)
	}
	theme, err := ParseTheme(data, document.FormatTOML)
	if err != nil {
		return nil, fmt.Errorf("parse builtin theme %s: %w", name, err)
	}
	theme.Filename = BuiltinSource + ":" + name
	return theme, nil
}

func isThemeExtension(ext string) bool {
	for _, candidate := range themeExtensions {
		if ext == candidate {
			return true
		}
	}
	return false
}
