package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dyeshell/dye/internal/config"
	"github.com/dyeshell/dye/internal/logging"
	"github.com/dyeshell/dye/internal/pattern"
)

var logger = logging.Component("cli")

// inputFlags are the theme and pattern selection flags shared by apply,
// preview and print.
type inputFlags struct {
	patternFile string
	themeFile   string
	noPattern   bool
	noTheme     bool
}

func addInputFlags(cmd *cobra.Command, in *inputFlags, withNoPattern bool) {
	cmd.Flags().StringVarP(&in.patternFile, "pattern-file", "f", "", "read the pattern from `path`")
	cmd.Flags().StringVarP(&in.themeFile, "theme-file", "t", "", "read the theme from `path`, or load a theme by name")
	cmd.Flags().BoolVar(&in.noTheme, "no-theme", false, "don't load any theme, ignores DYE_THEME_FILE")
	cmd.MarkFlagsMutuallyExclusive("theme-file", "no-theme")
	if withNoPattern {
		cmd.Flags().BoolVar(&in.noPattern, "no-pattern", false, "don't load any pattern, ignores DYE_PATTERN_FILE")
		cmd.MarkFlagsMutuallyExclusive("pattern-file", "no-pattern")
	}
}

// loadTheme loads the theme named by -t or DYE_THEME_FILE. When required is
// false a missing theme is not an error and the theme is nil.
func loadTheme(in *inputFlags, cfg *config.Config, required bool) (*pattern.Theme, error) {
	if in.noTheme {
		if required {
			return nil, errors.New("a theme is required and you specified --no-theme")
		}
		return nil, nil
	}

	name := in.themeFile
	if name == "" && cfg.ThemeFile != "" {
		name = cfg.ThemeFile
		logger.Debug().Str("theme", name).Msg("found theme in DYE_THEME_FILE")
	}
	if name == "" {
		if required {
			return nil, errors.New("no theme specified")
		}
		logger.Debug().Msg("no theme specified")
		return nil, nil
	}

	if looksLikePath(name) {
		return pattern.LoadTheme(name)
	}
	return pattern.FindTheme(cfg.ThemesDir(), name)
}

// loadPattern loads the pattern named by -f or DYE_PATTERN_FILE. When
// required is false a missing pattern is not an error and the pattern is
// nil.
func loadPattern(ctx context.Context, in *inputFlags, cfg *config.Config, required bool, theme *pattern.Theme) (*pattern.Pattern, error) {
	if in.noPattern {
		if required {
			return nil, errors.New("a pattern is required and you specified --no-pattern")
		}
		return nil, nil
	}

	path := in.patternFile
	if path == "" && cfg.PatternFile != "" {
		path = cfg.PatternFile
		logger.Debug().Str("pattern", path).Msg("found pattern in DYE_PATTERN_FILE")
	}
	if path == "" {
		if required {
			return nil, errors.New("no pattern specified")
		}
		logger.Debug().Msg("no pattern specified")
		return nil, nil
	}

	return pattern.LoadPattern(ctx, path, theme, cfg.Executor())
}

// looksLikePath reports whether a -t argument names a file rather than a
// theme in the themes directory.
func looksLikePath(name string) bool {
	if strings.ContainsRune(name, filepath.Separator) || strings.HasPrefix(name, "~") || filepath.Ext(name) != "" {
		return true
	}
	_, err := os.Stat(name)
	return err == nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// colorEnabled reports whether styled output should be written to w.
func colorEnabled(w io.Writer) bool {
	if forceColor {
		return true
	}
	return isTerminal(w) && !GetConfig().NoColor
}
