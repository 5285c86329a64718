package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// isolate clears the dye environment and restores flag state after the
// test, since commands and their flags are package level.
func isolate(t *testing.T) {
	t.Helper()
	for _, name := range []string{"DYE_DIR", "DYE_THEME_FILE", "DYE_PATTERN_FILE", "DYE_COLORS", "DYE_SHELL", "DYE_SHELL_TIMEOUT", "DYE_LOG_LEVEL", "NO_COLOR"} {
		if value, ok := os.LookupEnv(name); ok {
			t.Cleanup(func() { os.Setenv(name, value) })
			os.Unsetenv(name)
		}
	}
	resetFlags(rootCmd)
	t.Cleanup(func() {
		resetFlags(rootCmd)
		helpStyles = nil
		appConfig = nil
	})
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestNoCommandIsUsageError(t *testing.T) {
	isolate(t)

	code, stdout, stderr := execute(t)
	require.Equal(t, ExitUsage, code)
	require.Empty(t, stdout)
	require.Contains(t, stderr, "Usage:")
	require.Contains(t, stderr, "apply")
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown flag", []string{"--bogus"}, "unknown flag: --bogus"},
		{"unknown command", []string{"bogus"}, `unknown command "bogus"`},
		{"color and no-color", []string{"--color", "args=red", "--no-color", "agents"}, "none of the others can be"},
		{"theme and no-theme", []string{"apply", "-t", "x.toml", "--no-theme"}, "none of the others can be"},
		{"extra argument", []string{"agents", "extra"}, "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			code, _, stderr := execute(t, tt.args...)
			require.Equal(t, ExitUsage, code)
			require.Contains(t, stderr, "dye: ")
			require.Contains(t, stderr, tt.want)
			require.Contains(t, stderr, "Usage:")
		})
	}
}

func TestVersion(t *testing.T) {
	isolate(t)
	SetVersion("1.2.3")
	t.Cleanup(func() { SetVersion("dev") })

	code, stdout, _ := execute(t, "--version")
	require.Equal(t, ExitSuccess, code)
	require.Equal(t, "dye 1.2.3\n", stdout)

	code, stdout, _ = execute(t, "version")
	require.Equal(t, ExitSuccess, code)
	require.Equal(t, "dye 1.2.3\n", stdout)
}

func TestHelpIsPlainWithoutTerminal(t *testing.T) {
	isolate(t)

	code, stdout, _ := execute(t, "apply", "--help")
	require.Equal(t, ExitSuccess, code)
	require.Contains(t, stdout, "Usage:")
	require.Contains(t, stdout, "-f, --pattern-file <path>")
	require.Contains(t, stdout, "-s, --scope <scope>")
	require.Contains(t, stdout, "Global Flags:")
	require.NotContains(t, stdout, "\x1b[")
}

func TestHelpColorFlagForcesColor(t *testing.T) {
	isolate(t)

	code, stdout, _ := execute(t, "--color", "args=red:groups=bold", "--help")
	require.Equal(t, ExitSuccess, code)
	require.Contains(t, stdout, "\x1b[1mUsage:\x1b[0m")
	require.Contains(t, stdout, "\x1b[31m-d, --debug\x1b[0m")
}

func TestAgentsTable(t *testing.T) {
	isolate(t)

	code, stdout, _ := execute(t, "agents")
	require.Equal(t, ExitSuccess, code)
	require.Contains(t, stdout, "Agent")
	require.Contains(t, stdout, "Description")
	require.Contains(t, stdout, "environment_variables")
	require.Contains(t, stdout, "Execute arbitrary shell commands")
	require.Less(t, bytes.Index([]byte(stdout), []byte("eza_colors")), bytes.Index([]byte(stdout), []byte("fzf")))
}

func TestAgentsJSON(t *testing.T) {
	isolate(t)

	code, stdout, _ := execute(t, "--json", "agents")
	require.Equal(t, ExitSuccess, code)

	var defs []map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &defs))
	var names []string
	for _, def := range defs {
		names = append(names, def["name"])
	}
	require.Equal(t, []string{"environment_variables", "exa_colors", "eza_colors", "fzf", "iterm", "ls_colors", "shell"}, names)
}

func TestThemesRequiresDir(t *testing.T) {
	isolate(t)

	code, _, stderr := execute(t, "themes")
	require.Equal(t, ExitError, code)
	require.Contains(t, stderr, "DYE_DIR environment variable must be set")
}

func TestThemesList(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "themes"), 0o755))
	writeFile(t, filepath.Join(dir, "themes"), "alpha.toml", "[colors]\n")
	t.Setenv("DYE_DIR", dir)

	code, stdout, _ := execute(t, "themes")
	require.Equal(t, ExitSuccess, code)
	require.Equal(t, "alpha\ndracula\nmonochrome\n", stdout)

	code, stdout, _ = execute(t, "themes", "-l")
	require.Equal(t, ExitSuccess, code)
	require.Contains(t, stdout, "Builtin")
	require.Contains(t, stdout, filepath.Join(dir, "themes", "alpha.toml"))
}

func TestPreviewNothing(t *testing.T) {
	isolate(t)

	code, _, stderr := execute(t, "preview")
	require.Equal(t, ExitError, code)
	require.Equal(t, "dye: nothing to preview\n", stderr)
}

func TestPreviewBuiltinTheme(t *testing.T) {
	isolate(t)

	code, stdout, _ := execute(t, "preview", "-t", "dracula")
	require.Equal(t, ExitSuccess, code)
	require.Regexp(t, `Theme file: +builtin:dracula`, stdout)
	require.Regexp(t, `description += "Dracula, a dark theme"`, stdout)
	require.Contains(t, stdout, "No pattern file.")
	require.Contains(t, stdout, "[colors]")
	require.Contains(t, stdout, `= "#ff79c6"  # from theme`)
	require.Contains(t, stdout, "[styles]")
	require.Contains(t, stdout, "╭")
	require.NotContains(t, stdout, "\x1b[")
}

func TestPreviewNeedsTextStyle(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "bare.toml", "[colors]\nred = \"#ff0000\"\n")

	code, _, stderr := execute(t, "preview", "-t", path)
	require.Equal(t, ExitError, code)
	require.Contains(t, stderr, "no 'text' style defined")
}

func TestPrint(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"plain", []string{"print", "hello", "world"}, "hello world\n"},
		{"no newline", []string{"print", "-n", "hello"}, "hello"},
		{"style without terminal", []string{"print", "-s", "bold", "hello"}, "hello\n"},
		{"forced style", []string{"-F", "print", "-s", "bold red", "hello"}, "\x1b[1;31mhello\x1b[0m\n"},
		{"theme style", []string{"-F", "print", "-t", "dracula", "-s", "accent", "hi"}, "\x1b[38;2;255;121;198mhi\x1b[0m\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			code, stdout, stderr := execute(t, tt.args...)
			require.Equal(t, ExitSuccess, code, stderr)
			require.Equal(t, tt.want, stdout)
		})
	}
}

func TestPrintBadStyle(t *testing.T) {
	isolate(t)

	code, _, stderr := execute(t, "print", "-s", "bold xyzzy", "hello")
	require.Equal(t, ExitError, code)
	require.Contains(t, stderr, "xyzzy")
}

const cliPattern = `
[scopes.first]
agent = "environment_variables"
export.FIRST = "one"

[scopes.second]
agent = "environment_variables"
unset = "SECOND"

[scopes.off]
enabled = false
agent = "environment_variables"
unset = "OFF"
`

func TestApply(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "pattern.toml", cliPattern)

	code, stdout, stderr := execute(t, "apply", "--no-theme", "-f", path)
	require.Equal(t, ExitSuccess, code, stderr)
	require.Equal(t, "export FIRST=\"one\"\nunset SECOND\n", stdout)
}

func TestApplyScopesAndComments(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "pattern.toml", cliPattern)
	t.Setenv("DYE_PATTERN_FILE", path)

	code, stdout, stderr := execute(t, "apply", "-c", "-s", "second,off", "-s", "first")
	require.Equal(t, ExitSuccess, code, stderr)
	require.Equal(t, `# [scopes.second]
unset SECOND
# [scopes.off] skipped because it is not enabled
# [scopes.first]
export FIRST="one"
`, stdout)
}

func TestApplyErrors(t *testing.T) {
	dir := t.TempDir()
	unknownAgent := writeFile(t, dir, "agent.toml", `
[scopes.myprog]
agent = "bogus"
`)
	good := writeFile(t, dir, "good.toml", cliPattern)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"no pattern", []string{"apply"}, []string{"dye: no pattern specified"}},
		{"unknown agent", []string{"apply", "-f", unknownAgent}, []string{"myprog", "bogus"}},
		{"unknown scope", []string{"apply", "-f", good, "-s", "nope"}, []string{"nope", "no such scope"}},
		{"missing theme", []string{"apply", "-f", good, "-t", "does-not-exist"}, []string{"does-not-exist: no such theme"}},
		{"missing pattern file", []string{"apply", "-f", filepath.Join(dir, "missing.toml")}, []string{"missing.toml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			code, _, stderr := execute(t, tt.args...)
			require.Equal(t, ExitError, code)
			for _, want := range tt.want {
				require.Contains(t, stderr, want)
			}
		})
	}
}

func TestParseColorSpec(t *testing.T) {
	defaults := parseColorSpec("")
	for _, element := range []string{"args", "groups", "metavar", "prog", "syntax"} {
		require.Contains(t, defaults, element)
	}
	require.NotContains(t, defaults, "help")
	require.NotContains(t, defaults, "text")

	styles := parseColorSpec("args=red:bogus=blue:nonsense:metavar=not a style:prog=bold")
	require.Len(t, styles, 2)
	require.Equal(t, "\x1b[31mx\x1b[0m", styles["args"].Render("x"))
	require.Equal(t, "\x1b[1mx\x1b[0m", styles["prog"].Render("x"))
}
