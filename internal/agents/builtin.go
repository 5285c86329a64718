package agents

import "github.com/dyeshell/dye/internal/pattern"

var builtins = []struct {
	label       string
	description string
	factory     Factory
}{
	{"EnvironmentVariables", "Export and unset environment variables", func(s *pattern.Scope) Agent { return &environmentVariables{scope: s} }},
	{"Fzf", "Set fzf options and environment variables", func(s *pattern.Scope) Agent { return &fzf{scope: s} }},
	{"LsColors", "Create LS_COLORS environment variable for use with GNU ls", func(s *pattern.Scope) Agent { return newLsColors(s) }},
	{"ExaColors", "Create EXA_COLORS environment variable for use with ls replacement exa", func(s *pattern.Scope) Agent { return newExaColors(s) }},
	{"EzaColors", "Create EZA_COLORS environment variable for use with ls replacement eza", func(s *pattern.Scope) Agent { return newEzaColors(s) }},
	{"Iterm", "Send escape sequences to iTerm terminal emulator", func(s *pattern.Scope) Agent { return &iterm{scope: s} }},
	{"Shell", "Execute arbitrary shell commands", func(s *pattern.Scope) Agent { return &shellCommands{scope: s} }},
}

func newBuiltinRegistry() *Registry {
	r := NewRegistry()
	for _, b := range builtins {
		r.MustRegister(Definition{
			Name:        NameOf(b.label),
			Description: b.description,
			New:         b.factory,
		})
	}
	return r
}
