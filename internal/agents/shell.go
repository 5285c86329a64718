package agents

import (
	"strings"

	"github.com/dyeshell/dye/internal/dyeerr"
	"github.com/dyeshell/dye/internal/pattern"
)

type shellCommands struct {
	scope *pattern.Scope
}

// Generate emits each entry of the command table as-is, in order. The
// scope definition has already been interpolated.
func (a *shellCommands) Generate() (string, error) {
	v, ok := a.scope.Get("command")
	if !ok {
		return "", nil
	}
	commands, ok := v.AsTable()
	if !ok {
		return "", dyeerr.Configf(a.scope.Name, "command", "'command' must be a table of shell commands")
	}

	out := make([]string, 0, commands.Len())
	for _, key := range commands.Keys() {
		cmd, _ := commands.Get(key)
		if !cmd.IsScalar() {
			return "", dyeerr.Configf(a.scope.Name, "command", "command '%s' must be a string", key)
		}
		out = append(out, cmd.Text())
	}
	return strings.Join(out, "\n"), nil
}
