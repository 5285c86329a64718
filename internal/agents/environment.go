package agents

import (
	"fmt"
	"strings"

	"github.com/dyeshell/dye/internal/document"
	"github.com/dyeshell/dye/internal/dyeerr"
	"github.com/dyeshell/dye/internal/pattern"
)

type environmentVariables struct {
	scope *pattern.Scope
}

func (a *environmentVariables) Generate() (string, error) {
	var out []string

	if v, ok := a.scope.Get("unset"); ok {
		names, err := unsetNames(a.scope.Name, v)
		if err != nil {
			return "", err
		}
		for _, name := range names {
			out = append(out, "unset "+name)
		}
	}

	if v, ok := a.scope.Get("export"); ok {
		exports, ok := v.AsTable()
		if !ok {
			return "", dyeerr.Configf(a.scope.Name, "export", "'export' must be a table")
		}
		in := a.scope.Interpolator()
		for _, key := range exports.Keys() {
			value, _ := exports.Get(key)
			if !value.IsScalar() {
				return "", dyeerr.Configf(a.scope.Name, "export", "value of '%s' must be a string", key)
			}
			out = append(out, fmt.Sprintf("export %s=\"%s\"", in.Interpolate(key), value.Text()))
		}
	}

	return strings.Join(out, "\n"), nil
}

// unsetNames accepts either a single name or a list of names.
func unsetNames(scope string, v document.Value) ([]string, error) {
	if name, ok := v.AsString(); ok {
		return []string{name}, nil
	}
	items, ok := v.AsList()
	if !ok {
		return nil, dyeerr.Configf(scope, "unset", "'unset' must be a string or a list of strings")
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		if !item.IsScalar() {
			return nil, dyeerr.Configf(scope, "unset", "'unset' must be a string or a list of strings")
		}
		names = append(names, item.Text())
	}
	return names, nil
}
