package agents

import (
	"fmt"
	"strings"

	"github.com/dyeshell/dye/internal/dyeerr"
	"github.com/dyeshell/dye/internal/pattern"
	"github.com/dyeshell/dye/internal/style"
)

// codeEntry pairs a friendly style name with a tool's native code.
type codeEntry struct {
	name string
	code string
}

// codeMap resolves friendly names and native codes to native codes.
type codeMap struct {
	entries []codeEntry
	lookup  map[string]string
}

func newCodeMap(entries []codeEntry) *codeMap {
	m := &codeMap{entries: entries, lookup: make(map[string]string, len(entries)*2)}
	for _, e := range entries {
		m.lookup[e.name] = e.code
		m.lookup[e.code] = e.code
	}
	return m
}

var lsCodes = newCodeMap([]codeEntry{
	{"text", "no"},
	{"file", "fi"},
	{"directory", "di"},
	{"symlink", "ln"},
	{"multi_hard_link", "mh"},
	{"pipe", "pi"},
	{"socket", "so"},
	{"door", "do"},
	{"block_device", "bd"},
	{"character_device", "cd"},
	{"broken_symlink", "or"},
	{"missing_symlink_target", "mi"},
	{"setuid", "su"},
	{"setgid", "sg"},
	{"sticky", "st"},
	{"other_writable", "ow"},
	{"sticky_other_writable", "tw"},
	{"executable_file", "ex"},
	{"file_with_capability", "ca"},
})

var exaCodes = newCodeMap(append(append([]codeEntry{}, lsCodes.entries...),
	codeEntry{"perms_user_read", "ur"},
	codeEntry{"perms_user_write", "uw"},
	codeEntry{"perms_user_execute_files", "ux"},
	codeEntry{"perms_user_execute_directories", "ue"},
	codeEntry{"perms_group_read", "gr"},
	codeEntry{"perms_group_write", "gw"},
	codeEntry{"perms_group_execute", "gx"},
	codeEntry{"perms_other_read", "tr"},
	codeEntry{"perms_other_write", "tw"},
	codeEntry{"perms_other_execute", "tx"},
	codeEntry{"perms_suid_files", "su"},
	codeEntry{"perms_sticky_directories", "sf"},
	codeEntry{"perms_extended_attribute", "xa"},
	codeEntry{"size_number", "sn"},
	codeEntry{"size_unit", "sb"},
	codeEntry{"df", "df"},
	codeEntry{"ds", "ds"},
	codeEntry{"uu", "uu"},
	codeEntry{"un", "un"},
	codeEntry{"gu", "gu"},
	codeEntry{"gn", "gn"},
	codeEntry{"lc", "lc"},
	codeEntry{"lm", "lm"},
	codeEntry{"ga", "ga"},
	codeEntry{"gm", "gm"},
	codeEntry{"gd", "gd"},
	codeEntry{"gv", "gv"},
	codeEntry{"gt", "gt"},
	codeEntry{"punctuation", "xx"},
	codeEntry{"date_time", "da"},
	codeEntry{"in", "in"},
	codeEntry{"bl", "bl"},
	codeEntry{"column_headers", "hd"},
	codeEntry{"lp", "lp"},
	codeEntry{"cc", "cc"},
	codeEntry{"b0", "b0"},
))

// Friendly names follow the keys of eza's own theme.yml.
var ezaCodes = newCodeMap([]codeEntry{
	{"filekinds:normal", "fi"},
	{"filekinds:directory", "di"},
	{"filekinds:symlink", "ln"},
	{"filekinds:pipe", "pi"},
	{"filekinds:block_device", "bd"},
	{"filekinds:char_device", "cd"},
	{"filekinds:socket", "so"},
	{"filekinds:special", "sp"},
	{"filekinds:executable", "ex"},
	{"filekinds:mount_point", "mp"},

	{"perms:user_read", "ur"},
	{"perms:user_write", "uw"},
	{"perms:user_executable_file", "ux"},
	{"perms:user_execute_other", "ue"},
	{"perms:group_read", "gr"},
	{"perms:group_write", "gw"},
	{"perms:group_execute", "gx"},
	{"perms:other_read", "tr"},
	{"perms:other_write", "tw"},
	{"perms:other_execute", "tx"},
	{"perms:special_user_file", "su"},
	{"perms:special_other", "sf"},
	{"perms:attribute", "xa"},

	{"size:major", "df"},
	{"size:minor", "ds"},
	{"size:number_style", "sn"},
	{"size:number_byte", "nb"},
	{"size:number_kilo", "nk"},
	{"size:number_mega", "nm"},
	{"size:number_giga", "ng"},
	{"size:number_huge", "nt"},
	{"size:unit_style", "sb"},
	{"size:unit_byte", "ub"},
	{"size:unit_kilo", "uk"},
	{"size:unit_mega", "um"},
	{"size:unit_giga", "ug"},
	{"size:unit_huge", "ut"},

	{"users:user_you", "uu"},
	{"users:user_other", "un"},
	{"users:user_root", "uR"},
	{"users:group_yours", "gu"},
	{"users:group_other", "gn"},
	{"users:group_root", "gR"},

	{"links:normal", "lc"},
	{"links:multi_link_file", "lm"},

	{"git:new", "ga"},
	{"git:modified", "gm"},
	{"git:deleted", "gd"},
	{"git:renamed", "gv"},
	{"git:typechange", "gt"},
	{"git:ignored", "gi"},
	{"git:conflicted", "gc"},

	{"git_repo:branch_main", "Gm"},
	{"git_repo:branch_other", "Go"},
	{"git_repo:git_clean", "Gc"},
	{"git_repo:git_dirty", "Gd"},

	{"selinux:colon", "Sn"},
	{"selinux:user", "Su"},
	{"selinux:role", "Sr"},
	{"selinux:typ", "St"},
	{"selinux:range", "Sl"},

	{"file_type:image", "im"},
	{"file_type:video", "vi"},
	{"file_type:music", "mu"},
	{"file_type:lossless", "lo"},
	{"file_type:crypto", "cr"},
	{"file_type:document", "do"},
	{"file_type:compressed", "co"},
	{"file_type:temp", "tm"},
	{"file_type:compiled", "cm"},
	{"file_type:build", "bu"},
	{"file_type:source", "sc"},

	{"punctuation", "xx"},
	{"date", "da"},
	{"inode", "in"},
	{"blocks", "bl"},
	{"header", "hd"},
	{"octal", "oc"},
	{"flags", "ff"},
	{"symlink_path", "lp"},
	{"control_char", "cc"},
	{"broken_path_overlay", "b0"},
	{"broken_symlink", "or"},
})

// colorsVariable renders styles into an LS_COLORS style variable.
type colorsVariable struct {
	scope    *pattern.Scope
	codes    *codeMap
	variable string
	// lenient accepts names missing from codes as literal codes.
	lenient bool
	// fillBuiltins fills every unset builtin code with the default style
	// when clear_builtin is set. Otherwise clear_builtin emits "reset".
	fillBuiltins bool
}

func newLsColors(s *pattern.Scope) Agent {
	return &colorsVariable{scope: s, codes: lsCodes, variable: "LS_COLORS", fillBuiltins: true}
}

func newExaColors(s *pattern.Scope) Agent {
	return &colorsVariable{scope: s, codes: exaCodes, variable: "EXA_COLORS"}
}

func newEzaColors(s *pattern.Scope) Agent {
	return &colorsVariable{scope: s, codes: ezaCodes, variable: "EZA_COLORS", lenient: true}
}

func (a *colorsVariable) Generate() (string, error) {
	clearBuiltin, err := a.scope.Bool("clear_builtin", false)
	if err != nil {
		return "", err
	}

	var out []string
	if clearBuiltin && !a.fillBuiltins {
		out = append(out, "reset")
	}

	have := make(map[string]bool)
	for _, name := range a.scope.Styles.Names() {
		s, _ := a.scope.Styles.Get(name)
		if s.IsEmpty() {
			continue
		}
		code, ok := a.codes.lookup[name]
		if !ok {
			if !a.lenient {
				return "", dyeerr.Configf(a.scope.Name, "styles", "unknown style '%s'", name)
			}
			code = name
		}
		have[code] = true
		out = append(out, code+"="+lsSGR(s))
	}

	if clearBuiltin && a.fillBuiltins {
		def := style.MustParse("default")
		for _, e := range a.codes.entries {
			if have[e.code] {
				continue
			}
			have[e.code] = true
			out = append(out, e.code+"="+lsSGR(def))
		}
	}

	variable, err := environmentVariable(a.scope, a.variable)
	if err != nil {
		return "", err
	}
	// The variable is always set so a previous value is replaced.
	return fmt.Sprintf("export %s=\"%s\"", variable, strings.Join(out, ":")), nil
}

func lsSGR(s style.Style) string {
	if s.Fg != nil && s.Fg.IsDefault() {
		return "0"
	}
	return s.SGR()
}
