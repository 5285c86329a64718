package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dyeshell/dye/internal/config"
	"github.com/dyeshell/dye/internal/logging"
	"github.com/dyeshell/dye/internal/style"
)

var helpLogger = logging.Component("help")

// helpElements are the parts of help output a colorspec can style.
var helpElements = []string{"args", "groups", "help", "metavar", "prog", "syntax", "text"}

// defaultHelpColors apply when no colorspec is configured.
var defaultHelpColors = map[string]string{
	"args":    "cyan",
	"groups":  "dark_orange",
	"help":    "default",
	"metavar": "dark_cyan",
	"prog":    "grey50",
	"syntax":  "bold",
	"text":    "default",
}

// helpStyles holds the styles used by the help templates. A nil map prints
// plain text.
var helpStyles map[string]style.Style

const helpTemplate = `{{with (or .Long .Short)}}{{text (trimTrailingWhitespaces .)}}

{{end}}{{if or .Runnable .HasSubCommands}}{{.UsageString}}{{end}}`

const usageTemplate = `{{groups "Usage:"}}{{if .Runnable}}
  {{prog .UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{prog .CommandPath}} {{metavar "<command>"}}{{end}}{{if gt (len .Aliases) 0}}

{{groups "Aliases:"}}
  {{text .NameAndAliases}}{{end}}{{if .HasExample}}

{{groups "Examples:"}}
{{syntax .Example}}{{end}}{{if .HasAvailableSubCommands}}

{{groups "Commands:"}}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{args (rpad .Name .NamePadding)}} {{help .Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{groups "Flags:"}}
{{flagUsages .LocalFlags}}{{end}}{{if .HasAvailableInheritedFlags}}

{{groups "Global Flags:"}}
{{flagUsages .InheritedFlags}}{{end}}{{if .HasAvailableSubCommands}}

{{text "type"}} {{syntax (printf "%s <command> -h" .CommandPath)}} {{text "for command specific help"}}{{end}}
`

func installHelp(cmd *cobra.Command) {
	funcs := template.FuncMap{"flagUsages": flagUsages}
	for _, element := range helpElements {
		funcs[element] = styler(element)
	}
	cobra.AddTemplateFuncs(funcs)

	cmd.SetHelpTemplate(helpTemplate)
	cmd.SetUsageTemplate(usageTemplate)

	render := cmd.HelpFunc()
	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		configureHelpStyles(c.OutOrStdout())
		render(c, args)
	})
}

func styler(element string) func(string) string {
	return func(text string) string {
		s, ok := helpStyles[element]
		if !ok {
			return text
		}
		return s.Render(text)
	}
}

// configureHelpStyles selects help colors for output written to w. Flags
// win over the environment: --color, then --no-color, then NO_COLOR, then
// DYE_COLORS. Without --color or --force-color, colors are only used when
// w is a terminal.
func configureHelpStyles(w io.Writer) {
	cfg, err := config.Load()
	if err != nil {
		helpLogger.Debug().Err(err).Msg("using default settings for help colors")
		cfg = config.DefaultConfig()
	}

	spec, enabled := helpColorSpec(cfg)
	forced := colorSpec != "" || forceColor
	if !enabled || (!forced && !isTerminal(w)) {
		helpStyles = nil
		return
	}
	helpStyles = parseColorSpec(spec)
}

// helpColorSpec returns the colorspec to use and whether help output should
// be colored at all. An empty spec with enabled set means the defaults.
func helpColorSpec(cfg *config.Config) (string, bool) {
	switch {
	case colorSpec != "":
		helpLogger.Debug().Msg("help styles set from --color")
		return colorSpec, true
	case noColorFlag:
		helpLogger.Debug().Msg("help styles disabled because of --no-color")
		return "", false
	case cfg.NoColor:
		helpLogger.Debug().Msg("help styles disabled because NO_COLOR is set")
		return "", false
	case cfg.ColorsSet && cfg.Colors == "":
		helpLogger.Debug().Msg("help styles disabled because DYE_COLORS is empty")
		return "", false
	case cfg.ColorsSet:
		helpLogger.Debug().Msg("help styles set from DYE_COLORS")
		return cfg.Colors, true
	}
	return "", true
}

// parseColorSpec turns "element=style:element=style" into help styles. An
// empty spec yields the defaults. Otherwise every element not named in the
// spec is left unstyled. Clauses without "=", unknown elements and styles
// that do not parse are ignored.
func parseColorSpec(spec string) map[string]style.Style {
	defs := make(map[string]string, len(helpElements))
	if spec == "" {
		for element, def := range defaultHelpColors {
			defs[element] = def
		}
	} else {
		for _, element := range helpElements {
			defs[element] = "default"
		}
		for _, clause := range strings.Split(spec, ":") {
			element, def, ok := strings.Cut(clause, "=")
			if !ok {
				continue
			}
			if _, known := defs[element]; known {
				defs[element] = def
			}
		}
	}

	styles := make(map[string]style.Style, len(defs))
	for element, def := range defs {
		if strings.TrimSpace(def) == "default" {
			continue
		}
		s, err := style.Parse(def)
		if err != nil {
			helpLogger.Debug().Err(err).Str("element", element).Msg("ignoring help style")
			continue
		}
		styles[element] = s
	}
	return styles
}

type flagLine struct {
	names   string
	metavar string
	usage   string
}

func (l flagLine) width() int {
	if l.metavar == "" {
		return len(l.names)
	}
	return len(l.names) + 1 + len(l.metavar)
}

// flagUsages formats fs like pflag does, with flag names, metavars, and
// usage text styled separately.
func flagUsages(fs *pflag.FlagSet) string {
	var lines []flagLine
	widest := 0
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		line := flagLine{names: "    --" + f.Name}
		if f.Shorthand != "" && f.ShorthandDeprecated == "" {
			line.names = "-" + f.Shorthand + ", --" + f.Name
		}
		varname, usage := pflag.UnquoteUsage(f)
		if varname != "" {
			line.metavar = "<" + varname + ">"
		}
		line.usage = usage
		if w := line.width(); w > widest {
			widest = w
		}
		lines = append(lines, line)
	})

	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("  ")
		b.WriteString(styler("args")(line.names))
		if line.metavar != "" {
			b.WriteString(" ")
			b.WriteString(styler("metavar")(line.metavar))
		}
		fmt.Fprintf(&b, "%s   %s", strings.Repeat(" ", widest-line.width()), styler("help")(line.usage))
	}
	return b.String()
}
