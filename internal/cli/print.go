package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dyeshell/dye/internal/pattern"
	"github.com/dyeshell/dye/internal/style"
)

var (
	printInputs    inputFlags
	printStyle     string
	printNoNewline bool
)

func init() {
	rootCmd.AddCommand(printCmd)

	printCmd.Flags().BoolVarP(&printNoNewline, "no-newline", "n", false, "do not append a newline")
	addInputFlags(printCmd, &printInputs, true)
	printCmd.Flags().StringVarP(&printStyle, "style", "s", "", "apply this `style` to the output, either a style name or a style description")
}

var printCmd = &cobra.Command{
	Use:   "print [string...]",
	Short: "print text using styles from a theme or pattern",
	Long: `Print text using styles from a theme or pattern.
String arguments are printed, separated by a space, and followed
by a newline character, to standard output.`,
	Example: `  dye print -t dracula -s "bold red" error: something broke
  dye print -n -s accent "> "`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		theme, err := loadTheme(&printInputs, cfg, false)
		if err != nil {
			return err
		}
		p, err := loadPattern(cmd.Context(), &printInputs, cfg, false, theme)
		if err != nil {
			return err
		}
		if p == nil {
			p = pattern.Empty(theme)
		}

		text := strings.Join(args, " ")
		if printStyle != "" {
			s, err := style.LookupOrParse(printStyle, p.Styles)
			if err != nil {
				return err
			}
			if colorEnabled(cmd.OutOrStdout()) {
				text = s.Render(text)
			}
		}
		if !printNoNewline {
			text += "\n"
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	},
}
