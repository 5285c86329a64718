package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dyeshell/dye/internal/pattern"
)

var themesLong bool

func init() {
	rootCmd.AddCommand(themesCmd)
	themesCmd.Flags().BoolVarP(&themesLong, "long", "l", false, "show where each theme comes from")
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "list all themes",
	Long: `List the themes in $DYE_DIR/themes together with the themes built into
dye. A theme file in $DYE_DIR/themes hides a builtin theme of the same name.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := GetConfig().RequireThemesDir()
		if err != nil {
			return err
		}
		themes, err := pattern.ListAllThemes(dir)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if IsJSONOutput() {
			return WriteOutput(out, themes)
		}
		if themesLong {
			rows := make([][]string, 0, len(themes))
			for _, theme := range themes {
				rows = append(rows, []string{theme.Name, formatYesNo(theme.Source == pattern.BuiltinSource), theme.Source})
			}
			return writeTable(out, []string{"Theme", "Builtin", "Source"}, rows)
		}
		for _, theme := range themes {
			if _, err := fmt.Fprintln(out, theme.Name); err != nil {
				return err
			}
		}
		return nil
	},
}
