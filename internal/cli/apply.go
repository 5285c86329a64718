package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/dyeshell/dye/internal/apply"
)

var (
	applyInputs   inputFlags
	applyScopes   []string
	applyComments bool
)

func init() {
	rootCmd.AddCommand(applyCmd)

	addInputFlags(applyCmd, &applyInputs, false)
	applyCmd.Flags().StringSliceVarP(&applyScopes, "scope", "s", nil, "only apply the given `scope`, or a comma separated list of scopes")
	applyCmd.Flags().BoolVarP(&applyComments, "comment", "c", false, "add comments to the generated shell output")
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "apply a pattern",
	Long: `Apply a pattern, writing shell code for every enabled scope to standard
output. Evaluate the output in your shell to activate the colors.`,
	Example: `  eval "$(dye apply)"
  dye apply -t dracula -f ~/.dye/pattern.toml -s ls_colors,fzf`,
	Args: usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		ctx := cmd.Context()

		theme, err := loadTheme(&applyInputs, cfg, false)
		if err != nil {
			return err
		}
		p, err := loadPattern(ctx, &applyInputs, cfg, true, theme)
		if err != nil {
			return err
		}

		applier := apply.New(p, cfg.Executor())
		applier.Comments = applyComments
		return applier.Apply(ctx, cmd.OutOrStdout(), scopeList(applyScopes))
	},
}

func scopeList(values []string) []string {
	var scopes []string
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			scopes = append(scopes, value)
		}
	}
	return scopes
}
