package cli

import (
	"github.com/spf13/cobra"

	"github.com/dyeshell/dye/internal/agents"
)

func init() {
	rootCmd.AddCommand(agentsCmd)
}

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "list all known agents",
	Args:  usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		defs := agents.List()
		if IsJSONOutput() {
			return WriteOutput(cmd.OutOrStdout(), defs)
		}

		rows := make([][]string, 0, len(defs))
		for _, def := range defs {
			rows = append(rows, []string{def.Name, def.Description})
		}
		return writeTable(cmd.OutOrStdout(), []string{"Agent", "Description"}, rows)
	},
}
