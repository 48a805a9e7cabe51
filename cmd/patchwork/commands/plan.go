package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/patchwork/internal/app"
)

func (c *CLI) newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Evaluate the recipe into a build plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			locked, _ := cmd.Flags().GetBool("locked")
			expression, _ := cmd.Flags().GetBool("expression")

			return c.app.Plan(cmd.Context(), c.workingDir(cmd), app.PlanOptions{
				Locked:     locked,
				Expression: expression,
			})
		},
	}

	cmd.Flags().Bool("locked", false, "Resolve inputs from the lockfile only")
	cmd.Flags().Bool("expression", false, "Print the Nix derivation expression instead of the plan")

	return cmd
}
