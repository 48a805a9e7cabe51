package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/patchwork/internal/adapters/nix"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Realize every input of the recipe into the Nix store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			system, _ := cmd.Flags().GetString("system")
			locked, _ := cmd.Flags().GetBool("locked")
			return c.app.Build(cmd.Context(), c.workingDir(cmd), system, locked)
		},
	}

	cmd.Flags().String("system", nix.CurrentSystem(), "System architecture to realize for")
	cmd.Flags().Bool("locked", false, "Resolve inputs from the lockfile only")

	return cmd
}
