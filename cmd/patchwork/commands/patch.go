package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newPatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Apply dependency replacements across the workspace",
		Long: `Apply dependency replacements across the workspace.

Each --replace name=url entry points the named dependency at a git
repository. Packages that transitively depend on a replaced dependency
are vendored under the workspace root and their recipes rewritten to
use the patched copies.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			replace, _ := cmd.Flags().GetStringArray("replace")
			return c.app.Patch(cmd.Context(), c.workingDir(cmd), replace)
		},
	}

	cmd.Flags().StringArray("replace", nil, "Replace a dependency with a git repository (name=url)")

	return cmd
}
