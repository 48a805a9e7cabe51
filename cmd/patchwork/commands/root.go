// Package commands implements the CLI commands for the patchwork tool.
package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.trai.ch/patchwork/internal/app"
)

// CLI represents the command line interface for patchwork.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "patchwork",
		Short:         "Evaluate build recipes and patch dependency trees",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("directory", "C", ".", "Directory to discover the workspace from")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newPlanCmd())
	rootCmd.AddCommand(c.newLockCmd())
	rootCmd.AddCommand(c.newPatchCmd())
	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

func (c *CLI) workingDir(cmd *cobra.Command) string {
	dir, err := cmd.Flags().GetString("directory")
	if err != nil || dir == "" {
		return "."
	}
	return dir
}
