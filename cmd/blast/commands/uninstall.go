package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall <name>...",
		Short: "Remove packages from an environment",
		Long: `Uninstall removes the named packages. Packages are addressed by name
alone; dependencies pulled in by the removed packages stay installed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			envPath, _ := cmd.Flags().GetString("env")
			return c.app.Uninstall(cmd.Context(), envPath, args)
		},
	}
}
