package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install <spec>...",
		Short: "Install packages into an environment",
		Long: `Install resolves the requested packages together with everything already
installed, stages the result, and applies it atomically. Specs use pip
requirement syntax: "requests", "requests==2.31.0", "requests>=2.30,<3".`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			envPath, _ := cmd.Flags().GetString("env")
			return c.app.Install(cmd.Context(), envPath, args)
		},
	}
}
