package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <path>",
		Short: "Create a new isolated environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pythonVersion, _ := cmd.Flags().GetString("python-version")
			env, err := c.app.Create(cmd.Context(), args[0], pythonVersion)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created environment at %s\n", env.Path)
			return nil
		},
	}
	cmd.Flags().StringP("python-version", "p", "", "Interpreter version for the environment, e.g. 3.12")
	return cmd
}
