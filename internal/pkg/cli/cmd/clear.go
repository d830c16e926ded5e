package cmd

import (
	"github.com/spf13/cobra"

	"github.com/purpose-first/plans-as-code/internal/pkg/utils/errors"
)

func ClearCommand(root *RootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all persisted state",
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			if !force {
				return errors.New(`this removes the plans, credential, cached examples and tags, confirm with the "--force" flag`)
			}
			if err := root.Deps.Storage().Clear(); err != nil {
				return err
			}
			root.Logger.Info("State cleared.")
			return nil
		},
	}

	cmd.Flags().Bool("force", false, "confirm the removal")
	return cmd
}
