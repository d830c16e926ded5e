package cmd

import (
	"github.com/spf13/cobra"

	"github.com/purpose-first/plans-as-code/internal/pkg/utils/errors"
)

func UndoCommand(root *RootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Restore the plan collection from the most recent snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := root.Deps
			snapshot, found, err := d.Storage().PopHistory()
			if err != nil {
				return err
			}
			if !found {
				return errors.New("nothing to undo")
			}
			if err := d.Storage().SavePlans(snapshot); err != nil {
				return err
			}
			root.Logger.Infof("Restored the previous plan collection, %d plans.", len(snapshot))
			return nil
		},
	}
}
