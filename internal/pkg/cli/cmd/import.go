package cmd

import (
	"github.com/spf13/cobra"

	"github.com/purpose-first/plans-as-code/internal/pkg/filesystem"
	"github.com/purpose-first/plans-as-code/internal/pkg/model"
	"github.com/purpose-first/plans-as-code/internal/pkg/plan/store"
)

func ImportCommand(root *RootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "import <path>",
		Short: "Load a plan collection from a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := root.Deps

			fs, err := filesystem.NewLocalFs(filesystem.Dir(args[0]))
			if err != nil {
				return err
			}
			var plans model.Plans
			if err := fs.ReadJSONFileTo(filesystem.Base(args[0]), "plans", &plans); err != nil {
				return err
			}

			// Incomplete plans are reported but imported
			if err := store.ValidateImport(cmd.Context(), plans); err != nil {
				root.Logger.Warnf("Import warnings:\n%s", err)
			}

			previous, err := d.Storage().LoadPlans()
			if err != nil {
				return err
			}

			planStore, err := d.PlanStore()
			if err != nil {
				return err
			}
			planStore.Load(plans)

			if len(previous) > 0 {
				if err := d.Storage().PushHistory(previous); err != nil {
					return err
				}
			}
			if err := d.Storage().SavePlans(planStore.Plans()); err != nil {
				return err
			}

			root.Logger.Infof(`Imported %d plans from "%s".`, len(planStore.Plans()), args[0])
			return nil
		},
	}
}
