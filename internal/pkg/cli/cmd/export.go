package cmd

import (
	"github.com/spf13/cobra"

	"github.com/purpose-first/plans-as-code/internal/pkg/encoding/json"
	"github.com/purpose-first/plans-as-code/internal/pkg/filesystem"
)

func ExportCommand(root *RootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Write the plan collection as a JSON export",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := root.Deps

			plans, err := d.Storage().LoadPlans()
			if err != nil {
				return err
			}
			content, err := json.EncodeString(plans, true)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				cmd.Println(content)
				return nil
			}

			fs, err := filesystem.NewLocalFs(filesystem.Dir(args[0]))
			if err != nil {
				return err
			}
			if err := fs.WriteFile(filesystem.NewFile(filesystem.Base(args[0]), content).SetDesc("plans export")); err != nil {
				return err
			}
			root.Logger.Infof(`Exported %d plans to "%s".`, len(plans), args[0])
			return nil
		},
	}
}
