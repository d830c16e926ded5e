package cmd

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/purpose-first/plans-as-code/internal/pkg/archive"
	"github.com/purpose-first/plans-as-code/internal/pkg/encoding/json"
	"github.com/purpose-first/plans-as-code/internal/pkg/filesystem"
	"github.com/purpose-first/plans-as-code/internal/pkg/rst"
)

func BuildCommand(root *RootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile the plan collection into an RST document tree and a packaged archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := root.Deps

			planStore, err := d.PlanStore()
			if err != nil {
				return err
			}
			plans := planStore.Plans()
			if len(plans) == 0 {
				root.Logger.Warn("The plan collection is empty, only the index will be generated.")
			}

			cached, err := d.Storage().LoadExamples()
			if err != nil {
				return err
			}

			// Groups without a cached contextual example are synthesized
			// live when a credential is configured, otherwise the build
			// falls back to the plain rendering.
			var source rst.ContextSource
			if synthesizer, err := d.Synthesizer(); err == nil {
				source = synthesizer
			} else {
				root.Logger.Debugf("Building offline: %s", err)
			}

			generator := rst.NewGenerator(d, source)
			files, err := generator.Generate(cmd.Context(), plans, cached)
			if err != nil {
				return err
			}

			// The raw export ships next to the documents
			export, err := json.EncodeString(plans, true)
			if err != nil {
				return err
			}
			files["plans.json"] = export

			out, err := root.fsFactory(root.Options.OutputDir)
			if err != nil {
				return err
			}
			paths := make([]string, 0, len(files))
			for path := range files {
				paths = append(paths, path)
			}
			sort.Strings(paths)
			for _, path := range paths {
				if err := out.WriteFile(filesystem.NewFile(path, files[path]).SetDesc("document")); err != nil {
					return err
				}
				root.Logger.Debugf(`Generated "%s".`, path)
			}

			skipArchive, _ := cmd.Flags().GetBool("skip-archive")
			if !skipArchive {
				data, err := archive.Create(files)
				if err != nil {
					return err
				}
				if err := out.WriteFile(filesystem.NewFile(archive.Name, string(data)).SetDesc("archive")); err != nil {
					return err
				}
			}

			root.Logger.Infof(`Generated %d documents into "%s".`, len(files), root.Options.OutputDir)
			return nil
		},
	}

	cmd.Flags().Bool("skip-archive", false, "do not package the documents into an archive")
	return cmd
}
