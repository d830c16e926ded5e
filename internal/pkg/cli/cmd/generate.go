package cmd

import (
	"github.com/spf13/cobra"

	"github.com/purpose-first/plans-as-code/internal/pkg/model"
	"github.com/purpose-first/plans-as-code/internal/pkg/rst"
	"github.com/purpose-first/plans-as-code/internal/pkg/synthesis"
	"github.com/purpose-first/plans-as-code/internal/pkg/utils/errors"
)

func GenerateCommand(root *RootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Synthesize contextual integrated examples and cache them per group",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := root.Deps

			synthesizer, err := d.Synthesizer()
			if err != nil {
				return err
			}
			planStore, err := d.PlanStore()
			if err != nil {
				return err
			}
			plans := planStore.Plans()
			cached, err := d.Storage().LoadExamples()
			if err != nil {
				return err
			}

			group, _ := cmd.Flags().GetString("group")
			hint, _ := cmd.Flags().GetString("context")

			// Synthesis grows the changeable-area vocabulary,
			// keep the pre-growth collection for undo
			previous := plans.Clone()

			if group == "" {
				examples, err := synthesizer.SynthesizeAll(cmd.Context(), plans, hint)
				if err != nil {
					return err
				}
				if len(examples) == 0 {
					root.Logger.Warn("No contextual example was generated.")
					return nil
				}
				for name, example := range examples {
					cached[name] = example
					root.Logger.Infof(`Generated contextual example for group "%s".`, name)
				}
			} else {
				_, buckets := rst.GroupsByLegacyField(plans)
				groupPlans, found := buckets[group]
				if !found {
					return errors.Errorf(`group "%s" has no plans`, group)
				}
				context, err := synthesizer.Synthesize(cmd.Context(), group, groupPlans, hint)
				if err != nil {
					return err
				}
				synthesis.GrowVocabulary(plans, groupPlans, context)
				cached[group] = &model.ContextualExample{
					Context:    context,
					RSTContent: rst.GenerateGroupDocument(group, groupPlans, context),
				}
				root.Logger.Infof(`Generated contextual example for group "%s".`, group)
			}

			if err := d.Storage().SaveExamples(cached); err != nil {
				return err
			}
			if err := d.Storage().PushHistory(previous); err != nil {
				return err
			}
			return d.Storage().SavePlans(plans)
		},
	}

	cmd.Flags().StringP("group", "g", "", "synthesize one group instead of all")
	cmd.Flags().String("context", "", "extra user context for the synthesis prompt")
	return cmd
}
