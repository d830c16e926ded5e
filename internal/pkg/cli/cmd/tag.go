package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/purpose-first/plans-as-code/internal/pkg/utils/errors"
)

func TagCommands(root *RootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage group display tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(
		TagSetCommand(root),
		TagUnsetCommand(root),
		TagListCommand(root),
	)
	return cmd
}

func TagSetCommand(root *RootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "set <group> <label>",
		Short: "Set a group's display tag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := root.Deps
			tags, err := d.Storage().LoadTags()
			if err != nil {
				return err
			}
			tags[args[0]] = args[1]
			if err := d.Storage().SaveTags(tags); err != nil {
				return err
			}
			root.Logger.Infof(`Group "%s" tagged "%s".`, args[0], args[1])
			return nil
		},
	}
}

func TagUnsetCommand(root *RootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "unset <group>",
		Short: "Remove a group's display tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := root.Deps
			tags, err := d.Storage().LoadTags()
			if err != nil {
				return err
			}
			if _, found := tags[args[0]]; !found {
				return errors.Errorf(`group "%s" has no tag`, args[0])
			}
			delete(tags, args[0])
			if err := d.Storage().SaveTags(tags); err != nil {
				return err
			}
			root.Logger.Infof(`Tag of group "%s" removed.`, args[0])
			return nil
		},
	}
}

func TagListCommand(root *RootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List group display tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := root.Deps.Storage().LoadTags()
			if err != nil {
				return err
			}
			if len(tags) == 0 {
				root.Logger.Info("No group tags.")
				return nil
			}
			groups := make([]string, 0, len(tags))
			for group := range tags {
				groups = append(groups, group)
			}
			sort.Strings(groups)
			for _, group := range groups {
				cmd.Println(fmt.Sprintf("%s: %s", group, tags[group]))
			}
			return nil
		},
	}
}
