// Package cmd defines the pac CLI commands.
package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/purpose-first/plans-as-code/internal/pkg/build"
	"github.com/purpose-first/plans-as-code/internal/pkg/cli/dependencies"
	"github.com/purpose-first/plans-as-code/internal/pkg/cli/options"
	"github.com/purpose-first/plans-as-code/internal/pkg/filesystem"
	"github.com/purpose-first/plans-as-code/internal/pkg/log"
	"github.com/purpose-first/plans-as-code/internal/pkg/utils/errors"
)

// nolint: gochecknoinits
func init() {
	// Disable commands auto-sorting
	cobra.EnableCommandSorting = false
}

// FsFactory creates the filesystem for the state directory.
// Tests inject an in-memory implementation.
type FsFactory func(basePath string) (filesystem.Fs, error)

type RootCommand struct {
	*cobra.Command
	Options *options.Options
	Logger  *zap.SugaredLogger
	Deps    *dependencies.Container

	stdout    io.Writer
	fsFactory FsFactory
}

// NewRootCommand creates parent of all sub-commands.
func NewRootCommand(stdout, stderr io.Writer, fsFactory FsFactory) *RootCommand {
	root := &RootCommand{
		Options:   options.New(),
		stdout:    stdout,
		fsFactory: fsFactory,
	}
	root.Command = &cobra.Command{
		Use:           "pac",
		Version:       fmt.Sprintf("%s, build date %s, git commit %s", build.BuildVersion, build.BuildDate, build.GitCommit),
		Short:         "Author programming plan collections and compile them into Runestone documents.",
		SilenceUsage:  true,
		SilenceErrors: true, // custom error handling, see printError
		RunE: func(cmd *cobra.Command, args []string) error {
			// Print help if no command specified
			return root.Help()
		},
	}

	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate("{{.Version}}\n")

	// Persistent flags for all sub-commands
	root.Options.BindPersistentFlags(root.PersistentFlags())

	// Root command flags
	root.Flags().SortFlags = true
	root.Flags().BoolP("version", "V", false, "print version")

	// Init when flags are parsed
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := root.Options.Load(cmd.Flags()); err != nil {
			return err
		}

		root.Logger = log.NewCliLogger(stdout, root.Options.Verbose)
		root.Logger.Debug(root.Options.Dump())

		fs, err := root.fsFactory(root.Options.StateDir)
		if err != nil {
			return err
		}

		root.Deps = dependencies.NewContainer(cmd.Context(), root.Logger, fs, root.Options)
		return nil
	}

	root.AddCommand(
		ImportCommand(root),
		ExportCommand(root),
		BuildCommand(root),
		GenerateCommand(root),
		CredentialCommands(root),
		TagCommands(root),
		UndoCommand(root),
		ClearCommand(root),
	)

	return root
}

// Execute command or sub-command, returns the process exit code.
func (root *RootCommand) Execute() int {
	if err := root.Command.Execute(); err != nil {
		root.printError(err)
		return 1
	}
	return 0
}

func (root *RootCommand) printError(err error) {
	root.PrintErrln(errors.PrefixError(err, "Error"))
}
