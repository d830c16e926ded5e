package cmd

import (
	"github.com/spf13/cobra"

	"github.com/purpose-first/plans-as-code/internal/pkg/synthesis"
)

func CredentialCommands(root *RootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credential",
		Short: "Manage the synthesis collaborator credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(
		CredentialSetCommand(root),
		CredentialShowCommand(root),
	)
	return cmd
}

func CredentialSetCommand(root *RootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key>|<endpoint-url>",
		Short: "Save the collaborator credential",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			credential, err := synthesis.ParseCredential(args[0])
			if err != nil {
				return err
			}
			if err := root.Deps.Storage().SaveCredential(credential.String()); err != nil {
				return err
			}
			root.Logger.Info("Credential saved.")
			return nil
		},
	}
}

func CredentialShowCommand(root *RootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the saved credential with the key masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := root.Deps.Storage().LoadCredential()
			if err != nil {
				return err
			}
			if raw == "" {
				root.Logger.Info("No credential is set.")
				return nil
			}
			credential, err := synthesis.ParseCredential(raw)
			if err != nil {
				return err
			}
			cmd.Println(credential.Masked())
			return nil
		},
	}
}
