package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/beardo/toggl-tui/internal/credential"
	"github.com/beardo/toggl-tui/internal/toggl"
)

func newAuthCmd(a *app) *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the stored API key",
	}
	authCmd.AddCommand(newAuthKeyCmd(a), newAuthLoginCmd(a), newAuthStatusCmd(a), newAuthLogoutCmd(a))
	return authCmd
}

func newAuthKeyCmd(a *app) *cobra.Command {
	var useKeyring bool
	cmd := &cobra.Command{
		Use:   "key <api_key>",
		Short: "Save an API key for later invocations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			where, err := a.saveAPIKey(args[0], useKeyring)
			if err != nil {
				return err
			}
			return a.printer(cmd).Message("API key saved successfully to %s", where)
		},
	}
	cmd.Flags().BoolVar(&useKeyring, "keyring", false, "Store the key in the OS keyring instead of the config file")
	return cmd
}

func newAuthLoginCmd(a *app) *cobra.Command {
	var useKeyring bool
	cmd := &cobra.Command{
		Use:   "login <username> [password]",
		Short: "Log in with username and password and save the account's API key",
		Long: `Log in with your Toggl username and password. The API token issued for
the account is saved like 'auth key' does. The password is prompted for
without echo when omitted.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]
			var password string
			if len(args) == 2 {
				password = args[1]
			} else {
				pw, err := promptPassword(cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				password = pw
			}

			token, err := toggl.Login(cmd.Context(), a.clientConfig(), username, password)
			if err != nil {
				return err
			}
			where, err := a.saveAPIKey(token, useKeyring)
			if err != nil {
				return err
			}
			return a.printer(cmd).Message("Logged in as %s. API key saved successfully to %s", username, where)
		},
	}
	cmd.Flags().BoolVar(&useKeyring, "keyring", false, "Store the key in the OS keyring instead of the config file")
	return cmd
}

func newAuthStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which API key source is in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cred, err := a.resolver().Resolve()
			if err != nil {
				return err
			}
			return a.printer(cmd).Message("Using API key %s from %s", credential.Mask(cred.Key), cred.Source)
		},
	}
}

func newAuthLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the API key from the OS keyring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.keyring.Delete()
			if errors.Is(err, credential.ErrNotFound) {
				return a.printer(cmd).Message("No API key stored in the OS keyring.")
			}
			if err != nil {
				return err
			}
			return a.printer(cmd).Message("API key removed from the OS keyring.")
		},
	}
}
