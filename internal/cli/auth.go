package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"dealflow/internal/client"

	"github.com/spf13/cobra"
)

func newLoginCommand(opts *RootOptions) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		Long: `Log in with email and password. The password may also be given in
DEALFLOW_PASSWORD so it stays out of shell history.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("DEALFLOW_PASSWORD")
			}
			if email == "" || password == "" {
				return NewExitError(ExitCommandError, "--email and a password are required")
			}
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			resp, err := c.Login(context.Background(), email, password)
			if errors.Is(err, client.ErrUnauthorized) {
				return NewExitError(ExitUnauthorized, "invalid email or password")
			}
			if err != nil {
				return apiError("login failed", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", resp.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newLogoutCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			if err := c.Logout(); err != nil {
				return WrapExitError(ExitCommandError, "cannot clear session", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}
