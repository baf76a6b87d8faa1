// Package cli implements dealctl, a terminal front end for the dealflow API.
package cli

import (
	"fmt"
	"os"

	"dealflow/internal/client"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	API         string
	Format      string // "text" | "json" | "yaml"
	SessionPath string

	// store overrides the session file; set by tests.
	store client.SessionStore
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for dealctl.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	defaultAPI := os.Getenv("DEALFLOW_API")
	if defaultAPI == "" {
		defaultAPI = "http://localhost:8000"
	}

	cmd := &cobra.Command{
		Use:   "dealctl",
		Short: "Work the deal pipeline from the terminal",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.API, "api", defaultAPI, "API base URL (env DEALFLOW_API)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.SessionPath, "session", "", "session file (default: user config dir)")

	cmd.AddCommand(newLoginCommand(opts))
	cmd.AddCommand(newLogoutCommand(opts))
	cmd.AddCommand(newDealsCommand(opts))
	cmd.AddCommand(newNotesCommand(opts))
	cmd.AddCommand(newBuyersCommand(opts))
	cmd.AddCommand(newChecklistCommand(opts))
	cmd.AddCommand(newPartiesCommand(opts))

	return cmd
}

// newClient loads the stored session and returns a client bound to it.
func (o *RootOptions) newClient() (*client.Client, error) {
	store := o.store
	if store == nil {
		path := o.SessionPath
		if path == "" {
			p, err := client.DefaultSessionPath()
			if err != nil {
				return nil, WrapExitError(ExitCommandError, "cannot locate session file", err)
			}
			path = p
		}
		store = client.FileSessionStore{Path: path}
	}
	session := client.NewSession(store)
	if err := session.Load(); err != nil {
		return nil, WrapExitError(ExitCommandError, "cannot read session", err)
	}
	return client.New(o.API, session), nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
