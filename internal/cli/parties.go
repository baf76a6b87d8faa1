package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"text/tabwriter"

	"dealflow/internal/client"

	"github.com/spf13/cobra"
)

func newPartiesCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parties",
		Short: "Manage buying parties",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List buying parties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			parties, err := c.ListBuyingParties(context.Background())
			if err != nil {
				return apiError("list parties", err)
			}
			return render(cmd.OutOrStdout(), opts.Format, parties, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tTIMELINE")
				for _, p := range parties {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Status, deref(p.Timeline))
				}
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <party-id>...",
		Short: "Delete buying parties; each is attempted even if others fail",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			err = c.DeleteBuyingParties(context.Background(), args)
			var bulk *client.BulkError
			if errors.As(err, &bulk) {
				ids := make([]string, 0, len(bulk.Failed))
				for id := range bulk.Failed {
					ids = append(ids, id)
				}
				sort.Strings(ids)
				for _, id := range ids {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", id, client.Message(bulk.Failed[id]))
				}
				for _, e := range bulk.Failed {
					if errors.Is(e, client.ErrUnauthorized) {
						return apiError("delete parties", e)
					}
				}
				return NewExitError(ExitFailure, bulk.Error())
			}
			if err != nil {
				return apiError("delete parties", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d parties\n", len(args))
			return nil
		},
	})

	return cmd
}
