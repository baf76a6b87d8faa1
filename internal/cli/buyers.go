package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newBuyersCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buyers",
		Short: "Manage the buying parties matched to a deal",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list <deal-id>",
		Short: "List a deal's buyers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			rows, err := c.DealBuyers(context.Background(), args[0])
			if err != nil {
				return apiError("list buyers", err)
			}
			return render(cmd.OutOrStdout(), opts.Format, rows, func(tw *tabwriter.Writer) {
				printBuyerRows(tw, rows)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "available <deal-id>",
		Short: "List parties that can still be matched to a deal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			parties, err := c.AvailableParties(context.Background(), args[0])
			if err != nil {
				return apiError("list available parties", err)
			}
			return render(cmd.OutOrStdout(), opts.Format, parties, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "ID\tNAME\tSTATUS")
				for _, p := range parties {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.Name, p.Status)
				}
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <deal-id> <party-id>",
		Short: "Match a buying party to a deal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			m, err := c.CreateMatch(context.Background(), args[0], args[1])
			if err != nil {
				return apiError("add buyer", err)
			}
			return render(cmd.OutOrStdout(), opts.Format, m, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "created match %s\n", m.ID)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <deal-id> <match-id>",
		Short: "Remove a buyer from a deal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			if err := c.DeleteMatch(context.Background(), args[1], args[0]); err != nil {
				return apiError("remove buyer", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed match %s\n", args[1])
			return nil
		},
	})

	return cmd
}
