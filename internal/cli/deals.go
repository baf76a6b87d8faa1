package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"dealflow/internal/dto"

	"github.com/spf13/cobra"
)

func newDealsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deals",
		Short: "List and inspect deals",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all deals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			deals, err := c.ListDeals(context.Background())
			if err != nil {
				return apiError("list deals", err)
			}
			return render(cmd.OutOrStdout(), opts.Format, deals, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "ID\tCOMPANY\tSTAGE\tREVENUE\tHEALTH")
				for _, d := range deals {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", d.ID, d.CompanyName, d.Stage, d.Revenue.StringFixed(0), d.HealthScore)
				}
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show <deal-id>",
		Short: "Show one deal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			d, err := c.GetDeal(context.Background(), args[0])
			if err != nil {
				return apiError("show deal", err)
			}
			return render(cmd.OutOrStdout(), opts.Format, d, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "Company\t%s\n", d.CompanyName)
				fmt.Fprintf(tw, "Stage\t%s (%d days)\n", d.Stage, d.AgeInStage)
				fmt.Fprintf(tw, "Priority\t%s\n", d.Priority)
				fmt.Fprintf(tw, "Revenue\t%s\n", d.Revenue.StringFixed(0))
				fmt.Fprintf(tw, "Health\t%d\n", d.HealthScore)
				fmt.Fprintf(tw, "Owner\t%s\n", d.Owner)
				fmt.Fprintf(tw, "Notes\t%s\n", deref(d.Notes))
			})
		},
	})
	return cmd
}

func newNotesCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Edit deal notes",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set <deal-id> [text]",
		Short: "Replace a deal's notes (reads stdin when text is omitted)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := ""
			if len(args) == 2 {
				text = args[1]
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return WrapExitError(ExitCommandError, "read notes", err)
				}
				text = string(data)
			}
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			d, err := c.SaveNotes(context.Background(), args[0], text)
			if err != nil {
				return apiError("save notes", err)
			}
			return render(cmd.OutOrStdout(), opts.Format, d, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "notes saved for %s\n", d.CompanyName)
			})
		},
	})
	return cmd
}

func printBuyerRows(tw *tabwriter.Writer, rows []dto.BuyerMatchRow) {
	fmt.Fprintln(tw, "MATCH\tPARTY\tSTATUS\tSTAGE\tCHECKLIST\tCONTACT")
	for _, r := range rows {
		contact := ""
		if r.Contact != nil {
			contact = r.Contact.Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Match.ID, r.Party.Name, r.Match.Status, r.Match.Stage, r.Match.Stages, contact)
	}
}
