package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"dealflow/internal/pipeline"

	"github.com/spf13/cobra"
)

func newChecklistCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Show and toggle a match's milestone checklist",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show <match-id>",
		Short: "Show every milestone and whether it is checked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			m, err := c.GetMatch(context.Background(), args[0])
			if err != nil {
				return apiError("show checklist", err)
			}
			checked := pipeline.ParseChecklist(m.Stages)
			return render(cmd.OutOrStdout(), opts.Format, m, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "stage: %s\n", m.Stage)
				for _, s := range pipeline.MatchStages {
					mark := " "
					if checked.Has(string(s)) {
						mark = "x"
					}
					fmt.Fprintf(tw, "[%s]\t%s\n", mark, s)
				}
			})
		},
	})

	var uncheck bool
	toggle := &cobra.Command{
		Use:   "toggle <match-id> <milestone>",
		Short: "Check a milestone (or uncheck it with --off)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !pipeline.MatchStage(args[1]).Valid() {
				return NewExitError(ExitCommandError, fmt.Sprintf("unknown milestone %q", args[1]))
			}
			c, err := opts.newClient()
			if err != nil {
				return err
			}
			m, err := c.ToggleChecklistItem(context.Background(), args[0], args[1], !uncheck)
			if err != nil {
				return apiError("toggle checklist", err)
			}
			return render(cmd.OutOrStdout(), opts.Format, m, func(tw *tabwriter.Writer) {
				fmt.Fprintf(tw, "checklist: %s\n", m.Stages)
			})
		},
	}
	toggle.Flags().BoolVar(&uncheck, "off", false, "uncheck the milestone")
	cmd.AddCommand(toggle)

	return cmd
}
