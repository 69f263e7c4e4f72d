package cmd

import (
	"github.com/spf13/cobra"
)

func newBudgetCmd(opts *rootOptions) *cobra.Command {
	show := func(cmd *cobra.Command, args []string) error {
		resp, err := opts.deps.Budget.GetBudget(cmd.Context())
		if err != nil {
			return err
		}
		return opts.deps.Renderer.Budget(resp)
	}

	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Show or change the monthly budget",
		Args:  cobra.NoArgs,
		RunE:  show,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the monthly budget and alert state",
			Args:  cobra.NoArgs,
			RunE:  show,
		},
		&cobra.Command{
			Use:     "set <amount>",
			Short:   "Save the monthly budget",
			Example: "  expense-tracker budget set 1000\n  expense-tracker budget set 850,50",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				opts.deps.AttachTerminal()
				resp, err := opts.deps.Budget.SaveBudget(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return opts.deps.Renderer.Budget(resp)
			},
		},
		&cobra.Command{
			Use:   "delete",
			Short: "Remove the monthly budget",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				opts.deps.AttachTerminal()
				resp, err := opts.deps.Budget.DeleteBudget(cmd.Context())
				if err != nil {
					return err
				}
				return opts.deps.Renderer.Budget(resp)
			},
		},
	)
	return cmd
}
