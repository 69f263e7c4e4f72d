package cmd

import (
	"github.com/frahmantamala/expense-tracker/internal/core/events"
	"github.com/spf13/cobra"
)

func newRefreshCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Re-evaluate the budget alert against the stored data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.deps.AttachTerminal()
			return opts.deps.Bus.PublishSync(cmd.Context(), events.NewRefreshEvent("cli"))
		},
	}
}
