package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/frahmantamala/expense-tracker/internal/insights"
	"github.com/spf13/cobra"
)

func newHomeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Show the remaining budget and the latest transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.deps.AttachAlerts()
			snap, err := opts.deps.Sync.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			return opts.deps.Renderer.Home(snap)
		},
	}
}

func newInsightsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Show this month's spending against the budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.deps.AttachAlerts()
			snap, err := opts.deps.Sync.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			return opts.deps.Renderer.Insights(snap)
		},
	}
}

func newCategoryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "category <name>",
		Short:   "Show this month's transactions for one category",
		Example: "  expense-tracker category Food",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := opts.deps.Expenses.CategoryDetail(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return opts.deps.Renderer.CategoryDetail(detail)
		},
	}
}

func newCategoriesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the selectable categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.deps.Renderer.Categories(opts.deps.Categories.GetAllCategories())
		},
	}
}

func newChartCmd(opts *rootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Write this month's spending pie chart as a PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := opts.deps.Sync.Refresh(cmd.Context())
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			chartCfg := opts.deps.Config.Chart
			if err := insights.RenderPie(f, insights.ChartTitle(snap), snap.Pie, chartCfg.Width, chartCfg.Height); err != nil {
				_ = f.Close()
				_ = os.Remove(out)
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			return opts.deps.Renderer.Message("Chart written to " + out)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "insights.png", "output file")
	return cmd
}
