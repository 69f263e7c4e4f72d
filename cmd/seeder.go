package cmd

import (
	"fmt"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/spf13/cobra"
)

const seedBudget = "1000"

type seedExpense struct {
	daysAgo     int
	category    string
	description string
	amount      float64
}

// sampleExpenses are listed oldest first so the newest ends up at the front.
var sampleExpenses = []seedExpense{
	{40, "Groceries", "Weekly shop", 64.20},
	{35, "Transport", "Monthly pass", 49.00},
	{9, "Entertainment", "Cinema", 12.50},
	{6, "Groceries", "Farmers market", 23.75},
	{3, "Food", "Lunch with team", 18.40},
	{1, "Transport", "Taxi home", 15.00},
	{0, "Food", "Coffee", 3.20},
}

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the store with sample data",
		Long:  `Seed the store with sample expenses dated relative to today and a monthly budget when none is set.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			deps := opts.deps

			if clear {
				if err := deps.ExpenseStore.Clear(ctx); err != nil {
					return err
				}
				if err := deps.BudgetStore.Delete(ctx); err != nil {
					return err
				}
				if err := deps.BudgetStore.SetNotificationSent(ctx, false); err != nil {
					return err
				}
				deps.Logger.Info("store cleared")
			}

			now := internal.NowFromContext(ctx)
			for _, s := range sampleExpenses {
				dto := expense.CreateExpenseDTO{
					Category:    s.category,
					Description: s.description,
					Date:        now.AddDate(0, 0, -s.daysAgo).Format("2006-01-02"),
					Amount:      s.amount,
				}
				if _, err := deps.Expenses.AddExpense(ctx, dto); err != nil {
					return fmt.Errorf("failed to seed %q: %w", s.description, err)
				}
			}

			isSet, err := deps.BudgetStore.IsSet(ctx)
			if err != nil {
				return err
			}
			if !isSet {
				if _, err := deps.Budget.SaveBudget(ctx, seedBudget); err != nil {
					return err
				}
			}

			return deps.Renderer.Message(fmt.Sprintf("Seeded %d expenses.", len(sampleExpenses)))
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "remove stored expenses and the budget first")
	return cmd
}
