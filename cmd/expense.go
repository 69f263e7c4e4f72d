package cmd

import (
	"strings"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/spf13/cobra"
)

func newAddCmd(opts *rootOptions) *cobra.Command {
	var dto expense.CreateExpenseDTO

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		Example: `  expense-tracker add --category Food --description "Lunch" --amount 12.50
  expense-tracker add -c Transport -d "Bus ticket" -a 8 --date 2025-01-14`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if dto.Date == "" {
				dto.Date = internal.NowFromContext(ctx).Format("2006-01-02")
			}

			opts.deps.AttachTerminal()
			record, err := opts.deps.Expenses.AddExpense(ctx, dto)
			if err != nil {
				return err
			}
			return opts.deps.Renderer.Message("Expense added: " + record.ID)
		},
	}

	cmd.Flags().StringVarP(&dto.Category, "category", "c", "", "expense category, e.g. Food")
	cmd.Flags().StringVarP(&dto.Description, "description", "d", "", "what the money was spent on")
	cmd.Flags().StringVar(&dto.Date, "date", "", "date of the expense (default today)")
	cmd.Flags().Float64VarP(&dto.Amount, "amount", "a", 0, "amount spent, greater than 0")
	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var search, filtered bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses grouped by day and month",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := opts.deps.Expenses.ListExpenses(cmd.Context(), expense.SourceFromFlags(search, filtered))
			if err != nil {
				return err
			}
			return opts.deps.Renderer.List(list)
		},
	}

	cmd.Flags().BoolVar(&search, "search", false, "list the last search results")
	cmd.Flags().BoolVar(&filtered, "filtered", false, "list the last filter results")
	return cmd
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	var search, filtered bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := opts.deps.Expenses.GetExpense(cmd.Context(), args[0], expense.SourceFromFlags(search, filtered))
			if err != nil {
				return err
			}
			return opts.deps.Renderer.Detail(record)
		},
	}

	cmd.Flags().BoolVar(&search, "search", false, "resolve a position within the last search results")
	cmd.Flags().BoolVar(&filtered, "filtered", false, "resolve a position within the last filter results")
	return cmd
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Search expenses by category, description or amount",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := opts.deps.Expenses.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return opts.deps.Renderer.Records("Search results", records)
		},
	}
}

func newFilterCmd(opts *rootOptions) *cobra.Command {
	var (
		dto      expense.FilterDTO
		min, max float64
	)

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter expenses by category, date range and amount",
		Example: `  expense-tracker filter --category Food --category Groceries --min 10 --max 20
  expense-tracker filter --from 2025-01-01 --to 2025-01-31`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("min") {
				dto.MinAmount = &min
			}
			if cmd.Flags().Changed("max") {
				dto.MaxAmount = &max
			}

			records, err := opts.deps.Expenses.Filter(cmd.Context(), dto)
			if err != nil {
				return err
			}
			return opts.deps.Renderer.Records("Filtered transactions", records)
		},
	}

	cmd.Flags().StringArrayVar(&dto.Categories, "category", nil, "category to include, repeatable")
	cmd.Flags().StringVar(&dto.From, "from", "", "earliest date, inclusive")
	cmd.Flags().StringVar(&dto.To, "to", "", "latest date, inclusive")
	cmd.Flags().Float64Var(&min, "min", 0, "minimum amount")
	cmd.Flags().Float64Var(&max, "max", 0, "maximum amount")
	return cmd
}
