package insights_test

import (
	"context"
	"errors"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/budget"
	"github.com/frahmantamala/expense-tracker/internal/core/events"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/frahmantamala/expense-tracker/internal/insights"
	"github.com/frahmantamala/expense-tracker/internal/storage/sqlite"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("Synchronizer", func() {
	var (
		ctx         context.Context
		db          *gorm.DB
		bus         *events.EventBus
		expenses    *expense.Service
		budgets     *budget.Service
		budgetStore *budget.Store
		sync        *insights.Synchronizer
		alerts      []string
		rendered    []float64
	)

	BeforeEach(func() {
		var err error
		ctx = internal.ContextWithNow(context.Background(), now)

		db, err = sqlite.Open(ctx, internal.StorageConfig{Path: ":memory:", MigrationsTable: "schema_migrations"})
		Expect(err).NotTo(HaveOccurred())
		kv := sqlite.NewKVRepository(db)

		bus = events.NewEventBus(testLogger)
		expenseStore := expense.NewStore(kv, bus, testLogger)
		budgetStore = budget.NewStore(kv, testLogger)
		notifier := budget.NewNotifier(budgetStore, bus, internal.DefaultConfig().Budget, testLogger)

		sync = insights.NewSynchronizer(expenseStore, budgetStore, notifier, images, palette, testLogger)
		sync.Subscribe(bus)

		expenses = expense.NewService(expenseStore, images, testLogger)
		budgets = budget.NewService(budgetStore, notifier, bus, testLogger)

		alerts, rendered = nil, nil
		bus.Subscribe(events.EventTypeBudgetAlert, func(ctx context.Context, e events.Event) error {
			alerts = append(alerts, e.(*events.BudgetAlertEvent).Message)
			return nil
		})
		sync.Mount("remaining", insights.ViewFunc(func(ctx context.Context, snap insights.Snapshot) error {
			rendered = append(rendered, snap.Remaining)
			return nil
		}))
	})

	AfterEach(func() {
		Expect(sqlite.Close(db)).To(Succeed())
	})

	add := func(amount float64) {
		_, err := expenses.AddExpense(ctx, expense.CreateExpenseDTO{
			Category:    "Food",
			Description: "Groceries run",
			Date:        "2025-01-14",
			Amount:      amount,
		})
		Expect(err).NotTo(HaveOccurred())
	}

	It("should re-render every mounted view after each write", func() {
		_, err := budgets.SaveBudget(ctx, "1000")
		Expect(err).NotTo(HaveOccurred())
		add(150)

		Expect(rendered).To(Equal([]float64{1000, 850}))

		snap, ok := sync.Last()
		Expect(ok).To(BeTrue())
		Expect(snap.Spent).To(Equal(150.0))
	})

	It("should alert once when the remaining budget falls to the threshold", func() {
		_, err := budgets.SaveBudget(ctx, "1000")
		Expect(err).NotTo(HaveOccurred())

		add(150)
		Expect(alerts).To(BeEmpty())

		add(650)
		Expect(alerts).To(Equal([]string{"Warning: Your remaining budget is less than 20%!"}))

		add(10)
		Expect(alerts).To(HaveLen(1))

		sent, err := budgetStore.NotificationSent(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(sent).To(BeTrue())
	})

	It("should not alert again once the budget is exhausted", func() {
		_, err := budgets.SaveBudget(ctx, "1000")
		Expect(err).NotTo(HaveOccurred())

		add(850)
		add(200)

		Expect(alerts).To(HaveLen(1))
		snap, _ := sync.Last()
		Expect(snap.Remaining).To(BeZero())
	})

	It("should re-arm after the budget is raised", func() {
		_, err := budgets.SaveBudget(ctx, "1000")
		Expect(err).NotTo(HaveOccurred())
		add(850)
		Expect(alerts).To(HaveLen(1))

		_, err = budgets.SaveBudget(ctx, "5000")
		Expect(err).NotTo(HaveOccurred())
		sent, err := budgetStore.NotificationSent(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(sent).To(BeFalse())

		_, err = budgets.SaveBudget(ctx, "1000")
		Expect(err).NotTo(HaveOccurred())
		Expect(alerts).To(HaveLen(2))
	})

	It("should alert again for a budget saved after a delete", func() {
		_, err := budgets.SaveBudget(ctx, "1000")
		Expect(err).NotTo(HaveOccurred())
		add(850)
		Expect(alerts).To(HaveLen(1))

		_, err = budgets.DeleteBudget(ctx)
		Expect(err).NotTo(HaveOccurred())
		_, err = budgets.SaveBudget(ctx, "1000")
		Expect(err).NotTo(HaveOccurred())

		Expect(alerts).To(HaveLen(2))
	})

	It("should refresh on request without a write", func() {
		Expect(bus.PublishSync(ctx, events.NewRefreshEvent("test"))).To(Succeed())
		Expect(rendered).To(Equal([]float64{0}))
	})

	It("should stop rendering unmounted views", func() {
		sync.Unmount("remaining")
		add(5)
		Expect(rendered).To(BeEmpty())
	})

	It("should surface a failing view", func() {
		sync.Mount("broken", insights.ViewFunc(func(ctx context.Context, snap insights.Snapshot) error {
			return errors.New("boom")
		}))

		_, err := sync.Refresh(ctx)
		Expect(err).To(MatchError(ContainSubstring("boom")))
	})

	It("should keep a write when a view fails to render", func() {
		sync.Mount("broken", insights.ViewFunc(func(ctx context.Context, snap insights.Snapshot) error {
			return errors.New("boom")
		}))

		add(42)
		_, err := budgets.SaveBudget(ctx, "1000")
		Expect(err).NotTo(HaveOccurred())

		records, err := expenses.Expenses(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(1))
		Expect(records[0].Amount).To(Equal(42.0))
	})
})
