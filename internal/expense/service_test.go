package expense_test

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/category"
	"github.com/frahmantamala/expense-tracker/internal/core/events"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/frahmantamala/expense-tracker/internal/storage"
	"github.com/frahmantamala/expense-tracker/internal/storage/sqlite"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("Expense Service", func() {
	var (
		ctx     context.Context
		db      *gorm.DB
		kv      storage.KV
		bus     *events.EventBus
		store   *expense.Store
		service *expense.Service
		saved   []int
	)

	BeforeEach(func() {
		var err error
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		ctx = internal.ContextWithNow(context.Background(), time.Date(2025, time.January, 14, 12, 0, 0, 0, time.Local))

		db, err = sqlite.Open(ctx, internal.StorageConfig{Path: ":memory:", MigrationsTable: "schema_migrations"})
		Expect(err).NotTo(HaveOccurred())
		kv = sqlite.NewKVRepository(db)

		saved = nil
		bus = events.NewEventBus(logger)
		bus.Subscribe(events.EventTypeExpensesSaved, func(ctx context.Context, e events.Event) error {
			saved = append(saved, e.(*events.ExpensesSavedEvent).Count)
			return nil
		})

		store = expense.NewStore(kv, bus, logger)
		service = expense.NewService(store, category.NewService(internal.DefaultConfig().Categories, logger), logger)
	})

	AfterEach(func() {
		Expect(sqlite.Close(db)).To(Succeed())
	})

	add := func(cat, desc, date string, amount float64) *expense.Record {
		r, err := service.AddExpense(ctx, expense.CreateExpenseDTO{Category: cat, Description: desc, Date: date, Amount: amount})
		Expect(err).NotTo(HaveOccurred())
		return r
	}

	Describe("AddExpense", func() {
		It("should prepend the record and announce the write", func() {
			first := add("Food", "Lunch", "2025-01-14", 12.5)
			second := add("Transport", "Bus", "2025-01-14", 8)

			records, err := service.Expenses(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(ids(records)).To(Equal([]string{second.ID, first.ID}))
			Expect(records[1].Image).To(Equal("img/food.png"))
			Expect(saved).To(Equal([]int{1, 2}))
		})

		It("should use the fallback image for unknown categories", func() {
			r := add("Pets", "Vet", "2025-01-14", 60)
			Expect(r.Image).To(Equal("img/default.png"))
		})

		It("should leave the store untouched on invalid input", func() {
			_, err := service.AddExpense(ctx, expense.CreateExpenseDTO{Category: "Food", Date: "2025-01-14", Amount: 5})
			Expect(err).To(HaveOccurred())

			records, err := service.Expenses(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(BeEmpty())
			Expect(saved).To(BeEmpty())
		})
	})

	Describe("Store", func() {
		It("should treat unreadable data as empty", func() {
			Expect(kv.Set(ctx, storage.KeyExpenses, "{not json")).To(Succeed())

			records, err := store.Load(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(BeEmpty())
		})

		It("should read records written by older versions", func() {
			Expect(kv.Set(ctx, storage.KeyExpenses, `[{"category":"Food","description":7,"task_createdAt":"2025-01-10","amount":"4.5"}]`)).To(Succeed())

			records, err := store.Load(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(records[0].Amount).To(Equal(4.5))
			Expect(records[0].DescriptionText()).To(Equal("7"))
		})

		It("should clear every slot", func() {
			add("Food", "Lunch", "2025-01-14", 12.5)
			_, err := service.Search(ctx, "lunch")
			Expect(err).NotTo(HaveOccurred())

			Expect(store.Clear(ctx)).To(Succeed())

			for _, key := range []string{storage.KeyExpenses, storage.KeySearchResults} {
				_, found, err := kv.Get(ctx, key)
				Expect(err).NotTo(HaveOccurred())
				Expect(found).To(BeFalse(), key)
			}
		})
	})

	Describe("Search and Filter", func() {
		BeforeEach(func() {
			add("Food", "Pizza", "2025-01-12", 15)
			add("Groceries", "Market", "2025-01-13", 18)
			add("Transport", "Taxi", "2025-01-14", 30)
		})

		It("should persist search results", func() {
			matches, err := service.Search(ctx, "pizza")
			Expect(err).NotTo(HaveOccurred())
			Expect(matches).To(HaveLen(1))

			slot, err := store.LoadSlot(ctx, storage.KeySearchResults)
			Expect(err).NotTo(HaveOccurred())
			Expect(ids(slot)).To(Equal(ids(matches)))
		})

		It("should not overwrite earlier results when nothing matches", func() {
			_, err := service.Search(ctx, "pizza")
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Search(ctx, "rent")
			Expect(err).To(MatchError(internal.ErrNoMatches))

			slot, err := store.LoadSlot(ctx, storage.KeySearchResults)
			Expect(err).NotTo(HaveOccurred())
			Expect(slot).To(HaveLen(1))
		})

		It("should persist filter results", func() {
			matches, err := service.Filter(ctx, expense.FilterDTO{
				Categories: []string{"Food", "Groceries"},
				MinAmount:  ptr(10.0),
				MaxAmount:  ptr(20.0),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(matches).To(HaveLen(2))

			slot, err := store.LoadSlot(ctx, storage.KeyFilteredResults)
			Expect(err).NotTo(HaveOccurred())
			Expect(ids(slot)).To(Equal(ids(matches)))
		})

		It("should list a result slot", func() {
			_, err := service.Search(ctx, "taxi")
			Expect(err).NotTo(HaveOccurred())

			list, err := service.ListExpenses(ctx, expense.SourceSearch)
			Expect(err).NotTo(HaveOccurred())
			Expect(list.Count).To(Equal(1))
			Expect(list.Groups[0].Label).To(Equal("Today"))
		})
	})

	Describe("GetExpense", func() {
		var first, second *expense.Record

		BeforeEach(func() {
			first = add("Food", "Lunch", "2025-01-13", 12.5)
			second = add("Transport", "Bus", "2025-01-14", 8)
		})

		It("should resolve an ID", func() {
			r, err := service.GetExpense(ctx, first.ID, expense.SourceAll)
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Category).To(Equal("Food"))
		})

		It("should resolve a position within the source", func() {
			r, err := service.GetExpense(ctx, "0", expense.SourceAll)
			Expect(err).NotTo(HaveOccurred())
			Expect(r.ID).To(Equal(second.ID))
		})

		It("should find IDs outside the chosen slot", func() {
			r, err := service.GetExpense(ctx, first.ID, expense.SourceFiltered)
			Expect(err).NotTo(HaveOccurred())
			Expect(r.ID).To(Equal(first.ID))
		})

		It("should read positions only within the chosen slot", func() {
			_, err := service.Search(ctx, "bus")
			Expect(err).NotTo(HaveOccurred())

			r, err := service.GetExpense(ctx, "0", expense.SourceSearch)
			Expect(err).NotTo(HaveOccurred())
			Expect(r.ID).To(Equal(second.ID))

			_, err = service.GetExpense(ctx, "1", expense.SourceSearch)
			Expect(err).To(MatchError(internal.ErrExpenseNotFound))
		})

		It("should report unknown references", func() {
			_, err := service.GetExpense(ctx, "7", expense.SourceAll)
			Expect(err).To(MatchError(internal.ErrExpenseNotFound))
		})
	})

	Describe("CategoryDetail", func() {
		It("should total the category for the current month", func() {
			add("Food", "Last month", "2024-12-30", 99)
			add("Food", "Lunch", "2025-01-13", 12.5)
			add("Food", "Dinner", "2025-01-14", 20)
			add("Transport", "Bus", "2025-01-14", 8)

			detail, err := service.CategoryDetail(ctx, "Food")
			Expect(err).NotTo(HaveOccurred())
			Expect(detail.Total).To(Equal(32.5))
			Expect(detail.Count).To(Equal(2))
			Expect(detail.Month).To(Equal("January"))
			Expect(detail.Image).To(Equal("img/food.png"))
			Expect(detail.Groups[0].Label).To(Equal("January 14, 2025"))
		})

		It("should read the last listed transactions", func() {
			add("Food", "Lunch", "2025-01-13", 12.5)
			add("Food", "Pizza", "2025-01-14", 20)
			_, err := service.Search(ctx, "pizza")
			Expect(err).NotTo(HaveOccurred())
			_, err = service.ListExpenses(ctx, expense.SourceSearch)
			Expect(err).NotTo(HaveOccurred())

			detail, err := service.CategoryDetail(ctx, "Food")
			Expect(err).NotTo(HaveOccurred())
			Expect(detail.Total).To(Equal(20.0))
		})

		It("should require a category", func() {
			_, err := service.CategoryDetail(ctx, " ")
			Expect(err).To(MatchError(internal.ErrCategoryRequired))
		})
	})
})
