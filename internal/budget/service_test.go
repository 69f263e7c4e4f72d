package budget_test

import (
	"context"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/budget"
	"github.com/frahmantamala/expense-tracker/internal/core/events"
	"github.com/frahmantamala/expense-tracker/internal/storage"
	"github.com/frahmantamala/expense-tracker/internal/storage/sqlite"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("Budget Service", func() {
	var (
		ctx     context.Context
		db      *gorm.DB
		store   *budget.Store
		service *budget.Service
		changes []*events.BudgetChangedEvent
	)

	BeforeEach(func() {
		ctx = context.Background()
		var kv storage.KV
		db, kv = openKV(ctx)
		store = budget.NewStore(kv, testLogger)

		changes = nil
		bus := events.NewEventBus(testLogger)
		bus.Subscribe(events.EventTypeBudgetChanged, func(ctx context.Context, e events.Event) error {
			changes = append(changes, e.(*events.BudgetChangedEvent))
			return nil
		})

		notifier := budget.NewNotifier(store, bus, internal.DefaultConfig().Budget, testLogger)
		service = budget.NewService(store, notifier, bus, testLogger)
	})

	AfterEach(func() {
		Expect(sqlite.Close(db)).To(Succeed())
	})

	Describe("SaveBudget", func() {
		It("should store the amount and announce the change", func() {
			resp, err := service.SaveBudget(ctx, "1000")
			Expect(err).NotTo(HaveOccurred())

			Expect(resp.Message).To(Equal("Monthly budget saved: 1000.00"))
			Expect(resp.Amount).To(Equal(1000.0))
			Expect(resp.Formatted).To(Equal("1000.00"))
			Expect(resp.IsSet).To(BeTrue())
			Expect(resp.State).To(Equal(budget.StateQuiet))

			Expect(changes).To(HaveLen(1))
			Expect(changes[0].Amount).To(Equal(1000.0))
			Expect(changes[0].Deleted).To(BeFalse())
		})

		It("should reject invalid input without touching the store", func() {
			_, err := service.SaveBudget(ctx, "")
			Expect(err).To(MatchError(internal.ErrInvalidBudget))

			isSet, err := store.IsSet(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(isSet).To(BeFalse())
			Expect(changes).To(BeEmpty())
		})
	})

	Describe("DeleteBudget", func() {
		It("should remove the amount", func() {
			_, err := service.SaveBudget(ctx, "500")
			Expect(err).NotTo(HaveOccurred())

			resp, err := service.DeleteBudget(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Message).To(Equal("Monthly budget deleted."))
			Expect(resp.IsSet).To(BeFalse())
			Expect(resp.Amount).To(BeZero())

			Expect(changes).To(HaveLen(2))
			Expect(changes[1].Deleted).To(BeTrue())
		})

		It("should clear the alert flag", func() {
			_, err := service.SaveBudget(ctx, "1000")
			Expect(err).NotTo(HaveOccurred())
			Expect(store.SetNotificationSent(ctx, true)).To(Succeed())

			_, err = service.DeleteBudget(ctx)
			Expect(err).NotTo(HaveOccurred())

			sent, err := store.NotificationSent(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(sent).To(BeFalse())
		})
	})
})
