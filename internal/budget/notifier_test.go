package budget_test

import (
	"context"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/budget"
	"github.com/frahmantamala/expense-tracker/internal/core/events"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type memFlags struct {
	sent bool
}

func (m *memFlags) NotificationSent(ctx context.Context) (bool, error) {
	return m.sent, nil
}

func (m *memFlags) SetNotificationSent(ctx context.Context, sent bool) error {
	m.sent = sent
	return nil
}

var _ = Describe("Notifier", func() {
	var (
		ctx      context.Context
		flags    *memFlags
		bus      *events.EventBus
		cfg      internal.BudgetConfig
		notifier *budget.Notifier
		alerts   []string
	)

	BeforeEach(func() {
		ctx = context.Background()
		flags = &memFlags{}
		alerts = nil
		bus = events.NewEventBus(testLogger)
		bus.Subscribe(events.EventTypeBudgetAlert, func(ctx context.Context, e events.Event) error {
			alerts = append(alerts, e.(*events.BudgetAlertEvent).Message)
			return nil
		})
		cfg = internal.DefaultConfig().Budget
	})

	JustBeforeEach(func() {
		notifier = budget.NewNotifier(flags, bus, cfg, testLogger)
	})

	evaluate := func(remaining, total float64) bool {
		fired, err := notifier.Evaluate(ctx, remaining, total)
		Expect(err).NotTo(HaveOccurred())
		return fired
	}

	It("should format the threshold in the message", func() {
		Expect(notifier.Message()).To(Equal("Warning: Your remaining budget is less than 20%!"))
	})

	It("should stay quiet above the threshold", func() {
		Expect(evaluate(850, 1000)).To(BeFalse())
		Expect(alerts).To(BeEmpty())
		Expect(flags.sent).To(BeFalse())
	})

	It("should alert once per crossing", func() {
		Expect(evaluate(200, 1000)).To(BeTrue())
		Expect(evaluate(150, 1000)).To(BeFalse())
		Expect(evaluate(100, 1000)).To(BeFalse())

		Expect(alerts).To(Equal([]string{"Warning: Your remaining budget is less than 20%!"}))
		state, err := notifier.State(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(state).To(Equal(budget.StateAlerted))
	})

	It("should re-arm when the remaining budget recovers", func() {
		Expect(evaluate(150, 1000)).To(BeTrue())
		Expect(evaluate(900, 1000)).To(BeFalse())
		Expect(flags.sent).To(BeFalse())

		Expect(evaluate(100, 1000)).To(BeTrue())
		Expect(alerts).To(HaveLen(2))
	})

	It("should keep the flag while the budget is exhausted", func() {
		Expect(evaluate(100, 1000)).To(BeTrue())
		Expect(evaluate(0, 1000)).To(BeFalse())
		Expect(flags.sent).To(BeTrue())
	})

	It("should not alert when nothing remains", func() {
		Expect(evaluate(0, 1000)).To(BeFalse())
		Expect(evaluate(0, 0)).To(BeFalse())
		Expect(alerts).To(BeEmpty())
	})

	Context("with alert_when_exhausted", func() {
		BeforeEach(func() {
			cfg.AlertWhenExhausted = true
		})

		It("should alert at zero remaining", func() {
			Expect(evaluate(0, 1000)).To(BeTrue())
			Expect(alerts).To(HaveLen(1))
		})

		It("should still ignore a missing budget", func() {
			Expect(evaluate(0, 0)).To(BeFalse())
		})
	})
})
