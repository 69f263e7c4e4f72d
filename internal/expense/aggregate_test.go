package expense_test

import (
	"time"

	"github.com/frahmantamala/expense-tracker/internal/expense"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Aggregates", func() {
	var records []expense.Record

	BeforeEach(func() {
		records = []expense.Record{
			record("1", "Food", 12.5, "2025-01-20"),
			record("2", "Transport", 8, "2025-01-14T18:45"),
			record("3", "Food", 30, "2025-01-02"),
			record("4", "Groceries", 99, "2024-12-31"),
			record("5", "Food", 5, "not a date"),
		}
	})

	Describe("MonthlyTotal", func() {
		It("should only count records dated in the month", func() {
			Expect(expense.MonthlyTotal(records, time.January, 2025)).To(Equal(50.5))
			Expect(expense.MonthlyTotal(records, time.December, 2024)).To(Equal(99.0))
			Expect(expense.MonthlyTotal(records, time.February, 2025)).To(BeZero())
		})

		It("should exclude the same month of another year", func() {
			rs := append(records, record("6", "Food", 40, "2024-01-20"))
			Expect(expense.MonthlyTotal(rs, time.January, 2025)).To(Equal(50.5))
			Expect(expense.MonthlyTotal(rs, time.January, 2024)).To(Equal(40.0))
		})

		It("should add decimal amounts without drift", func() {
			rs := []expense.Record{
				record("a", "Food", 0.1, "2025-03-01"),
				record("b", "Food", 0.2, "2025-03-02"),
			}
			Expect(expense.MonthlyTotal(rs, time.March, 2025)).To(Equal(0.3))
		})
	})

	Describe("RemainingBudget", func() {
		It("should subtract the month's spend", func() {
			Expect(expense.RemainingBudget(1000, records, time.January, 2025)).To(Equal(949.5))
		})

		It("should never go below zero", func() {
			Expect(expense.RemainingBudget(20, records, time.January, 2025)).To(BeZero())
		})

		It("should be zero without a budget", func() {
			Expect(expense.RemainingBudget(0, nil, time.January, 2025)).To(BeZero())
		})
	})

	Describe("CategoryBreakdown", func() {
		It("should total the month per category", func() {
			Expect(expense.CategoryBreakdown(records, time.January, 2025)).To(Equal(map[string]float64{
				"Food":      42.5,
				"Transport": 8,
			}))
		})

		It("should keep the order of first appearance", func() {
			Expect(expense.OrderedBreakdown(records, time.January, 2025)).To(Equal([]expense.CategoryTotal{
				{Category: "Food", Total: 42.5},
				{Category: "Transport", Total: 8},
			}))
		})

		It("should treat categories as exact strings", func() {
			rs := []expense.Record{
				record("a", "Food", 1, "2025-01-01"),
				record("b", "food", 2, "2025-01-01"),
			}
			Expect(expense.CategoryBreakdown(rs, time.January, 2025)).To(HaveLen(2))
		})
	})

	Describe("SpentPercent", func() {
		It("should round to two decimals", func() {
			Expect(expense.SpentPercent(1000, 150)).To(Equal(15.0))
			Expect(expense.SpentPercent(300, 100)).To(Equal(33.33))
		})

		It("should be zero without a budget", func() {
			Expect(expense.SpentPercent(0, 150)).To(BeZero())
		})
	})

	Describe("DaysLeft", func() {
		It("should count to the end of the month", func() {
			Expect(expense.DaysLeft(day(2025, time.January, 14))).To(Equal(17))
			Expect(expense.DaysLeft(day(2024, time.February, 28))).To(Equal(1))
			Expect(expense.DaysLeft(day(2025, time.April, 30))).To(BeZero())
		})
	})
})
