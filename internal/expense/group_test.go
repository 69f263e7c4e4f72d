package expense_test

import (
	"time"

	"github.com/frahmantamala/expense-tracker/internal/expense"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Grouping", func() {
	now := time.Date(2025, time.February, 3, 10, 0, 0, 0, time.Local)

	records := []expense.Record{
		record("1", "Food", 4, "2025-02-03T08:15"),
		record("2", "Food", 6, "2025-02-02"),
		record("3", "Transport", 10, "2025-02-01"),
		record("4", "Food", 20, "2025-01-31"),
		record("5", "Food", 1, "2025-02-03"),
		record("6", "Food", 2, ""),
	}

	Describe("GroupByRecency", func() {
		It("should label today, yesterday and older months", func() {
			groups := expense.GroupByRecency(records, now)

			labels := make([]string, 0, len(groups))
			for _, g := range groups {
				labels = append(labels, g.Label)
			}
			Expect(labels).To(Equal([]string{"Today", "Yesterday", "February 2025", "January 2025", "Undated"}))

			Expect(ids(groups[0].Records)).To(Equal([]string{"1", "5"}))
			Expect(groups[0].Total).To(Equal(5.0))
		})
	})

	Describe("GroupByDay", func() {
		It("should label each calendar day", func() {
			groups := expense.GroupByDay(records[:4])

			Expect(groups).To(HaveLen(4))
			Expect(groups[0].Label).To(Equal("February 3, 2025"))
			Expect(groups[3].Label).To(Equal("January 31, 2025"))
		})
	})
})
