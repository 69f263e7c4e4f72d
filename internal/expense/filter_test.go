package expense_test

import (
	"time"

	"github.com/frahmantamala/expense-tracker/internal"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func ids(records []expense.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}

var _ = Describe("Search", func() {
	records := []expense.Record{
		{ID: "1", Category: "Food", Description: "Pizza night", Amount: 12.5, CreatedAt: "2025-01-14"},
		{ID: "2", Category: "Transport", Description: "Bus", Amount: 125, CreatedAt: "2025-01-13"},
		{ID: "3", Category: "Groceries", Amount: 40, CreatedAt: "2025-01-12"},
	}

	It("should match the category ignoring case", func() {
		matches, err := expense.Search(records, "FOOD")
		Expect(err).NotTo(HaveOccurred())
		Expect(ids(matches)).To(Equal([]string{"1"}))
	})

	It("should match the description after trimming", func() {
		matches, err := expense.Search(records, "  pizza ")
		Expect(err).NotTo(HaveOccurred())
		Expect(ids(matches)).To(Equal([]string{"1"}))
	})

	It("should match the amount text and keep the order", func() {
		matches, err := expense.Search(records, "12")
		Expect(err).NotTo(HaveOccurred())
		Expect(ids(matches)).To(Equal([]string{"1", "2"}))
	})

	It("should reject an empty term", func() {
		_, err := expense.Search(records, "   ")
		Expect(err).To(MatchError(internal.ErrEmptySearchTerm))
	})

	It("should report no matches", func() {
		_, err := expense.Search(records, "rent")
		Expect(err).To(MatchError(internal.ErrNoMatches))
	})
})

var _ = Describe("Search and Filter together", func() {
	records := []expense.Record{
		{ID: "f", Category: "Food", Amount: 12.5, CreatedAt: "2025-01-14"},
		{ID: "t", Category: "Transport", Amount: 8, CreatedAt: "2025-01-14"},
	}

	It("should agree on a small ledger", func() {
		found, err := expense.Search(records, "food")
		Expect(err).NotTo(HaveOccurred())
		Expect(ids(found)).To(Equal([]string{"f"}))

		filtered, err := expense.Filter(records, expense.Criteria{Categories: []string{}, MinAmount: ptr(10.0), MaxAmount: ptr(20.0)})
		Expect(err).NotTo(HaveOccurred())
		Expect(ids(filtered)).To(Equal([]string{"f"}))
	})
})

var _ = Describe("Criteria", func() {
	records := []expense.Record{
		record("1", "Food", 15, "2025-01-20T21:30"),
		record("2", "Groceries", 18, "2025-01-10"),
		record("3", "Transport", 8, "2025-01-05"),
		record("4", "Food", 25, "2024-12-30"),
		record("5", "Food", 12, "someday"),
	}

	It("should match everything when empty", func() {
		Expect(ids(expense.Criteria{}.Apply(records))).To(Equal([]string{"1", "2", "3", "4", "5"}))
	})

	It("should restrict to the chosen categories", func() {
		c := expense.Criteria{Categories: []string{"Food", "Groceries"}, MinAmount: ptr(10.0), MaxAmount: ptr(20.0)}
		Expect(ids(c.Apply(records))).To(Equal([]string{"1", "2", "5"}))
	})

	It("should compare dates by calendar day", func() {
		from := day(2025, time.January, 10)
		to := time.Date(2025, time.January, 20, 8, 0, 0, 0, time.Local)
		c := expense.Criteria{From: &from, To: &to}
		Expect(ids(c.Apply(records))).To(Equal([]string{"1", "2"}))
	})

	It("should exclude undated records once a date bound is set", func() {
		from := day(2000, time.January, 1)
		c := expense.Criteria{From: &from}
		Expect(ids(c.Apply(records))).NotTo(ContainElement("5"))
	})

	It("should report ErrNoMatches when nothing is left", func() {
		_, err := expense.Filter(records, expense.Criteria{Categories: []string{"Rent"}})
		Expect(err).To(MatchError(internal.ErrNoMatches))
	})

	Describe("FilterDTO", func() {
		It("should convert form values", func() {
			c, err := expense.FilterDTO{
				Categories: []string{"Food", ""},
				From:       "2025-01-01",
				To:         "2025-01-31",
				MinAmount:  ptr(10.0),
			}.ToCriteria()

			Expect(err).NotTo(HaveOccurred())
			Expect(c.Categories).To(Equal([]string{"Food"}))
			Expect(c.From).NotTo(BeNil())
			Expect(c.To).NotTo(BeNil())
			Expect(*c.MinAmount).To(Equal(10.0))
			Expect(c.MaxAmount).To(BeNil())
		})

		It("should reject malformed dates and negative bounds", func() {
			_, err := expense.FilterDTO{From: "tomorrow"}.ToCriteria()
			Expect(err).To(HaveOccurred())

			_, err = expense.FilterDTO{MaxAmount: ptr(-1.0)}.ToCriteria()
			Expect(err).To(HaveOccurred())
		})
	})
})
