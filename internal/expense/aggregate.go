package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// MonthlyTotal sums the amounts of records dated in month/year of the local calendar.
func MonthlyTotal(records []Record, month time.Month, year int) float64 {
	total := decimal.Zero
	for _, r := range records {
		if r.InMonth(month, year) {
			total = total.Add(decimal.NewFromFloat(r.Amount))
		}
	}
	return total.InexactFloat64()
}

// RemainingBudget is budget minus the month's spend, floored at zero.
func RemainingBudget(budget float64, records []Record, month time.Month, year int) float64 {
	remaining := decimal.NewFromFloat(budget).Sub(decimal.NewFromFloat(MonthlyTotal(records, month, year)))
	if remaining.IsNegative() {
		return 0
	}
	return remaining.InexactFloat64()
}

// CategoryBreakdown totals the month's spend per exact category string.
func CategoryBreakdown(records []Record, month time.Month, year int) map[string]float64 {
	out := make(map[string]float64)
	for _, ct := range OrderedBreakdown(records, month, year) {
		out[ct.Category] = ct.Total
	}
	return out
}

// OrderedBreakdown is CategoryBreakdown in order of first appearance.
func OrderedBreakdown(records []Record, month time.Month, year int) []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	var order []string
	for _, r := range records {
		if !r.InMonth(month, year) {
			continue
		}
		if _, seen := totals[r.Category]; !seen {
			order = append(order, r.Category)
		}
		totals[r.Category] = totals[r.Category].Add(decimal.NewFromFloat(r.Amount))
	}

	out := make([]CategoryTotal, 0, len(order))
	for _, c := range order {
		out = append(out, CategoryTotal{Category: c, Total: totals[c].InexactFloat64()})
	}
	return out
}

// SpentPercent is spent as a percentage of budget; 0 without a budget.
func SpentPercent(budget, spent float64) float64 {
	if budget <= 0 {
		return 0
	}
	return decimal.NewFromFloat(spent).
		Div(decimal.NewFromFloat(budget)).
		Mul(decimal.NewFromInt(100)).
		Round(2).
		InexactFloat64()
}

// DaysLeft counts the days from now to the last day of its month.
func DaysLeft(now time.Time) int {
	now = now.In(time.Local)
	lastDay := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, time.Local).Day()
	return lastDay - now.Day()
}

// Sum totals every record regardless of date.
func Sum(records []Record) float64 {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(decimal.NewFromFloat(r.Amount))
	}
	return total.InexactFloat64()
}
