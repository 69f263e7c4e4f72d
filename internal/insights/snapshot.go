package insights

import (
	"time"

	"github.com/frahmantamala/expense-tracker/internal/expense"
)

const (
	LatestCount         = 5
	RemainingSliceLabel = "Remaining Budget"
)

// Snapshot is everything the views display, derived from one read of the store.
type Snapshot struct {
	AsOf         time.Time        `json:"as_of"`
	Month        string           `json:"month"`
	Year         int              `json:"year"`
	Budget       float64          `json:"budget"`
	Spent        float64          `json:"spent"`
	Remaining    float64          `json:"remaining"`
	SpentPercent float64          `json:"spent_percent"`
	DaysLeft     int              `json:"days_left"`
	Breakdown    []BreakdownEntry `json:"breakdown"`
	Pie          []Slice          `json:"pie"`
	Latest       []expense.Record `json:"latest"`
	AlertRaised  bool             `json:"alert_raised"`
}

type BreakdownEntry struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Image    string  `json:"image"`
}

type Slice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

type ImageResolver interface {
	ImageFor(category string) string
}

// BuildSnapshot recomputes every aggregate for the month containing now.
func BuildSnapshot(records []expense.Record, budget float64, now time.Time, images ImageResolver, palette []string) Snapshot {
	month, year := now.Month(), now.Year()
	spent := expense.MonthlyTotal(records, month, year)
	remaining := expense.RemainingBudget(budget, records, month, year)

	snap := Snapshot{
		AsOf:         now,
		Month:        month.String(),
		Year:         year,
		Budget:       budget,
		Spent:        spent,
		Remaining:    remaining,
		SpentPercent: expense.SpentPercent(budget, spent),
		DaysLeft:     expense.DaysLeft(now),
		Breakdown:    []BreakdownEntry{},
		Latest:       latest(records, LatestCount),
	}

	for _, ct := range expense.OrderedBreakdown(records, month, year) {
		snap.Breakdown = append(snap.Breakdown, BreakdownEntry{
			Category: ct.Category,
			Total:    ct.Total,
			Image:    images.ImageFor(ct.Category),
		})
	}
	snap.Pie = PieSlices(snap.Breakdown, remaining, palette)
	return snap
}

// PieSlices is the breakdown plus a remaining-budget slice, coloured in palette order.
func PieSlices(breakdown []BreakdownEntry, remaining float64, palette []string) []Slice {
	slices := make([]Slice, 0, len(breakdown)+1)
	for _, b := range breakdown {
		slices = append(slices, Slice{Label: b.Category, Value: b.Total})
	}
	slices = append(slices, Slice{Label: RemainingSliceLabel, Value: remaining})

	if len(palette) > 0 {
		for i := range slices {
			slices[i].Color = palette[i%len(palette)]
		}
	}
	return slices
}

func latest(records []expense.Record, n int) []expense.Record {
	if len(records) < n {
		n = len(records)
	}
	out := make([]expense.Record, n)
	copy(out, records[:n])
	return out
}
